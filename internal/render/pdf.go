package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/msomdec/newsdesk/internal/domain"
)

const utf8Family = "docfont"

// PDF renders documents as A4 PDF pages. Without a font file only the
// Latin-1 range survives; configure a UTF-8 TrueType font for other scripts.
type PDF struct {
	fontPath string
}

// NewPDF creates a PDF renderer. fontPath may be empty.
func NewPDF(fontPath string) *PDF {
	return &PDF{fontPath: fontPath}
}

var _ domain.DocumentRenderer = (*PDF)(nil)

func (p *PDF) ContentType() string { return "application/pdf" }

func (p *PDF) Render(w io.Writer, doc domain.Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator("newsdesk", false)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if p.fontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", p.fontPath)
		pdf.AddUTF8Font(utf8Family, "B", p.fontPath)
		family = utf8Family
		tr = func(s string) string { return s }
	}

	pdf.AddPage()

	pdf.SetFont(family, "B", 18)
	pdf.MultiCell(0, 9, tr(doc.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont(family, "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, tr(doc.Author), "B", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(family, "", 12)
	pdf.MultiCell(0, 6, tr(doc.Body), "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
