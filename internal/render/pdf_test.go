package render_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/newsdesk/internal/domain"
	"github.com/msomdec/newsdesk/internal/render"
)

func TestPDF_Render(t *testing.T) {
	r := render.NewPDF("")
	assert.Equal(t, "application/pdf", r.ContentType())

	var buf bytes.Buffer
	err := r.Render(&buf, domain.Document{
		Title:  "Blinking an LED",
		Author: "Ivan Petrov",
		Body:   "Line one.\nLine two with café.",
	})
	require.NoError(t, err)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output should be a PDF")
	assert.True(t, bytes.Contains(out, []byte("%%EOF")))
}

func TestPDF_RenderMissingFont(t *testing.T) {
	r := render.NewPDF(filepath.Join(t.TempDir(), "missing.ttf"))

	var buf bytes.Buffer
	err := r.Render(&buf, domain.Document{Title: "t", Author: "a", Body: "b"})
	assert.Error(t, err)
}
