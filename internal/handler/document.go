package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/newsdesk/internal/domain"
)

// writeDocument renders doc into memory first so a rendering failure can
// still produce a clean 500.
func writeDocument(w http.ResponseWriter, renderer domain.DocumentRenderer, doc domain.Document, name string) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		slog.Error("render document", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render document.")
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("write document", "name", name, "error", err)
	}
}
