package service

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/msomdec/newsdesk/internal/domain"
)

const maxImageSize = 10 * 1024 * 1024

// CheckImage accepts an absent image or JPEG/PNG bytes up to 10MB. The
// format is sniffed from the content, never taken from the client.
func CheckImage(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	if len(data) > maxImageSize {
		return fmt.Errorf("%w: image exceeds %s limit", domain.ErrInvalidInput, humanize.IBytes(maxImageSize))
	}

	mime := mimetype.Detect(data)
	if !mime.Is("image/jpeg") && !mime.Is("image/png") {
		return fmt.Errorf("%w: only JPEG and PNG images are accepted, got %s", domain.ErrInvalidInput, mime.String())
	}
	return nil
}
