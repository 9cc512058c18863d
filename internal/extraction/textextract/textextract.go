// Package textextract decodes uploaded document bytes into plain text.
// The service depends only on the Extractor interface so the decoder can be
// swapped out (or faked in tests) without touching the pipeline.
package textextract

import (
	"bytes"
	"context"
	"fmt"

	"code.sajari.com/docconv"

	"github.com/talentflow/talentflow-backend/internal/extraction/domain"
)

// Extractor turns raw document bytes into text for a declared format
type Extractor interface {
	ExtractText(ctx context.Context, data []byte, format domain.DocumentFormat) (string, error)
}

// DocconvExtractor decodes PDF/DOCX/DOC/RTF/ODT documents with docconv and
// reads txt uploads directly.
type DocconvExtractor struct{}

func NewDocconvExtractor() *DocconvExtractor {
	return &DocconvExtractor{}
}

func (e *DocconvExtractor) ExtractText(_ context.Context, data []byte, format domain.DocumentFormat) (string, error) {
	switch format {
	case domain.FormatTXT:
		return string(data), nil
	case domain.FormatPDF, domain.FormatDOCX, domain.FormatDOC, domain.FormatRTF, domain.FormatODT:
		mimeType := docconv.MimeTypeByExtension("document." + string(format))
		res, err := docconv.Convert(bytes.NewReader(data), mimeType, true)
		if err != nil {
			return "", fmt.Errorf("failed to decode %s document: %w", format, err)
		}
		return res.Body, nil
	default:
		return "", fmt.Errorf("no decoder for format: %s", format)
	}
}
