// ABOUTME: Plain-text extraction from uploaded files ahead of ingestion
// ABOUTME: Supports .txt/.md verbatim and .pdf via ledongthuc/pdf
package extract

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/fikalabs/pantry/internal/core"
)

// FromFile reads path and returns its plain text. Extraction failures are
// validation errors: the input is rejected before any provider or store I/O.
func FromFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", core.Validationf("reading %s: %v", path, err)
		}
		return string(data), nil
	case ".pdf":
		return fromPDF(path)
	default:
		return "", core.Validationf("unsupported file type %q (supported: .txt, .md, .pdf)", filepath.Ext(path))
	}
}

func fromPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", core.Validationf("opening pdf %s: %v", path, err)
	}
	defer f.Close()

	body, err := reader.GetPlainText()
	if err != nil {
		return "", core.Validationf("extracting pdf text from %s: %v", path, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", core.Validationf("reading pdf text from %s: %v", path, err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", core.Validationf("no text extracted from %s", path)
	}
	return text, nil
}
