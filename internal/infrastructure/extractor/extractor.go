// Package extractor turns raw uploaded bytes into plain text. Failures never
// surface as errors: they are encoded as an error-marker string in the
// returned text so the analysis layer can degrade to filename-only inference.
package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Extract(_ context.Context, filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return extractPlainText(filename, data)
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			return marker("PDF", filename, err)
		}
		return text
	case ".docx":
		text, err := extractDOCX(data)
		if err != nil {
			return marker("DOCX", filename, err)
		}
		return text
	case ".doc":
		// Legacy binary Word format has no parser here.
		return marker("DOC", filename, fmt.Errorf("legacy .doc format is not supported"))
	default:
		return marker("binary", filename, fmt.Errorf("no extractor for this format"))
	}
}

func extractPlainText(filename string, data []byte) string {
	if !utf8.Valid(data) {
		return marker("text", filename, fmt.Errorf("content is not valid UTF-8"))
	}
	return strings.TrimSpace(string(data))
}

// marker builds the error-marker content string the analysis layer detects.
func marker(format, filename string, err error) string {
	return fmt.Sprintf("[%s file: %s] Error extracting content: %v", format, filename, err)
}
