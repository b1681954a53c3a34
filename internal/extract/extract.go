package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

const pageTimeout = 10 * time.Second

var ErrInvalidPDF = errors.New("invalid pdf")

// PDFText concatenates the plain text of every page. OCR is not supported, so scanned
// documents come back empty.
func PDFText(data []byte) (text string, err error) {
	// the reader panics on some malformed cross reference tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrInvalidPDF, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	logger := logger_i.NewLogger("Extract")
	var sb strings.Builder
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := protectExtract(page)
		if err != nil {
			logger.Warn("Error parsing page content", "page", i, "error", err)
			continue
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}

func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{err: fmt.Errorf("%w: %v", ErrInvalidPDF, r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(pageTimeout):
		return "", errors.New("timeout")
	}
}

// FileText reads a .odt, .docx, .rtf or plaintext file.
func FileText(path string) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", path, err)
	}
	return text, nil
}
