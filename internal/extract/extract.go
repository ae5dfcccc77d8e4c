// ABOUTME: Raw upload bytes to plain text extraction
// ABOUTME: Supports PDF via ledongthuc/pdf and UTF-8 plain text
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// Content types accepted for uploads.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
)

// ErrUnsupportedType is returned for anything other than PDF or plain text.
var ErrUnsupportedType = errors.New("only PDF or TXT supported")

// ErrNoText is returned when extraction produced no text at all.
var ErrNoText = errors.New("no text extracted from file")

// Text extracts plain text from an upload. The returned text is non-empty
// or the error is ErrNoText.
func Text(r io.Reader, contentType string) (string, error) {
	switch contentType {
	case ContentTypePDF:
		return pdfText(r)
	case ContentTypeText:
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read upload: %w", err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return "", ErrNoText
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnsupportedType, contentType)
	}
}

// pdfText spools the upload to a temp file because the pdf library works
// with file paths.
func pdfText(r io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		return "", fmt.Errorf("spool pdf: %w", err)
	}

	f, reader, err := pdf.Open(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf buffer: %w", err)
	}
	if len(bytes.TrimSpace(buf.Bytes())) == 0 {
		return "", ErrNoText
	}
	return buf.String(), nil
}
