// Package document extracts plain text from resume and job description files.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupported is returned for documents that are neither PDF, DOCX nor text.
var ErrUnsupported = errors.New("unsupported document type")

type Kind string

const (
	PDF  Kind = "pdf"
	DOCX Kind = "docx"
	Text Kind = "text"
)

// Detect picks the document kind from the file extension, falling back to
// content sniffing for unknown or missing extensions.
func Detect(name string, data []byte) (Kind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return PDF, nil
	case ".docx":
		return DOCX, nil
	case ".txt", ".md", ".text":
		return Text, nil
	}

	mime := http.DetectContentType(data)
	switch {
	case mime == "application/pdf":
		return PDF, nil
	case mime == "application/zip":
		return DOCX, nil
	case strings.HasPrefix(mime, "text/plain") && utf8.Valid(data):
		return Text, nil
	default:
		return "", fmt.Errorf("%w: %s (%s)", ErrUnsupported, name, mime)
	}
}

// Extract returns the plain text of the document.
func Extract(name string, data []byte) (string, error) {
	kind, err := Detect(name, data)
	if err != nil {
		return "", err
	}

	switch kind {
	case PDF:
		return extractPDF(data)
	case DOCX:
		return extractDocx(data)
	default:
		return string(data), nil
	}
}

// ReadFile reads and extracts the document at path.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := Extract(filepath.Base(path), data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// extractPDF recovers from panics raised by the pdf reader on malformed input.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(content)
	}
	return b.String(), nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return StripXML(doc.Editable().GetContent()), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	xmlTag       = regexp.MustCompile(`<[^>]*>`)
	blankLines   = regexp.MustCompile(`\n{3,}`)
)

// StripXML turns WordprocessingML into text: paragraphs and breaks become
// newlines, tags are removed and entities decoded.
func StripXML(content string) string {
	content = paragraphEnd.ReplaceAllStringFunc(content, func(tag string) string {
		if strings.HasPrefix(tag, "<w:tab") {
			return " "
		}
		return "\n"
	})
	content = xmlTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	return strings.TrimSpace(blankLines.ReplaceAllString(content, "\n\n"))
}
