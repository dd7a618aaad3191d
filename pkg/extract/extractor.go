// Package extract pulls plain text out of uploaded document files.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// minMeaningfulChars is the minimum extracted length for a document to be
// accepted for indexing.
const minMeaningfulChars = 10

// ErrNoMeaningfulText is returned when a file parses but yields too little
// text to index.
var ErrNoMeaningfulText = fmt.Errorf("no meaningful text could be extracted from the document")

// UnsupportedTypeError is returned for file extensions we cannot parse.
type UnsupportedTypeError struct {
	Ext string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (supported: pdf, docx, html, htm, txt)", e.Ext)
}

// Extractor converts uploaded files into plain text.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text content of the named file. The format is picked
// by extension. Files whose extracted text trims to fewer than 10 characters
// are rejected with ErrNoMeaningfulText.
func (e *Extractor) Extract(filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDF(content)
	case ".docx":
		text, err = extractDOCX(content)
	case ".html", ".htm":
		text, err = extractHTML(content)
	case ".txt":
		text, err = extractPlain(content)
	default:
		return "", &UnsupportedTypeError{Ext: ext}
	}
	if err != nil {
		return "", err
	}

	if len(strings.TrimSpace(text)) < minMeaningfulChars {
		return "", ErrNoMeaningfulText
	}
	return text, nil
}

// FileType returns the normalized type label for a filename ("pdf", "docx",
// "html", "txt"), used in chunk metadata and document info.
func FileType(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "htm" {
		ext = "html"
	}
	return ext
}
