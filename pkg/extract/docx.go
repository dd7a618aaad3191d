package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// DOCX is a zip package; the body text lives in word/document.xml as
// <w:t> runs. Matching the runs directly keeps paragraph and run
// attributes out of the way.
var docxTextRun = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx: not a zip archive: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open docx body: %w", err)
		}
		xmlBytes, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read docx body: %w", err)
		}

		runs := docxTextRun.FindAllSubmatch(xmlBytes, -1)
		var b strings.Builder
		for i, run := range runs {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.Write(run[1])
		}
		return unescapeXML(b.String()), nil
	}
	return "", fmt.Errorf("open docx: word/document.xml not found")
}

var xmlEscapes = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func unescapeXML(s string) string {
	return xmlEscapes.Replace(s)
}
