package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract("notes.txt", []byte("hello world, this is a plain document"))
	require.NoError(t, err)
	assert.Equal(t, "hello world, this is a plain document", text)
}

func TestExtractHTMLStripsMarkup(t *testing.T) {
	e := NewExtractor()

	page := []byte(`<html><head><style>p{color:red}</style><script>alert(1)</script></head>` +
		`<body><h1>Title</h1><p>Body text here.</p></body></html>`)
	text, err := e.Extract("page.html", page)
	require.NoError(t, err)
	assert.Equal(t, "Title Body text here.", text)
	assert.NotContains(t, text, "alert")
}

func TestExtractDOCXTextRuns(t *testing.T) {
	e := NewExtractor()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body>` +
		`<w:p w:rsidR="001"><w:r><w:t>First run</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">second &amp; third</w:t></w:r></w:p>` +
		`</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := e.Extract("doc.docx", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "First run second & third", text)
}

func TestExtractUnsupportedType(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract("slides.pptx", []byte("whatever content"))
	require.Error(t, err)
	var typeErr *UnsupportedTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, ".pptx", typeErr.Ext)
}

func TestExtractRejectsNearEmptyText(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract("tiny.txt", []byte("   hi   "))
	assert.ErrorIs(t, err, ErrNoMeaningfulText)
}

func TestFileType(t *testing.T) {
	assert.Equal(t, "pdf", FileType("report.PDF"))
	assert.Equal(t, "html", FileType("index.htm"))
	assert.Equal(t, "txt", FileType("a/b/notes.txt"))
}
