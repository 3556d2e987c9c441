package document

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Python &amp; SQL</w:t></w:r></w:p>` +
	`</w:body></w:document>`

func buildDocx(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": `<?xml version="1.0"?><Relationships/>`,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractDocx(t *testing.T) {
	text, err := Extract("resume.docx", buildDocx(t))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Python & SQL", text)
}

func TestExtractText(t *testing.T) {
	text, err := Extract("jd.TXT", []byte("Senior Go engineer"))
	require.NoError(t, err)
	assert.Equal(t, "Senior Go engineer", text)

	// no extension, sniffed as text
	text, err = Extract("jd", []byte("Python and SQL required"))
	require.NoError(t, err)
	assert.Equal(t, "Python and SQL required", text)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Kind
	}{
		{name: "cv.pdf", want: PDF},
		{name: "cv.DOCX", want: DOCX},
		{name: "notes.md", want: Text},
		{name: "upload", data: []byte("%PDF-1.4\n"), want: PDF},
		{name: "upload", data: []byte("PK\x03\x04rest"), want: DOCX},
	}

	for _, tt := range tests {
		got, err := Detect(tt.name, tt.data)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestExtractUnsupported(t *testing.T) {
	_, err := Extract("photo", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExtractMalformed(t *testing.T) {
	_, err := Extract("cv.pdf", []byte("not a pdf"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupported)

	_, err = Extract("cv.docx", []byte("not a zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read docx")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.docx")
	require.NoError(t, os.WriteFile(path, buildDocx(t), 0o644))

	text, err := ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Python & SQL")

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestStripXML(t *testing.T) {
	in := `<w:p><w:r><w:t>a</w:t></w:r></w:p><w:p></w:p><w:p></w:p><w:p><w:r><w:t>b</w:t><w:br/><w:t>&lt;c&gt;</w:t></w:r></w:p>`
	assert.Equal(t, "a\n\nb\n<c>", StripXML(in))
}
