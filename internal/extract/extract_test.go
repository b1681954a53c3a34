package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFText_Invalid(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("not a pdf"), []byte("%PDF-1.4\n%%EOF")} {
		_, err := PDFText(data)
		assert.True(t, errors.Is(err, ErrInvalidPDF), "input %q: %v", data, err)
	}
}

func TestFileText_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.rst")
	require.NoError(t, os.WriteFile(path, []byte("Title\n-----\nbody\n"), 0644))

	text, err := FileText(path)

	require.NoError(t, err)
	assert.Contains(t, text, "body")
}

func TestFileText_Missing(t *testing.T) {
	_, err := FileText(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
