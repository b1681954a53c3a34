package attachments

import (
	"encoding/base64"
	"testing"

	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/stretchr/testify/assert"
)

func encode(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		file EncodedFile
		want chatModel.InputFile
	}{
		{
			name: "csv",
			file: EncodedFile{FileName: "data.CSV", Content: encode("a,b\n1,2\n")},
			want: chatModel.InputFile{Name: "data.CSV", Content: "a,b\n1,2\n"},
		},
		{
			name: "broken pdf",
			file: EncodedFile{FileName: "report.pdf", Content: encode("definitely not a pdf")},
			want: chatModel.InputFile{Name: "report.pdf", Error: "Failed to read the PDF file."},
		},
		{
			name: "unsupported",
			file: EncodedFile{FileName: "notes.docx", Content: encode("x")},
			want: chatModel.InputFile{Name: "notes.docx", Error: "Unsupported file type: .docx"},
		},
		{
			name: "no extension",
			file: EncodedFile{FileName: "README", Content: encode("x")},
			want: chatModel.InputFile{Name: "README", Error: "Unsupported file type: "},
		},
		{
			name: "bad base64",
			file: EncodedFile{FileName: "data.csv", Content: "%%%"},
			want: chatModel.InputFile{Name: "data.csv", Error: "Invalid base64 content."},
		},
		{
			name: "csv not utf8",
			file: EncodedFile{FileName: "data.csv", Content: base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe})},
			want: chatModel.InputFile{Name: "data.csv", Error: "The file is not valid UTF-8 text."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.file))
		})
	}
}

func TestDecodeAll_OnlyBrokenFileFails(t *testing.T) {
	files := DecodeAll([]EncodedFile{
		{FileName: "a.csv", Content: encode("x,y")},
		{FileName: "b.pdf", Content: encode("junk")},
	})

	assert.Empty(t, files[0].Error)
	assert.NotEmpty(t, files[1].Error)
	assert.Equal(t, []string{"b.pdf: Failed to read the PDF file."}, Errors(files))
}
