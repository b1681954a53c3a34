package attachments

import (
	"encoding/base64"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/extract"
)

// EncodedFile is an attachment as the clients send it.
type EncodedFile struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

// Decode turns an attachment into text. A file that cannot be read keeps its name and carries
// the reason in Error; it never fails the request.
func Decode(file EncodedFile) chatModel.InputFile {
	out := chatModel.InputFile{Name: file.FileName}

	raw, err := base64.StdEncoding.DecodeString(file.Content)
	if err != nil {
		out.Error = "Invalid base64 content."
		return out
	}
	return FromBytes(file.FileName, raw)
}

func DecodeAll(files []EncodedFile) []chatModel.InputFile {
	out := make([]chatModel.InputFile, 0, len(files))
	for _, f := range files {
		out = append(out, Decode(f))
	}
	return out
}

// FromBytes reads .csv files as UTF-8 text and .pdf files through the PDF reader.
func FromBytes(name string, raw []byte) chatModel.InputFile {
	out := chatModel.InputFile{Name: name}

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		if !utf8.Valid(raw) {
			out.Error = "The file is not valid UTF-8 text."
			return out
		}
		out.Content = string(raw)
	case ".pdf":
		text, err := extract.PDFText(raw)
		if err != nil {
			out.Error = "Failed to read the PDF file."
			return out
		}
		out.Content = text
	default:
		out.Error = "Unsupported file type: " + ext
	}
	return out
}

// Errors lists the failed attachments as "name: error" lines.
func Errors(files []chatModel.InputFile) []string {
	var out []string
	for _, f := range files {
		if f.Error != "" {
			out = append(out, f.Name+": "+f.Error)
		}
	}
	return out
}
