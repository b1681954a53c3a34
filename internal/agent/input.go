package agent

import (
	"strings"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
)

const (
	attachmentsHeader = "The user attached the following files:"
	attachmentsEnd    = "--- END OF ATTACHMENTS ---"
)

// Input is one user message with its decoded attachments.
type Input struct {
	Text  string
	Files []chatModel.InputFile
}

// BuildInput puts every attachment in a named block ahead of the user message and truncates the
// whole to the model's input budget. The bool reports whether anything was cut off.
func (a *Agent) BuildInput(in Input) (string, bool) {
	if len(in.Files) == 0 {
		return a.tok.ShortenInput(in.Text, a.config.Model)
	}

	var sb strings.Builder
	sb.WriteString(attachmentsHeader)
	sb.WriteString("\n\n")
	for _, f := range in.Files {
		sb.WriteString("--- ATTACHMENT: " + f.Name + " ---\n")
		if f.Error != "" {
			sb.WriteString("The file could not be read: " + f.Error)
		} else {
			sb.WriteString(a.tok.Truncate(f.Content, config.AttachmentExcerptTokens))
		}
		sb.WriteString("\n\n")
	}
	sb.WriteString(attachmentsEnd)
	sb.WriteString("\n\n")
	sb.WriteString(in.Text)

	return a.tok.ShortenInput(sb.String(), a.config.Model)
}
