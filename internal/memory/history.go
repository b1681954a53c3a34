package memory

import (
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/rag/tokenizer"
)

// ParseHistory validates client supplied history and pairs it into turns. The history must
// start with a human message and strictly alternate, so a leading AI message is rejected.
func ParseHistory(messages []chatModel.Message, model string, counter TokenCounter) ([]chatModel.Turn, error) {
	if len(messages)%2 != 0 {
		return nil, chatModel.NewValidationError("The history must contain an even number of messages.")
	}

	total := 0
	turns := make([]chatModel.Turn, 0, len(messages)/2)
	for i := 0; i < len(messages); i += 2 {
		human, ai := messages[i], messages[i+1]
		if human.Role != chatModel.RoleHuman || ai.Role != chatModel.RoleAI {
			return nil, chatModel.NewValidationError("The history must alternate between human and AI messages, starting with a human message.")
		}
		total += counter.CountTokens(human.Content) + counter.CountTokens(ai.Content)
		turns = append(turns, chatModel.Turn{Human: human.Content, AI: ai.Content})
	}

	if total > tokenizer.MemoryTokenLimit(model) {
		return nil, chatModel.NewValidationError("The history is too long for the selected model.")
	}
	return turns, nil
}

// PatchLeadingSummary makes loaded messages valid history again by putting an empty human
// message in front of a leading AI message.
func PatchLeadingSummary(messages []chatModel.Message) []chatModel.Message {
	if len(messages) == 0 || messages[0].Role != chatModel.RoleAI {
		return messages
	}
	return append([]chatModel.Message{{Role: chatModel.RoleHuman, Content: ""}}, messages...)
}
