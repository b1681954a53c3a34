package chatModel

import "time"

type Role string

const (
	RoleHuman Role = "human"
	RoleAI    Role = "ai"
)

// Message is a role tagged entry of a conversation as loaded from memory.
type Message struct {
	Role    Role   `json:"type"`
	Content string `json:"content"`
}

// Turn is one human input and the AI output it produced.
type Turn struct {
	Human string `json:"human"`
	AI    string `json:"ai"`
}

// Action is the audit trail of one tool invocation.
type Action struct {
	Tool   string `json:"tool"`
	Query  string `json:"query"`
	Output string `json:"output"`
}

// InputFile is a decoded attachment. Error is set instead of Content when it could not be read.
type InputFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// TranscriptEntry is a displayed chat message, AI entries carry the actions that led to them.
type TranscriptEntry struct {
	Role      Role      `json:"type"`
	Content   string    `json:"content"`
	Actions   []Action  `json:"actions,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
