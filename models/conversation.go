package models

// Turn roles. History only ever contains these two; the system instruction
// is assembled per request and never stored.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is a single role-tagged message in a conversation.
// Turns are immutable once appended to a history.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RetrievedPassage is one vector-search match. Ephemeral: produced per
// query, handed to prompt assembly, never persisted.
type RetrievedPassage struct {
	ID    string  `json:"id"`
	Score float32 `json:"score"`
	Text  string  `json:"text"`
}
