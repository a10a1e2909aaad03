package chat

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
)

// ChatMessage represents a single message in the conversation sent to the
// model provider. The shape follows the OpenAI-style chat completions API.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Window returns the most recent limit messages from history. The full
// transcript stays in the session; only a window is sent to the provider
// to keep request sizes bounded.
func Window(history []ChatMessage, limit int) []ChatMessage {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
