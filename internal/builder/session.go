package builder

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keerthikapopuri/gameforge/pkg/artifact"
	"github.com/keerthikapopuri/gameforge/pkg/chat"
	"github.com/keerthikapopuri/gameforge/pkg/gamespec"
	"github.com/keerthikapopuri/gameforge/pkg/prompts"
)

// QuestionAnswer is one clarification exchange.
type QuestionAnswer struct {
	Question string
	Answer   string
}

// Session is the mutable state for one run of the pipeline. It lives only in
// memory; the output files and the leaderboard store are the only things that
// survive the process.
type Session struct {
	ID           uuid.UUID
	Idea         string
	Transcript   []QuestionAnswer
	Requirements *gamespec.Requirements
	Plan         *gamespec.Plan
	Files        *artifact.FileSet
	OutputDir    string
	Stage        Stage
	CreatedAt    time.Time

	history []chat.ChatMessage
}

// NewSession starts a session for an idea. The idea seeds the conversation
// history as the first user message.
func NewSession(idea string) *Session {
	return &Session{
		ID:        uuid.New(),
		Idea:      idea,
		Stage:     StageClarifying,
		CreatedAt: time.Now(),
		history: []chat.ChatMessage{
			{Role: chat.ChatRoleUser, Content: prompts.IdeaMessage(idea)},
		},
	}
}

func (s *Session) appendExchange(question, answer string) {
	s.Transcript = append(s.Transcript, QuestionAnswer{Question: question, Answer: answer})
	s.history = append(s.history,
		chat.ChatMessage{Role: chat.ChatRoleAssistant, Content: question},
		chat.ChatMessage{Role: chat.ChatRoleUser, Content: answer},
	)
}

// transcriptText renders the full conversation for the condensation prompt.
func (s *Session) transcriptText() string {
	var b strings.Builder
	for _, msg := range s.history {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	return b.String()
}
