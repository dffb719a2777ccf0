package conversation

import (
	"time"

	"growth-engine-be/pkg/llm"
)

// State is the full transcript and progress of one guided analysis
// conversation. It lives in the conversation store only; completed analyses
// are copied out before the state expires.
type State struct {
	ID            string        `json:"id"`
	StudentID     string        `json:"student_id"`
	StudentName   string        `json:"student_name"`
	Messages      []llm.Message `json:"messages"`
	QuestionCount int           `json:"question_count"`
	IsComplete    bool          `json:"is_complete"`
	CreatedAt     time.Time     `json:"created_at"`
}

// LastAssistantMessage returns the most recent assistant message, or false
// when none has been produced yet.
func (s *State) LastAssistantMessage() (llm.Message, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == llm.RoleAssistant {
			return s.Messages[i], true
		}
	}
	return llm.Message{}, false
}

// TruncateHistory bounds the transcript sent to the model. System messages
// are always kept; of the rest only the most recent maxMessages survive.
// The input slice is never mutated.
func TruncateHistory(messages []llm.Message, maxMessages int) []llm.Message {
	var system, rest []llm.Message
	for _, m := range messages {
		if m.Role == llm.RoleSystem {
			system = append(system, m)
		} else {
			rest = append(rest, m)
		}
	}

	if len(rest) <= maxMessages {
		out := make([]llm.Message, len(messages))
		copy(out, messages)
		return out
	}

	recent := rest[len(rest)-maxMessages:]
	out := make([]llm.Message, 0, len(system)+len(recent))
	out = append(out, system...)
	out = append(out, recent...)
	return out
}
