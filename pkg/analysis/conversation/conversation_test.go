package conversation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"growth-engine-be/pkg/llm"
)

func buildHistory(nonSystem int) []llm.Message {
	msgs := []llm.Message{{Role: llm.RoleSystem, Content: "prompt"}}
	for i := 0; i < nonSystem; i++ {
		role := llm.RoleUser
		if i%2 == 1 {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: fmt.Sprintf("msg-%d", i)})
	}
	return msgs
}

func TestTruncateHistoryShortTranscriptUntouched(t *testing.T) {
	msgs := buildHistory(10)
	out := TruncateHistory(msgs, 15)
	assert.Equal(t, msgs, out)
}

func TestTruncateHistoryKeepsSystemAndRecent(t *testing.T) {
	msgs := buildHistory(30)
	out := TruncateHistory(msgs, 15)

	assert.Len(t, out, 16)
	assert.Equal(t, llm.RoleSystem, out[0].Role)
	assert.Equal(t, "msg-15", out[1].Content)
	assert.Equal(t, "msg-29", out[len(out)-1].Content)
}

func TestTruncateHistoryDoesNotMutateInput(t *testing.T) {
	msgs := buildHistory(30)
	before := make([]llm.Message, len(msgs))
	copy(before, msgs)

	TruncateHistory(msgs, 5)
	assert.Equal(t, before, msgs)
}

func TestLastAssistantMessage(t *testing.T) {
	s := &State{Messages: []llm.Message{
		{Role: llm.RoleSystem, Content: "prompt"},
		{Role: llm.RoleAssistant, Content: "q1"},
		{Role: llm.RoleUser, Content: "a1"},
		{Role: llm.RoleAssistant, Content: "q2"},
		{Role: llm.RoleUser, Content: "a2"},
	}}

	msg, ok := s.LastAssistantMessage()
	assert.True(t, ok)
	assert.Equal(t, "q2", msg.Content)
}

func TestLastAssistantMessageMissing(t *testing.T) {
	s := &State{Messages: []llm.Message{{Role: llm.RoleSystem, Content: "prompt"}}}
	_, ok := s.LastAssistantMessage()
	assert.False(t, ok)
}
