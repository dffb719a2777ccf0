package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemPromptFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat-prompt.txt")
	err := os.WriteFile(path, []byte("Interview prompt for {studentName}."), 0o644)
	assert.NoError(t, err)

	l := NewLoader(path)
	got := l.SystemPrompt("Dana")
	assert.Equal(t, "Interview prompt for Dana.", got)
}

func TestSystemPromptAppendsNameWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat-prompt.txt")
	err := os.WriteFile(path, []byte("Interview prompt with no placeholder."), 0o644)
	assert.NoError(t, err)

	l := NewLoader(path)
	got := l.SystemPrompt("Dana")
	assert.Contains(t, got, "CURRENT STUDENT: Dana")
}

func TestSystemPromptFallsBackToDefault(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "missing.txt"))
	got := l.SystemPrompt("Dana")
	assert.Contains(t, got, "CURRENT STUDENT: Dana")
	assert.Contains(t, got, "educational psychologist")
	assert.NotContains(t, got, "{studentName}")
}
