package prompt

import (
	"os"
	"strings"

	"growth-engine-be/internal/constant"
)

const namePlaceholder = "{studentName}"

// Loader resolves the interview system prompt. A prompt file lets operators
// tune the interview without a redeploy; when it is missing or unreadable
// the built-in default is used.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// SystemPrompt returns the prompt with the student's name substituted. A
// file prompt with no mention of the student gets the name appended so the
// model always knows who the interview is about.
func (l *Loader) SystemPrompt(studentName string) string {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return strings.ReplaceAll(constant.DefaultSystemPrompt, namePlaceholder, studentName)
	}

	prompt := strings.ReplaceAll(string(raw), namePlaceholder, studentName)
	if !strings.Contains(prompt, studentName) {
		prompt += "\n\nCURRENT STUDENT: " + studentName
	}
	return prompt
}
