package template

import (
	"strings"

	"growth-engine-be/internal/constant"
)

const namePlaceholder = "{studentName}"

// FallbackName is used when a conversation somehow carries no student name.
const FallbackName = "התלמיד/ה"

// FirstQuestion renders the opening question for a new conversation.
func FirstQuestion(studentName string) string {
	return render(constant.FirstQuestionTemplate, studentName)
}

// NextQuestion picks the canned follow-up for the given questionCount, used
// directly as a 0-based index into the template list. Once the index runs
// past the list the closing message is returned.
func NextQuestion(questionCount int, studentName string) string {
	if questionCount >= 0 && questionCount < len(constant.QuestionTemplates) {
		return render(constant.QuestionTemplates[questionCount], studentName)
	}
	return render(constant.ClosingMessage, studentName)
}

func render(tmpl, studentName string) string {
	if studentName == "" {
		studentName = FallbackName
	}
	return strings.ReplaceAll(tmpl, namePlaceholder, studentName)
}
