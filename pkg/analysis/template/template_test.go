package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstQuestionSubstitutesName(t *testing.T) {
	msg := FirstQuestion("דנה")
	assert.Contains(t, msg, "דנה")
	assert.Contains(t, msg, "שאלה 1 מתוך 6")
	assert.NotContains(t, msg, "{studentName}")
}

func TestNextQuestionIndexing(t *testing.T) {
	cases := []struct {
		questionCount int
		wantContains  string
	}{
		{0, "שאלה 2 מתוך 6"},
		{1, "שאלה 3 מתוך 6"},
		{2, "שאלה 4 מתוך 6"},
		{3, "שאלה 5 מתוך 6"},
		{4, "שאלה 6 מתוך 6"},
	}

	for _, tc := range cases {
		msg := NextQuestion(tc.questionCount, "יואב")
		assert.Contains(t, msg, tc.wantContains)
		assert.Contains(t, msg, "יואב")
	}
}

func TestNextQuestionClosingAfterExhaustion(t *testing.T) {
	for _, count := range []int{5, 6, 10} {
		msg := NextQuestion(count, "יואב")
		assert.Contains(t, msg, "השלם ניתוח")
		assert.Contains(t, msg, "יואב")
	}
}

func TestNextQuestionFallbackName(t *testing.T) {
	msg := NextQuestion(0, "")
	assert.True(t, strings.Contains(msg, FallbackName))
}
