package dto

import (
	"time"

	"growth-engine-be/pkg/llm"
)

type StartConversationRequest struct {
	StudentId string `json:"student_id" validate:"required,uuid"`
}

type StartConversationResponse struct {
	ConversationId string `json:"conversation_id"`
	Message        string `json:"message"`
}

type ChatRequest struct {
	ConversationId string `json:"conversation_id" validate:"required"`
	Message        string `json:"message" validate:"required"`
}

type ChatMetadata struct {
	QuestionCount int `json:"question_count"`
	MessageCount  int `json:"message_count"`
}

type ChatResponse struct {
	Message    string       `json:"message"`
	IsComplete bool         `json:"is_complete"`
	Source     string       `json:"source"` // "ai" or "template"
	Metadata   ChatMetadata `json:"metadata"`
}

type CompleteAnalysisRequest struct {
	ConversationId string `json:"conversation_id" validate:"required"`
}

type CompleteAnalysisResponse struct {
	AnalysisId  string    `json:"analysis_id"`
	StudentId   string    `json:"student_id"`
	CompletedAt time.Time `json:"completed_at"`
}

type AnalysisResponse struct {
	Id                  string        `json:"id"`
	StudentId           string        `json:"student_id"`
	Analysis            string        `json:"analysis"`
	ConversationHistory []llm.Message `json:"conversation_history,omitempty"`
	CreatedBy           string        `json:"created_by"`
	CreatedAt           time.Time     `json:"created_at"`
}

type ArchivedAnalysisResponse struct {
	Id          string    `json:"id"`
	MemoryRefId string    `json:"memory_ref_id,omitempty"`
	StudentId   string    `json:"student_id"`
	Analysis    string    `json:"analysis"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type EvictConversationsResponse struct {
	Evicted int `json:"evicted"`
}
