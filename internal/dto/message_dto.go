package dto

import (
	"time"

	"growth-engine-be/pkg/llm"
)

// ArchiveAnalysisMessage is the internal pubsub payload asking the consumer
// to persist a completed analysis.
type ArchiveAnalysisMessage struct {
	MemoryRefId         string        `json:"memory_ref_id"`
	StudentId           string        `json:"student_id"`
	Analysis            string        `json:"analysis"`
	ConversationHistory []llm.Message `json:"conversation_history,omitempty"`
	CreatedBy           string        `json:"created_by"`
	CreatedAt           time.Time     `json:"created_at"`
}
