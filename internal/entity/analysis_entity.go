package entity

import (
	"time"

	"github.com/google/uuid"

	"growth-engine-be/pkg/llm"
)

// AnalysisArchive is the durable copy of a completed analysis. The live
// store keeps its own integer ids; MemoryRefId preserves that id so clients
// can correlate the two.
type AnalysisArchive struct {
	Id                  uuid.UUID
	MemoryRefId         string
	StudentId           uuid.UUID
	Analysis            string
	ConversationHistory []llm.Message
	CreatedBy           uuid.UUID
	CreatedAt           time.Time
}
