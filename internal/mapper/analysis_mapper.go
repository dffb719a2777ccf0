package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/model"
	"growth-engine-be/pkg/llm"
)

type AnalysisMapper struct{}

func NewAnalysisMapper() *AnalysisMapper {
	return &AnalysisMapper{}
}

func (m *AnalysisMapper) ToEntity(a *model.AnalysisArchive) *entity.AnalysisArchive {
	if a == nil {
		return nil
	}

	var history []llm.Message
	if len(a.ConversationHistory) > 0 {
		// A malformed history column should not block reads of the report.
		_ = json.Unmarshal(a.ConversationHistory, &history)
	}

	return &entity.AnalysisArchive{
		Id:                  a.Id,
		MemoryRefId:         a.MemoryRefId,
		StudentId:           a.StudentId,
		Analysis:            a.Analysis,
		ConversationHistory: history,
		CreatedBy:           a.CreatedBy,
		CreatedAt:           a.CreatedAt,
	}
}

func (m *AnalysisMapper) ToModel(a *entity.AnalysisArchive) (*model.AnalysisArchive, error) {
	if a == nil {
		return nil, nil
	}

	var history datatypes.JSON
	if len(a.ConversationHistory) > 0 {
		raw, err := json.Marshal(a.ConversationHistory)
		if err != nil {
			return nil, err
		}
		history = datatypes.JSON(raw)
	}

	return &model.AnalysisArchive{
		Id:                  a.Id,
		MemoryRefId:         a.MemoryRefId,
		StudentId:           a.StudentId,
		Analysis:            a.Analysis,
		ConversationHistory: history,
		CreatedBy:           a.CreatedBy,
		CreatedAt:           a.CreatedAt,
	}, nil
}

func (m *AnalysisMapper) ToEntities(archives []*model.AnalysisArchive) []*entity.AnalysisArchive {
	entities := make([]*entity.AnalysisArchive, len(archives))
	for i, a := range archives {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
