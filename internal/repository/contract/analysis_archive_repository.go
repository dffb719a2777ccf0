package contract

import (
	"context"

	"growth-engine-be/internal/entity"

	"github.com/google/uuid"
)

type AnalysisArchiveRepository interface {
	Create(ctx context.Context, archive *entity.AnalysisArchive) error
	FindByStudent(ctx context.Context, studentId uuid.UUID) ([]*entity.AnalysisArchive, error)
	FindByMemoryRef(ctx context.Context, memoryRefId string) (*entity.AnalysisArchive, error)
}
