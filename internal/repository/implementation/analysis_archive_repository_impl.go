package implementation

import (
	"context"
	"errors"

	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/mapper"
	"growth-engine-be/internal/model"
	"growth-engine-be/internal/repository/contract"
	"growth-engine-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalysisArchiveRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnalysisMapper
}

func NewAnalysisArchiveRepository(db *gorm.DB) contract.AnalysisArchiveRepository {
	return &AnalysisArchiveRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnalysisMapper(),
	}
}

func (r *AnalysisArchiveRepositoryImpl) Create(ctx context.Context, archive *entity.AnalysisArchive) error {
	modelArchive, err := r.mapper.ToModel(archive)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(modelArchive).Error; err != nil {
		return err
	}
	*archive = *r.mapper.ToEntity(modelArchive)
	return nil
}

func (r *AnalysisArchiveRepositoryImpl) FindByStudent(ctx context.Context, studentId uuid.UUID) ([]*entity.AnalysisArchive, error) {
	var modelArchives []*model.AnalysisArchive
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentId).
		Scopes(scope.OrderByCreatedDesc).
		Find(&modelArchives).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(modelArchives), nil
}

func (r *AnalysisArchiveRepositoryImpl) FindByMemoryRef(ctx context.Context, memoryRefId string) (*entity.AnalysisArchive, error) {
	var modelArchive model.AnalysisArchive
	err := r.db.WithContext(ctx).
		Where("memory_ref_id = ?", memoryRefId).
		Scopes(scope.OrderByCreatedDesc).
		First(&modelArchive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelArchive), nil
}
