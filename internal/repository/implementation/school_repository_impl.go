package implementation

import (
	"context"
	"errors"

	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/mapper"
	"growth-engine-be/internal/model"
	"growth-engine-be/internal/repository/contract"
	"growth-engine-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SchoolMapper
}

func NewSchoolRepository(db *gorm.DB) contract.SchoolRepository {
	return &SchoolRepositoryImpl{
		db:     db,
		mapper: mapper.NewSchoolMapper(),
	}
}

func (r *SchoolRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SchoolRepositoryImpl) Create(ctx context.Context, school *entity.School) error {
	modelSchool := r.mapper.ToModel(school)
	if err := r.db.WithContext(ctx).Create(modelSchool).Error; err != nil {
		return err
	}
	*school = *r.mapper.ToEntity(modelSchool)
	return nil
}

func (r *SchoolRepositoryImpl) Update(ctx context.Context, school *entity.School) error {
	modelSchool := r.mapper.ToModel(school)
	if err := r.db.WithContext(ctx).Save(modelSchool).Error; err != nil {
		return err
	}
	*school = *r.mapper.ToEntity(modelSchool)
	return nil
}

func (r *SchoolRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.School{}).Error
}

func (r *SchoolRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.School, error) {
	var modelSchool model.School
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelSchool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelSchool), nil
}

func (r *SchoolRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.School, error) {
	var modelSchools []*model.School
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelSchools).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelSchools), nil
}

func (r *SchoolRepositoryImpl) FindByCode(ctx context.Context, code string) (*entity.School, error) {
	var modelSchool model.School
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&modelSchool).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelSchool), nil
}
