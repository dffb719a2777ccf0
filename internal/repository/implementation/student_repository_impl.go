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

type StudentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StudentMapper
}

func NewStudentRepository(db *gorm.DB) contract.StudentRepository {
	return &StudentRepositoryImpl{
		db:     db,
		mapper: mapper.NewStudentMapper(),
	}
}

func (r *StudentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *StudentRepositoryImpl) Create(ctx context.Context, student *entity.Student) error {
	modelStudent := r.mapper.ToModel(student)
	if err := r.db.WithContext(ctx).Create(modelStudent).Error; err != nil {
		return err
	}
	*student = *r.mapper.ToEntity(modelStudent)
	return nil
}

func (r *StudentRepositoryImpl) Update(ctx context.Context, student *entity.Student) error {
	modelStudent := r.mapper.ToModel(student)
	if err := r.db.WithContext(ctx).Save(modelStudent).Error; err != nil {
		return err
	}
	*student = *r.mapper.ToEntity(modelStudent)
	return nil
}

func (r *StudentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Student{}).Error
}

func (r *StudentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Student, error) {
	var modelStudent model.Student
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelStudent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelStudent), nil
}

func (r *StudentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Student, error) {
	var modelStudents []*model.Student
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelStudents).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelStudents), nil
}

func (r *StudentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Student{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
