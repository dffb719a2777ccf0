package mapper

import (
	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/model"
)

type StudentMapper struct{}

func NewStudentMapper() *StudentMapper {
	return &StudentMapper{}
}

func (m *StudentMapper) ToEntity(s *model.Student) *entity.Student {
	if s == nil {
		return nil
	}
	return &entity.Student{
		Id:         s.Id,
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		ExternalId: s.ExternalId,
		GradeLevel: s.GradeLevel,
		ClassName:  s.ClassName,
		SchoolId:   s.SchoolId,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (m *StudentMapper) ToModel(s *entity.Student) *model.Student {
	if s == nil {
		return nil
	}
	return &model.Student{
		Id:         s.Id,
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		ExternalId: s.ExternalId,
		GradeLevel: s.GradeLevel,
		ClassName:  s.ClassName,
		SchoolId:   s.SchoolId,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (m *StudentMapper) ToEntities(students []*model.Student) []*entity.Student {
	entities := make([]*entity.Student, len(students))
	for i, s := range students {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
