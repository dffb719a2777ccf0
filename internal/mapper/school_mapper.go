package mapper

import (
	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/model"
)

type SchoolMapper struct{}

func NewSchoolMapper() *SchoolMapper {
	return &SchoolMapper{}
}

func (m *SchoolMapper) ToEntity(s *model.School) *entity.School {
	if s == nil {
		return nil
	}
	return &entity.School{
		Id:        s.Id,
		Code:      s.Code,
		Name:      s.Name,
		Address:   s.Address,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *SchoolMapper) ToModel(s *entity.School) *model.School {
	if s == nil {
		return nil
	}
	return &model.School{
		Id:        s.Id,
		Code:      s.Code,
		Name:      s.Name,
		Address:   s.Address,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *SchoolMapper) ToEntities(schools []*model.School) []*entity.School {
	entities := make([]*entity.School, len(schools))
	for i, s := range schools {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
