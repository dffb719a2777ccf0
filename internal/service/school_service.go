package service

import (
	"context"
	"strings"
	"time"

	"growth-engine-be/internal/dto"
	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/pkg/serverutils"
	"growth-engine-be/internal/repository/specification"
	"growth-engine-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISchoolService interface {
	CreateSchool(ctx context.Context, req *dto.CreateSchoolRequest) (*dto.SchoolResponse, error)
	GetSchool(ctx context.Context, id uuid.UUID) (*dto.SchoolResponse, error)
	GetSchools(ctx context.Context) ([]*dto.SchoolResponse, error)
	UpdateSchool(ctx context.Context, id uuid.UUID, req *dto.UpdateSchoolRequest) (*dto.SchoolResponse, error)
	DeleteSchool(ctx context.Context, id uuid.UUID) error
}

type schoolService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSchoolService(uowFactory unitofwork.RepositoryFactory) ISchoolService {
	return &schoolService{uowFactory: uowFactory}
}

func (s *schoolService) CreateSchool(ctx context.Context, req *dto.CreateSchoolRequest) (*dto.SchoolResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.SchoolRepository()

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	existing, err := repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewBadRequest("School code is already taken")
	}

	school := &entity.School{
		Id:        uuid.New(),
		Code:      code,
		Name:      req.Name,
		Address:   req.Address,
		Email:     req.Email,
		CreatedAt: time.Now(),
	}

	if err := repo.Create(ctx, school); err != nil {
		return nil, err
	}
	return toSchoolResponse(school), nil
}

func (s *schoolService) GetSchool(ctx context.Context, id uuid.UUID) (*dto.SchoolResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	school, err := uow.SchoolRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, serverutils.NewNotFound("School not found")
	}
	return toSchoolResponse(school), nil
}

func (s *schoolService) GetSchools(ctx context.Context) ([]*dto.SchoolResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	schools, err := uow.SchoolRepository().FindAll(ctx, specification.OrderBy{Field: "name", Desc: false})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SchoolResponse, len(schools))
	for i, school := range schools {
		res[i] = toSchoolResponse(school)
	}
	return res, nil
}

func (s *schoolService) UpdateSchool(ctx context.Context, id uuid.UUID, req *dto.UpdateSchoolRequest) (*dto.SchoolResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.SchoolRepository()

	school, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, serverutils.NewNotFound("School not found")
	}

	if req.Name != "" {
		school.Name = req.Name
	}
	if req.Address != "" {
		school.Address = req.Address
	}
	if req.Email != "" {
		school.Email = req.Email
	}
	school.UpdatedAt = time.Now()

	if err := repo.Update(ctx, school); err != nil {
		return nil, err
	}
	return toSchoolResponse(school), nil
}

func (s *schoolService) DeleteSchool(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.SchoolRepository()

	school, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if school == nil {
		return serverutils.NewNotFound("School not found")
	}

	// Refuse to orphan enrolled students.
	count, err := uow.StudentRepository().Count(ctx, specification.BySchool{SchoolID: id})
	if err != nil {
		return err
	}
	if count > 0 {
		return serverutils.NewBadRequest("School still has students enrolled")
	}

	return repo.Delete(ctx, id)
}

func toSchoolResponse(school *entity.School) *dto.SchoolResponse {
	return &dto.SchoolResponse{
		Id:        school.Id,
		Code:      school.Code,
		Name:      school.Name,
		Address:   school.Address,
		Email:     school.Email,
		CreatedAt: school.CreatedAt,
	}
}
