package service

import (
	"context"
	"time"

	"growth-engine-be/internal/dto"
	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/pkg/serverutils"
	"growth-engine-be/internal/repository/specification"
	"growth-engine-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IStudentService interface {
	CreateStudent(ctx context.Context, schoolId uuid.UUID, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudent(ctx context.Context, schoolId, id uuid.UUID) (*dto.StudentResponse, error)
	GetStudents(ctx context.Context, schoolId uuid.UUID, className, gradeLevel string) ([]*dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, schoolId, id uuid.UUID, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, schoolId, id uuid.UUID) error
}

// All student operations are scoped to the caller's school; a teacher from
// one school can never read or touch another school's roster.
type studentService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewStudentService(uowFactory unitofwork.RepositoryFactory) IStudentService {
	return &studentService{uowFactory: uowFactory}
}

func (s *studentService) CreateStudent(ctx context.Context, schoolId uuid.UUID, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	school, err := uow.SchoolRepository().FindOne(ctx, specification.ByID{ID: schoolId})
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, serverutils.NewNotFound("School not found")
	}

	student := &entity.Student{
		Id:         uuid.New(),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		ExternalId: req.ExternalId,
		GradeLevel: req.GradeLevel,
		ClassName:  req.ClassName,
		SchoolId:   schoolId,
		CreatedAt:  time.Now(),
	}

	if err := uow.StudentRepository().Create(ctx, student); err != nil {
		return nil, err
	}
	return toStudentResponse(student), nil
}

func (s *studentService) GetStudent(ctx context.Context, schoolId, id uuid.UUID) (*dto.StudentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	student, err := uow.StudentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.BySchool{SchoolID: schoolId},
	)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, serverutils.NewNotFound("Student not found")
	}
	return toStudentResponse(student), nil
}

func (s *studentService) GetStudents(ctx context.Context, schoolId uuid.UUID, className, gradeLevel string) ([]*dto.StudentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.BySchool{SchoolID: schoolId},
		specification.OrderBy{Field: "last_name", Desc: false},
	}
	if className != "" {
		specs = append(specs, specification.ByClassName{ClassName: className})
	}
	if gradeLevel != "" {
		specs = append(specs, specification.ByGradeLevel{GradeLevel: gradeLevel})
	}

	students, err := uow.StudentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.StudentResponse, len(students))
	for i, student := range students {
		res[i] = toStudentResponse(student)
	}
	return res, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, schoolId, id uuid.UUID, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.StudentRepository()

	student, err := repo.FindOne(ctx,
		specification.ByID{ID: id},
		specification.BySchool{SchoolID: schoolId},
	)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, serverutils.NewNotFound("Student not found")
	}

	if req.FirstName != "" {
		student.FirstName = req.FirstName
	}
	if req.LastName != "" {
		student.LastName = req.LastName
	}
	if req.ExternalId != "" {
		student.ExternalId = req.ExternalId
	}
	if req.GradeLevel != "" {
		student.GradeLevel = req.GradeLevel
	}
	if req.ClassName != "" {
		student.ClassName = req.ClassName
	}
	student.UpdatedAt = time.Now()

	if err := repo.Update(ctx, student); err != nil {
		return nil, err
	}
	return toStudentResponse(student), nil
}

func (s *studentService) DeleteStudent(ctx context.Context, schoolId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.StudentRepository()

	student, err := repo.FindOne(ctx,
		specification.ByID{ID: id},
		specification.BySchool{SchoolID: schoolId},
	)
	if err != nil {
		return err
	}
	if student == nil {
		return serverutils.NewNotFound("Student not found")
	}

	return repo.Delete(ctx, id)
}

func toStudentResponse(student *entity.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		Id:         student.Id,
		FirstName:  student.FirstName,
		LastName:   student.LastName,
		Name:       student.FullName(),
		ExternalId: student.ExternalId,
		GradeLevel: student.GradeLevel,
		ClassName:  student.ClassName,
		SchoolId:   student.SchoolId,
		CreatedAt:  student.CreatedAt,
	}
}
