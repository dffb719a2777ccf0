package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/repository/specification"
	"growth-engine-be/internal/repository/unitofwork"
	"growth-engine-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.StudentRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Student Repository", func(t *testing.T) {
		count, err := uow.StudentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Student count: %d", count)
	})

	t.Run("Check Transactional Student Archive", func(t *testing.T) {
		ctx := context.Background()

		// School and Student are created outside the transaction so the
		// archive row below has valid FK targets.
		school := &entity.School{
			Id:   uuid.New(),
			Code: "IT-" + uuid.New().String()[:8],
			Name: "Integration Test School",
		}
		err := uow.SchoolRepository().Create(ctx, school)
		assert.NoError(t, err)

		studentId := uuid.New()
		student := &entity.Student{
			Id:         studentId,
			FirstName:  "Integration",
			LastName:   "Student",
			GradeLevel: "10",
			ClassName:  "Test Class",
			SchoolId:   school.Id,
		}
		err = uow.StudentRepository().Create(ctx, student)
		assert.NoError(t, err)

		teacher := &entity.User{
			Id:           uuid.New(),
			Email:        "test-integration-" + uuid.New().String() + "@example.com",
			FirstName:    "Integration",
			LastName:     "Teacher",
			Role:         entity.UserRoleTeacher,
			AuthProvider: entity.AuthProviderEmail,
			SchoolId:     &school.Id,
			IsActive:     true,
		}
		err = uow.UserRepository().Create(ctx, teacher)
		assert.NoError(t, err)

		// Transaction Test
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		archive := &entity.AnalysisArchive{
			Id:          uuid.New(),
			StudentId:   studentId,
			Analysis:    "Transactional archive content",
			MemoryRefId: "it-" + uuid.New().String(),
			CreatedBy:   teacher.Id,
		}
		err = uow.AnalysisArchiveRepository().Create(ctx, archive)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		found, err := uow.AnalysisArchiveRepository().FindByMemoryRef(ctx, archive.MemoryRefId)
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, studentId, found.StudentId)
		}

		students, err := uow.StudentRepository().FindAll(ctx, specification.BySchool{SchoolID: school.Id})
		assert.NoError(t, err)
		assert.NotEmpty(t, students)

		t.Log("Successfully archived an analysis inside a transaction")
	})
}
