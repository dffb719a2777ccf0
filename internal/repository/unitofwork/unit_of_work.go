package unitofwork

import (
	"context"

	"growth-engine-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SchoolRepository() contract.SchoolRepository
	StudentRepository() contract.StudentRepository
	AnalysisArchiveRepository() contract.AnalysisArchiveRepository
}
