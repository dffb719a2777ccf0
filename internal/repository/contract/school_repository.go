package contract

import (
	"context"

	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SchoolRepository interface {
	Create(ctx context.Context, school *entity.School) error
	Update(ctx context.Context, school *entity.School) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.School, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.School, error)
	FindByCode(ctx context.Context, code string) (*entity.School, error)
}
