package repository

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/tag/model"
)

type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) (*model.Tag, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	GetByName(ctx context.Context, name string) (*model.Tag, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Tag, error)
	List(ctx context.Context, name string, limit, offset int) ([]model.Tag, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
