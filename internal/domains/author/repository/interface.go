package repository

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/author/model"
)

type AuthorRepository interface {
	Create(ctx context.Context, author *model.Author) (*model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	GetByName(ctx context.Context, name string) (*model.Author, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Author, error)
	List(ctx context.Context, name string, limit, offset int) ([]model.Author, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
