package service

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/author/model"
)

type ServiceInterface interface {
	// Create idempotent theo name: tên đã tồn tại => trả về author cũ
	Create(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	List(ctx context.Context, req model.ListAuthorsRequest) (*model.ListAuthorsResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ResolveIDs load đủ các author theo ids, thiếu bất kỳ id nào => NotFound
	ResolveIDs(ctx context.Context, ids []uuid.UUID) ([]model.Author, error)
}
