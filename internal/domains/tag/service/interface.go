package service

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/tag/model"
)

type ServiceInterface interface {
	// Create idempotent theo name: tên đã tồn tại => trả về tag cũ
	Create(ctx context.Context, req model.CreateTagRequest) (*model.Tag, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	List(ctx context.Context, req model.ListTagsRequest) (*model.ListTagsResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ResolveIDs load đủ các tag theo ids, thiếu bất kỳ id nào => NotFound
	ResolveIDs(ctx context.Context, ids []uuid.UUID) ([]model.Tag, error)
}
