package service

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/comment/model"
)

type ServiceInterface interface {
	CreateComment(ctx context.Context, userID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error)
	GetComment(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	// UpdateComment/DeleteComment: chỉ người viết mới được sửa/xóa
	UpdateComment(ctx context.Context, id, userID uuid.UUID, req model.UpdateCommentRequest) (*model.Comment, error)
	DeleteComment(ctx context.Context, id, userID uuid.UUID) (*model.Comment, error)
}
