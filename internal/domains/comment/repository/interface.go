package repository

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/comment/model"
)

type CommentRepository interface {
	// Create: article_id không tồn tại => model.ErrArticleNotFound
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
