package repository

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/article/model"
)

// ArticleRepository - relational store adapter cho articles + join tables
type ArticleRepository interface {
	// Create ghi article + article_authors + article_tags trong 1 transaction,
	// trả về article đã load authors/tags
	Create(ctx context.Context, article *model.Article, authorIDs, tagIDs []uuid.UUID) (*model.Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
	Update(ctx context.Context, id uuid.UUID, patch model.ArticlePatch) (*model.Article, error)
	// Delete cascade comments + join rows
	Delete(ctx context.Context, id uuid.UUID) error

	// Search: count trước pagination, order publication_date DESC, id ASC
	Search(ctx context.Context, filter model.ArticleFilter, limit, offset int) ([]model.Article, int, error)

	// Reconciliation
	ListAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]model.Article, error)
	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]struct{}, error)
}
