package service

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/article/model"
	authorModel "articles-backend/internal/domains/author/model"
	tagModel "articles-backend/internal/domains/tag/model"
	"articles-backend/internal/infrastructure/search"
)

// ServiceInterface - mutation orchestrator + query composer cho articles
type ServiceInterface interface {
	CreateArticle(ctx context.Context, ownerID uuid.UUID, req model.CreateArticleRequest) (*model.Article, error)
	GetArticle(ctx context.Context, id uuid.UUID) (*model.Article, error)
	UpdateArticle(ctx context.Context, id, actorID uuid.UUID, req model.UpdateArticleRequest) (*model.Article, error)
	DeleteArticle(ctx context.Context, id, actorID uuid.UUID) (*model.Article, error)
	SearchArticles(ctx context.Context, req model.SearchArticlesRequest) (*model.SearchArticlesResponse, error)

	// Dùng bởi background jobs; lỗi được trả về để asynq retry
	SyncIndex(ctx context.Context, id uuid.UUID) error
	RemoveFromIndex(ctx context.Context, id uuid.UUID) error
	Reconcile(ctx context.Context, batchSize int, deleteOrphans bool) (*model.ReconcileResult, error)
}

// =====================================================
// DEPENDENCIES (consumer-side interfaces)
// =====================================================

// AuthorResolver - implemented by author service
type AuthorResolver interface {
	ResolveIDs(ctx context.Context, ids []uuid.UUID) ([]authorModel.Author, error)
}

// TagResolver - implemented by tag service
type TagResolver interface {
	ResolveIDs(ctx context.Context, ids []uuid.UUID) ([]tagModel.Tag, error)
}

// SearchIndex - implemented by *search.Index
type SearchIndex interface {
	IndexDocument(ctx context.Context, doc search.Document) error
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	DocumentExists(ctx context.Context, id uuid.UUID) (bool, error)
	Search(ctx context.Context, text string, fuzzy bool) ([]search.Hit, error)
	EnsureIndex(ctx context.Context) error
	ListDocumentIDs(ctx context.Context) ([]uuid.UUID, error)
}

// IndexRetryQueue - implemented by *queue.Publisher
type IndexRetryQueue interface {
	EnqueueIndex(ctx context.Context, articleID uuid.UUID, reason string) error
	EnqueueDelete(ctx context.Context, articleID uuid.UUID, reason string) error
}

// Options cho article service
type Options struct {
	// VerifyAfterIndex: đọc lại document sau khi index và log kết quả
	VerifyAfterIndex bool
	// ReconcileBatchSize mặc định khi payload không chỉ định
	ReconcileBatchSize int
}
