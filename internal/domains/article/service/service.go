package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"articles-backend/internal/domains/article/model"
	"articles-backend/internal/domains/article/repository"
	"articles-backend/internal/shared/ownership"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type articleService struct {
	articleRepo repository.ArticleRepository
	authors     AuthorResolver
	tags        TagResolver
	index       SearchIndex
	retry       IndexRetryQueue // nil => chỉ log + metric, dựa vào reconcile
	opts        Options
}

func NewArticleService(
	articleRepo repository.ArticleRepository,
	authors AuthorResolver,
	tags TagResolver,
	index SearchIndex,
	retry IndexRetryQueue,
	opts Options,
) ServiceInterface {
	if opts.ReconcileBatchSize <= 0 {
		opts.ReconcileBatchSize = 200
	}
	return &articleService{
		articleRepo: articleRepo,
		authors:     authors,
		tags:        tags,
		index:       index,
		retry:       retry,
		opts:        opts,
	}
}

// =====================================================
// CREATE ARTICLE
// =====================================================

func (s *articleService) CreateArticle(
	ctx context.Context,
	ownerID uuid.UUID,
	req model.CreateArticleRequest,
) (*model.Article, error) {
	// Step 1: Validate request
	req.Title = strings.TrimSpace(req.Title)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Resolve references (thiếu bất kỳ id nào => NotFound, chưa ghi gì)
	if err := s.resolveReferences(ctx, &req.AuthorIDs, &req.TagIDs); err != nil {
		return nil, err
	}

	// Step 3: Article row + join tables trong 1 transaction
	article, err := s.articleRepo.Create(ctx, &model.Article{
		ID:              uuid.New(),
		Title:           req.Title,
		Abstract:        req.Abstract,
		PublicationDate: req.PublicationDate.UTC(),
		Owner:           ownerID,
	}, req.AuthorIDs, req.TagIDs)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("article_id", article.ID.String()).
		Str("owner_id", ownerID.String()).
		Int("authors", len(article.Authors)).
		Int("tags", len(article.Tags)).
		Msg("Article created")

	// Step 4: Project vào search index (best-effort, sau commit)
	s.indexAfterCommit(ctx, article, model.SyncReasonCreate)

	return article, nil
}

// =====================================================
// GET ARTICLE
// =====================================================

func (s *articleService) GetArticle(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	return s.articleRepo.GetByID(ctx, id)
}

// =====================================================
// UPDATE ARTICLE
// =====================================================

func (s *articleService) UpdateArticle(
	ctx context.Context,
	id, actorID uuid.UUID,
	req model.UpdateArticleRequest,
) (*model.Article, error) {
	// Step 1: Validate
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Fetch (NotFound trước Forbidden)
	existing, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Step 3: Ownership guard
	if err := ownership.Check(existing, actorID); err != nil {
		log.Warn().
			Str("article_id", id.String()).
			Str("actor_id", actorID.String()).
			Msg("Update rejected: not owner")
		return nil, err
	}

	// Step 4: Resolve references chỉ khi client gửi author_ids / tag_ids
	if err := s.resolveReferences(ctx, req.AuthorIDs, req.TagIDs); err != nil {
		return nil, err
	}

	patch := req.ToPatch()
	if patch.PublicationDate != nil {
		utc := patch.PublicationDate.UTC()
		patch.PublicationDate = &utc
	}

	// Step 5: Persist
	updated, err := s.articleRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	// Step 6: Re-index để projection theo kịp title/abstract mới
	s.indexAfterCommit(ctx, updated, model.SyncReasonUpdate)

	return updated, nil
}

// =====================================================
// DELETE ARTICLE
// =====================================================

// DeleteArticle xóa relational row trước, rồi mới xóa document; trả về state cuối
func (s *articleService) DeleteArticle(ctx context.Context, id, actorID uuid.UUID) (*model.Article, error) {
	// Step 1: Fetch
	existing, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Step 2: Ownership guard
	if err := ownership.Check(existing, actorID); err != nil {
		log.Warn().
			Str("article_id", id.String()).
			Str("actor_id", actorID.String()).
			Msg("Delete rejected: not owner")
		return nil, err
	}

	// Step 3: Relational delete (cascade comments + join rows)
	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	log.Info().Str("article_id", id.String()).Msg("Article deleted")

	// Step 4: Index delete (best-effort)
	s.deleteAfterCommit(ctx, id)

	return existing, nil
}

// =====================================================
// HELPERS
// =====================================================

// resolveReferences: authors trước, tags sau; nil pointer => bỏ qua.
// Thay slice bằng bản đã bỏ trùng.
func (s *articleService) resolveReferences(ctx context.Context, authorIDs, tagIDs *[]uuid.UUID) error {
	if authorIDs != nil {
		authors, err := s.authors.ResolveIDs(ctx, *authorIDs)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, len(authors))
		for i, a := range authors {
			ids[i] = a.ID
		}
		*authorIDs = ids
	}

	if tagIDs != nil {
		tags, err := s.tags.ResolveIDs(ctx, *tagIDs)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, len(tags))
		for i, t := range tags {
			ids[i] = t.ID
		}
		*tagIDs = ids
	}

	return nil
}
