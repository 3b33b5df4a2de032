package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"articles-backend/internal/domains/article/model"
	"articles-backend/internal/infrastructure/search"
	"articles-backend/internal/shared/metrics"
)

// Metric labels cho articles_search_sync_failures_total
const (
	syncOpIndex  = "index"
	syncOpDelete = "delete"
)

func toDocument(a *model.Article) search.Document {
	return search.Document{
		ID:              a.ID,
		Title:           a.Title,
		Abstract:        a.Abstract,
		PublicationDate: a.PublicationDate,
		OwnerID:         a.Owner,
	}
}

// ================================================
// BEST-EFFORT WRITE PATH (sau khi Postgres commit)
// ================================================

// indexAfterCommit: lỗi index không làm fail request. Relational change đã commit,
// divergence được ghi metric + enqueue retry, reconcile là lưới an toàn cuối.
func (s *articleService) indexAfterCommit(ctx context.Context, article *model.Article, reason string) {
	// Client ngắt kết nối sau commit vẫn phải index
	ctx = context.WithoutCancel(ctx)

	if err := s.index.IndexDocument(ctx, toDocument(article)); err != nil {
		metrics.SearchSyncFailed(syncOpIndex)
		log.Error().
			Err(err).
			Str("article_id", article.ID.String()).
			Str("reason", reason).
			Msg("Search index write failed, article committed")

		if s.retry != nil {
			if qerr := s.retry.EnqueueIndex(ctx, article.ID, reason); qerr != nil {
				log.Error().Err(qerr).Str("article_id", article.ID.String()).Msg("Failed to enqueue index retry")
			}
		}
		return
	}

	if s.opts.VerifyAfterIndex {
		s.verifyIndexed(ctx, article.ID)
	}
}

func (s *articleService) verifyIndexed(ctx context.Context, id uuid.UUID) {
	exists, err := s.index.DocumentExists(ctx, id)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("article_id", id.String()).Msg("Index verification failed")
	case !exists:
		log.Warn().Str("article_id", id.String()).Msg("Article missing from index after write")
	default:
		log.Debug().Str("article_id", id.String()).Msg("Article present in index")
	}
}

func (s *articleService) deleteAfterCommit(ctx context.Context, id uuid.UUID) {
	ctx = context.WithoutCancel(ctx)

	if err := s.index.DeleteDocument(ctx, id); err != nil {
		metrics.SearchSyncFailed(syncOpDelete)
		log.Error().
			Err(err).
			Str("article_id", id.String()).
			Msg("Search index delete failed, article already removed")

		if s.retry != nil {
			if qerr := s.retry.EnqueueDelete(ctx, id, model.SyncReasonDelete); qerr != nil {
				log.Error().Err(qerr).Str("article_id", id.String()).Msg("Failed to enqueue delete retry")
			}
		}
	}
}

// ================================================
// RETRY JOBS (idempotent: luôn đọc lại state từ Postgres)
// ================================================

// SyncIndex đưa document về đúng state hiện tại của article
func (s *articleService) SyncIndex(ctx context.Context, id uuid.UUID) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrArticleNotFound) {
			// Article đã bị xóa trong lúc chờ retry
			return s.index.DeleteDocument(ctx, id)
		}
		return err
	}
	return s.index.IndexDocument(ctx, toDocument(article))
}

// RemoveFromIndex chỉ xóa document khi article thực sự không còn
func (s *articleService) RemoveFromIndex(ctx context.Context, id uuid.UUID) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	switch {
	case err == nil:
		log.Warn().Str("article_id", id.String()).Msg("Article still exists, re-indexing instead of delete")
		return s.index.IndexDocument(ctx, toDocument(article))
	case !errors.Is(err, model.ErrArticleNotFound):
		return err
	}
	return s.index.DeleteDocument(ctx, id)
}

// ================================================
// RECONCILIATION
// ================================================

// Reconcile re-index toàn bộ articles theo batch (keyset theo id),
// sau đó xóa document không còn row tương ứng
func (s *articleService) Reconcile(ctx context.Context, batchSize int, deleteOrphans bool) (*model.ReconcileResult, error) {
	if batchSize <= 0 {
		batchSize = s.opts.ReconcileBatchSize
	}

	// Step 1: Index phải tồn tại (Redis có thể đã bị flush)
	if err := s.index.EnsureIndex(ctx); err != nil {
		return nil, err
	}

	result := &model.ReconcileResult{}

	// Step 2: Re-index theo batch
	after := uuid.Nil
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		batch, err := s.articleRepo.ListAfter(ctx, after, batchSize)
		if err != nil {
			return result, err
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			if err := s.index.IndexDocument(ctx, toDocument(&batch[i])); err != nil {
				result.IndexFailures++
				log.Error().Err(err).Str("article_id", batch[i].ID.String()).Msg("Reconcile: index failed")
				continue
			}
			result.Indexed++
		}

		after = batch[len(batch)-1].ID
		if len(batch) < batchSize {
			break
		}
	}

	// Step 3: Orphan cleanup
	if deleteOrphans {
		removed, err := s.removeOrphans(ctx, batchSize)
		result.OrphansRemoved = removed
		if err != nil {
			return result, err
		}
	}

	log.Info().
		Int("indexed", result.Indexed).
		Int("index_failures", result.IndexFailures).
		Int("orphans_removed", result.OrphansRemoved).
		Msg("Search index reconciled")

	return result, nil
}

func (s *articleService) removeOrphans(ctx context.Context, batchSize int) (int, error) {
	docIDs, err := s.index.ListDocumentIDs(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for start := 0; start < len(docIDs); start += batchSize {
		end := start + batchSize
		if end > len(docIDs) {
			end = len(docIDs)
		}
		chunk := docIDs[start:end]

		existing, err := s.articleRepo.ExistingIDs(ctx, chunk)
		if err != nil {
			return removed, err
		}
		for _, id := range chunk {
			if _, ok := existing[id]; ok {
				continue
			}
			if err := s.index.DeleteDocument(ctx, id); err != nil {
				log.Error().Err(err).Str("article_id", id.String()).Msg("Reconcile: orphan delete failed")
				continue
			}
			removed++
		}
	}
	return removed, nil
}
