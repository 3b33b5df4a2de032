package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"articles-backend/internal/domains/article/service"
	types "articles-backend/internal/shared"
)

// IndexArticleHandler xử lý search:index_article và search:delete_article.
// Cả hai đều đọc lại state từ Postgres nên chạy lại nhiều lần vẫn an toàn.
type IndexArticleHandler struct {
	articleService service.ServiceInterface
}

func NewIndexArticleHandler(articleService service.ServiceInterface) *IndexArticleHandler {
	return &IndexArticleHandler{articleService: articleService}
}

func (h *IndexArticleHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload types.ArticleIndexPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ArticleIndex payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	articleID, err := uuid.Parse(payload.ArticleID)
	if err != nil {
		return fmt.Errorf("invalid article id %q: %w", payload.ArticleID, asynq.SkipRetry)
	}

	log.Info().
		Str("type", task.Type()).
		Str("article_id", payload.ArticleID).
		Str("reason", payload.Reason).
		Time("queued_at", payload.QueuedAt).
		Msg("Processing search index task")

	switch task.Type() {
	case types.TypeDeleteArticle:
		err = h.articleService.RemoveFromIndex(ctx, articleID)
	default:
		err = h.articleService.SyncIndex(ctx, articleID)
	}
	if err != nil {
		log.Warn().Err(err).Str("article_id", payload.ArticleID).Msg("Search index task failed, will retry")
		return err
	}

	log.Info().Str("article_id", payload.ArticleID).Msg("Search index task completed")
	return nil
}
