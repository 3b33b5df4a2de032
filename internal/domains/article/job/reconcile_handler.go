package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"articles-backend/internal/domains/article/service"
	types "articles-backend/internal/shared"
)

// ReconcileHandler xử lý search:reconcile (scheduler hoặc admin trigger)
type ReconcileHandler struct {
	articleService service.ServiceInterface
}

func NewReconcileHandler(articleService service.ServiceInterface) *ReconcileHandler {
	return &ReconcileHandler{articleService: articleService}
}

func (h *ReconcileHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload types.ReconcilePayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}

	start := time.Now()
	log.Info().
		Str("triggered_by", payload.TriggeredBy).
		Int("batch_size", payload.BatchSize).
		Bool("delete_orphans", payload.DeleteOrphans).
		Msg("Starting search index reconciliation")

	result, err := h.articleService.Reconcile(ctx, payload.BatchSize, payload.DeleteOrphans)
	if err != nil {
		log.Error().Err(err).Msg("Search index reconciliation failed")
		return err
	}

	log.Info().
		Int("indexed", result.Indexed).
		Int("index_failures", result.IndexFailures).
		Int("orphans_removed", result.OrphansRemoved).
		Dur("duration", time.Since(start)).
		Msg("Search index reconciliation completed")

	return nil
}
