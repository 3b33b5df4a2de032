package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"articles-backend/internal/shared"
	"articles-backend/internal/shared/apperror"
)

const (
	searchMaxRetry    = 10
	searchTaskTimeout = 30 * time.Second
	// Cùng article trong cửa sổ này chỉ giữ 1 task pending
	searchDedupWindow = time.Minute
)

// ErrReconcileQueued: đã có reconcile đang chờ hoặc đang chạy
var ErrReconcileQueued = apperror.Conflict("QUE001", "search reconciliation already queued")

// Publisher enqueue background tasks cho API process
type Publisher struct {
	client *asynq.Client
}

func NewPublisher(client *asynq.Client) *Publisher {
	return &Publisher{client: client}
}

// ================================================
// SEARCH INDEX RETRY
// ================================================

// EnqueueIndex đẩy task re-index một article sau khi ghi index thất bại
func (p *Publisher) EnqueueIndex(ctx context.Context, articleID uuid.UUID, reason string) error {
	return p.enqueueArticle(ctx, shared.TypeIndexArticle, articleID, reason)
}

// EnqueueDelete đẩy task xóa document khỏi index
func (p *Publisher) EnqueueDelete(ctx context.Context, articleID uuid.UUID, reason string) error {
	return p.enqueueArticle(ctx, shared.TypeDeleteArticle, articleID, reason)
}

func (p *Publisher) enqueueArticle(ctx context.Context, taskType string, articleID uuid.UUID, reason string) error {
	payload, err := json.Marshal(shared.ArticleIndexPayload{
		ArticleID: articleID.String(),
		Reason:    reason,
		QueuedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(taskType, payload)
	info, err := p.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueSearch),
		asynq.MaxRetry(searchMaxRetry),
		asynq.Timeout(searchTaskTimeout),
		asynq.TaskID(fmt.Sprintf("%s:%s", taskType, articleID)),
		asynq.Retention(searchDedupWindow),
	)
	if err != nil {
		// Task cùng ID đang chờ => job sẽ đọc state mới nhất khi chạy
		if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
			log.Debug().Str("article_id", articleID.String()).Str("type", taskType).Msg("Index task already queued")
			return nil
		}
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	log.Info().
		Str("task_id", info.ID).
		Str("type", taskType).
		Str("article_id", articleID.String()).
		Str("reason", reason).
		Msg("Search index task enqueued")
	return nil
}

// EnqueueReconcile trigger full reconciliation ngoài lịch (admin endpoint)
func (p *Publisher) EnqueueReconcile(ctx context.Context, payload shared.ReconcilePayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	info, err := p.client.EnqueueContext(ctx, asynq.NewTask(shared.TypeReconcileIndex, data),
		asynq.Queue(shared.QueueSearch),
		asynq.MaxRetry(2),
		asynq.Timeout(30*time.Minute),
		// Không chạy 2 reconcile cùng lúc
		asynq.Unique(30*time.Minute),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return "", ErrReconcileQueued
		}
		return "", fmt.Errorf("enqueue reconcile: %w", err)
	}
	return info.ID, nil
}

// ================================================
// AUTH
// ================================================

// ReportFailedLogin đẩy task đếm số lần login sai
func (p *Publisher) ReportFailedLogin(ctx context.Context, payload shared.FailedLoginPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = p.client.EnqueueContext(ctx, asynq.NewTask(shared.TypeProcessFailedLog, data),
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue failed login: %w", err)
	}
	return nil
}
