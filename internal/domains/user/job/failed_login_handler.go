package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"articles-backend/internal/domains/user/service"
	types "articles-backend/internal/shared"
)

// FailedLoginHandler xử lý task auth:process_failed_login
type FailedLoginHandler struct {
	lockout *service.LoginLockout
}

func NewFailedLoginHandler(lockout *service.LoginLockout) *FailedLoginHandler {
	return &FailedLoginHandler{lockout: lockout}
}

func (h *FailedLoginHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload types.FailedLoginPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal FailedLogin payload")
		// Payload hỏng thì retry cũng vô ích
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("username", payload.Username).
		Str("ip_address", payload.IPAddress).
		Msg("Processing failed login attempt")

	attempts, locked, err := h.lockout.RecordFailure(ctx, payload.Username)
	if err != nil {
		return err
	}

	log.Info().
		Str("username", payload.Username).
		Int64("attempts", attempts).
		Bool("locked", locked).
		Msg("Failed login attempts counted")

	return nil
}
