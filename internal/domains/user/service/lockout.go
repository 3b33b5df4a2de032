package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"articles-backend/internal/domains/user/model"
	"articles-backend/pkg/cache"
)

// LoginLockout đếm số lần login sai theo username trong Redis
// Window 15 phút tính từ lần sai đầu tiên; đủ MaxFailedAttempts => lock LockoutDuration
type LoginLockout struct {
	cache cache.Cache
}

func NewLoginLockout(c cache.Cache) *LoginLockout {
	return &LoginLockout{cache: c}
}

// IsLocked: lỗi cache => coi như không lock (login vẫn hoạt động khi Redis down)
func (l *LoginLockout) IsLocked(ctx context.Context, username string) bool {
	ttl, err := l.cache.TTL(ctx, model.AccountLockKey(username))
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Failed to check account lock")
		return false
	}
	return ttl > 0
}

// RecordFailure tăng counter, trả về số lần sai hiện tại và account có vừa bị lock không
func (l *LoginLockout) RecordFailure(ctx context.Context, username string) (int64, bool, error) {
	if l.IsLocked(ctx, username) {
		return 0, true, nil
	}

	attemptKey := model.FailedLoginKey(username)
	attempts, err := l.cache.Increment(ctx, attemptKey)
	if err != nil {
		return 0, false, fmt.Errorf("increment counter: %w", err)
	}

	// Set expiry on first attempt
	if attempts == 1 {
		if err := l.cache.Expire(ctx, attemptKey, model.AttemptWindow); err != nil {
			log.Error().Err(err).Str("key", attemptKey).Msg("Failed to set expiry")
		}
	}

	if attempts < model.MaxFailedAttempts {
		return attempts, false, nil
	}

	if err := l.cache.Set(ctx, model.AccountLockKey(username), "1", model.LockoutDuration); err != nil {
		return attempts, false, fmt.Errorf("lock account: %w", err)
	}
	_ = l.cache.Delete(ctx, attemptKey)

	log.Warn().
		Str("username", username).
		Dur("duration", model.LockoutDuration).
		Msg("Account locked")

	return attempts, true, nil
}

// Reset xóa counter sau khi login thành công
func (l *LoginLockout) Reset(ctx context.Context, username string) {
	_ = l.cache.Delete(ctx, model.FailedLoginKey(username))
}
