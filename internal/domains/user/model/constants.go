package model

import (
	"fmt"
	"time"
)

// Failed login policy
const (
	MaxFailedAttempts = 5
	LockoutDuration   = 15 * time.Minute
	AttemptWindow     = 15 * time.Minute

	BcryptCost = 12
)

func FailedLoginKey(username string) string {
	return fmt.Sprintf("failed_login:%s", username)
}

func AccountLockKey(username string) string {
	return fmt.Sprintf("account_locked:%s", username)
}
