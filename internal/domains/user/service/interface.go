package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"articles-backend/internal/domains/user/model"
	"articles-backend/internal/shared"
)

// ServiceInterface định nghĩa business logic cho user/auth
type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error)
}

// TokenIssuer - implemented by *jwt.Manager
type TokenIssuer interface {
	GenerateAccessToken(userID, username string) (string, time.Time, error)
}

// FailedLoginReporter đẩy failed login sang worker (asynq)
type FailedLoginReporter interface {
	ReportFailedLogin(ctx context.Context, payload shared.FailedLoginPayload) error
}
