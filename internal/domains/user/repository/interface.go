package repository

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/user/model"
)

// UserRepository định nghĩa data access cho user
type UserRepository interface {
	// Create insert user mới; username trùng => model.ErrUsernameTaken
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
