package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment thuộc đúng 1 Article và 1 User (cả hai cascade delete)
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ArticleID uuid.UUID `json:"article_id" db:"article_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OwnerID - người viết comment là owner
func (c *Comment) OwnerID() uuid.UUID {
	return c.UserID
}
