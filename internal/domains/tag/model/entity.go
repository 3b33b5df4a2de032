package model

import (
	"time"

	"github.com/google/uuid"
)

// Tag: nhãn phân loại article, name unique
type Tag struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
