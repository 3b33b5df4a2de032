package model

import (
	"time"

	"github.com/google/uuid"
)

// Author không có owner => không đi qua ownership guard
type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
