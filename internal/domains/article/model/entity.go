package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// ARTICLE ENTITY
// =====================================================

// Article là system of record trong Postgres; search index chỉ giữ projection
type Article struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Abstract        string    `json:"abstract" db:"abstract"`
	PublicationDate time.Time `json:"publication_date" db:"publication_date"`
	Owner           uuid.UUID `json:"owner_id" db:"owner_id"` // immutable sau khi tạo
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	// Eager-loaded associations
	Authors []AuthorRef `json:"authors" db:"-"`
	Tags    []TagRef    `json:"tags" db:"-"`
}

// OwnerID implements ownership.Owned
func (a *Article) OwnerID() uuid.UUID {
	return a.Owner
}

// AuthorRef - author gắn với article
type AuthorRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TagRef - tag gắn với article
type TagRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ArticlePatch: field nil => giữ nguyên.
// AuthorIDs/TagIDs != nil => thay toàn bộ association (kể cả slice rỗng)
type ArticlePatch struct {
	Title           *string
	Abstract        *string
	PublicationDate *time.Time
	AuthorIDs       *[]uuid.UUID
	TagIDs          *[]uuid.UUID
}

// HasColumns: patch có đổi cột của bảng articles không
func (p ArticlePatch) HasColumns() bool {
	return p.Title != nil || p.Abstract != nil || p.PublicationDate != nil
}

// ArticleFilter cho query composer
type ArticleFilter struct {
	Title  string // ILIKE substring
	Year   *int   // EXTRACT(YEAR FROM publication_date)
	Author string // ILIKE substring trên tên author

	// CandidateIDs != nil => id phải thuộc tập này (kể cả khi rỗng)
	CandidateIDs []uuid.UUID
}
