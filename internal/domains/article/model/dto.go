package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateArticleRequest - owner lấy từ JWT, không nhận từ body
type CreateArticleRequest struct {
	Title           string      `json:"title"`
	Abstract        string      `json:"abstract"`
	PublicationDate time.Time   `json:"publication_date"`
	AuthorIDs       []uuid.UUID `json:"author_ids"`
	TagIDs          []uuid.UUID `json:"tag_ids"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.Abstract, validation.RuneLength(0, MaxAbstractLength)),
		validation.Field(&r.PublicationDate, validation.Required.Error("publication_date is required")),
	)
}

// UpdateArticleRequest - patch semantics: field vắng mặt => giữ nguyên
type UpdateArticleRequest struct {
	Title           *string      `json:"title"`
	Abstract        *string      `json:"abstract"`
	PublicationDate *time.Time   `json:"publication_date"`
	AuthorIDs       *[]uuid.UUID `json:"author_ids"`
	TagIDs          *[]uuid.UUID `json:"tag_ids"`
}

func (r UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil,
				validation.Required.Error("title must not be empty"),
				validation.RuneLength(1, MaxTitleLength),
			),
		),
		validation.Field(&r.Abstract, validation.RuneLength(0, MaxAbstractLength)),
		validation.Field(&r.PublicationDate,
			validation.When(r.PublicationDate != nil, validation.Required.Error("publication_date must not be zero")),
		),
	)
}

func (r UpdateArticleRequest) ToPatch() ArticlePatch {
	return ArticlePatch{
		Title:           r.Title,
		Abstract:        r.Abstract,
		PublicationDate: r.PublicationDate,
		AuthorIDs:       r.AuthorIDs,
		TagIDs:          r.TagIDs,
	}
}

// SearchArticlesRequest - GET /articles query params
type SearchArticlesRequest struct {
	Title    string `form:"title"`
	Year     *int   `form:"year"`
	Author   string `form:"author"`
	Q        string `form:"q"`
	Fuzzy    *bool  `form:"fuzzy"` // default true
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// Normalize điền default cho page/page_size khi client không gửi
func (r *SearchArticlesRequest) Normalize() {
	if r.Page == 0 {
		r.Page = DefaultPage
	}
	if r.PageSize == 0 {
		r.PageSize = DefaultPageSize
	}
}

func (r SearchArticlesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Min(1).Error("page must be >= 1")),
		validation.Field(&r.PageSize,
			validation.Min(1).Error("page_size must be >= 1"),
			validation.Max(MaxPageSize).Error("page_size must be <= 100"),
		),
		validation.Field(&r.Year, validation.When(r.Year != nil, validation.Min(1), validation.Max(9999))),
	)
}

func (r SearchArticlesRequest) FuzzyEnabled() bool {
	return r.Fuzzy == nil || *r.Fuzzy
}

// ReindexRequest - admin trigger reconciliation
type ReindexRequest struct {
	DeleteOrphans *bool `json:"delete_orphans"`
	BatchSize     int   `json:"batch_size"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type SearchArticlesResponse struct {
	Items       []Article `json:"items"`
	CurrentPage int       `json:"current_page"`
	TotalPages  int       `json:"total_pages"`
	TotalItems  int       `json:"total_items"`
}

// ReconcileResult - thống kê 1 lần reconcile
type ReconcileResult struct {
	Indexed        int `json:"indexed"`
	IndexFailures  int `json:"index_failures"`
	OrphansRemoved int `json:"orphans_removed"`
}
