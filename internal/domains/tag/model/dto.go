package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"articles-backend/internal/shared/utils"
)

const MaxNameLength = 64

type CreateTagRequest struct {
	Name string `json:"name"`
}

func (r *CreateTagRequest) Normalize() {
	r.Name = utils.NormalizeName(r.Name)
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Name is required"),
			validation.RuneLength(1, MaxNameLength).Error("Name must be at most 64 characters"),
		),
	)
}

type ListTagsRequest struct {
	Name  string `form:"name" json:"name"`
	Page  int    `form:"page" json:"page"`
	Limit int    `form:"limit" json:"limit"`
}

// Normalize điền default page/limit khi client không gửi
func (r *ListTagsRequest) Normalize() {
	r.Page, r.Limit = utils.NormalizePage(r.Page, r.Limit)
}

func (r ListTagsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Min(1).Error("page must be >= 1")),
		validation.Field(&r.Limit,
			validation.Min(1).Error("limit must be >= 1"),
			validation.Max(utils.MaxLimit).Error("limit must be <= 100"),
		),
	)
}

type ListTagsResponse struct {
	Tags       []Tag `json:"tags"`
	Total      int   `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
