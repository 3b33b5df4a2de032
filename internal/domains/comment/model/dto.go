package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const MaxContentLength = 5000

// CreateCommentRequest request to create comment
type CreateCommentRequest struct {
	ArticleID uuid.UUID `json:"article_id"`
	Content   string    `json:"content"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ArticleID, validation.By(notNilUUID)),
		validation.Field(&r.Content,
			validation.By(notBlank),
			validation.RuneLength(1, MaxContentLength),
		),
	)
}

// UpdateCommentRequest: nil Content => giữ nguyên
type UpdateCommentRequest struct {
	Content *string `json:"content"`
}

func (r UpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.When(r.Content != nil, validation.By(notBlank), validation.RuneLength(1, MaxContentLength)),
		),
	)
}

func notNilUUID(value interface{}) error {
	if id, _ := value.(uuid.UUID); id == uuid.Nil {
		return validation.NewError("validation_required", "article_id is required")
	}
	return nil
}

func notBlank(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_required", "content must not be blank")
	}
	return nil
}
