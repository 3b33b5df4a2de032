package model

import "articles-backend/internal/shared/apperror"

var (
	ErrArticleNotFound = apperror.NotFound("ART001", "article not found")
	// Reference errors: id author/tag không tồn tại => không ghi gì
	ErrAuthorNotFound = apperror.NotFound("ART002", "author not found")
	ErrTagNotFound    = apperror.NotFound("ART003", "tag not found")
)
