package model

import "articles-backend/internal/shared/apperror"

var (
	ErrCommentNotFound = apperror.NotFound("CMT001", "comment not found")
	ErrArticleNotFound = apperror.NotFound("CMT002", "article not found")
)
