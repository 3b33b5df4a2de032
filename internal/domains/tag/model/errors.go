package model

import "articles-backend/internal/shared/apperror"

var (
	ErrTagNotFound  = apperror.NotFound("TAG001", "tag not found")
	ErrTagDuplicate = apperror.Conflict("TAG002", "tag name already exists")
	ErrTagInUse     = apperror.Conflict("TAG003", "tag is still referenced by articles")
)
