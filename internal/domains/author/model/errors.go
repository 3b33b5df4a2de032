package model

import "articles-backend/internal/shared/apperror"

var (
	ErrAuthorNotFound  = apperror.NotFound("AUT001", "author not found")
	ErrAuthorDuplicate = apperror.Conflict("AUT002", "author name already exists")
	ErrAuthorInUse     = apperror.Conflict("AUT003", "author is still referenced by articles")
)
