package model

import "articles-backend/internal/shared/apperror"

var (
	ErrUserNotFound       = apperror.NotFound("USR001", "user not found")
	ErrUsernameTaken      = apperror.Conflict("USR002", "username already registered")
	ErrInvalidCredentials = apperror.Unauthorized("USR003", "invalid username or password")
	ErrAccountLocked      = apperror.Unauthorized("USR004", "account temporarily locked due to too many failed login attempts")
)
