package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind phân loại lỗi theo hành vi phía client (status code, retry hay không)
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindForbidden         Kind = "FORBIDDEN"
	KindConflict          Kind = "CONFLICT"
	KindValidation        Kind = "VALIDATION"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindPersistence       Kind = "PERSISTENCE"
	KindSearchUnavailable Kind = "SEARCH_UNAVAILABLE"
)

// Error là error type chung cho toàn bộ domains
// Domain packages khai báo sentinel errors bằng New(), rồi dùng WithMessage/Wrap
// để thêm context mà vẫn giữ được errors.Is() với sentinel gốc
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithMessage trả về bản copy với message mới, Err trỏ về sentinel gốc
func (e *Error) WithMessage(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Err:     e,
	}
}

// New tạo sentinel error cho một domain
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// ========================================
// CONSTRUCTORS
// ========================================

func NotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}

func Forbidden(code, message string) *Error {
	return New(KindForbidden, code, message)
}

func Conflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

func Validation(err error) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: err.Error(), Err: err}
}

func Unauthorized(code, message string) *Error {
	return New(KindUnauthorized, code, message)
}

// Persistence wrap lỗi từ relational store (pgx) chưa được phân loại
func Persistence(op string, err error) *Error {
	return &Error{
		Kind:    KindPersistence,
		Code:    "PERSISTENCE_ERROR",
		Message: op,
		Err:     err,
	}
}

// SearchUnavailable wrap lỗi từ search index adapter
func SearchUnavailable(op string, err error) *Error {
	return &Error{
		Kind:    KindSearchUnavailable,
		Code:    "SEARCH_UNAVAILABLE",
		Message: op,
		Err:     err,
	}
}

// ========================================
// INSPECTION
// ========================================

// KindOf trả về Kind của error gần nhất trong chain, "" nếu không phải *Error
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind kiểm tra error chain có chứa *Error với kind cho trước không
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus map error sang HTTP status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		// Persistence, SearchUnavailable và lỗi chưa phân loại
		return http.StatusInternalServerError
	}
}

// CodeOf trả về error code cho API response
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL_ERROR"
}

// PublicMessage trả về message an toàn để trả cho client
// Lỗi 5xx không expose chi tiết bên trong (SQL, network...)
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return "Internal server error"
	}
	switch appErr.Kind {
	case KindPersistence:
		return "Database error"
	case KindSearchUnavailable:
		return "Search service unavailable"
	}
	return appErr.Message
}
