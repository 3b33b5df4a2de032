package ownership

import (
	"github.com/google/uuid"

	"articles-backend/internal/shared/apperror"
)

// Owned được implement bởi resource có một owner duy nhất (Article, Comment)
// Author, Tag, User không implement => guard bỏ qua
type Owned interface {
	OwnerID() uuid.UUID
}

var ErrNotOwner = apperror.Forbidden("OWN001", "not authorized to modify this resource")

// Check so sánh owner của resource đã load với actor đang thực hiện thao tác.
// Không có I/O; caller phải tự kiểm tra not-found trước khi gọi.
func Check[T any](resource T, actorID uuid.UUID) error {
	owned, ok := any(resource).(Owned)
	if !ok {
		return nil
	}
	if owned.OwnerID() != actorID {
		return ErrNotOwner
	}
	return nil
}
