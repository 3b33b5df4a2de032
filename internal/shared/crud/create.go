package crud

import (
	"context"

	"articles-backend/internal/shared/apperror"
)

// Store là phần tối thiểu một repository cần có để dùng chung Create routine
// FindByKey phải trả về error kind NOT_FOUND khi không có row,
// Insert phải trả về error kind CONFLICT khi vi phạm unique constraint
type Store[T any] interface {
	FindByKey(ctx context.Context, key string) (*T, error)
	Insert(ctx context.Context, entity *T) (*T, error)
}

// StoreFuncs adapt các method có tên khác (GetByName, GetByUsername, Create...) thành Store
type StoreFuncs[T any] struct {
	Find func(ctx context.Context, key string) (*T, error)
	Save func(ctx context.Context, entity *T) (*T, error)
}

func (s StoreFuncs[T]) FindByKey(ctx context.Context, key string) (*T, error) {
	return s.Find(ctx, key)
}

func (s StoreFuncs[T]) Insert(ctx context.Context, entity *T) (*T, error) {
	return s.Save(ctx, entity)
}

// Policy quyết định hành vi khi key đã tồn tại
type Policy struct {
	idempotent  bool
	conflictErr error
}

// IdempotentByKey: trả về row đã có, không bao giờ báo lỗi duplicate (Author, Tag)
func IdempotentByKey() Policy {
	return Policy{idempotent: true}
}

// FailOnConflict: key đã tồn tại => trả về conflictErr (User)
func FailOnConflict(conflictErr error) Policy {
	return Policy{conflictErr: conflictErr}
}

func (p Policy) IsIdempotent() bool {
	return p.idempotent
}

// Create lookup theo key rồi insert theo policy.
// created = false khi row đã tồn tại và policy là idempotent.
func Create[T any](ctx context.Context, store Store[T], policy Policy, key string, entity *T) (result *T, created bool, err error) {
	existing, err := store.FindByKey(ctx, key)
	switch {
	case err == nil:
		if policy.idempotent {
			return existing, false, nil
		}
		return nil, false, policy.conflictErr
	case !apperror.IsKind(err, apperror.KindNotFound):
		return nil, false, err
	}

	inserted, err := store.Insert(ctx, entity)
	if err == nil {
		return inserted, true, nil
	}
	if !apperror.IsKind(err, apperror.KindConflict) {
		return nil, false, err
	}

	// Request khác insert cùng key giữa lúc lookup và insert
	if !policy.idempotent {
		return nil, false, policy.conflictErr
	}
	existing, err = store.FindByKey(ctx, key)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
