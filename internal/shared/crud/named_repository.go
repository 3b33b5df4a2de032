package crud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"articles-backend/internal/shared/apperror"
	"articles-backend/internal/shared/utils"
	"articles-backend/pkg/cache"
)

// NamedTable mô tả một bảng (id, name, created_at) với name unique: authors, tags
type NamedTable struct {
	Table       string
	CachePrefix string        // "author", "tag"
	CacheTTL    time.Duration // 0 => không cache
	NotFound    *apperror.Error
	Duplicate   *apperror.Error
	InUse       *apperror.Error // xóa row còn được article tham chiếu
}

// NamedRepository là generic repository cho entity chỉ gồm id + name.
// T phải có các field với tag db:"id", db:"name", db:"created_at".
type NamedRepository[T any] struct {
	pool  *pgxpool.Pool
	cache cache.Cache
	t     NamedTable
}

func NewNamedRepository[T any](pool *pgxpool.Pool, c cache.Cache, t NamedTable) *NamedRepository[T] {
	return &NamedRepository[T]{pool: pool, cache: c, t: t}
}

func (r *NamedRepository[T]) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", r.t.CachePrefix, id)
}

func (r *NamedRepository[T]) collectOne(rows pgx.Rows) (*T, error) {
	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.t.NotFound
		}
		return nil, apperror.Persistence("query "+r.t.Table, err)
	}
	return &item, nil
}

// Insert tạo row mới; unique violation trên name => Duplicate (kind CONFLICT)
func (r *NamedRepository[T]) Insert(ctx context.Context, id uuid.UUID, name string) (*T, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, name, created_at
	`, r.t.Table)

	rows, err := r.pool.Query(ctx, query, id, name)
	if err != nil {
		return nil, apperror.Persistence("insert "+r.t.Table, err)
	}
	item, err := r.collectOne(rows)
	if err != nil && PgErrorCode(err) == PgUniqueViolation {
		return nil, r.t.Duplicate
	}
	return item, err
}

// GetByID với cache-aside
func (r *NamedRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var cached T
	if r.t.CacheTTL > 0 {
		if found, err := r.cache.Get(ctx, r.cacheKey(id), &cached); err == nil && found {
			return &cached, nil
		}
	}

	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s WHERE id = $1`, r.t.Table)
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, apperror.Persistence("get "+r.t.Table, err)
	}
	item, err := r.collectOne(rows)
	if err != nil {
		return nil, err
	}

	if r.t.CacheTTL > 0 {
		// Cache lỗi không làm fail request
		_ = r.cache.Set(ctx, r.cacheKey(id), item, r.t.CacheTTL)
	}
	return item, nil
}

// GetByName so khớp chính xác (name đã normalize ở service)
func (r *NamedRepository[T]) GetByName(ctx context.Context, name string) (*T, error) {
	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s WHERE name = $1`, r.t.Table)
	rows, err := r.pool.Query(ctx, query, name)
	if err != nil {
		return nil, apperror.Persistence("get "+r.t.Table+" by name", err)
	}
	return r.collectOne(rows)
}

// GetByIDs trả về các row tìm thấy (không theo thứ tự input); caller tự kiểm tra thiếu
func (r *NamedRepository[T]) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	query := fmt.Sprintf(`
		SELECT id, name, created_at FROM %s
		WHERE id = ANY($1::uuid[])
		ORDER BY name
	`, r.t.Table)

	rows, err := r.pool.Query(ctx, query, pq.Array(uuidStrings(ids)))
	if err != nil {
		return nil, apperror.Persistence("get "+r.t.Table+" by ids", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, apperror.Persistence("scan "+r.t.Table, err)
	}
	return items, nil
}

// List filter theo name substring (ILIKE), sort theo name
func (r *NamedRepository[T]) List(ctx context.Context, name string, limit, offset int) ([]T, int, error) {
	where := utils.NewWhereBuilder()
	if name != "" {
		where.Add("name ILIKE ?", "%"+utils.EscapeLike(name)+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, r.t.Table, where.Clause())
	if err := r.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, apperror.Persistence("count "+r.t.Table, err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, created_at FROM %s
		%s
		ORDER BY name ASC
		LIMIT %s OFFSET %s
	`, r.t.Table, where.Clause(), where.Next(1), where.Next(2))

	args := append(where.Args(), limit, offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperror.Persistence("list "+r.t.Table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, 0, apperror.Persistence("scan "+r.t.Table, err)
	}
	return items, total, nil
}

// Delete xóa row; còn article tham chiếu => InUse
func (r *NamedRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.t.Table)
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		if PgErrorCode(err) == PgForeignKeyViolation {
			return r.t.InUse
		}
		return apperror.Persistence("delete "+r.t.Table, err)
	}
	if result.RowsAffected() == 0 {
		return r.t.NotFound
	}

	if r.t.CacheTTL > 0 {
		_ = r.cache.Delete(ctx, r.cacheKey(id))
	}
	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
