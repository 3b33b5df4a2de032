package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"articles-backend/internal/domains/user/model"
	"articles-backend/internal/shared/apperror"
	"articles-backend/internal/shared/crud"
	"articles-backend/pkg/cache"
)

// postgresRepository là concrete implementation của UserRepository
// Struct PRIVATE - bên ngoài chỉ thấy interface
type postgresRepository struct {
	pool  *pgxpool.Pool // PostgreSQL connection pool
	cache cache.Cache   // Redis cache layer
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) UserRepository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// ========================================
// BASIC CRUD OPERATIONS
// ========================================

// Create tạo user mới
// Unique constraint trên username là nguồn sự thật cuối cùng khi 2 request register cùng lúc
func (r *postgresRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, username, password_hash, created_at
	`

	rows, err := r.pool.Query(ctx, query, u.ID, u.Username, u.PasswordHash)
	if err != nil {
		return nil, apperror.Persistence("failed to create user", err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if crud.PgErrorCode(err) == crud.PgUniqueViolation {
			return nil, model.ErrUsernameTaken
		}
		return nil, apperror.Persistence("failed to create user", err)
	}
	return &created, nil
}

// GetByID tìm user theo ID, cache-aside 15 phút
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	// STEP 1: TRY CACHE FIRST
	cacheKey := fmt.Sprintf("user:%s", id)
	var u model.User
	found, err := r.cache.Get(ctx, cacheKey, &u)
	if err == nil && found {
		return &u, nil
	}

	// STEP 2: QUERY DATABASE
	query := `SELECT id, username, password_hash, created_at FROM users WHERE id = $1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, apperror.Persistence("failed to get user", err)
	}
	u, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, apperror.Persistence("failed to get user", err)
	}

	// STEP 3: SAVE TO CACHE (ignore error, cache là optional)
	_ = r.cache.Set(ctx, cacheKey, &u, 15*time.Minute)

	return &u, nil
}

// GetByUsername dùng cho login: không cache vì cần password_hash mới nhất
func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, apperror.Persistence("failed to get user by username", err)
	}
	u, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, apperror.Persistence("failed to get user by username", err)
	}
	return &u, nil
}
