package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"articles-backend/internal/domains/comment/model"
	"articles-backend/internal/shared/apperror"
	"articles-backend/internal/shared/crud"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &postgresCommentRepository{pool: pool}
}

const commentColumns = `id, article_id, user_id, content, created_at, updated_at`

// =====================================================
// CREATE
// =====================================================

func (r *postgresCommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	query := `
		INSERT INTO comments (id, article_id, user_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + commentColumns

	rows, err := r.pool.Query(ctx, query, comment.ID, comment.ArticleID, comment.UserID, comment.Content)
	if err != nil {
		return nil, apperror.Persistence("failed to create comment", err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Comment])
	if err != nil {
		// FK trên article_id: article đã bị xóa hoặc không tồn tại
		if crud.PgErrorCode(err) == crud.PgForeignKeyViolation && strings.Contains(crud.PgConstraint(err), "article_id") {
			return nil, model.ErrArticleNotFound.WithMessage("article %s not found", comment.ArticleID)
		}
		return nil, apperror.Persistence("failed to create comment", err)
	}
	return &created, nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, apperror.Persistence("failed to get comment", err)
	}

	comment, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Comment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, apperror.Persistence("failed to get comment", err)
	}
	return &comment, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresCommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error) {
	query := `
		UPDATE comments
		SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + commentColumns

	rows, err := r.pool.Query(ctx, query, id, content)
	if err != nil {
		return nil, apperror.Persistence("failed to update comment", err)
	}

	comment, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Comment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, apperror.Persistence("failed to update comment", err)
	}
	return &comment, nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return apperror.Persistence("failed to delete comment", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}
