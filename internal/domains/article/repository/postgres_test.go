package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles-backend/internal/domains/article/model"
	"articles-backend/internal/shared/apperror"
)

// =====================================================
// WHERE BUILDER
// =====================================================

func TestBuildWhere_EmptyFilter(t *testing.T) {
	where := buildWhere(model.ArticleFilter{})

	assert.Equal(t, "", where.Clause())
	assert.Empty(t, where.Args())
	assert.Equal(t, "$1", where.Next(1))
	assert.Equal(t, "$2", where.Next(2))
}

func TestBuildWhere_TitleIsEscapedSubstring(t *testing.T) {
	where := buildWhere(model.ArticleFilter{Title: "100%_go"})

	assert.Equal(t, "WHERE a.title ILIKE $1", where.Clause())
	assert.Equal(t, []interface{}{`%100\%\_go%`}, where.Args())
}

func TestBuildWhere_YearUsesUTC(t *testing.T) {
	year := 2021
	where := buildWhere(model.ArticleFilter{Year: &year})

	assert.Equal(t, "WHERE EXTRACT(YEAR FROM a.publication_date AT TIME ZONE 'UTC') = $1", where.Clause())
	assert.Equal(t, []interface{}{2021}, where.Args())
}

func TestBuildWhere_CandidateIDs(t *testing.T) {
	t.Run("nil => không giới hạn", func(t *testing.T) {
		where := buildWhere(model.ArticleFilter{CandidateIDs: nil})
		assert.Equal(t, "", where.Clause())
	})

	t.Run("rỗng nhưng non-nil => vẫn filter (0 kết quả)", func(t *testing.T) {
		where := buildWhere(model.ArticleFilter{CandidateIDs: []uuid.UUID{}})

		assert.Equal(t, "WHERE a.id = ANY($1::uuid[])", where.Clause())
		require.Len(t, where.Args(), 1)
		assert.Equal(t, pq.Array([]string{}), where.Args()[0])
	})
}

func TestBuildWhere_AllFiltersNumberedInOrder(t *testing.T) {
	year := 2020
	id := uuid.New()
	where := buildWhere(model.ArticleFilter{
		Title:        "go",
		Year:         &year,
		Author:       "pike",
		CandidateIDs: []uuid.UUID{id},
	})

	clause := where.Clause()
	assert.Contains(t, clause, "a.title ILIKE $1")
	assert.Contains(t, clause, "= $2")
	assert.Contains(t, clause, "au.name ILIKE $3")
	assert.Contains(t, clause, "a.id = ANY($4::uuid[])")

	args := where.Args()
	require.Len(t, args, 4)
	assert.Equal(t, "%go%", args[0])
	assert.Equal(t, 2020, args[1])
	assert.Equal(t, "%pike%", args[2])
	assert.Equal(t, pq.Array([]string{id.String()}), args[3])

	// LIMIT/OFFSET đứng sau các filter
	assert.Equal(t, "$5", where.Next(1))
	assert.Equal(t, "$6", where.Next(2))
}

// =====================================================
// UPDATE SET
// =====================================================

func TestBuildUpdateSet_OnlyTouchesUpdatedAt(t *testing.T) {
	id := uuid.New()

	set, args := buildUpdateSet(id, model.ArticlePatch{TagIDs: &[]uuid.UUID{}})

	assert.Equal(t, "updated_at = NOW()", set)
	assert.Equal(t, []interface{}{id}, args)
}

func TestBuildUpdateSet_OnlyPresentFields(t *testing.T) {
	id := uuid.New()
	abstract := "new abstract"

	set, args := buildUpdateSet(id, model.ArticlePatch{Abstract: &abstract})

	assert.Equal(t, "updated_at = NOW(), abstract = $2", set)
	assert.Equal(t, []interface{}{id, "new abstract"}, args)
}

func TestBuildUpdateSet_AllFields(t *testing.T) {
	id := uuid.New()
	title := "T"
	abstract := "A"
	hcm := time.FixedZone("ICT", 7*3600)
	date := time.Date(2021, 1, 1, 3, 0, 0, 0, hcm)

	set, args := buildUpdateSet(id, model.ArticlePatch{
		Title:           &title,
		Abstract:        &abstract,
		PublicationDate: &date,
	})

	assert.Equal(t, "updated_at = NOW(), title = $2, abstract = $3, publication_date = $4", set)
	require.Len(t, args, 4)
	assert.Equal(t, id, args[0])
	assert.Equal(t, "T", args[1])
	assert.Equal(t, "A", args[2])

	stored, ok := args[3].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.UTC, stored.Location())
	assert.Equal(t, 2020, stored.Year())
	assert.True(t, stored.Equal(date))
}

// =====================================================
// LINK ERRORS
// =====================================================

func TestLinkError(t *testing.T) {
	t.Run("FK của author_id => author not found", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "article_authors_author_id_fkey"}

		err := linkError(pgErr, "article_authors", "author_id", model.ErrAuthorNotFound)
		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	})

	t.Run("FK của tag_id => tag not found", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "article_tags_tag_id_fkey"}

		err := linkError(pgErr, "article_tags", "tag_id", model.ErrTagNotFound)
		assert.ErrorIs(t, err, model.ErrTagNotFound)
	})

	t.Run("FK của article_id => persistence", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "article_authors_article_id_fkey"}

		err := linkError(pgErr, "article_authors", "author_id", model.ErrAuthorNotFound)
		assert.NotErrorIs(t, err, model.ErrAuthorNotFound)
		assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
	})

	t.Run("lỗi khác => persistence, giữ cause", func(t *testing.T) {
		cause := errors.New("connection reset")

		err := linkError(cause, "article_tags", "tag_id", model.ErrTagNotFound)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
	})
}
