package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"articles-backend/internal/domains/article/model"
	"articles-backend/internal/shared/apperror"
	"articles-backend/internal/shared/crud"
	"articles-backend/internal/shared/utils"
	"articles-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresArticleRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &postgresArticleRepository{pool: pool}
}

// querier: *pgxpool.Pool hoặc pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const articleColumns = `a.id, a.title, a.abstract, a.publication_date, a.owner_id, a.created_at, a.updated_at`

// =====================================================
// CREATE
// =====================================================

func (r *postgresArticleRepository) Create(
	ctx context.Context,
	article *model.Article,
	authorIDs, tagIDs []uuid.UUID,
) (*model.Article, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Article, error) {
		// Step 1: Insert article row
		query := `
			INSERT INTO articles AS a (id, title, abstract, publication_date, owner_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING ` + articleColumns

		rows, err := tx.Query(ctx, query,
			article.ID,
			article.Title,
			article.Abstract,
			article.PublicationDate.UTC(),
			article.Owner,
		)
		if err != nil {
			return nil, apperror.Persistence("failed to insert article", err)
		}
		created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Article])
		if err != nil {
			return nil, apperror.Persistence("failed to insert article", err)
		}

		// Step 2: Join tables
		if err := linkAuthors(ctx, tx, created.ID, authorIDs); err != nil {
			return nil, err
		}
		if err := linkTags(ctx, tx, created.ID, tagIDs); err != nil {
			return nil, err
		}

		// Step 3: Load associations trong cùng transaction
		if err := loadRelations(ctx, tx, []*model.Article{&created}); err != nil {
			return nil, err
		}
		return &created, nil
	})
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles a WHERE a.id = $1`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, apperror.Persistence("failed to get article", err)
	}
	article, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Article])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrArticleNotFound
		}
		return nil, apperror.Persistence("failed to get article", err)
	}

	if err := loadRelations(ctx, r.pool, []*model.Article{&article}); err != nil {
		return nil, err
	}
	return &article, nil
}

// =====================================================
// UPDATE
// =====================================================

// Update áp dụng patch trong 1 transaction; association sets được thay toàn bộ
func (r *postgresArticleRepository) Update(ctx context.Context, id uuid.UUID, patch model.ArticlePatch) (*model.Article, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Article, error) {
		// Step 1: Update columns (luôn chạm updated_at để lock row + trả về state mới)
		set, args := buildUpdateSet(id, patch)
		query := fmt.Sprintf(`
			UPDATE articles AS a SET %s
			WHERE a.id = $1
			RETURNING %s
		`, set, articleColumns)

		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return nil, apperror.Persistence("failed to update article", err)
		}
		updated, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Article])
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrArticleNotFound
			}
			return nil, apperror.Persistence("failed to update article", err)
		}

		// Step 2: Replace association sets
		if patch.AuthorIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM article_authors WHERE article_id = $1`, id); err != nil {
				return nil, apperror.Persistence("failed to clear article authors", err)
			}
			if err := linkAuthors(ctx, tx, id, *patch.AuthorIDs); err != nil {
				return nil, err
			}
		}
		if patch.TagIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM article_tags WHERE article_id = $1`, id); err != nil {
				return nil, apperror.Persistence("failed to clear article tags", err)
			}
			if err := linkTags(ctx, tx, id, *patch.TagIDs); err != nil {
				return nil, err
			}
		}

		if err := loadRelations(ctx, tx, []*model.Article{&updated}); err != nil {
			return nil, err
		}
		return &updated, nil
	})
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return apperror.Persistence("failed to delete article", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrArticleNotFound
	}
	return nil
}

// =====================================================
// SEARCH (query composer - relational half)
// =====================================================

func (r *postgresArticleRepository) Search(
	ctx context.Context,
	filter model.ArticleFilter,
	limit, offset int,
) ([]model.Article, int, error) {
	where := buildWhere(filter)

	// Step 1: Count (trước pagination)
	var total int
	countQuery := `SELECT COUNT(*) FROM articles a ` + where.Clause()
	if err := r.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, apperror.Persistence("failed to count articles", err)
	}
	if total == 0 || offset >= total {
		return []model.Article{}, total, nil
	}

	// Step 2: Page
	query := fmt.Sprintf(`
		SELECT %s
		FROM articles a
		%s
		ORDER BY a.publication_date DESC, a.id ASC
		LIMIT %s OFFSET %s
	`, articleColumns, where.Clause(), where.Next(1), where.Next(2))

	args := append(where.Args(), limit, offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperror.Persistence("failed to search articles", err)
	}
	articles, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Article])
	if err != nil {
		return nil, 0, apperror.Persistence("failed to scan articles", err)
	}

	// Step 3: Eager load authors + tags (2 queries cho cả page)
	ptrs := make([]*model.Article, len(articles))
	for i := range articles {
		ptrs[i] = &articles[i]
	}
	if err := loadRelations(ctx, r.pool, ptrs); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func buildWhere(filter model.ArticleFilter) *utils.WhereBuilder {
	where := utils.NewWhereBuilder()

	if filter.Title != "" {
		where.Add("a.title ILIKE ?", "%"+utils.EscapeLike(filter.Title)+"%")
	}
	if filter.Year != nil {
		// Năm tính theo UTC, không phụ thuộc timezone của session
		where.Add("EXTRACT(YEAR FROM a.publication_date AT TIME ZONE 'UTC') = ?", *filter.Year)
	}
	if filter.Author != "" {
		where.Add(`EXISTS (
			SELECT 1 FROM article_authors aa
			JOIN authors au ON au.id = aa.author_id
			WHERE aa.article_id = a.id AND au.name ILIKE ?
		)`, "%"+utils.EscapeLike(filter.Author)+"%")
	}
	if filter.CandidateIDs != nil {
		where.Add("a.id = ANY(?::uuid[])", pq.Array(uuidStrings(filter.CandidateIDs)))
	}

	return where
}

// buildUpdateSet trả về SET clause + args; $1 luôn là id
func buildUpdateSet(id uuid.UUID, patch model.ArticlePatch) (string, []interface{}) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	if !patch.HasColumns() {
		return sets[0], args
	}

	if patch.Title != nil {
		args = append(args, *patch.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Abstract != nil {
		args = append(args, *patch.Abstract)
		sets = append(sets, fmt.Sprintf("abstract = $%d", len(args)))
	}
	if patch.PublicationDate != nil {
		args = append(args, patch.PublicationDate.UTC())
		sets = append(sets, fmt.Sprintf("publication_date = $%d", len(args)))
	}
	return strings.Join(sets, ", "), args
}

// =====================================================
// RECONCILIATION SUPPORT
// =====================================================

// ListAfter - keyset pagination theo id, không load associations
func (r *postgresArticleRepository) ListAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles a WHERE a.id > $1 ORDER BY a.id LIMIT $2`

	rows, err := r.pool.Query(ctx, query, afterID, limit)
	if err != nil {
		return nil, apperror.Persistence("failed to list articles", err)
	}
	articles, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Article])
	if err != nil {
		return nil, apperror.Persistence("failed to scan articles", err)
	}
	return articles, nil
}

func (r *postgresArticleRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	existing := make(map[uuid.UUID]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id FROM articles WHERE id = ANY($1::uuid[])`, pq.Array(uuidStrings(ids)))
	if err != nil {
		return nil, apperror.Persistence("failed to check article ids", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, apperror.Persistence("failed to scan article ids", err)
	}
	for _, id := range found {
		existing[id] = struct{}{}
	}
	return existing, nil
}

// =====================================================
// HELPERS
// =====================================================

func linkAuthors(ctx context.Context, tx pgx.Tx, articleID uuid.UUID, authorIDs []uuid.UUID) error {
	return link(ctx, tx, "article_authors", "author_id", articleID, authorIDs, model.ErrAuthorNotFound)
}

func linkTags(ctx context.Context, tx pgx.Tx, articleID uuid.UUID, tagIDs []uuid.UUID) error {
	return link(ctx, tx, "article_tags", "tag_id", articleID, tagIDs, model.ErrTagNotFound)
}

// link insert join rows bằng unnest; FK violation (author/tag bị xóa sau bước resolve) => notFound
func link(
	ctx context.Context,
	tx pgx.Tx,
	table, column string,
	articleID uuid.UUID,
	ids []uuid.UUID,
	notFound *apperror.Error,
) error {
	ids = utils.UniqueUUIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (article_id, %s)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`, table, column)

	if _, err := tx.Exec(ctx, query, articleID, pq.Array(uuidStrings(ids))); err != nil {
		return linkError(err, table, column, notFound)
	}
	return nil
}

// linkError: FK violation trên cột được link => notFound, còn lại là lỗi persistence.
// FK của article_id (article bị xóa giữa chừng) không được map thành author/tag not found.
func linkError(err error, table, column string, notFound *apperror.Error) error {
	if crud.PgErrorCode(err) == crud.PgForeignKeyViolation && strings.Contains(crud.PgConstraint(err), column) {
		return notFound
	}
	return apperror.Persistence("failed to insert "+table, err)
}

type relationRow struct {
	ArticleID uuid.UUID `db:"article_id"`
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
}

// loadRelations eager-load authors + tags cho nhiều article bằng 2 query
func loadRelations(ctx context.Context, q querier, articles []*model.Article) error {
	if len(articles) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*model.Article, len(articles))
	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		a.Authors = []model.AuthorRef{}
		a.Tags = []model.TagRef{}
		byID[a.ID] = a
		ids = append(ids, a.ID.String())
	}

	authorRows, err := queryRelations(ctx, q, `
		SELECT aa.article_id, au.id, au.name
		FROM article_authors aa
		JOIN authors au ON au.id = aa.author_id
		WHERE aa.article_id = ANY($1::uuid[])
		ORDER BY au.name, au.id
	`, ids)
	if err != nil {
		return apperror.Persistence("failed to load article authors", err)
	}
	for _, row := range authorRows {
		if a, ok := byID[row.ArticleID]; ok {
			a.Authors = append(a.Authors, model.AuthorRef{ID: row.ID, Name: row.Name})
		}
	}

	tagRows, err := queryRelations(ctx, q, `
		SELECT atg.article_id, t.id, t.name
		FROM article_tags atg
		JOIN tags t ON t.id = atg.tag_id
		WHERE atg.article_id = ANY($1::uuid[])
		ORDER BY t.name, t.id
	`, ids)
	if err != nil {
		return apperror.Persistence("failed to load article tags", err)
	}
	for _, row := range tagRows {
		if a, ok := byID[row.ArticleID]; ok {
			a.Tags = append(a.Tags, model.TagRef{ID: row.ID, Name: row.Name})
		}
	}

	return nil
}

func queryRelations(ctx context.Context, q querier, query string, ids []string) ([]relationRow, error) {
	rows, err := q.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[relationRow])
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
