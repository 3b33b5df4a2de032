package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"articles-backend/internal/domains/author/model"
	"articles-backend/internal/shared/crud"
	"articles-backend/pkg/cache"
)

const authorCacheTTL = 15 * time.Minute

type postgresRepository struct {
	*crud.NamedRepository[model.Author]
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) AuthorRepository {
	return &postgresRepository{
		NamedRepository: crud.NewNamedRepository[model.Author](pool, c, crud.NamedTable{
			Table:       "authors",
			CachePrefix: "author",
			CacheTTL:    authorCacheTTL,
			NotFound:    model.ErrAuthorNotFound,
			Duplicate:   model.ErrAuthorDuplicate,
			InUse:       model.ErrAuthorInUse,
		}),
	}
}

func (r *postgresRepository) Create(ctx context.Context, author *model.Author) (*model.Author, error) {
	return r.Insert(ctx, author.ID, author.Name)
}
