package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"articles-backend/internal/domains/tag/model"
	"articles-backend/internal/shared/crud"
	"articles-backend/pkg/cache"
)

const tagCacheTTL = 30 * time.Minute

type postgresRepository struct {
	*crud.NamedRepository[model.Tag]
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) TagRepository {
	return &postgresRepository{
		NamedRepository: crud.NewNamedRepository[model.Tag](pool, c, crud.NamedTable{
			Table:       "tags",
			CachePrefix: "tag",
			CacheTTL:    tagCacheTTL,
			NotFound:    model.ErrTagNotFound,
			Duplicate:   model.ErrTagDuplicate,
			InUse:       model.ErrTagInUse,
		}),
	}
}

func (r *postgresRepository) Create(ctx context.Context, tag *model.Tag) (*model.Tag, error) {
	return r.Insert(ctx, tag.ID, tag.Name)
}
