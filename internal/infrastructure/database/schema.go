package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// schemaDDL tạo toàn bộ bảng nếu chưa có.
// Xóa article => cascade article_authors, article_tags, comments.
// Author/Tag đang được tham chiếu bởi article không xóa được (RESTRICT).
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	username      VARCHAR(128) NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS authors (
	id         UUID PRIMARY KEY,
	name       VARCHAR(255) NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tags (
	id         UUID PRIMARY KEY,
	name       VARCHAR(255) NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS articles (
	id               UUID PRIMARY KEY,
	title            VARCHAR(512) NOT NULL,
	abstract         TEXT NOT NULL DEFAULT '',
	publication_date TIMESTAMPTZ NOT NULL,
	owner_id         UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- DB tạo từ bản cũ (publication_date DATE) => nâng lên TIMESTAMPTZ theo UTC
DO $$
BEGIN
	IF EXISTS (
		SELECT 1 FROM information_schema.columns
		WHERE table_name = 'articles' AND column_name = 'publication_date' AND data_type = 'date'
	) THEN
		ALTER TABLE articles
			ALTER COLUMN publication_date TYPE TIMESTAMPTZ
			USING publication_date::timestamp AT TIME ZONE 'UTC';
	END IF;
END $$;

CREATE INDEX IF NOT EXISTS idx_articles_publication_date ON articles (publication_date DESC, id);
CREATE INDEX IF NOT EXISTS idx_articles_owner ON articles (owner_id);

CREATE TABLE IF NOT EXISTS article_authors (
	article_id UUID NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
	author_id  UUID NOT NULL REFERENCES authors(id) ON DELETE RESTRICT,
	PRIMARY KEY (article_id, author_id)
);

CREATE TABLE IF NOT EXISTS article_tags (
	article_id UUID NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
	tag_id     UUID NOT NULL REFERENCES tags(id) ON DELETE RESTRICT,
	PRIMARY KEY (article_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_article_authors_author ON article_authors (author_id);
CREATE INDEX IF NOT EXISTS idx_article_tags_tag ON article_tags (tag_id);

CREATE TABLE IF NOT EXISTS comments (
	id         UUID PRIMARY KEY,
	content    TEXT NOT NULL,
	article_id UUID NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
	user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_comments_article ON comments (article_id);
`

// EnsureSchema chạy DDL idempotent; dùng cho local/dev và cmd/seed
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	if _, err := db.Pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("bootstrap schema: %w", err)
	}

	log.Info().Msg("[DATABASE] Schema is up to date")
	return nil
}
