package search

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Field names trong HASH document
const (
	FieldID              = "id"
	FieldTitle           = "title"
	FieldTitleExact      = "title_exact"
	FieldAbstract        = "abstract"
	FieldPublicationDate = "publication_date"
	FieldOwnerID         = "owner_id"
)

// EnsureIndex tạo index nếu chưa có; index đã tồn tại không phải lỗi
func (ix *Index) EnsureIndex(ctx context.Context) error {
	exists, err := ix.IndexExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = ix.CreateIndex(ctx)
	if errors.Is(err, ErrIndexExists) {
		// instance khác vừa tạo
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Str("index", ix.cfg.IndexName).Msg("[SEARCH] Index created")
	return nil
}

// CreateIndex chạy FT.CREATE với schema của articles
func (ix *Index) CreateIndex(ctx context.Context) error {
	cmd := ix.b().Arbitrary("FT.CREATE").Args(ix.buildCreateArgs()...).Build()
	if err := ix.exec(ctx, OpCreateIndex, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return ErrIndexExists
		}
		return &Error{Op: OpCreateIndex, Err: err}
	}
	return nil
}

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (ix *Index) IndexExists(ctx context.Context) (bool, error) {
	cmd := ix.b().Arbitrary("FT.INFO").Args(ix.cfg.IndexName).Build()
	if err := ix.exec(ctx, OpIndexInfo, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return false, nil
		}
		return false, &Error{Op: OpIndexInfo, Err: err}
	}
	return true, nil
}

// buildCreateArgs:
// title TEXT WEIGHT 2 (full-text) + title_exact TAG (keyword), abstract TEXT,
// publication_date NUMERIC SORTABLE, owner_id TAG; english stemming
func (ix *Index) buildCreateArgs() []string {
	return []string{
		ix.cfg.IndexName,
		"ON", "HASH",
		"PREFIX", "1", ix.cfg.KeyPrefix,
		"LANGUAGE", "english",
		"SCHEMA",
		FieldTitle, "TEXT", "WEIGHT", strconv.FormatFloat(2.0, 'f', 1, 64),
		FieldTitleExact, "TAG", "SEPARATOR", "\x1f",
		FieldAbstract, "TEXT",
		FieldPublicationDate, "NUMERIC", "SORTABLE",
		FieldOwnerID, "TAG",
	}
}
