package search

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Document là projection của một article trong search index
type Document struct {
	ID              uuid.UUID
	Title           string
	Abstract        string
	PublicationDate time.Time
	OwnerID         uuid.UUID
}

func (d Document) fields() map[string]string {
	return map[string]string{
		FieldID:              d.ID.String(),
		FieldTitle:           d.Title,
		FieldTitleExact:      strings.ToLower(d.Title),
		FieldAbstract:        d.Abstract,
		FieldPublicationDate: strconv.FormatInt(d.PublicationDate.Unix(), 10),
		FieldOwnerID:         d.OwnerID.String(),
	}
}

// IndexDocument upsert document theo article id (HSET ghi đè toàn bộ fields)
func (ix *Index) IndexDocument(ctx context.Context, doc Document) error {
	cmd := ix.b().Hset().Key(ix.key(doc.ID.String())).FieldValue()
	for k, v := range doc.fields() {
		cmd = cmd.FieldValue(k, v)
	}
	if err := ix.exec(ctx, OpHSet, cmd.Build()).Error(); err != nil {
		return &Error{Op: OpHSet, Err: err}
	}
	return nil
}

// DeleteDocument xóa document; document không tồn tại không phải lỗi
func (ix *Index) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	cmd := ix.b().Del().Key(ix.key(id.String())).Build()
	if err := ix.exec(ctx, OpDel, cmd).Error(); err != nil {
		return &Error{Op: OpDel, Err: err}
	}
	return nil
}

// DocumentExists dùng cho post-index verification
func (ix *Index) DocumentExists(ctx context.Context, id uuid.UUID) (bool, error) {
	cmd := ix.b().Exists().Key(ix.key(id.String())).Build()
	count, err := ix.exec(ctx, OpExists, cmd).AsInt64()
	if err != nil {
		return false, &Error{Op: OpExists, Err: err}
	}
	return count > 0, nil
}

// ListDocumentIDs scan toàn bộ key theo prefix; key có suffix không phải uuid bị bỏ qua
func (ix *Index) ListDocumentIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	var cursor uint64
	pattern := ix.cfg.KeyPrefix + "*"

	for {
		cmd := ix.b().Scan().Cursor(cursor).Match(pattern).Count(500).Build()
		res, err := ix.exec(ctx, OpScan, cmd).AsScanEntry()
		if err != nil {
			return nil, &Error{Op: OpScan, Err: err}
		}

		for _, key := range res.Elements {
			id, err := uuid.Parse(strings.TrimPrefix(key, ix.cfg.KeyPrefix))
			if err != nil {
				log.Warn().Str("key", key).Msg("[SEARCH] Skipping key with non-uuid suffix")
				continue
			}
			ids = append(ids, id)
		}

		cursor = res.Cursor
		if cursor == 0 {
			return ids, nil
		}
	}
}
