package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"articles-backend/internal/domains/tag/model"
	"articles-backend/internal/domains/tag/repository"
	"articles-backend/internal/shared/apperror"
	"articles-backend/internal/shared/crud"
	"articles-backend/internal/shared/utils"
)

type tagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) ServiceInterface {
	return &tagService{repo: repo}
}

// =====================================================
// CREATE AUTHOR
// =====================================================

func (s *tagService) Create(ctx context.Context, req model.CreateTagRequest) (*model.Tag, bool, error) {
	// Step 1: Normalize + validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	// Step 2: Lookup-or-insert theo name
	store := crud.StoreFuncs[model.Tag]{
		Find: s.repo.GetByName,
		Save: s.repo.Create,
	}
	tag, created, err := crud.Create(ctx, store, crud.IdempotentByKey(), req.Name, &model.Tag{
		ID:   uuid.New(),
		Name: req.Name,
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		log.Debug().Str("tag_id", tag.ID.String()).Msg("Tag created")
	}
	return tag, created, nil
}

// =====================================================
// READ
// =====================================================

func (s *tagService) GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *tagService) List(ctx context.Context, req model.ListTagsRequest) (*model.ListTagsResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	page, limit := req.Page, req.Limit

	tags, total, err := s.repo.List(ctx, utils.NormalizeName(req.Name), limit, utils.Offset(page, limit))
	if err != nil {
		return nil, err
	}

	return &model.ListTagsResponse{
		Tags:    tags,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: utils.TotalPages(total, limit),
	}, nil
}

// ResolveIDs dùng cho article create/update: mọi id phải tồn tại trước khi ghi
func (s *tagService) ResolveIDs(ctx context.Context, ids []uuid.UUID) ([]model.Tag, error) {
	unique := utils.UniqueUUIDs(ids)
	if len(unique) == 0 {
		return []model.Tag{}, nil
	}

	tags, err := s.repo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	if len(tags) != len(unique) {
		found := make(map[uuid.UUID]struct{}, len(tags))
		for _, a := range tags {
			found[a.ID] = struct{}{}
		}
		for _, id := range unique {
			if _, ok := found[id]; !ok {
				return nil, model.ErrTagNotFound.WithMessage("tag %s not found", id)
			}
		}
	}
	return tags, nil
}

// =====================================================
// DELETE
// =====================================================

func (s *tagService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !apperror.IsKind(err, apperror.KindNotFound) && !apperror.IsKind(err, apperror.KindConflict) {
			log.Error().Err(err).Str("tag_id", id.String()).Msg("Failed to delete tag")
		}
		return err
	}
	return nil
}
