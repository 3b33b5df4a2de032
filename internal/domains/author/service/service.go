package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"articles-backend/internal/domains/author/model"
	"articles-backend/internal/domains/author/repository"
	"articles-backend/internal/shared/apperror"
	"articles-backend/internal/shared/crud"
	"articles-backend/internal/shared/utils"
)

type authorService struct {
	repo repository.AuthorRepository
}

func NewAuthorService(repo repository.AuthorRepository) ServiceInterface {
	return &authorService{repo: repo}
}

// =====================================================
// CREATE AUTHOR
// =====================================================

func (s *authorService) Create(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, bool, error) {
	// Step 1: Normalize + validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	// Step 2: Lookup-or-insert theo name
	store := crud.StoreFuncs[model.Author]{
		Find: s.repo.GetByName,
		Save: s.repo.Create,
	}
	author, created, err := crud.Create(ctx, store, crud.IdempotentByKey(), req.Name, &model.Author{
		ID:   uuid.New(),
		Name: req.Name,
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		log.Info().Str("author_id", author.ID.String()).Str("name", author.Name).Msg("Author created")
	}
	return author, created, nil
}

// =====================================================
// READ
// =====================================================

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, req model.ListAuthorsRequest) (*model.ListAuthorsResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	page, limit := req.Page, req.Limit

	authors, total, err := s.repo.List(ctx, utils.NormalizeName(req.Name), limit, utils.Offset(page, limit))
	if err != nil {
		return nil, err
	}

	return &model.ListAuthorsResponse{
		Authors:    authors,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: utils.TotalPages(total, limit),
	}, nil
}

// ResolveIDs dùng cho article create/update: mọi id phải tồn tại trước khi ghi
func (s *authorService) ResolveIDs(ctx context.Context, ids []uuid.UUID) ([]model.Author, error) {
	unique := utils.UniqueUUIDs(ids)
	if len(unique) == 0 {
		return []model.Author{}, nil
	}

	authors, err := s.repo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	if len(authors) != len(unique) {
		found := make(map[uuid.UUID]struct{}, len(authors))
		for _, a := range authors {
			found[a.ID] = struct{}{}
		}
		for _, id := range unique {
			if _, ok := found[id]; !ok {
				return nil, model.ErrAuthorNotFound.WithMessage("author %s not found", id)
			}
		}
	}
	return authors, nil
}

// =====================================================
// DELETE
// =====================================================

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !apperror.IsKind(err, apperror.KindNotFound) && !apperror.IsKind(err, apperror.KindConflict) {
			log.Error().Err(err).Str("author_id", id.String()).Msg("Failed to delete author")
		}
		return err
	}
	return nil
}
