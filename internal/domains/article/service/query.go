package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"articles-backend/internal/domains/article/model"
	"articles-backend/internal/shared/apperror"
	"articles-backend/internal/shared/utils"
)

// SearchArticles gộp full-text search (chọn candidates) với relational filter + pagination.
// Thứ tự kết quả là thứ tự relational (publication_date DESC, id ASC);
// relevance chỉ dùng để chọn tập candidate.
func (s *articleService) SearchArticles(
	ctx context.Context,
	req model.SearchArticlesRequest,
) (*model.SearchArticlesResponse, error) {
	// Step 1: Validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := model.ArticleFilter{
		Title:  strings.TrimSpace(req.Title),
		Year:   req.Year,
		Author: strings.TrimSpace(req.Author),
	}

	// Step 2: Free text => candidate ids từ search index
	if text := strings.TrimSpace(req.Q); text != "" {
		hits, err := s.index.Search(ctx, text, req.FuzzyEnabled())
		if err != nil {
			return nil, apperror.SearchUnavailable("failed to search index", err)
		}

		// Hard AND: không có candidate => không có kết quả, kể cả khi filter khác match
		if len(hits) == 0 {
			log.Debug().Str("q", text).Msg("No search candidates")
			return emptyPage(req.Page), nil
		}

		filter.CandidateIDs = make([]uuid.UUID, len(hits))
		for i, h := range hits {
			filter.CandidateIDs[i] = h.ID
		}
	}

	// Step 3: Relational query (count + page + eager load)
	articles, total, err := s.articleRepo.Search(ctx, filter, req.PageSize, utils.Offset(req.Page, req.PageSize))
	if err != nil {
		return nil, err
	}

	return &model.SearchArticlesResponse{
		Items:       articles,
		CurrentPage: req.Page,
		TotalPages:  utils.TotalPages(total, req.PageSize),
		TotalItems:  total,
	}, nil
}

func emptyPage(page int) *model.SearchArticlesResponse {
	return &model.SearchArticlesResponse{
		Items:       []model.Article{},
		CurrentPage: page,
	}
}
