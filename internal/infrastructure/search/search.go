package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

// Hit là một candidate từ full-text search
type Hit struct {
	ID    uuid.UUID
	Score float64
}

// stopwords mặc định của RediSearch; query chỉ toàn stopword thì không match gì
var stopwords = map[string]struct{}{
	"a": {}, "is": {}, "the": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "if": {}, "in": {}, "into": {}, "it": {},
	"no": {}, "not": {}, "of": {}, "on": {}, "or": {}, "such": {}, "that": {}, "their": {},
	"then": {}, "there": {}, "these": {}, "they": {}, "this": {}, "to": {}, "was": {},
	"will": {}, "with": {},
}

// Search chạy full-text query trên title + abstract.
// Trả về tối đa MaxCandidates hit có score >= MinScore, theo thứ tự relevance giảm dần.
func (ix *Index) Search(ctx context.Context, text string, fuzzy bool) ([]Hit, error) {
	query := BuildQuery(text, fuzzy)
	if query == "" {
		return []Hit{}, nil
	}

	args := []string{
		ix.cfg.IndexName, query,
		"NOCONTENT",
		"WITHSCORES",
		"SCORER", "BM25",
		"LIMIT", "0", strconv.Itoa(ix.cfg.MaxCandidates),
		"DIALECT", "2",
	}

	cmd := ix.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := ix.exec(ctx, OpSearch, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return nil, &Error{Op: OpSearch, Err: ErrIndexNotFound}
		}
		return nil, &Error{Op: OpSearch, Err: err}
	}

	return ix.parseHits(raw)
}

// parseHits: NOCONTENT + WITHSCORES => 2-stride [total, key1, score1, key2, score2, ...]
func (ix *Index) parseHits(raw []rueidis.RedisMessage) ([]Hit, error) {
	if len(raw) == 0 {
		return []Hit{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return []Hit{}, nil
	}

	hits := make([]Hit, 0, (len(raw)-1)/2)
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		id, err := uuid.Parse(strings.TrimPrefix(key, ix.cfg.KeyPrefix))
		if err != nil {
			continue
		}

		scoreStr, err := raw[i+1].ToString()
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			continue
		}
		if score < ix.cfg.MinScore {
			continue
		}

		hits = append(hits, Hit{ID: id, Score: score})
	}

	return hits, nil
}

// BuildQuery dựng query string cho FT.SEARCH:
//
//	@title|abstract:(term1|term2|...)
//
// Các term được OR với nhau. fuzzy=true áp dụng Levenshtein theo độ dài token:
// <=2 ký tự: exact, 3-5: %t% (1 edit), >5: %%t%% (2 edits).
// Trả về "" nếu không còn term nào sau khi bỏ stopword.
func BuildQuery(text string, fuzzy bool) string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return ""
	}

	terms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if fuzzy {
			terms = append(terms, fuzzyTerm(t))
		} else {
			terms = append(terms, t)
		}
	}

	return fmt.Sprintf("@%s|%s:(%s)", FieldTitle, FieldAbstract, strings.Join(terms, "|"))
}

func fuzzyTerm(t string) string {
	n := len([]rune(t))
	switch {
	case n <= 2:
		return t
	case n <= 5:
		return "%" + t + "%"
	default:
		return "%%" + t + "%%"
	}
}

// Tokenize tách text thành lowercase terms chỉ gồm chữ và số,
// bỏ stopword và term trùng; token vì vậy không cần escape trong query syntax
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
