package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeName trim và gộp khoảng trắng liên tiếp: "  J.R.R.   Tolkien " => "J.R.R. Tolkien"
// Dùng làm natural key cho Author/Tag
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// EscapeLike escape ký tự đặc biệt của LIKE/ILIKE (\, %, _)
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// UniqueUUIDs bỏ trùng, giữ thứ tự xuất hiện đầu tiên
func UniqueUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
