package utils

import (
	"fmt"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// WhereBuilder gom conditions + args và đánh số placeholder $n theo thứ tự thêm vào.
// Mỗi condition dùng "?" cho từng arg, ví dụ: Add("a.title ILIKE ?", "%go%")
type WhereBuilder struct {
	conditions []string
	args       []interface{}
}

func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// Add thêm một condition; số "?" phải bằng số args
func (b *WhereBuilder) Add(condition string, args ...interface{}) *WhereBuilder {
	var sb strings.Builder
	argi := 0
	for _, r := range condition {
		if r == '?' && argi < len(args) {
			b.args = append(b.args, args[argi])
			sb.WriteString(fmt.Sprintf("$%d", len(b.args)))
			argi++
			continue
		}
		sb.WriteRune(r)
	}
	b.conditions = append(b.conditions, sb.String())
	return b
}

// Clause trả về "WHERE ..." hoặc "" nếu không có condition
func (b *WhereBuilder) Clause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return "WHERE " + JoinWithAnd(b.conditions)
}

// Args trả về bản copy của args đã gom
func (b *WhereBuilder) Args() []interface{} {
	out := make([]interface{}, len(b.args))
	copy(out, b.args)
	return out
}

// Next trả về placeholder kế tiếp (dùng cho LIMIT/OFFSET sau WHERE)
func (b *WhereBuilder) Next(offset int) string {
	return fmt.Sprintf("$%d", len(b.args)+offset)
}
