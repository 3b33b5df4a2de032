package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	b := NewWhereBuilder().
		Add("a.title ILIKE ?", "%go%").
		Add("EXTRACT(YEAR FROM a.publication_date) = ?", 2021).
		Add("a.id = ANY(?::uuid[])", []string{"x"})

	assert.Equal(t,
		"WHERE a.title ILIKE $1 AND EXTRACT(YEAR FROM a.publication_date) = $2 AND a.id = ANY($3::uuid[])",
		b.Clause())
	assert.Len(t, b.Args(), 3)
	assert.Equal(t, "$4", b.Next(1))
	assert.Equal(t, "$5", b.Next(2))
}

func TestWhereBuilder_Empty(t *testing.T) {
	b := NewWhereBuilder()

	assert.Equal(t, "", b.Clause())
	assert.Empty(t, b.Args())
	assert.Equal(t, "$1", b.Next(1))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "J.R.R. Tolkien", NormalizeName("  J.R.R.   Tolkien "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_a\\b`, EscapeLike(`100%_a\b`))
}

func TestUniqueUUIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	assert.Equal(t, []uuid.UUID{a, b}, UniqueUUIDs([]uuid.UUID{a, b, a, b}))
	assert.Empty(t, UniqueUUIDs(nil))
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	// Ngoài khoảng hợp lệ giữ nguyên để Validate() reject
	page, limit = NormalizePage(-1, 1000)
	assert.Equal(t, -1, page)
	assert.Equal(t, 1000, limit)

	assert.Equal(t, 20, Offset(2, 20))
	assert.Equal(t, 3, TotalPages(41, 20))
	assert.Equal(t, 0, TotalPages(0, 20))
}
