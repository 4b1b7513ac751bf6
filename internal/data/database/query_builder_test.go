package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery_Basic(t *testing.T) {
	opts := NewListQueryOptions("spotlights",
		WithColumns("id", "title"),
		WithLimit(10),
		WithOffset(20),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t, `SELECT "id", "title" FROM "spotlights" LIMIT $1 OFFSET $2`, query)
	assert.Equal(t, []any{10, 20}, args)
}

func TestBuildListQuery_Conditions(t *testing.T) {
	opts := NewListQueryOptions("spotlights",
		WithColumns("id"),
		WithCondition(WhereCond("status", Equal, "published")),
		WithCondition(WhereCond("title", ILike, "%drop%")),
		WithOrderBy("created_at", "desc"),
		WithLimit(5),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t,
		`SELECT "id" FROM "spotlights" WHERE "status" = $1 AND "title" ILIKE $2 ORDER BY "created_at" DESC LIMIT $3`,
		query)
	assert.Equal(t, []any{"published", "%drop%", 5}, args)
}

func TestBuildListQuery_InCondition(t *testing.T) {
	opts := NewListQueryOptions("spotlights",
		WithCondition(WhereCond("status", In, []string{"published", "featured"})),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t, `SELECT * FROM "spotlights" WHERE "status" IN ($1, $2)`, query)
	assert.Equal(t, []any{"published", "featured"}, args)
}

func TestBuildListQuery_EmptyInSkipped(t *testing.T) {
	opts := NewListQueryOptions("spotlights",
		WithCondition(WhereCond("status", In, []string{})),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t, `SELECT * FROM "spotlights"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_CountOnly(t *testing.T) {
	opts := NewListQueryOptions("spotlights",
		WithCountOnly(),
		WithCondition(WhereCond("creator_subject", Equal, "u-1")),
		WithLimit(10),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t, `SELECT COUNT(*) FROM "spotlights" WHERE "creator_subject" = $1`, query)
	assert.Equal(t, []any{"u-1"}, args)
}

func TestBuildListQuery_SanitizesIdentifiers(t *testing.T) {
	opts := NewListQueryOptions(`spot"lights`,
		WithColumns(`ti"tle`),
		WithOrderBy(`cre"ated`, "bogus"),
	)
	query, _ := BuildListQuery(opts)
	assert.NotContains(t, query, `spot"lights`)
	assert.NotContains(t, query, "bogus", "invalid direction dropped")
}

func TestBuildListQuery_NilOptions(t *testing.T) {
	query, args := BuildListQuery(nil)
	assert.Empty(t, query)
	assert.Nil(t, args)
}
