//go:build unit

package pgconv_test

import (
	"testing"
	"time"

	"localscout-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestNullableConversions(t *testing.T) {
	assert.False(t, pgconv.TextOrNull("").Valid)
	assert.Equal(t, "", pgconv.StringFromPgtype(pgtype.Text{}))
	assert.Equal(t, "note", pgconv.StringFromPgtype(pgconv.TextOrNull("note")))

	assert.Nil(t, pgconv.Int64PtrFromPgtype(pgconv.Int64PtrToPgtype(nil)))
	v := int64(45000)
	got := pgconv.Int64PtrFromPgtype(pgconv.Int64PtrToPgtype(&v))
	if assert.NotNil(t, got) {
		assert.Equal(t, v, *got)
	}

	assert.False(t, pgconv.UUIDToPgtype(uuid.Nil).Valid)
	id := uuid.New()
	assert.Equal(t, id, pgconv.UUIDFromPgtype(pgconv.UUIDToPgtype(id)))

	assert.False(t, pgconv.TimeToPgtype(time.Time{}).Valid)
	local := time.Date(2025, 3, 10, 14, 0, 0, 0, time.FixedZone("BST", 6*3600))
	assert.Equal(t, time.UTC, pgconv.TimeFromPgtype(pgconv.TimeToPgtype(local)).Location())
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.False(t, pgconv.IsNoRows(nil))
}
