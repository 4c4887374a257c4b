//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"localscout-booking/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapPgErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, kind: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, kind: infra.KindDuplicateKey},
		{name: "fk violation", err: &pgconn.PgError{Code: "23503"}, kind: infra.KindForeignKeyViolated},
		{name: "anything else", err: errors.New("connection reset"), kind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := infra.WrapPgErr("load booking", tt.err)
			assert.True(t, infra.IsKind(err, tt.kind))
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), "load booking")
		})
	}
}

func TestIsKind(t *testing.T) {
	err := infra.WrapRepoErr(infra.KindConflict, "stale status", nil)
	assert.True(t, infra.IsKind(err, infra.KindConflict))
	assert.False(t, infra.IsKind(err, infra.KindNotFound))
	assert.False(t, infra.IsKind(errors.New("plain"), infra.KindConflict))
}
