//go:build unit

package uow

import (
	"testing"
	"time"

	"localscout-booking/internal/infra"
	"localscout-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestShouldRetry(t *testing.T) {
	serialization := errs.Wrap(&pgconn.PgError{Code: pgErrCodeSerializationFailure}, "confirm booking")
	deadlock := &pgconn.PgError{Code: pgErrCodeDeadlockDetected}
	lostRace := infra.WrapRepoErr(infra.KindConflict, "booking is no longer Approved", nil)

	assert.True(t, shouldRetry(serialization, 0, 3))
	assert.True(t, shouldRetry(deadlock, 2, 3))
	assert.False(t, shouldRetry(deadlock, 3, 3), "attempts exhausted")
	assert.False(t, shouldRetry(lostRace, 0, 3), "a lost compare-and-set is final")
	assert.False(t, shouldRetry(&pgconn.PgError{Code: "23505"}, 0, 3))
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		floor := time.Duration(1<<attempt) * base
		got := calculateBackoff(attempt, base)
		assert.GreaterOrEqual(t, got, floor)
		assert.Less(t, got, floor+floor/5)
	}
}
