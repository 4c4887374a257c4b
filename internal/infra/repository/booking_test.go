//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/infra"
	"localscout-booking/internal/infra/repository"
	"localscout-booking/tests/common/builder"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDBTX struct {
	mock.Mock
}

func (m *mockDBTX) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	called := m.Called(ctx, sql, args)
	return called.Get(0).(pgconn.CommandTag), called.Error(1)
}

func (m *mockDBTX) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("not used by write repositories")
}

func (m *mockDBTX) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("not used by write repositories")
}

// =============================================================================
// Create Booking Tests
// =============================================================================

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		execErr    error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: booking inserted"},
		{
			name:       "error: duplicate id",
			execErr:    &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name:       "error: unknown service",
			execErr:    &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"},
			expectKind: infra.KindForeignKeyViolated,
		},
		{
			name:       "error: connection lost",
			execErr:    errors.New("connection reset by peer"),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dbtx := &mockDBTX{}
			dbtx.On("Exec", ctx, mock.Anything, mock.Anything).
				Return(pgconn.NewCommandTag("INSERT 0 1"), tc.execErr).Once()

			b, err := builder.NewBookingBuilder().BuildDomain()
			require.NoError(t, err)

			err = repository.NewBookingRepository().Create(ctx, dbtx, b)

			if tc.expectKind == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
			}
			dbtx.AssertExpectations(t)
		})
	}
}

// =============================================================================
// UpdateStatus Tests
// =============================================================================

func TestBookingRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		tag        string
		execErr    error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: row matched expected status", tag: "UPDATE 1"},
		{name: "error: status changed concurrently", tag: "UPDATE 0", expectKind: infra.KindConflict},
		{name: "error: database failure", tag: "", execErr: errors.New("timeout"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingBuilder().BuildReconstructed()
			require.NoError(t, b.Approve(b.ProviderID(), b.CreatedAt()))

			dbtx := &mockDBTX{}
			dbtx.On("Exec", ctx, mock.Anything, mock.MatchedBy(func(args []any) bool {
				// last argument is the expected status of the CAS predicate
				return len(args) == 8 &&
					args[1] == booking.StatusApproved.String() &&
					args[7] == booking.StatusPendingApproval.String()
			})).Return(pgconn.NewCommandTag(tc.tag), tc.execErr).Once()

			err := repository.NewBookingRepository().UpdateStatus(ctx, dbtx, b, booking.StatusPendingApproval)

			if tc.expectKind == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
			}
			dbtx.AssertExpectations(t)
		})
	}
}
