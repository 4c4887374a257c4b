//go:build unit

package repository_test

import (
	"context"
	"testing"

	"localscout-booking/internal/infra"
	"localscout-booking/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("success: recipient row updated", func(t *testing.T) {
		dbtx := &mockDBTX{}
		dbtx.On("Exec", ctx, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 1"), nil).Once()

		err := repository.NewNotificationRepository().MarkRead(ctx, dbtx, uuid.New(), uuid.New())
		require.NoError(t, err)
	})

	t.Run("error: no row for this recipient", func(t *testing.T) {
		dbtx := &mockDBTX{}
		dbtx.On("Exec", ctx, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 0"), nil).Once()

		err := repository.NewNotificationRepository().MarkRead(ctx, dbtx, uuid.New(), uuid.New())
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
