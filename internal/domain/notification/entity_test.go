//go:build unit

package notification_test

import (
	"testing"
	"time"

	"localscout-booking/internal/domain/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	recipient := uuid.New()

	n, err := notification.New(recipient, "  Your booking was approved.  ", now)
	require.NoError(t, err)
	assert.Equal(t, recipient, n.UserID())
	assert.Equal(t, "Your booking was approved.", n.Message())
	assert.False(t, n.IsRead())
	assert.Equal(t, now, n.CreatedAt())

	_, err = notification.New(uuid.Nil, "hello", now)
	require.ErrorIs(t, err, notification.ErrRecipientRequired)

	_, err = notification.New(recipient, "   ", now)
	require.ErrorIs(t, err, notification.ErrMessageRequired)
}

func TestNotification_MarkRead(t *testing.T) {
	recipient := uuid.New()
	n := notification.Reconstruct(uuid.New(), recipient, "hi", false, time.Now())

	_, err := n.MarkRead(uuid.New())
	require.ErrorIs(t, err, notification.ErrNotRecipient)
	assert.False(t, n.IsRead())

	changed, err := n.MarkRead(recipient)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, n.IsRead())

	changed, err = n.MarkRead(recipient)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, n.IsRead())
}
