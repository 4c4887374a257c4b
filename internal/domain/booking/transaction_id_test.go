//go:build unit

package booking_test

import (
	"strings"
	"testing"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionID_RoundTrip(t *testing.T) {
	id := uuid.New()

	tranID := booking.NewTransactionID(id)
	assert.True(t, strings.HasPrefix(tranID, "LS_"))
	assert.Equal(t, 2, strings.Count(tranID, "_"))
	assert.Contains(t, tranID, strings.ReplaceAll(id.String(), "-", ""))

	parsed, err := booking.ParseTransactionID(tranID)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestTransactionID_UniquePerAttempt(t *testing.T) {
	id := uuid.New()
	assert.NotEqual(t, booking.NewTransactionID(id), booking.NewTransactionID(id))
}

func TestParseTransactionID_Malformed(t *testing.T) {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	cases := []string{
		"",
		"LS_" + id,
		"XX_" + id + "_abcd1234",
		"LS_" + id + "_",
		"LS_" + uuid.NewString() + "_abcd1234",
		"LS_" + strings.Repeat("z", 32) + "_abcd1234",
		"LS_" + id + "_abcd_1234",
	}
	for _, tc := range cases {
		t.Run(tc, func(t *testing.T) {
			_, err := booking.ParseTransactionID(tc)
			require.Error(t, err)
			assert.True(t, errs.Is(err, booking.ErrMalformedTransactionID))
		})
	}
}
