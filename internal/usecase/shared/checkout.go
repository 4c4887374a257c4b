package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CheckoutLookup maps gateway transaction ids back to bookings.
type CheckoutLookup interface {
	Remember(ctx context.Context, tranID string, bookingID uuid.UUID, ttl time.Duration) error
	// Resolve reports false when the mapping is unknown or expired.
	Resolve(ctx context.Context, tranID string) (uuid.UUID, bool, error)
}
