package shared

import (
	"localscout-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// Write-side view of a catalog entry, owned by the catalog service.
type ServiceSnapshot struct {
	ID           uuid.UUID
	ProviderID   uuid.UUID
	Name         string
	PriceMinor   int64
	IsNegotiable bool
	IsActive     bool
}

func (s *ServiceSnapshot) Spec() (booking.ServiceSpec, error) {
	price, err := booking.NewMoney(s.PriceMinor)
	if err != nil {
		return booking.ServiceSpec{}, err
	}
	return booking.ServiceSpec{
		ID:           s.ID,
		ProviderID:   s.ProviderID,
		Name:         s.Name,
		Price:        price,
		IsNegotiable: s.IsNegotiable,
	}, nil
}
