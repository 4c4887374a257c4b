package readstore

import (
	"context"

	"localscout-booking/internal/domain/user"
	"localscout-booking/internal/infra"
	"localscout-booking/internal/infra/db"
	"localscout-booking/internal/pkg/pgconv"
	"localscout-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Services and users are owned by the catalog and identity services.
// This store only reads the columns booking flows need.

const getServiceSQL = `
SELECT id, provider_id, service_name, price_minor, is_negotiable, is_active
FROM provider_services
WHERE id = $1`

const getUserProfileSQL = `
SELECT id, email, phone, first_name, last_name, business_name, role
FROM users
WHERE id = $1`

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

func (r *CatalogReadStore) ServiceByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	var (
		sid, providerID pgtype.UUID
		snap            shared.ServiceSnapshot
	)
	err := r.db.QueryRow(ctx, getServiceSQL, pgconv.UUIDToPgtype(id)).
		Scan(&sid, &providerID, &snap.Name, &snap.PriceMinor, &snap.IsNegotiable, &snap.IsActive)
	if err != nil {
		return nil, infra.WrapPgErr("failed to find service by ID", err)
	}
	snap.ID = pgconv.UUIDFromPgtype(sid)
	snap.ProviderID = pgconv.UUIDFromPgtype(providerID)
	return &snap, nil
}

func (r *CatalogReadStore) UserByID(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	var (
		uid                                     pgtype.UUID
		phone, firstName, lastName, businessName pgtype.Text
		email, role                             string
	)
	err := r.db.QueryRow(ctx, getUserProfileSQL, pgconv.UUIDToPgtype(id)).
		Scan(&uid, &email, &phone, &firstName, &lastName, &businessName, &role)
	if err != nil {
		return nil, infra.WrapPgErr("failed to find user by ID", err)
	}
	return &user.Profile{
		ID:           pgconv.UUIDFromPgtype(uid),
		Email:        email,
		Phone:        pgconv.StringFromPgtype(phone),
		FirstName:    pgconv.StringFromPgtype(firstName),
		LastName:     pgconv.StringFromPgtype(lastName),
		BusinessName: pgconv.StringFromPgtype(businessName),
		Role:         user.Role(role),
	}, nil
}
