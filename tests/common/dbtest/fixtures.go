//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"localscout-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateTestUser mirrors a user from the identity service. Providers get a business name.
func CreateTestUser(t *testing.T, db DBLike, p user.Profile) uuid.UUID {
	t.Helper()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Email == "" {
		p.Email = p.ID.String() + "@example.com"
	}

	_, err := db.Exec(context.Background(),
		`INSERT INTO users (id, email, phone, first_name, last_name, business_name, role)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)`,
		p.ID, p.Email, p.Phone, p.FirstName, p.LastName, p.BusinessName, string(p.Role))
	require.NoError(t, err)
	return p.ID
}

type ServiceFixture struct {
	ProviderID   uuid.UUID
	Name         string
	PriceMinor   int64
	IsNegotiable bool
	Inactive     bool
}

func CreateTestService(t *testing.T, db DBLike, f ServiceFixture) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO provider_services (id, provider_id, service_name, price_minor, is_negotiable, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, f.ProviderID, f.Name, f.PriceMinor, f.IsNegotiable, !f.Inactive)
	require.NoError(t, err)
	return id
}

// BookingStatus reads the stored status straight from the table.
func BookingStatus(t *testing.T, db DBLike, id uuid.UUID) (status, paymentRef string) {
	t.Helper()

	var ref *string
	err := db.QueryRow(context.Background(),
		"SELECT status, payment_reference FROM bookings WHERE id = $1", id).Scan(&status, &ref)
	require.NoError(t, err)
	if ref != nil {
		paymentRef = *ref
	}
	return status, paymentRef
}

func CountNotifications(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1", userID).Scan(&n)
	require.NoError(t, err)
	return n
}

// Children first; CASCADE covers anything added later with a FK into these.
var lifecycleTables = []string{"notifications", "bookings", "provider_services", "users"}

// ResetDB empties every table the booking lifecycle touches.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(lifecycleTables, ", ")+" CASCADE"); err != nil {
		return fmt.Errorf("reset test database: %w", err)
	}
	return nil
}
