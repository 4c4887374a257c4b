//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"localscout-booking/internal/domain/user"
	"localscout-booking/internal/pkg/config"
	"localscout-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the external identity service does.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	return h.mint(t, duration, userID, role)
}

// CreateExpiredToken returns a token that expired well outside the configured leeway.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	return h.mint(t, -(h.cfg.Leeway + time.Hour), userID, role)
}

func (h *JWTHelper) mint(t *testing.T, ttl time.Duration, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, ttl, jwt.WithIssuer(h.cfg.Issuer)).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
