//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"localscout-booking/internal/domain/user"
	"localscout-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)
	id := uuid.New()

	token, err := svc.GenerateToken(id, user.RoleProvider)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "provider", claims.Role)
}

func TestService_ValidateToken_Rejects(t *testing.T) {
	issuer := jwt.NewService("secret", time.Hour)
	token, err := issuer.GenerateToken(uuid.New(), user.RoleCustomer)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := jwt.NewService("other", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := jwt.NewService("secret", -time.Minute).GenerateToken(uuid.New(), user.RoleCustomer)
		require.NoError(t, err)
		_, err = issuer.ValidateToken(expired)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

func TestService_Issuer(t *testing.T) {
	local := jwt.NewService("secret", time.Hour, jwt.WithIssuer("localscout-identity"))
	token, err := local.GenerateToken(uuid.New(), user.RoleCustomer)
	require.NoError(t, err)

	t.Run("matching issuer", func(t *testing.T) {
		_, err := local.ValidateToken(token)
		assert.NoError(t, err)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		foreign, err := jwt.NewService("secret", time.Hour, jwt.WithIssuer("someone-else")).
			GenerateToken(uuid.New(), user.RoleCustomer)
		require.NoError(t, err)
		_, err = local.ValidateToken(foreign)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("leeway accepts recently expired token", func(t *testing.T) {
		stale, err := jwt.NewService("secret", -time.Second).GenerateToken(uuid.New(), user.RoleProvider)
		require.NoError(t, err)
		_, err = jwt.NewService("secret", time.Hour, jwt.WithLeeway(time.Minute)).ValidateToken(stale)
		assert.NoError(t, err)
	})
}
