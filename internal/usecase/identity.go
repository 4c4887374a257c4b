package usecase

import (
	"localscout-booking/internal/domain/user"
	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Identity is the caller resolved from an access token. Marketplace accounts
// live in the identity service; this service only trusts its tokens.
type Identity struct {
	UserID uuid.UUID
	Role   user.Role
}

type Authenticator interface {
	Authenticate(token string) (Identity, error)
}

type jwtAuthenticator struct {
	jwtService *jwt.Service
}

func NewAuthenticator(jwtService *jwt.Service) Authenticator {
	return &jwtAuthenticator{jwtService: jwtService}
}

func (a *jwtAuthenticator) Authenticate(token string) (Identity, error) {
	claims, err := a.jwtService.ValidateToken(token)
	if err != nil {
		return Identity{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Identity{}, errs.Wrapf(err, "token for %s", claims.UserID)
	}

	return Identity{UserID: claims.UserID, Role: role}, nil
}
