//go:build unit || e2e

package builder

import (
	"localscout-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	Phone        string
	FirstName    string
	LastName     string
	BusinessName string
	Role         user.Role
}

func NewCustomerBuilder() *UserBuilder {
	return &UserBuilder{
		ID:        uuid.New(),
		Email:     "rahim@example.com",
		Phone:     "+8801711000000",
		FirstName: "Rahim",
		LastName:  "Uddin",
		Role:      user.RoleCustomer,
	}
}

func NewProviderBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "sparkle@example.com",
		Phone:        "+8801811000000",
		FirstName:    "Karim",
		LastName:     "Hossain",
		BusinessName: "Sparkle Cleaners",
		Role:         user.RoleProvider,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	u.ID = id
	return u
}

// Build methods
func (u *UserBuilder) BuildProfile() user.Profile {
	return user.Profile{
		ID:           u.ID,
		Email:        u.Email,
		Phone:        u.Phone,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		BusinessName: u.BusinessName,
		Role:         u.Role,
	}
}
