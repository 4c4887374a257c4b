package user

import (
	"strings"

	"github.com/google/uuid"
)

// Profile is the slice of an identity record that booking flows need.
// Users are owned by the identity service and only read here.
type Profile struct {
	ID           uuid.UUID
	Email        string
	Phone        string
	FirstName    string
	LastName     string
	BusinessName string
	Role         Role
}

// DisplayName prefers the business name, then the full name, then the email.
func (p Profile) DisplayName() string {
	if name := strings.TrimSpace(p.BusinessName); name != "" {
		return name
	}
	if name := strings.TrimSpace(p.FirstName + " " + p.LastName); name != "" {
		return name
	}
	return p.Email
}
