package domain

import (
	"fmt"
	"time"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
)

// Role is a capability granted to a user.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// allowedRoles is the closed set of roles accepted at the boundary.
var allowedRoles = map[Role]struct{}{
	RoleBuyer:  {},
	RoleSeller: {},
}

// ValidateRoles checks every role against the allowed set.
func ValidateRoles(roles []Role) error {
	if len(roles) == 0 {
		return fmt.Errorf("%w: at least one role is required", apperrors.ErrValidation)
	}
	for _, role := range roles {
		if _, ok := allowedRoles[role]; !ok {
			return fmt.Errorf("%w: invalid role %q, allowed roles are %q and %q",
				apperrors.ErrValidation, role, RoleBuyer, RoleSeller)
		}
	}
	return nil
}

// User represents a marketplace user in the domain.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	Roles        []Role `json:"roles"`
	PasswordHash string `json:"-"`
	Disabled     bool   `json:"disabled"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// HasRole reports whether the user carries the given role.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsBuyer reports whether the user may create deposits and buy products.
func (u User) IsBuyer() bool { return u.HasRole(RoleBuyer) }

// IsSeller reports whether the user may manage products.
func (u User) IsSeller() bool { return u.HasRole(RoleSeller) }
