package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type Role string

const (
	RoleBuyer     Role = "buyer"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleBuyer, RoleOrganizer, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) CanCancelAnyTicket() bool {
	return r == RoleAdmin
}

func (r Role) CanViewAnyTicket() bool {
	return r == RoleAdmin
}

func (r Role) CanValidateTickets() bool {
	return r == RoleOrganizer || r == RoleAdmin
}

// Principal is the authenticated caller of an inventory operation.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}
