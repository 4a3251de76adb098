package domain

import "github.com/google/uuid"

// Role of the acting user as resolved by the surrounding application.
// The engine trusts it but still checks ownership against entity fields.
type Role string

const (
	RoleCreator Role = "creator"
	RoleBrand   Role = "brand"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCreator, RoleBrand, RoleAdmin:
		return true
	}
	return false
}

// Actor identifies the calling user for a lifecycle transition.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// Is reports whether the actor is the given user or an admin.
func (a Actor) Is(userID uuid.UUID) bool {
	return a.Role == RoleAdmin || a.ID == userID
}
