package model

import "time"

type Role string

const (
	RoleBoss      Role = "boss"
	RoleSecretary Role = "secretary"
	RoleViewer    Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBoss, RoleSecretary, RoleViewer:
		return true
	}
	return false
}

// UserRole maps a chat-platform user to their role in the unit.
type UserRole struct {
	UserID      string    `db:"user_id" json:"user_id"`
	Role        Role      `db:"role" json:"role"`
	DisplayName *string   `db:"display_name" json:"display_name,omitempty"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type SetRoleRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Role        string `json:"role" binding:"required"`
	DisplayName string `json:"display_name"`
}
