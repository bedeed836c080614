// role.go - Defines the Role model (static reference data seeded at startup)

package models

import "time"

const (
	RoleAdmin     = "admin"
	RoleSuperUser = "super user"
	RoleRegular   = "regular user"
)

// DefaultRoles are seeded into the roles table on every start.
var DefaultRoles = []string{RoleAdmin, RoleSuperUser, RoleRegular}

type Role struct {
	RoleType  string    `gorm:"primaryKey;size:50" json:"roleType"` // Role name is the key users reference
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
