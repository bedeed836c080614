// user.go - Defines the User model for the database

package models // Declares the package name

import "time"

type User struct { // User struct represents a user in the database
	ID        uint      `gorm:"primaryKey" json:"id"`                                  // Unique user ID (primary key)
	FullName  string    `gorm:"not null" json:"fullName"`                              // Display name (letters and spaces)
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`                     // User's email (unique, stored lower-case)
	Password  string    `gorm:"not null" json:"-"`                                     // Bcrypt hash, never serialized
	RoleType  string    `gorm:"not null;index;default:'regular user'" json:"roleType"` // References roles.role_type
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Role      Role      `gorm:"foreignKey:RoleType;references:RoleType;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"` // Must name an existing role
}

// Identity is the authenticated caller of a request, decoded from its token.
type Identity struct {
	UserID    uint
	RoleType  string
	TokenID   string    // jti of the presented token, used for revocation
	ExpiresAt time.Time // expiry of the presented token
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool { return i.RoleType == RoleAdmin }
