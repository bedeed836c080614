// document.go - Defines the Document model and its access types

package models

import "time"

const (
	AccessPublic  = "public"  // readable by anyone authenticated
	AccessPrivate = "private" // owner and admins
	AccessRole    = "role"    // owner, super users and admins
)

// ValidAccessType reports whether s is one of the three access types.
func ValidAccessType(s string) bool {
	switch s {
	case AccessPublic, AccessPrivate, AccessRole:
		return true
	}
	return false
}

type Document struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	AccessType string    `gorm:"not null;default:'public'" json:"accessType"`
	OwnerID    uint      `gorm:"not null;index" json:"ownerId"` // Foreign key to users table
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Owner      User      `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
