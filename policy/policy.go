// Package policy decides what an authenticated caller may see or change.
// Every function here is pure: no store access, no side effects.
package policy

import (
	"go-dms-backend/apperr"
	"go-dms-backend/models"
)

// Field names as they appear in request bodies.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
	FieldOwnerID   = "ownerId"
	FieldRoleType  = "roleType"
)

// canSeeRoleDocuments lists the roles that may read accessType "role" documents.
var canSeeRoleDocuments = map[string]bool{
	models.RoleAdmin:     true,
	models.RoleSuperUser: true,
}

// CanReadDocument reports whether caller may read doc.
func CanReadDocument(caller models.Identity, doc models.Document) bool {
	if caller.IsAdmin() || caller.UserID == doc.OwnerID {
		return true
	}
	switch doc.AccessType {
	case models.AccessPublic:
		return true
	case models.AccessRole:
		return canSeeRoleDocuments[caller.RoleType]
	default:
		return false
	}
}

// CanWriteDocument reports whether caller may update or delete doc.
// Admins get visibility, not mutation.
func CanWriteDocument(caller models.Identity, doc models.Document) bool {
	return caller.UserID == doc.OwnerID
}

// CheckDocumentWrite is CanWriteDocument plus the immutable-field guard,
// returning the reason for a denial.
func CheckDocumentWrite(caller models.Identity, doc models.Document, changed []string, verb string) error {
	if !CanWriteDocument(caller, doc) {
		return apperr.Forbidden("You can " + verb + " only your documents.")
	}
	for _, f := range changed {
		switch f {
		case FieldID:
			return apperr.Forbidden("Document ID cannot be changed.")
		case FieldOwnerID:
			return apperr.Forbidden("Document owner cannot be changed.")
		case FieldCreatedAt, FieldUpdatedAt:
			return apperr.Forbidden(f + " date cannot be changed.")
		}
	}
	return nil
}

// Visibility describes the document listing filter equivalent to
// CanReadDocument, so listings can be filtered (and counted) in the store.
type Visibility struct {
	All       bool // admin: no filter
	OwnerID   uint // own documents are always visible
	RoleScope bool // accessType "role" documents are visible
}

// VisibleDocuments returns the listing filter for caller.
func VisibleDocuments(caller models.Identity) Visibility {
	return Visibility{
		All:       caller.IsAdmin(),
		OwnerID:   caller.UserID,
		RoleScope: canSeeRoleDocuments[caller.RoleType],
	}
}

// ProfileAccess tells which view of a user profile the caller gets.
type ProfileAccess struct {
	FullView bool // id and email included
}

// CanReadUserProfile returns the full view for self and admins, the reduced
// (name and role) view otherwise.
func CanReadUserProfile(caller models.Identity, targetID uint) ProfileAccess {
	return ProfileAccess{FullView: caller.IsAdmin() || caller.UserID == targetID}
}

// CheckUserWrite returns nil when caller may apply changed fields to the
// target user, or a Forbidden error naming the reason.
func CheckUserWrite(caller models.Identity, targetID uint, changed []string) error {
	for _, f := range changed {
		switch f {
		case FieldID:
			return apperr.Forbidden("User ID cannot be updated.")
		case FieldCreatedAt, FieldUpdatedAt:
			return apperr.Forbidden(f + " date cannot be changed.")
		}
	}
	if !caller.IsAdmin() {
		for _, f := range changed {
			if f == FieldRoleType {
				return apperr.Forbidden("You cannot update your role type.")
			}
		}
		if caller.UserID != targetID {
			return apperr.Forbidden("You can update only your profile.")
		}
	}
	return nil
}

// CanWriteUser reports whether caller may apply changed fields to the target user.
func CanWriteUser(caller models.Identity, targetID uint, changed []string) bool {
	return CheckUserWrite(caller, targetID, changed) == nil
}

func CanListUsers(caller models.Identity) bool  { return caller.IsAdmin() }
func CanDeleteUser(caller models.Identity) bool { return caller.IsAdmin() }
func CanCreateRole(caller models.Identity) bool { return caller.IsAdmin() }

// CanViewUserDocuments reports whether caller may list the documents owned by targetID.
func CanViewUserDocuments(caller models.Identity, targetID uint) bool {
	return caller.IsAdmin() || caller.UserID == targetID
}
