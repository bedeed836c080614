package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"go-dms-backend/apperr"
	"go-dms-backend/config"
	"go-dms-backend/models"
	"go-dms-backend/policy"
)

// RoleService manages the role reference data.
type RoleService struct {
	base
}

func NewRoleService(db *gorm.DB, cfg *config.Config, log logrus.FieldLogger) *RoleService {
	return &RoleService{base: newBase(db, cfg, log)}
}

// RoleInput is the body of a create-role request.
type RoleInput struct {
	RoleType string `json:"roleType" validate:"required,min=2,max=50,letters_spaces"`
}

// Create adds a role. Admin only.
func (s *RoleService) Create(ctx context.Context, caller models.Identity, in RoleInput) (models.Role, error) {
	if !policy.CanCreateRole(caller) {
		return models.Role{}, apperr.Forbidden("No authorization.")
	}
	in.RoleType = strings.TrimSpace(in.RoleType)
	if err := validateStruct(in); err != nil {
		return models.Role{}, err
	}

	db, cancel := s.store(ctx)
	defer cancel()

	var existing int64
	if err := db.Model(&models.Role{}).Where("role_type = ?", in.RoleType).Count(&existing).Error; err != nil {
		return models.Role{}, s.storeError("count roles", err, "", "")
	}
	if existing > 0 {
		return models.Role{}, apperr.Conflict("This Role already exists!")
	}

	role := models.Role{RoleType: in.RoleType}
	if err := db.Create(&role).Error; err != nil {
		return models.Role{}, s.storeError("create role", err, "", "This Role already exists!")
	}
	return role, nil
}

// List returns every role.
func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	db, cancel := s.store(ctx)
	defer cancel()

	roles := []models.Role{}
	if err := db.Order("role_type").Find(&roles).Error; err != nil {
		return nil, s.storeError("list roles", err, "", "")
	}
	return roles, nil
}
