package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"go-dms-backend/apperr"
	"go-dms-backend/config"
	"go-dms-backend/models"
	"go-dms-backend/pagination"
	"go-dms-backend/policy"
)

// DocumentService handles document CRUD, listing and search.
type DocumentService struct {
	base
}

func NewDocumentService(db *gorm.DB, cfg *config.Config, log logrus.FieldLogger) *DocumentService {
	return &DocumentService{base: newBase(db, cfg, log)}
}

// DocumentInput is the body of a create request.
type DocumentInput struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
	AccessType string `json:"accessType" validate:"oneof=public private role"`
}

// DocumentUpdate holds the fields a caller asked to change; Fields lists
// every top-level key of the request body.
type DocumentUpdate struct {
	Title      *string  `json:"title"`
	Content    *string  `json:"content"`
	AccessType *string  `json:"accessType"`
	Fields     []string `json:"-"`
}

// Create stores a new document owned by caller.
func (s *DocumentService) Create(ctx context.Context, caller models.Identity, in DocumentInput) (models.Document, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.AccessType = strings.TrimSpace(in.AccessType)
	if in.AccessType == "" {
		in.AccessType = models.AccessPublic
	}
	if err := validateStruct(in); err != nil {
		return models.Document{}, err
	}

	db, cancel := s.store(ctx)
	defer cancel()

	doc := models.Document{
		Title:      in.Title,
		Content:    in.Content,
		AccessType: in.AccessType,
		OwnerID:    caller.UserID,
	}
	if err := db.Create(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			// The token outlived its user.
			return models.Document{}, apperr.Unauthenticated("User no longer exists.")
		}
		return models.Document{}, s.storeError("create document", err, "", "")
	}
	return doc, nil
}

// visibleTo restricts a document query to what caller may read.
func visibleTo(caller models.Identity) func(*gorm.DB) *gorm.DB {
	v := policy.VisibleDocuments(caller)
	return func(db *gorm.DB) *gorm.DB {
		if v.All {
			return db
		}
		access := []string{models.AccessPublic}
		if v.RoleScope {
			access = append(access, models.AccessRole)
		}
		return db.Where("(access_type IN ? OR owner_id = ?)", access, v.OwnerID)
	}
}

// List returns a page of the documents caller may read.
func (s *DocumentService) List(ctx context.Context, caller models.Identity, params pagination.Params) (Page[models.Document], error) {
	return s.page(ctx, "list documents", params, visibleTo(caller))
}

// Search matches q case-insensitively against the titles of documents caller may read.
func (s *DocumentService) Search(ctx context.Context, caller models.Identity, q string, params pagination.Params) (Page[models.Document], error) {
	q, err := searchQuery(q)
	if err != nil {
		return Page[models.Document]{}, err
	}
	pattern := likePattern(q)
	visible := visibleTo(caller)
	return s.page(ctx, "search documents", params, func(db *gorm.DB) *gorm.DB {
		return visible(db).Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern)
	})
}

// ListByOwner returns a page of the documents owned by ownerID. Only the
// owner and admins may call it.
func (s *DocumentService) ListByOwner(ctx context.Context, caller models.Identity, ownerID uint, params pagination.Params) (Page[models.Document], error) {
	if !policy.CanViewUserDocuments(caller, ownerID) {
		return Page[models.Document]{}, apperr.Forbidden("You cannot view another user documents.")
	}

	db, cancel := s.store(ctx)
	defer cancel()
	var owner models.User
	if err := db.Select("id").First(&owner, ownerID).Error; err != nil {
		return Page[models.Document]{}, s.storeError("get user", err, "No such user.", "")
	}

	return s.page(ctx, "list user documents", params, func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	})
}

func (s *DocumentService) page(ctx context.Context, op string, params pagination.Params, filter func(*gorm.DB) *gorm.DB) (Page[models.Document], error) {
	db, cancel := s.store(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&models.Document{}).Scopes(filter).Count(&count).Error; err != nil {
		return Page[models.Document]{}, s.storeError(op, err, "", "")
	}
	var docs []models.Document
	if err := db.Scopes(filter).Order("id").Limit(params.Limit).Offset(params.Offset).Find(&docs).Error; err != nil {
		return Page[models.Document]{}, s.storeError(op, err, "", "")
	}
	return newPage(params, count, docs), nil
}

func (s *DocumentService) find(db *gorm.DB, id uint) (models.Document, error) {
	var doc models.Document
	if err := db.First(&doc, id).Error; err != nil {
		return models.Document{}, s.storeError("get document", err, "Document does not exist.", "")
	}
	return doc, nil
}

// Get returns document id if caller may read it.
func (s *DocumentService) Get(ctx context.Context, caller models.Identity, id uint) (models.Document, error) {
	db, cancel := s.store(ctx)
	defer cancel()

	doc, err := s.find(db, id)
	if err != nil {
		return models.Document{}, err
	}
	if !policy.CanReadDocument(caller, doc) {
		return models.Document{}, apperr.Forbidden("Private document.")
	}
	return doc, nil
}

// Update changes title, content or access type of a document caller owns.
func (s *DocumentService) Update(ctx context.Context, caller models.Identity, id uint, in DocumentUpdate) (models.Document, error) {
	db, cancel := s.store(ctx)
	defer cancel()

	doc, err := s.find(db, id)
	if err != nil {
		return models.Document{}, err
	}
	if err := policy.CheckDocumentWrite(caller, doc, in.Fields, "update"); err != nil {
		return models.Document{}, err
	}

	if in.Title != nil {
		if doc.Title = strings.TrimSpace(*in.Title); doc.Title == "" {
			return models.Document{}, apperr.Validation("title field cannot be empty.")
		}
	}
	if in.Content != nil {
		if doc.Content = strings.TrimSpace(*in.Content); doc.Content == "" {
			return models.Document{}, apperr.Validation("content field cannot be empty.")
		}
	}
	if in.AccessType != nil {
		if doc.AccessType = strings.TrimSpace(*in.AccessType); !models.ValidAccessType(doc.AccessType) {
			return models.Document{}, apperr.Validation("accessType must be one of: public, private, role.")
		}
	}

	if err := db.Save(&doc).Error; err != nil {
		return models.Document{}, s.storeError("update document", err, "", "")
	}
	return doc, nil
}

// Delete removes a document caller owns.
func (s *DocumentService) Delete(ctx context.Context, caller models.Identity, id uint) error {
	db, cancel := s.store(ctx)
	defer cancel()

	doc, err := s.find(db, id)
	if err != nil {
		return err
	}
	if err := policy.CheckDocumentWrite(caller, doc, nil, "delete"); err != nil {
		return err
	}
	if err := db.Delete(&doc).Error; err != nil {
		return s.storeError("delete document", err, "", "")
	}
	return nil
}
