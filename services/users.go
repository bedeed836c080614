package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"go-dms-backend/apperr"
	"go-dms-backend/config"
	"go-dms-backend/models"
	"go-dms-backend/pagination"
	"go-dms-backend/policy"
)

// TokenIssuer signs and revokes bearer tokens.
type TokenIssuer interface {
	Issue(user models.User) (string, error)
	Revoke(ctx context.Context, id models.Identity) error
}

// UserService handles signup, login and user profile operations.
type UserService struct {
	base
	tokens     TokenIssuer
	bcryptCost int
}

func NewUserService(db *gorm.DB, cfg *config.Config, tokens TokenIssuer, log logrus.FieldLogger) *UserService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{base: newBase(db, cfg, log), tokens: tokens, bcryptCost: cost}
}

// SignupInput is the body of a signup request.
type SignupInput struct {
	FullName string `json:"fullName" validate:"required,letters_spaces"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginInput is the body of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate holds the allow-listed profile fields a caller asked to change.
// Fields lists every top-level key present in the request body, including
// ones that are never writable, so policy can reject them.
type UserUpdate struct {
	FullName *string  `json:"fullName"`
	Email    *string  `json:"email"`
	Password *string  `json:"password"`
	RoleType *string  `json:"roleType"`
	Fields   []string `json:"-"`
}

// changed merges the body keys with the fields that carry a value.
func (in UserUpdate) changed() []string {
	fields := append([]string(nil), in.Fields...)
	for name, set := range map[string]bool{
		"fullName":           in.FullName != nil,
		"email":              in.Email != nil,
		"password":           in.Password != nil,
		policy.FieldRoleType: in.RoleType != nil,
	} {
		if set {
			fields = append(fields, name)
		}
	}
	return fields
}

// UserView is a user as returned to a caller. ID and Email are omitted from
// the reduced view.
type UserView struct {
	ID       uint   `json:"id,omitempty"`
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	RoleType string `json:"roleType"`
}

func userView(u models.User, full bool) UserView {
	v := UserView{FullName: u.FullName, RoleType: u.RoleType}
	if full {
		v.ID, v.Email = u.ID, u.Email
	}
	return v
}

func userViews(users []models.User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, userView(u, true))
	}
	return out
}

// hashPassword is the explicit hashing step run before any user row is written.
func (s *UserService) hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.Validation("password must be at most 72 bytes.")
	}
	if err != nil {
		return "", apperr.Internal(err)
	}
	return string(hash), nil
}

// Create registers a new regular user.
func (s *UserService) Create(ctx context.Context, in SignupInput) (UserView, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return UserView{}, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return UserView{}, err
	}

	db, cancel := s.store(ctx)
	defer cancel()

	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", in.Email).Count(&existing).Error; err != nil {
		return UserView{}, s.storeError("count users by email", err, "", "")
	}
	if existing > 0 {
		return UserView{}, apperr.Conflict("User already exists!")
	}

	user := models.User{
		FullName: in.FullName,
		Email:    in.Email,
		Password: hash,
		RoleType: models.RoleRegular,
	}
	if err := db.Create(&user).Error; err != nil {
		return UserView{}, s.storeError("create user", err, "", "User already exists!")
	}

	s.log.WithField("user_id", user.ID).Info("user signed up")
	return userView(user, true), nil
}

// Login checks credentials and returns a signed token.
func (s *UserService) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return "", err
	}

	db, cancel := s.store(ctx)
	defer cancel()

	var user models.User
	if err := db.Where("email = ?", in.Email).First(&user).Error; err != nil {
		return "", s.storeError("find user by email", err, "Cannot find user.", "")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", apperr.Unauthenticated("Password mismatch.")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}

// Logout revokes the token the caller authenticated with.
func (s *UserService) Logout(ctx context.Context, caller models.Identity) error {
	return s.tokens.Revoke(ctx, caller)
}

// List returns a page of all users. Admin only.
func (s *UserService) List(ctx context.Context, caller models.Identity, params pagination.Params) (Page[UserView], error) {
	if !policy.CanListUsers(caller) {
		return Page[UserView]{}, apperr.Forbidden("No authorization.")
	}
	return s.page(ctx, "list users", params, func(db *gorm.DB) *gorm.DB { return db })
}

// Search matches q case-insensitively against full name or email. Admin only.
func (s *UserService) Search(ctx context.Context, caller models.Identity, q string, params pagination.Params) (Page[UserView], error) {
	if !policy.CanListUsers(caller) {
		return Page[UserView]{}, apperr.Forbidden("No authorization.")
	}
	q, err := searchQuery(q)
	if err != nil {
		return Page[UserView]{}, err
	}
	pattern := likePattern(q)
	return s.page(ctx, "search users", params, func(db *gorm.DB) *gorm.DB {
		return db.Where(`(LOWER(full_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\')`, pattern, pattern)
	})
}

func (s *UserService) page(ctx context.Context, op string, params pagination.Params, filter func(*gorm.DB) *gorm.DB) (Page[UserView], error) {
	db, cancel := s.store(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&models.User{}).Scopes(filter).Count(&count).Error; err != nil {
		return Page[UserView]{}, s.storeError(op, err, "", "")
	}
	var users []models.User
	if err := db.Scopes(filter).Order("id").Limit(params.Limit).Offset(params.Offset).Find(&users).Error; err != nil {
		return Page[UserView]{}, s.storeError(op, err, "", "")
	}
	return newPage(params, count, userViews(users)), nil
}

// Get returns the full profile to the user themself and admins, the reduced
// profile to everyone else.
func (s *UserService) Get(ctx context.Context, caller models.Identity, id uint) (UserView, error) {
	db, cancel := s.store(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return UserView{}, s.storeError("get user", err, "No such user.", "")
	}
	return userView(user, policy.CanReadUserProfile(caller, id).FullView), nil
}

// Update applies the allow-listed fields of in to user id.
func (s *UserService) Update(ctx context.Context, caller models.Identity, id uint, in UserUpdate) (UserView, error) {
	if err := policy.CheckUserWrite(caller, id, in.changed()); err != nil {
		return UserView{}, err
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if !namePattern.MatchString(name) {
			return UserView{}, apperr.Validation("fullName may contain only letters and spaces.")
		}
		in.FullName = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if validate.Var(email, "required,email") != nil {
			return UserView{}, apperr.Validation("Please enter a valid email")
		}
		in.Email = &email
	}
	var hash string
	if in.Password != nil {
		if *in.Password == "" {
			return UserView{}, apperr.Validation("password field cannot be empty.")
		}
		h, err := s.hashPassword(*in.Password)
		if err != nil {
			return UserView{}, err
		}
		hash = h
	}

	db, cancel := s.store(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return UserView{}, s.storeError("get user", err, "No such user.", "")
	}

	if in.RoleType != nil {
		roleType := strings.TrimSpace(*in.RoleType)
		var role models.Role
		if err := db.Where("role_type = ?", roleType).First(&role).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return UserView{}, apperr.Validation("Role does not exist.")
			}
			return UserView{}, s.storeError("get role", err, "", "")
		}
		user.RoleType = role.RoleType
	}
	if in.Email != nil && *in.Email != user.Email {
		var taken int64
		if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", *in.Email, id).Count(&taken).Error; err != nil {
			return UserView{}, s.storeError("count users by email", err, "", "")
		}
		if taken > 0 {
			return UserView{}, apperr.Conflict("Email is already in use.")
		}
		user.Email = *in.Email
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if hash != "" {
		user.Password = hash
	}

	if err := db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return UserView{}, apperr.Validation("Role does not exist.")
		}
		return UserView{}, s.storeError("update user", err, "", "Email is already in use.")
	}
	return userView(user, true), nil
}

// Delete removes user id and every document they own. Admin only.
func (s *UserService) Delete(ctx context.Context, caller models.Identity, id uint) error {
	if !policy.CanDeleteUser(caller) {
		return apperr.Forbidden("No authorization.")
	}

	db, cancel := s.store(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return s.storeError("delete user", err, "Cannot find user.", "")
	}

	s.log.WithFields(logrus.Fields{"user_id": id, "by": caller.UserID}).Info("user deleted")
	return nil
}
