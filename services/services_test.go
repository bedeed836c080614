package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"go-dms-backend/auth"
	"go-dms-backend/config"
	"go-dms-backend/database"
	"go-dms-backend/models"
)

type testEnv struct {
	db    *gorm.DB
	cfg   *config.Config
	gate  *auth.Gate
	users *UserService
	docs  *DocumentService
	roles *RoleService
}

// setupTestEnv opens a fresh in-memory database for each test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		DBDriver:     "sqlite",
		DBPath:       fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		JWTSecret:    "test-secret",
		TokenTTL:     time.Hour,
		StoreTimeout: 5 * time.Second,
		BcryptCost:   bcrypt.MinCost,
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	gate := auth.NewGate(cfg, nil)
	return &testEnv{
		db:    db,
		cfg:   cfg,
		gate:  gate,
		users: NewUserService(db, cfg, gate, nil),
		docs:  NewDocumentService(db, cfg, nil),
		roles: NewRoleService(db, cfg, nil),
	}
}

// signup creates a user through the service and promotes it to role.
func (e *testEnv) signup(t *testing.T, name, email, role string) models.Identity {
	t.Helper()

	v, err := e.users.Create(context.Background(), SignupInput{FullName: name, Email: email, Password: "pw1"})
	require.NoError(t, err)
	if role != models.RoleRegular {
		require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", v.ID).Update("role_type", role).Error)
	}
	return models.Identity{UserID: v.ID, RoleType: role}
}

func (e *testEnv) createDoc(t *testing.T, owner models.Identity, title, access string) models.Document {
	t.Helper()

	doc, err := e.docs.Create(context.Background(), owner, DocumentInput{Title: title, Content: "body of " + title, AccessType: access})
	require.NoError(t, err)
	return doc
}

// closeStore makes every later store call fail.
func (e *testEnv) closeStore(t *testing.T) {
	t.Helper()

	sqlDB, err := e.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func expiredContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	t.Cleanup(cancel)
	return ctx
}

func strPtr(s string) *string { return &s }
