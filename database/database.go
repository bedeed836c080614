// database.go - Handles database connection and setup

package database // Declares the package name

import ( // Import required packages
	"context" // For bounded bootstrap queries
	"errors"  // For not-found checks
	"fmt"     // For wrapping errors
	"strings" // For email normalization and DSN options
	"time"    // Bootstrap query deadline

	"go-dms-backend/config" // Project config
	"go-dms-backend/models" // User, Role and Document models

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/driver/postgres"    // Postgres driver for GORM
	"gorm.io/driver/sqlite"      // SQLite driver for GORM
	"gorm.io/gorm"               // GORM ORM
	"gorm.io/gorm/logger"        // GORM logger levels
)

// Connect opens the configured database, runs migrations and seeds reference data.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "", "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.DBPath)) // Open SQLite DB with foreign keys enforced
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true, // Unique violations surface as gorm.ErrDuplicatedKey
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dialector.Name() == "sqlite" {
		// SQLite allows one writer; a single connection avoids "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := SeedRoles(db); err != nil {
		return nil, err
	}
	if err := createDefaultAdmin(db, cfg); err != nil {
		return nil, err
	}
	return db, nil
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off by default.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") || strings.Contains(path, "_fk=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Migrate creates or updates the roles, users and documents tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Role{}, &models.User{}, &models.Document{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SeedRoles inserts the default roles that do not exist yet.
func SeedRoles(db *gorm.DB) error {
	for _, roleType := range models.DefaultRoles {
		role := models.Role{RoleType: roleType}
		if err := db.Where(models.Role{RoleType: roleType}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %q: %w", roleType, err)
		}
	}
	return nil
}

// createDefaultAdmin - Creates a default admin user if configured and none exists
// This uses environment variables for security instead of hardcoded credentials
func createDefaultAdmin(db *gorm.DB, cfg *config.Config) error {
	// Only create admin if explicitly configured
	if !cfg.CreateAdmin {
		return nil
	}
	if cfg.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD is required when CREATE_ADMIN is set")
	}

	timeout := cfg.StoreTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Check if any admin user exists
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("role_type = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cost)
	if err != nil {
		return err
	}

	adminUser := models.User{
		FullName: cfg.AdminName,
		Email:    strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		Password: string(hash),
		RoleType: models.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&adminUser).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

// Ping checks that the underlying connection pool can reach the database.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
