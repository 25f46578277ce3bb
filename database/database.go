package database

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rleomotos-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// The user/role association rows are managed by hand (replace-not-merge
	// role assignment), so the join model is registered explicitly.
	if err := db.SetupJoinTable(&models.User{}, "Roles", &models.UserRole{}); err != nil {
		return fmt.Errorf("failed to set up user_roles join table: %w", err)
	}

	err := db.AutoMigrate(
		&models.Store{},
		&models.Brand{},
		&models.Role{},
		&models.User{},
		&models.UserRole{},
		&models.RefreshToken{},
		&models.Motorcycle{},
		&models.MotorcyclePhoto{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

// SeedData populates the fixed roles plus a handful of default brands and
// staff accounts. Safe to run repeatedly: existing rows are left alone.
func SeedData(db *gorm.DB) error {
	for _, name := range models.AppRoles {
		role := models.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}

	defaultBrands := []string{"Honda", "Yamaha", "BMW", "Royal Enfield", "Suzuki", "Dafra"}
	for _, name := range defaultBrands {
		brand := models.Brand{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&brand).Error; err != nil {
			return fmt.Errorf("failed to seed brand %s: %w", name, err)
		}
	}

	defaultUsers := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"Admin Rleo", "admin@rleomotos.com", "admin123", "admin"},
		{"Viewer Rleo", "viewer@rleomotos.com", "viewer123", "viewer"},
		{"Cliente Rleo", "cliente@rleomotos.com", "cliente123", "client"},
	}

	for _, seed := range defaultUsers {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", seed.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		user := models.User{
			Name:         seed.name,
			Email:        seed.email,
			PasswordHash: string(hash),
			Status:       models.UserStatusActive,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", seed.email, err)
		}

		var role models.Role
		if err := db.Where("name = ?", seed.role).First(&role).Error; err != nil {
			return err
		}
		if err := db.Create(&models.UserRole{UserID: user.ID, RoleID: role.ID}).Error; err != nil {
			return fmt.Errorf("failed to seed role link for %s: %w", seed.email, err)
		}
	}

	return nil
}
