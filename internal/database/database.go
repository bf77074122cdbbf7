package database

import (
	"errors"

	"github.com/emgbraker/greencompanions/config"
	"github.com/emgbraker/greencompanions/internal/domain"
	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
		// Unique-constraint violations become gorm.ErrDuplicatedKey; the
		// match ledger relies on that to resolve the duplicate-like race.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Membership{},
		&models.Match{},
		&models.Message{},
		&models.Notification{},
		&models.UserWarning{},
		&models.GolfClub{},
		&models.Sponsor{},
		&models.WebsiteContent{},
	)
}

// SeedAdmin creates the bootstrap admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are provided and no admin exists yet.
func SeedAdmin(db *gorm.DB, email, password string) {
	if email == "" || password == "" {
		return
	}
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("seed admin: lookup failed", "err", err)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("seed admin: hash failed", "err", err)
		return
	}
	u := models.User{Email: email, PasswordHash: string(hash), Role: domain.RoleAdmin}
	if err := db.Create(&u).Error; err != nil {
		logger.Error("seed admin: create failed", "err", err)
		return
	}
	_ = db.Create(&models.Profile{UserID: u.ID, FirstName: "Admin", LastName: "GreenConnect"}).Error
	logger.Info("seeded admin account", "email", email)
}
