package repository_test

import (
	"testing"
	"time"

	"github.com/emgbraker/greencompanions/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setup in-memory DB with the full schema. TranslateError matches the
// production connection so unique violations surface as ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Match{},
		&models.Message{},
		&models.Membership{},
		&models.Notification{},
		&models.GolfClub{},
		&models.Sponsor{},
		&models.WebsiteContent{},
		&models.UserWarning{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// seedMember creates a user with a profile and returns the user ID.
func seedMember(t *testing.T, db *gorm.DB, email, firstName string) uint {
	t.Helper()
	u := models.User{Email: email, Role: "USER"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	birth := time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC)
	p := models.Profile{
		UserID:    u.ID,
		FirstName: firstName,
		LastName:  "Tester",
		BirthDate: &birth,
		City:      "Utrecht",
		Province:  "Utrecht",
		Gender:    "male",
		Handicap:  "11-20",
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return u.ID
}
