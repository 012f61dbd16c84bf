package service

import (
	"os"
	"testing"

	"sportsfest/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("ADMIN_USERNAME", "root")
	os.Setenv("ADMIN_PASSWORD", "root-password")
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&repository.AdminUser{},
		&repository.AdminSession{},
		&repository.Registration{},
		&repository.TeamMember{},
		&repository.GamePrice{},
		&repository.FinanceRecord{},
		&repository.FinanceAttachment{},
		&repository.InventoryItem{},
		&repository.InventoryLoan{},
		&repository.InventoryMovement{},
		&repository.MatchSchedule{},
		&repository.SportGroup{},
		&repository.Setting{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
