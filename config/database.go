package config

import (
	"fmt"
	model "sportsfest/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(host string, port string, user string, password string, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.AdminUser{},
		&model.AdminSession{},
		&model.Registration{},
		&model.TeamMember{},
		&model.GamePrice{},
		&model.FinanceRecord{},
		&model.FinanceAttachment{},
		&model.InventoryItem{},
		&model.InventoryLoan{},
		&model.InventoryMovement{},
		&model.MatchSchedule{},
		&model.SportGroup{},
		&model.Setting{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
