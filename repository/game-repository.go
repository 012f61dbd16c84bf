package repository

import (
	"time"

	"gorm.io/gorm"
)

type GamePrice struct {
	Id         int       `gorm:"primaryKey"`
	Name       string    `gorm:"not null;uniqueIndex"`
	BoysPrice  float64   `gorm:"not null"`
	GirlsPrice float64   `gorm:"not null"`
	IsTeamGame bool      `gorm:"not null;default:false"`
	TeamSize   int       `gorm:"not null;default:1"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

type GameRepository struct {
	DB *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{DB: db}
}

func (r *GameRepository) GetAllGames() ([]*GamePrice, error) {
	games := make([]*GamePrice, 0)
	result := r.DB.Order("name ASC").Find(&games)
	if result.Error != nil {
		return nil, result.Error
	}
	return games, nil
}

// ReplaceGames swaps the whole pricing table in one transaction.
func (r *GameRepository) ReplaceGames(games []*GamePrice) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&GamePrice{}).Error; err != nil {
			return err
		}
		if len(games) == 0 {
			return nil
		}
		return tx.Create(&games).Error
	})
}
