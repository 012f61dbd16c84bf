package repository

import (
	"time"

	"gorm.io/gorm"
)

type SportGroup struct {
	Id               int       `gorm:"primaryKey"`
	Game             string    `gorm:"not null;uniqueIndex:idx_group_game_gender"`
	Gender           string    `gorm:"not null;uniqueIndex:idx_group_game_gender"`
	GroupUrl         string    `gorm:"not null"`
	CoordinatorName  string    `gorm:"null"`
	CoordinatorPhone string    `gorm:"not null"`
	MessageTemplate  string    `gorm:"not null"`
	IsActive         bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

type SportGroupRepository struct {
	DB *gorm.DB
}

func NewSportGroupRepository(db *gorm.DB) *SportGroupRepository {
	return &SportGroupRepository{DB: db}
}

func (r *SportGroupRepository) SaveGroup(group *SportGroup) (*SportGroup, error) {
	result := r.DB.Save(group)
	if result.Error != nil {
		return nil, result.Error
	}
	return group, nil
}

func (r *SportGroupRepository) GetAllGroups() ([]*SportGroup, error) {
	groups := make([]*SportGroup, 0)
	result := r.DB.Order("game ASC, gender ASC").Find(&groups)
	if result.Error != nil {
		return nil, result.Error
	}
	return groups, nil
}

func (r *SportGroupRepository) GetGroupById(id int) (*SportGroup, error) {
	group := SportGroup{}
	result := r.DB.First(&group, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &group, nil
}

func (r *SportGroupRepository) GetActiveGroups(gender string, games []string) ([]*SportGroup, error) {
	groups := make([]*SportGroup, 0)
	result := r.DB.
		Where("is_active = ? AND gender = ? AND game IN ?", true, gender, games).
		Order("game ASC").
		Find(&groups)
	if result.Error != nil {
		return nil, result.Error
	}
	return groups, nil
}

func (r *SportGroupRepository) DeleteGroup(id int) error {
	result := r.DB.Delete(&SportGroup{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
