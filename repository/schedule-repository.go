package repository

import (
	"time"

	"gorm.io/gorm"
)

const (
	ValidationStatusValid           = "valid"
	ValidationStatusUnvalidatedJson = "unvalidated_json"
)

type MatchSchedule struct {
	Id               int       `gorm:"primaryKey"`
	Game             string    `gorm:"not null;uniqueIndex:idx_schedule_game_gender"`
	Gender           string    `gorm:"not null;uniqueIndex:idx_schedule_game_gender"`
	Payload          string    `gorm:"not null"`
	ValidationStatus string    `gorm:"not null;default:unvalidated_json"`
	GeneratedBy      string    `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

type ScheduleRepository struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

// UpsertSchedule keeps one current schedule per (game, gender).
func (r *ScheduleRepository) UpsertSchedule(schedule *MatchSchedule) (*MatchSchedule, error) {
	existing := MatchSchedule{}
	result := r.DB.First(&existing, &MatchSchedule{Game: schedule.Game, Gender: schedule.Gender})
	if result.Error == nil {
		schedule.Id = existing.Id
		schedule.CreatedAt = existing.CreatedAt
	} else if result.Error != gorm.ErrRecordNotFound {
		return nil, result.Error
	}
	if err := r.DB.Save(schedule).Error; err != nil {
		return nil, err
	}
	return schedule, nil
}

func (r *ScheduleRepository) GetAllSchedules() ([]*MatchSchedule, error) {
	schedules := make([]*MatchSchedule, 0)
	result := r.DB.Order("game ASC, gender ASC").Find(&schedules)
	if result.Error != nil {
		return nil, result.Error
	}
	return schedules, nil
}

func (r *ScheduleRepository) GetScheduleByGameAndGender(game string, gender string) (*MatchSchedule, error) {
	schedule := MatchSchedule{}
	result := r.DB.First(&schedule, &MatchSchedule{Game: game, Gender: gender})
	if result.Error != nil {
		return nil, result.Error
	}
	return &schedule, nil
}

func (r *ScheduleRepository) DeleteSchedule(id int) error {
	result := r.DB.Delete(&MatchSchedule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
