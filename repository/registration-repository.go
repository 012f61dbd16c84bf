package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const (
	StatusPendingCash   = "pending_cash"
	StatusPendingOnline = "pending_online"
	StatusPaid          = "paid"
	StatusRejected      = "rejected"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"
)

type Registration struct {
	Id            int       `gorm:"primaryKey"`
	RegNumber     int       `gorm:"not null;uniqueIndex"`
	SlipId        string    `gorm:"not null;uniqueIndex"`
	Name          string    `gorm:"not null"`
	RollNumber    string    `gorm:"null"`
	Phone         string    `gorm:"not null"`
	AltPhone      string    `gorm:"null"`
	Email         string    `gorm:"not null"`
	Gender        string    `gorm:"not null"`
	TeamName      string    `gorm:"not null"`
	Games         []string  `gorm:"serializer:json;not null"`
	PaymentMethod string    `gorm:"not null"`
	TransactionId string    `gorm:"null"`
	PaymentProof  string    `gorm:"null"`
	Discount      float64   `gorm:"not null;default:0"`
	Total         float64   `gorm:"not null"`
	Status        string    `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	TeamMembers []*TeamMember `gorm:"foreignKey:RegistrationId;constraint:OnDelete:CASCADE"`
}

type TeamMember struct {
	Id             int    `gorm:"primaryKey"`
	RegistrationId int    `gorm:"not null;index"`
	Game           string `gorm:"not null"`
	Name           string `gorm:"not null"`
	RollNumber     string `gorm:"null"`
}

type RegistrationFilter struct {
	Status string
	Gender string
	Game   string
	Search string
}

type RegistrationRepository struct {
	DB *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{DB: db}
}

func (r *RegistrationRepository) CreateRegistration(registration *Registration) (*Registration, error) {
	result := r.DB.Create(registration)
	if result.Error != nil {
		return nil, result.Error
	}
	return registration, nil
}

func (r *RegistrationRepository) GetRegistrations(filter RegistrationFilter) ([]*Registration, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetRegistrations"))
	defer timer.ObserveDuration()
	query := r.DB.Preload("TeamMembers").Order("reg_number DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR team_name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like, like)
	}
	registrations := make([]*Registration, 0)
	result := query.Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}
	// The games column is a serialized set, so game filtering happens here
	// rather than in SQL.
	if filter.Game != "" {
		filtered := make([]*Registration, 0)
		for _, registration := range registrations {
			for _, game := range registration.Games {
				if game == filter.Game {
					filtered = append(filtered, registration)
					break
				}
			}
		}
		registrations = filtered
	}
	return registrations, nil
}

func (r *RegistrationRepository) GetRegistrationById(id int) (*Registration, error) {
	registration := Registration{}
	result := r.DB.Preload("TeamMembers").First(&registration, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &registration, nil
}

func (r *RegistrationRepository) GetRegistrationByIdAndSlip(id int, slipId string) (*Registration, error) {
	registration := Registration{}
	result := r.DB.Preload("TeamMembers").Where("id = ? AND slip_id = ?", id, slipId).First(&registration)
	if result.Error != nil {
		return nil, result.Error
	}
	return &registration, nil
}

func (r *RegistrationRepository) TeamNameExists(teamName string) (bool, error) {
	var count int64
	result := r.DB.Model(&Registration{}).Where("LOWER(team_name) = LOWER(?)", teamName).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *RegistrationRepository) NextRegNumber() (int, error) {
	var maxNumber int
	result := r.DB.Model(&Registration{}).Select("COALESCE(MAX(reg_number), 0)").Scan(&maxNumber)
	if result.Error != nil {
		return 0, result.Error
	}
	return maxNumber + 1, nil
}

// UpdateRegistrationFields writes only the given columns, so a partial
// status/discount update never clobbers the field that was not supplied.
func (r *RegistrationRepository) UpdateRegistrationFields(id int, fields map[string]interface{}) error {
	result := r.DB.Model(&Registration{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RegistrationRepository) DeleteRegistration(id int) error {
	err := r.DB.Where("registration_id = ?", id).Delete(&TeamMember{}).Error
	if err != nil {
		return err
	}
	return r.DB.Delete(&Registration{}, id).Error
}

func (r *RegistrationRepository) GetPaidRegistrations() ([]*Registration, error) {
	registrations := make([]*Registration, 0)
	result := r.DB.Find(&registrations, &Registration{Status: StatusPaid})
	if result.Error != nil {
		return nil, result.Error
	}
	return registrations, nil
}

func (r *RegistrationRepository) GetDistinctEmails(status string, gender string) ([]string, error) {
	query := r.DB.Model(&Registration{}).Where("email <> ''")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if gender != "" {
		query = query.Where("gender = ?", gender)
	}
	emails := make([]string, 0)
	result := query.Distinct("email").Pluck("email", &emails)
	if result.Error != nil {
		return nil, result.Error
	}
	return emails, nil
}
