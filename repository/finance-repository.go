package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const (
	FinanceTypeIncome   = "income"
	FinanceTypeExpense  = "expense"
	FinanceTypeTransfer = "transfer"
)

const ReferenceTypeRegistration = "registration"

type FinanceRecord struct {
	Id            int       `gorm:"primaryKey"`
	Type          string    `gorm:"not null;index"`
	Category      string    `gorm:"not null"`
	Amount        float64   `gorm:"not null"`
	Description   string    `gorm:"null"`
	PaymentMethod string    `gorm:"null"`
	ReferenceId   *int      `gorm:"null;index"`
	ReferenceType string    `gorm:"null"`
	RecordedBy    string    `gorm:"not null"`
	RecordDate    time.Time `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	Attachments []*FinanceAttachment `gorm:"foreignKey:RecordId;constraint:OnDelete:CASCADE"`
}

type FinanceAttachment struct {
	Id        int       `gorm:"primaryKey"`
	RecordId  int       `gorm:"not null;index"`
	FileName  string    `gorm:"not null"`
	FileUrl   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type FinanceFilter struct {
	Type string
	From *time.Time
	To   *time.Time
}

// FinanceTotals is derived from the whole table; balance is never stored.
type FinanceTotals struct {
	TotalIncome  float64
	TotalExpense float64
}

func (t FinanceTotals) Balance() float64 {
	return t.TotalIncome - t.TotalExpense
}

type FinanceRepository struct {
	DB *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) *FinanceRepository {
	return &FinanceRepository{DB: db}
}

func (r *FinanceRepository) CreateRecord(record *FinanceRecord) (*FinanceRecord, error) {
	result := r.DB.Create(record)
	if result.Error != nil {
		return nil, result.Error
	}
	return record, nil
}

func (r *FinanceRepository) GetRecords(filter FinanceFilter) ([]*FinanceRecord, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetFinanceRecords"))
	defer timer.ObserveDuration()
	query := r.DB.Preload("Attachments").Order("record_date DESC, id DESC")
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.From != nil {
		query = query.Where("record_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("record_date <= ?", *filter.To)
	}
	records := make([]*FinanceRecord, 0)
	result := query.Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

func (r *FinanceRepository) GetRecordById(id int) (*FinanceRecord, error) {
	record := FinanceRecord{}
	result := r.DB.Preload("Attachments").First(&record, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &record, nil
}

func (r *FinanceRepository) SaveRecord(record *FinanceRecord) (*FinanceRecord, error) {
	result := r.DB.Save(record)
	if result.Error != nil {
		return nil, result.Error
	}
	return record, nil
}

// DeleteRecord removes the record and its attachment rows. Attachments are
// deleted first so no orphans survive a partial failure.
func (r *FinanceRepository) DeleteRecord(id int) error {
	err := r.DB.Where("record_id = ?", id).Delete(&FinanceAttachment{}).Error
	if err != nil {
		return err
	}
	result := r.DB.Delete(&FinanceRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FinanceRepository) CreateAttachment(attachment *FinanceAttachment) (*FinanceAttachment, error) {
	result := r.DB.Create(attachment)
	if result.Error != nil {
		return nil, result.Error
	}
	return attachment, nil
}

// GetTotals aggregates over the entire table regardless of any list filter.
// Transfers are excluded; the balance only reflects income and expense.
func (r *FinanceRepository) GetTotals() (*FinanceTotals, error) {
	rows := make([]struct {
		Type  string
		Total float64
	}, 0)
	result := r.DB.Model(&FinanceRecord{}).
		Select("type, COALESCE(SUM(amount), 0) as total").
		Group("type").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	totals := &FinanceTotals{}
	for _, row := range rows {
		switch row.Type {
		case FinanceTypeIncome:
			totals.TotalIncome = row.Total
		case FinanceTypeExpense:
			totals.TotalExpense = row.Total
		}
	}
	return totals, nil
}

func (r *FinanceRepository) ExistsByReference(referenceId int, referenceType string) (bool, error) {
	var count int64
	result := r.DB.Model(&FinanceRecord{}).
		Where("reference_id = ? AND reference_type = ?", referenceId, referenceType).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
