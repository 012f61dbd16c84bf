package repository

import (
	"time"

	"gorm.io/gorm"
)

const (
	LoanStatusActive   = "active"
	LoanStatusReturned = "returned"
)

type InventoryLoan struct {
	Id                 int            `gorm:"primaryKey"`
	ItemId             int            `gorm:"not null;index"`
	Item               *InventoryItem `gorm:"foreignKey:ItemId"`
	BorrowerName       string         `gorm:"not null"`
	BorrowerRoll       string         `gorm:"null"`
	BorrowerPhone      string         `gorm:"null"`
	Quantity           int            `gorm:"not null"`
	LoanDate           time.Time      `gorm:"not null"`
	ExpectedReturnDate *time.Time     `gorm:"null"`
	ActualReturnDate   *time.Time     `gorm:"null"`
	Status             string         `gorm:"not null;default:active"`
	LoanedBy           string         `gorm:"not null"`
	ReturnedTo         string         `gorm:"null"`
	CreatedAt          time.Time      `gorm:"not null"`
	UpdatedAt          time.Time      `gorm:"not null"`
}

type LoanRepository struct {
	DB *gorm.DB
}

func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{DB: db}
}

func (r *LoanRepository) CreateLoan(loan *InventoryLoan) (*InventoryLoan, error) {
	result := r.DB.Create(loan)
	if result.Error != nil {
		return nil, result.Error
	}
	return loan, nil
}

func (r *LoanRepository) SaveLoan(loan *InventoryLoan) (*InventoryLoan, error) {
	result := r.DB.Save(loan)
	if result.Error != nil {
		return nil, result.Error
	}
	return loan, nil
}

func (r *LoanRepository) GetAllLoans() ([]*InventoryLoan, error) {
	loans := make([]*InventoryLoan, 0)
	result := r.DB.Preload("Item").Order("loan_date DESC, id DESC").Find(&loans)
	if result.Error != nil {
		return nil, result.Error
	}
	return loans, nil
}

func (r *LoanRepository) GetLoanById(id int) (*InventoryLoan, error) {
	loan := InventoryLoan{}
	result := r.DB.Preload("Item").First(&loan, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &loan, nil
}

// ActiveLoanQuantity sums the quantities of all active loans for one item.
func (r *LoanRepository) ActiveLoanQuantity(itemId int) (int, error) {
	var total int
	result := r.DB.Model(&InventoryLoan{}).
		Where("item_id = ? AND status = ?", itemId, LoanStatusActive).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}

// ActiveLoanQuantities returns active loan sums keyed by item id.
func (r *LoanRepository) ActiveLoanQuantities() (map[int]int, error) {
	rows := make([]struct {
		ItemId int
		Total  int
	}, 0)
	result := r.DB.Model(&InventoryLoan{}).
		Where("status = ?", LoanStatusActive).
		Select("item_id, COALESCE(SUM(quantity), 0) as total").
		Group("item_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	quantities := make(map[int]int, len(rows))
	for _, row := range rows {
		quantities[row.ItemId] = row.Total
	}
	return quantities, nil
}

func (r *LoanRepository) CountActiveLoansForItem(itemId int) (int64, error) {
	var count int64
	result := r.DB.Model(&InventoryLoan{}).
		Where("item_id = ? AND status = ?", itemId, LoanStatusActive).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
