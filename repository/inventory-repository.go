package repository

import (
	"time"

	"gorm.io/gorm"
)

type InventoryItem struct {
	Id          int       `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	Category    string    `gorm:"null"`
	Quantity    int       `gorm:"not null"`
	Unit        string    `gorm:"null"`
	MinQuantity int       `gorm:"not null;default:0"`
	Location    string    `gorm:"null"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// LowStock is derived, never stored.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinQuantity
}

type InventoryRepository struct {
	DB *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{DB: db}
}

func (r *InventoryRepository) SaveItem(item *InventoryItem) (*InventoryItem, error) {
	result := r.DB.Save(item)
	if result.Error != nil {
		return nil, result.Error
	}
	return item, nil
}

func (r *InventoryRepository) GetAllItems() ([]*InventoryItem, error) {
	items := make([]*InventoryItem, 0)
	result := r.DB.Order("name ASC").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *InventoryRepository) GetItemById(id int) (*InventoryItem, error) {
	item := InventoryItem{}
	result := r.DB.First(&item, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

func (r *InventoryRepository) DeleteItem(id int) error {
	return r.DB.Delete(&InventoryItem{}, id).Error
}
