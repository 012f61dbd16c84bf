package repository

import (
	"time"

	"gorm.io/gorm"
)

const (
	MovementTypeLoan       = "loan"
	MovementTypeReturn     = "return"
	MovementTypeAdjustment = "adjustment"
)

// InventoryMovement is an append-only audit entry. There are deliberately no
// update or delete methods on its repository.
type InventoryMovement struct {
	Id               int       `gorm:"primaryKey"`
	ItemId           int       `gorm:"not null;index"`
	Type             string    `gorm:"not null"`
	Quantity         int       `gorm:"not null"`
	PreviousQuantity int       `gorm:"not null"`
	NewQuantity      int       `gorm:"not null"`
	Reason           string    `gorm:"not null"`
	Actor            string    `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null"`
}

type MovementRepository struct {
	DB *gorm.DB
}

func NewMovementRepository(db *gorm.DB) *MovementRepository {
	return &MovementRepository{DB: db}
}

func (r *MovementRepository) CreateMovement(movement *InventoryMovement) (*InventoryMovement, error) {
	result := r.DB.Create(movement)
	if result.Error != nil {
		return nil, result.Error
	}
	return movement, nil
}

func (r *MovementRepository) GetAllMovements() ([]*InventoryMovement, error) {
	movements := make([]*InventoryMovement, 0)
	result := r.DB.Order("created_at DESC, id DESC").Find(&movements)
	if result.Error != nil {
		return nil, result.Error
	}
	return movements, nil
}

func (r *MovementRepository) GetMovementsForItem(itemId int) ([]*InventoryMovement, error) {
	movements := make([]*InventoryMovement, 0)
	result := r.DB.Order("created_at DESC, id DESC").Find(&movements, &InventoryMovement{ItemId: itemId})
	if result.Error != nil {
		return nil, result.Error
	}
	return movements, nil
}
