package service

import (
	"fmt"

	"sportsfest/app_error"
	"sportsfest/repository"

	"gorm.io/gorm"
)

type InventoryService struct {
	inventoryRepository *repository.InventoryRepository
	loanRepository      *repository.LoanRepository
	movementRepository  *repository.MovementRepository
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{
		inventoryRepository: repository.NewInventoryRepository(db),
		loanRepository:      repository.NewLoanRepository(db),
		movementRepository:  repository.NewMovementRepository(db),
	}
}

// ItemWithAvailability pairs an item with its derived available quantity.
// The stored quantity is never decremented by loans; availability is always
// recomputed from active loans at read time.
type ItemWithAvailability struct {
	Item      *repository.InventoryItem
	Available int
}

func (s *InventoryService) GetItems() ([]*ItemWithAvailability, error) {
	items, err := s.inventoryRepository.GetAllItems()
	if err != nil {
		return nil, err
	}
	loaned, err := s.loanRepository.ActiveLoanQuantities()
	if err != nil {
		return nil, err
	}
	result := make([]*ItemWithAvailability, 0, len(items))
	for _, item := range items {
		result = append(result, &ItemWithAvailability{
			Item:      item,
			Available: item.Quantity - loaned[item.Id],
		})
	}
	return result, nil
}

func (s *InventoryService) GetItem(id int) (*ItemWithAvailability, error) {
	item, err := s.inventoryRepository.GetItemById(id)
	if err != nil {
		return nil, err
	}
	loaned, err := s.loanRepository.ActiveLoanQuantity(id)
	if err != nil {
		return nil, err
	}
	return &ItemWithAvailability{Item: item, Available: item.Quantity - loaned}, nil
}

func (s *InventoryService) CreateItem(item *repository.InventoryItem) (*repository.InventoryItem, error) {
	if item.Name == "" {
		return nil, app_error.New(400, "Item name is required")
	}
	if item.Quantity < 0 || item.MinQuantity < 0 {
		return nil, app_error.New(400, "Quantities cannot be negative")
	}
	return s.inventoryRepository.SaveItem(item)
}

// UpdateItem edits an item. A quantity change is a manual restock or
// adjustment and leaves one movement record behind.
func (s *InventoryService) UpdateItem(id int, update *repository.InventoryItem, reason string, actor string) (*repository.InventoryItem, error) {
	item, err := s.inventoryRepository.GetItemById(id)
	if err != nil {
		return nil, err
	}
	if update.Quantity < 0 || update.MinQuantity < 0 {
		return nil, app_error.New(400, "Quantities cannot be negative")
	}
	previousQuantity := item.Quantity
	if update.Name != "" {
		item.Name = update.Name
	}
	item.Category = update.Category
	item.Unit = update.Unit
	item.Location = update.Location
	item.Quantity = update.Quantity
	item.MinQuantity = update.MinQuantity
	item.IsActive = update.IsActive

	item, err = s.inventoryRepository.SaveItem(item)
	if err != nil {
		return nil, err
	}
	if item.Quantity != previousQuantity {
		if reason == "" {
			reason = fmt.Sprintf("Quantity adjusted from %d to %d", previousQuantity, item.Quantity)
		}
		_, err = s.movementRepository.CreateMovement(&repository.InventoryMovement{
			ItemId:           item.Id,
			Type:             repository.MovementTypeAdjustment,
			Quantity:         item.Quantity - previousQuantity,
			PreviousQuantity: previousQuantity,
			NewQuantity:      item.Quantity,
			Reason:           reason,
			Actor:            actor,
		})
		if err != nil {
			return nil, err
		}
	}
	return item, nil
}

// DeleteItem refuses to remove an item that still has active loans.
func (s *InventoryService) DeleteItem(id int) error {
	if _, err := s.inventoryRepository.GetItemById(id); err != nil {
		return err
	}
	activeLoans, err := s.loanRepository.CountActiveLoansForItem(id)
	if err != nil {
		return err
	}
	if activeLoans > 0 {
		return app_error.New(400, "Item has active loans and cannot be deleted")
	}
	return s.inventoryRepository.DeleteItem(id)
}

func (s *InventoryService) GetMovements(itemId int) ([]*repository.InventoryMovement, error) {
	if itemId > 0 {
		return s.movementRepository.GetMovementsForItem(itemId)
	}
	return s.movementRepository.GetAllMovements()
}
