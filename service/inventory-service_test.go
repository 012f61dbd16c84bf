package service

import (
	"testing"

	"sportsfest/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createItem(t *testing.T, service *InventoryService, name string, quantity int) *repository.InventoryItem {
	t.Helper()
	item, err := service.CreateItem(&repository.InventoryItem{
		Name:     name,
		Category: "equipment",
		Quantity: quantity,
		Unit:     "pcs",
		IsActive: true,
	})
	require.NoError(t, err)
	return item
}

func TestAvailabilityIsDerivedFromActiveLoans(t *testing.T) {
	db := newTestDB(t)
	inventoryService := NewInventoryService(db)
	loanService := NewLoanService(db)

	item := createItem(t, inventoryService, "Cricket Bat", 10)

	loan, err := loanService.CreateLoan(&repository.InventoryLoan{
		ItemId:       item.Id,
		BorrowerName: "Rafi",
		Quantity:     4,
		LoanedBy:     "storekeeper",
	})
	require.NoError(t, err)
	assert.Equal(t, repository.LoanStatusActive, loan.Status)

	withAvailability, err := inventoryService.GetItem(item.Id)
	require.NoError(t, err)
	// The stored quantity never changes; only availability does.
	assert.Equal(t, 10, withAvailability.Item.Quantity)
	assert.Equal(t, 6, withAvailability.Available)

	_, err = loanService.ReturnLoan(loan.Id, "storekeeper")
	require.NoError(t, err)

	withAvailability, err = inventoryService.GetItem(item.Id)
	require.NoError(t, err)
	assert.Equal(t, 10, withAvailability.Available)
}

func TestLoanOverAvailableQuantityIsRejected(t *testing.T) {
	db := newTestDB(t)
	inventoryService := NewInventoryService(db)
	loanService := NewLoanService(db)

	item := createItem(t, inventoryService, "Football", 10)

	_, err := loanService.CreateLoan(&repository.InventoryLoan{
		ItemId: item.Id, BorrowerName: "Rafi", Quantity: 4,
	})
	require.NoError(t, err)

	_, err = loanService.CreateLoan(&repository.InventoryLoan{
		ItemId: item.Id, BorrowerName: "Nadia", Quantity: 7,
	})
	assert.ErrorContains(t, err, "Available: 6")
}

func TestLoanValidation(t *testing.T) {
	db := newTestDB(t)
	inventoryService := NewInventoryService(db)
	loanService := NewLoanService(db)

	item := createItem(t, inventoryService, "Stopwatch", 3)

	_, err := loanService.CreateLoan(&repository.InventoryLoan{ItemId: item.Id, Quantity: 1})
	assert.ErrorContains(t, err, "Borrower name")

	_, err = loanService.CreateLoan(&repository.InventoryLoan{ItemId: item.Id, BorrowerName: "Rafi", Quantity: 0})
	assert.ErrorContains(t, err, "must be positive")

	inactive := createItem(t, inventoryService, "Old Net", 5)
	_, err = inventoryService.UpdateItem(inactive.Id, &repository.InventoryItem{
		Name: inactive.Name, Category: inactive.Category, Quantity: inactive.Quantity,
		Unit: inactive.Unit, IsActive: false,
	}, "", "storekeeper")
	require.NoError(t, err)
	_, err = loanService.CreateLoan(&repository.InventoryLoan{ItemId: inactive.Id, BorrowerName: "Rafi", Quantity: 1})
	assert.ErrorContains(t, err, "not active")
}

func TestReturnLoanIsIdempotentGuarded(t *testing.T) {
	db := newTestDB(t)
	inventoryService := NewInventoryService(db)
	loanService := NewLoanService(db)

	item := createItem(t, inventoryService, "Whistle", 5)
	loan, err := loanService.CreateLoan(&repository.InventoryLoan{
		ItemId: item.Id, BorrowerName: "Rafi", Quantity: 2,
	})
	require.NoError(t, err)

	returned, err := loanService.ReturnLoan(loan.Id, "storekeeper")
	require.NoError(t, err)
	assert.Equal(t, repository.LoanStatusReturned, returned.Status)
	assert.NotNil(t, returned.ActualReturnDate)

	_, err = loanService.ReturnLoan(loan.Id, "storekeeper")
	assert.ErrorContains(t, err, "already returned")
}

func TestLoanLifecycleLeavesMovementTrail(t *testing.T) {
	db := newTestDB(t)
	inventoryService := NewInventoryService(db)
	loanService := NewLoanService(db)

	item := createItem(t, inventoryService, "Volleyball", 8)
	loan, err := loanService.CreateLoan(&repository.InventoryLoan{
		ItemId: item.Id, BorrowerName: "Rafi", Quantity: 3, LoanedBy: "storekeeper",
	})
	require.NoError(t, err)
	_, err = loanService.ReturnLoan(loan.Id, "storekeeper")
	require.NoError(t, err)

	movements, err := inventoryService.GetMovements(item.Id)
	require.NoError(t, err)
	require.Len(t, movements, 2)

	types := []string{movements[0].Type, movements[1].Type}
	assert.Contains(t, types, repository.MovementTypeLoan)
	assert.Contains(t, types, repository.MovementTypeReturn)
}

func TestUpdateItemQuantityWritesAdjustmentMovement(t *testing.T) {
	db := newTestDB(t)
	inventoryService := NewInventoryService(db)

	item := createItem(t, inventoryService, "Shuttlecock", 20)

	updated, err := inventoryService.UpdateItem(item.Id, &repository.InventoryItem{
		Name: item.Name, Category: item.Category, Quantity: 35,
		Unit: item.Unit, IsActive: true,
	}, "", "storekeeper")
	require.NoError(t, err)
	assert.Equal(t, 35, updated.Quantity)

	movements, err := inventoryService.GetMovements(item.Id)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, repository.MovementTypeAdjustment, movements[0].Type)
	assert.Equal(t, 20, movements[0].PreviousQuantity)
	assert.Equal(t, 35, movements[0].NewQuantity)
	assert.Equal(t, "Quantity adjusted from 20 to 35", movements[0].Reason)
}

func TestDeleteItemBlockedByActiveLoans(t *testing.T) {
	db := newTestDB(t)
	inventoryService := NewInventoryService(db)
	loanService := NewLoanService(db)

	item := createItem(t, inventoryService, "Chess Board", 6)
	loan, err := loanService.CreateLoan(&repository.InventoryLoan{
		ItemId: item.Id, BorrowerName: "Rafi", Quantity: 1,
	})
	require.NoError(t, err)

	err = inventoryService.DeleteItem(item.Id)
	assert.ErrorContains(t, err, "active loans")

	_, err = loanService.ReturnLoan(loan.Id, "storekeeper")
	require.NoError(t, err)
	assert.NoError(t, inventoryService.DeleteItem(item.Id))
}
