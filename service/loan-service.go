package service

import (
	"fmt"
	"time"

	"sportsfest/app_error"
	"sportsfest/repository"

	"gorm.io/gorm"
)

type LoanService struct {
	loanRepository      *repository.LoanRepository
	inventoryRepository *repository.InventoryRepository
	movementRepository  *repository.MovementRepository
}

func NewLoanService(db *gorm.DB) *LoanService {
	return &LoanService{
		loanRepository:      repository.NewLoanRepository(db),
		inventoryRepository: repository.NewInventoryRepository(db),
		movementRepository:  repository.NewMovementRepository(db),
	}
}

func (s *LoanService) GetLoans() ([]*repository.InventoryLoan, error) {
	return s.loanRepository.GetAllLoans()
}

// CreateLoan validates the requested quantity against the currently
// available quantity and appends a movement record for the audit trail.
func (s *LoanService) CreateLoan(loan *repository.InventoryLoan) (*repository.InventoryLoan, error) {
	if loan.BorrowerName == "" {
		return nil, app_error.New(400, "Borrower name is required")
	}
	if loan.Quantity <= 0 {
		return nil, app_error.New(400, "Quantity must be positive")
	}
	item, err := s.inventoryRepository.GetItemById(loan.ItemId)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, app_error.New(400, "Item %q is not active", item.Name)
	}
	loaned, err := s.loanRepository.ActiveLoanQuantity(item.Id)
	if err != nil {
		return nil, err
	}
	available := item.Quantity - loaned
	if loan.Quantity > available {
		return nil, app_error.New(400, "Insufficient stock for %s. Available: %d", item.Name, available)
	}

	loan.Status = repository.LoanStatusActive
	if loan.LoanDate.IsZero() {
		loan.LoanDate = time.Now()
	}
	loan, err = s.loanRepository.CreateLoan(loan)
	if err != nil {
		return nil, err
	}
	_, err = s.movementRepository.CreateMovement(&repository.InventoryMovement{
		ItemId:           item.Id,
		Type:             repository.MovementTypeLoan,
		Quantity:         loan.Quantity,
		PreviousQuantity: available,
		NewQuantity:      available - loan.Quantity,
		Reason:           fmt.Sprintf("Loaned %d %s to %s", loan.Quantity, item.Name, loan.BorrowerName),
		Actor:            loan.LoanedBy,
	})
	if err != nil {
		return nil, err
	}
	loan.Item = item
	return loan, nil
}

// ReturnLoan transitions a loan to returned exactly once.
func (s *LoanService) ReturnLoan(id int, returnedTo string) (*repository.InventoryLoan, error) {
	loan, err := s.loanRepository.GetLoanById(id)
	if err != nil {
		return nil, err
	}
	if loan.Status != repository.LoanStatusActive {
		return nil, app_error.New(400, "Loan is already returned")
	}
	item, err := s.inventoryRepository.GetItemById(loan.ItemId)
	if err != nil {
		return nil, err
	}
	loaned, err := s.loanRepository.ActiveLoanQuantity(item.Id)
	if err != nil {
		return nil, err
	}
	availableBefore := item.Quantity - loaned

	now := time.Now()
	loan.Status = repository.LoanStatusReturned
	loan.ActualReturnDate = &now
	loan.ReturnedTo = returnedTo
	loan, err = s.loanRepository.SaveLoan(loan)
	if err != nil {
		return nil, err
	}
	_, err = s.movementRepository.CreateMovement(&repository.InventoryMovement{
		ItemId:           item.Id,
		Type:             repository.MovementTypeReturn,
		Quantity:         loan.Quantity,
		PreviousQuantity: availableBefore,
		NewQuantity:      availableBefore + loan.Quantity,
		Reason:           fmt.Sprintf("Returned %d %s from %s", loan.Quantity, item.Name, loan.BorrowerName),
		Actor:            returnedTo,
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}
