package controller

import (
	"strconv"
	"time"

	"sportsfest/app_error"
	"sportsfest/repository"
	"sportsfest/service"
	"sportsfest/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoanController struct {
	loanService *service.LoanService
}

func NewLoanController(db *gorm.DB) *LoanController {
	return &LoanController{
		loanService: service.NewLoanService(db),
	}
}

func setupLoanController(db *gorm.DB) []RouteInfo {
	e := NewLoanController(db)
	basePath := "/inventory/loans"
	inventoryRoles := []string{repository.RoleInventoryAdmin, repository.RoleAdmin}
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getLoansHandler(), Authenticated: true, RequiredRoles: inventoryRoles},
		{Method: "POST", Path: "", HandlerFunc: e.createLoanHandler(), Authenticated: true, RequiredRoles: inventoryRoles},
		{Method: "POST", Path: "/:loan_id/return", HandlerFunc: e.returnLoanHandler(), Authenticated: true, RequiredRoles: inventoryRoles},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Lists inventory loans
// @Tags inventory
// @Produce json
// @Success 200 {array} LoanResponse
// @Router /inventory/loans [get]
func (e *LoanController) getLoansHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		loans, err := e.loanService.GetLoans()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(loans, toLoanResponse))
	}
}

// @Description Creates a loan against an item's available quantity
// @Tags inventory
// @Accept json
// @Produce json
// @Param loan body LoanCreate true "Loan to create"
// @Success 201 {object} LoanResponse
// @Router /inventory/loans [post]
func (e *LoanController) createLoanHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request LoanCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		loan, err := e.loanService.CreateLoan(request.toModel(actorFromContext(c)))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Item not found"})
			} else {
				app_error.WithHTTPStatus(c, err)
			}
			return
		}
		c.JSON(201, toLoanResponse(loan))
	}
}

// @Description Returns an active loan
// @Tags inventory
// @Produce json
// @Param loanId path int true "Loan ID"
// @Success 200 {object} LoanResponse
// @Router /inventory/loans/{loanId}/return [post]
func (e *LoanController) returnLoanHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		loanId, err := strconv.Atoi(c.Param("loan_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		loan, err := e.loanService.ReturnLoan(loanId, actorFromContext(c))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Loan not found"})
			} else {
				app_error.WithHTTPStatus(c, err)
			}
			return
		}
		c.JSON(200, toLoanResponse(loan))
	}
}

type LoanCreate struct {
	ItemId             int        `json:"item_id" binding:"required"`
	BorrowerName       string     `json:"borrower_name" binding:"required"`
	BorrowerRoll       string     `json:"borrower_roll"`
	BorrowerPhone      string     `json:"borrower_phone"`
	Quantity           int        `json:"quantity" binding:"required"`
	ExpectedReturnDate *time.Time `json:"expected_return_date"`
}

func (l *LoanCreate) toModel(loanedBy string) *repository.InventoryLoan {
	return &repository.InventoryLoan{
		ItemId:             l.ItemId,
		BorrowerName:       l.BorrowerName,
		BorrowerRoll:       l.BorrowerRoll,
		BorrowerPhone:      l.BorrowerPhone,
		Quantity:           l.Quantity,
		ExpectedReturnDate: l.ExpectedReturnDate,
		LoanedBy:           loanedBy,
	}
}

type LoanResponse struct {
	Id                 int        `json:"id"`
	ItemId             int        `json:"item_id"`
	ItemName           string     `json:"item_name"`
	BorrowerName       string     `json:"borrower_name"`
	BorrowerRoll       string     `json:"borrower_roll"`
	BorrowerPhone      string     `json:"borrower_phone"`
	Quantity           int        `json:"quantity"`
	LoanDate           time.Time  `json:"loan_date"`
	ExpectedReturnDate *time.Time `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date"`
	Status             string     `json:"status"`
	LoanedBy           string     `json:"loaned_by"`
	ReturnedTo         string     `json:"returned_to"`
}

func toLoanResponse(loan *repository.InventoryLoan) LoanResponse {
	itemName := ""
	if loan.Item != nil {
		itemName = loan.Item.Name
	}
	return LoanResponse{
		Id:                 loan.Id,
		ItemId:             loan.ItemId,
		ItemName:           itemName,
		BorrowerName:       loan.BorrowerName,
		BorrowerRoll:       loan.BorrowerRoll,
		BorrowerPhone:      loan.BorrowerPhone,
		Quantity:           loan.Quantity,
		LoanDate:           loan.LoanDate,
		ExpectedReturnDate: loan.ExpectedReturnDate,
		ActualReturnDate:   loan.ActualReturnDate,
		Status:             loan.Status,
		LoanedBy:           loan.LoanedBy,
		ReturnedTo:         loan.ReturnedTo,
	}
}
