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

type FinanceController struct {
	financeService *service.FinanceService
}

func NewFinanceController(db *gorm.DB) *FinanceController {
	return &FinanceController{
		financeService: service.NewFinanceService(db),
	}
}

func setupFinanceController(db *gorm.DB) []RouteInfo {
	e := NewFinanceController(db)
	basePath := "/finance"
	financeRoles := []string{repository.RoleFinanceAdmin, repository.RoleAdmin}
	routes := []RouteInfo{
		{Method: "GET", Path: "/records", HandlerFunc: e.getLedgerHandler(), Authenticated: true, RequiredRoles: financeRoles},
		{Method: "POST", Path: "/records", HandlerFunc: e.createRecordHandler(), Authenticated: true, RequiredRoles: financeRoles},
		{Method: "PUT", Path: "/records/:record_id", HandlerFunc: e.updateRecordHandler(), Authenticated: true, RequiredRoles: financeRoles},
		{Method: "DELETE", Path: "/records/:record_id", HandlerFunc: e.deleteRecordHandler(), Authenticated: true, RequiredRoles: financeRoles},
		{Method: "POST", Path: "/sync", HandlerFunc: e.syncHandler(), Authenticated: true, RequiredRoles: financeRoles},
		{Method: "GET", Path: "/report", HandlerFunc: e.reportHandler(), Authenticated: true, RequiredRoles: financeRoles},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

func financeFilterFromQuery(c *gin.Context) (repository.FinanceFilter, error) {
	filter := repository.FinanceFilter{Type: c.Query("type")}
	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, app_error.New(400, "Invalid from date %q", from)
		}
		filter.From = &parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, app_error.New(400, "Invalid to date %q", to)
		}
		// Make the upper bound inclusive for the whole day.
		endOfDay := parsed.Add(24*time.Hour - time.Second)
		filter.To = &endOfDay
	}
	return filter, nil
}

// @Description Lists finance records with whole-table totals
// @Tags finance
// @Produce json
// @Param type query string false "Type filter"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} LedgerResponse
// @Router /finance/records [get]
func (e *FinanceController) getLedgerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := financeFilterFromQuery(c)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		ledger, err := e.financeService.GetLedger(filter)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toLedgerResponse(ledger))
	}
}

// @Description Creates a finance record with optional attachments
// @Tags finance
// @Accept json
// @Produce json
// @Param record body FinanceRecordCreate true "Record to create"
// @Success 201 {object} FinanceRecordResponse
// @Router /finance/records [post]
func (e *FinanceController) createRecordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request FinanceRecordCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		record, attachments := request.toModels(actorFromContext(c))
		record, err := e.financeService.CreateRecord(record, attachments)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(201, toFinanceRecordResponse(record))
	}
}

// @Description Updates a finance record in place
// @Tags finance
// @Accept json
// @Produce json
// @Param recordId path int true "Record ID"
// @Param record body FinanceRecordUpdate true "Fields to update"
// @Success 200 {object} FinanceRecordResponse
// @Router /finance/records/{recordId} [put]
func (e *FinanceController) updateRecordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		recordId, err := strconv.Atoi(c.Param("record_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request FinanceRecordUpdate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		record, err := e.financeService.UpdateRecord(recordId, request.toModel())
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Record not found"})
			} else {
				app_error.WithHTTPStatus(c, err)
			}
			return
		}
		c.JSON(200, toFinanceRecordResponse(record))
	}
}

// @Description Deletes a finance record and its attachments
// @Tags finance
// @Param recordId path int true "Record ID"
// @Success 204
// @Router /finance/records/{recordId} [delete]
func (e *FinanceController) deleteRecordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		recordId, err := strconv.Atoi(c.Param("record_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		err = e.financeService.DeleteRecord(recordId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Record not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(204, nil)
	}
}

// @Description Backfills finance records for paid registrations lacking one
// @Tags finance
// @Produce json
// @Success 200 {object} SyncResponse
// @Router /finance/sync [post]
func (e *FinanceController) syncHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := e.financeService.Sync()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, SyncResponse{
			Success: true,
			Created: result.Created,
			Skipped: result.Skipped,
			Errors:  result.Errors,
		})
	}
}

// @Description Renders the filtered ledger as a PDF report
// @Tags finance
// @Produce application/pdf
// @Param type query string false "Type filter"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200
// @Router /finance/report [get]
func (e *FinanceController) reportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := financeFilterFromQuery(c)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		report, err := e.financeService.Report(filter)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="finance-report.pdf"`)
		c.Data(200, "application/pdf", report)
	}
}

type FinanceAttachmentCreate struct {
	FileName string `json:"file_name" binding:"required"`
	FileUrl  string `json:"file_url" binding:"required"`
}

type FinanceRecordCreate struct {
	Type          string                    `json:"type" binding:"required"`
	Category      string                    `json:"category" binding:"required"`
	Amount        float64                   `json:"amount" binding:"required"`
	Description   string                    `json:"description"`
	PaymentMethod string                    `json:"payment_method"`
	RecordDate    *time.Time                `json:"record_date"`
	Attachments   []FinanceAttachmentCreate `json:"attachments"`
}

func (r *FinanceRecordCreate) toModels(recordedBy string) (*repository.FinanceRecord, []*repository.FinanceAttachment) {
	record := &repository.FinanceRecord{
		Type:          r.Type,
		Category:      r.Category,
		Amount:        r.Amount,
		Description:   r.Description,
		PaymentMethod: r.PaymentMethod,
		RecordedBy:    recordedBy,
	}
	if r.RecordDate != nil {
		record.RecordDate = *r.RecordDate
	}
	attachments := utils.Map(r.Attachments, func(attachment FinanceAttachmentCreate) *repository.FinanceAttachment {
		return &repository.FinanceAttachment{
			FileName: attachment.FileName,
			FileUrl:  attachment.FileUrl,
		}
	})
	return record, attachments
}

type FinanceRecordUpdate struct {
	Type          string     `json:"type"`
	Category      string     `json:"category"`
	Amount        float64    `json:"amount"`
	Description   string     `json:"description"`
	PaymentMethod string     `json:"payment_method"`
	RecordDate    *time.Time `json:"record_date"`
}

func (r *FinanceRecordUpdate) toModel() *repository.FinanceRecord {
	record := &repository.FinanceRecord{
		Type:          r.Type,
		Category:      r.Category,
		Amount:        r.Amount,
		Description:   r.Description,
		PaymentMethod: r.PaymentMethod,
	}
	if r.RecordDate != nil {
		record.RecordDate = *r.RecordDate
	}
	return record
}

type FinanceAttachmentResponse struct {
	Id       int    `json:"id"`
	FileName string `json:"file_name"`
	FileUrl  string `json:"file_url"`
}

type FinanceRecordResponse struct {
	Id            int                         `json:"id"`
	Type          string                      `json:"type"`
	Category      string                      `json:"category"`
	Amount        float64                     `json:"amount"`
	Description   string                      `json:"description"`
	PaymentMethod string                      `json:"payment_method"`
	ReferenceId   *int                        `json:"reference_id"`
	ReferenceType string                      `json:"reference_type"`
	RecordedBy    string                      `json:"recorded_by"`
	RecordDate    time.Time                   `json:"record_date"`
	Attachments   []FinanceAttachmentResponse `json:"attachments"`
}

type LedgerSummary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

type LedgerResponse struct {
	Records []FinanceRecordResponse `json:"records"`
	Summary LedgerSummary           `json:"summary"`
}

type SyncResponse struct {
	Success bool     `json:"success"`
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

func toFinanceRecordResponse(record *repository.FinanceRecord) FinanceRecordResponse {
	return FinanceRecordResponse{
		Id:            record.Id,
		Type:          record.Type,
		Category:      record.Category,
		Amount:        record.Amount,
		Description:   record.Description,
		PaymentMethod: record.PaymentMethod,
		ReferenceId:   record.ReferenceId,
		ReferenceType: record.ReferenceType,
		RecordedBy:    record.RecordedBy,
		RecordDate:    record.RecordDate,
		Attachments: utils.Map(record.Attachments, func(attachment *repository.FinanceAttachment) FinanceAttachmentResponse {
			return FinanceAttachmentResponse{
				Id:       attachment.Id,
				FileName: attachment.FileName,
				FileUrl:  attachment.FileUrl,
			}
		}),
	}
}

func toLedgerResponse(ledger *service.Ledger) LedgerResponse {
	return LedgerResponse{
		Records: utils.Map(ledger.Records, toFinanceRecordResponse),
		Summary: LedgerSummary{
			TotalIncome:  ledger.Totals.TotalIncome,
			TotalExpense: ledger.Totals.TotalExpense,
			Balance:      ledger.Totals.Balance(),
		},
	}
}
