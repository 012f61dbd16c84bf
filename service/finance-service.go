package service

import (
	"bytes"
	"fmt"
	"time"

	"sportsfest/app_error"
	"sportsfest/metrics"
	"sportsfest/repository"
	"sportsfest/utils"

	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

var financeCategories = map[string][]string{
	repository.FinanceTypeIncome:   {"registration_fee", "sponsorship", "donation", "other_income"},
	repository.FinanceTypeExpense:  {"equipment", "venue", "refreshments", "prizes", "printing", "other_expense"},
	repository.FinanceTypeTransfer: {"bank_deposit", "bank_withdrawal", "cash_handover"},
}

var categoryLabels = map[string]string{
	"registration_fee": "Registration Fee",
	"sponsorship":      "Sponsorship",
	"donation":         "Donation",
	"other_income":     "Other Income",
	"equipment":        "Equipment",
	"venue":            "Venue",
	"refreshments":     "Refreshments",
	"prizes":           "Prizes",
	"printing":         "Printing",
	"other_expense":    "Other Expense",
	"bank_deposit":     "Bank Deposit",
	"bank_withdrawal":  "Bank Withdrawal",
	"cash_handover":    "Cash Handover",
}

var paymentMethodLabels = map[string]string{
	repository.PaymentMethodCash:   "Cash",
	repository.PaymentMethodOnline: "Online",
	"bank":                         "Bank",
}

type FinanceService struct {
	financeRepository      *repository.FinanceRepository
	registrationRepository *repository.RegistrationRepository
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{
		financeRepository:      repository.NewFinanceRepository(db),
		registrationRepository: repository.NewRegistrationRepository(db),
	}
}

type Ledger struct {
	Records []*repository.FinanceRecord
	Totals  *repository.FinanceTotals
}

// GetLedger returns the filtered record list together with whole-table
// totals. The two are intentionally decoupled: the summary always reflects
// everything, whatever the active filter shows.
func (s *FinanceService) GetLedger(filter repository.FinanceFilter) (*Ledger, error) {
	records, err := s.financeRepository.GetRecords(filter)
	if err != nil {
		return nil, err
	}
	totals, err := s.financeRepository.GetTotals()
	if err != nil {
		return nil, err
	}
	return &Ledger{Records: records, Totals: totals}, nil
}

func (s *FinanceService) CreateRecord(record *repository.FinanceRecord, attachments []*repository.FinanceAttachment) (*repository.FinanceRecord, error) {
	if err := validateRecord(record); err != nil {
		return nil, err
	}
	if record.RecordDate.IsZero() {
		record.RecordDate = time.Now()
	}
	record, err := s.financeRepository.CreateRecord(record)
	if err != nil {
		return nil, err
	}
	for _, attachment := range attachments {
		attachment.RecordId = record.Id
		if _, err := s.financeRepository.CreateAttachment(attachment); err != nil {
			return nil, err
		}
		record.Attachments = append(record.Attachments, attachment)
	}
	metrics.FinanceRecordsCreatedCounter.WithLabelValues(record.Type).Inc()
	return record, nil
}

func (s *FinanceService) UpdateRecord(id int, update *repository.FinanceRecord) (*repository.FinanceRecord, error) {
	record, err := s.financeRepository.GetRecordById(id)
	if err != nil {
		return nil, err
	}
	if update.Type != "" {
		record.Type = update.Type
	}
	if update.Category != "" {
		record.Category = update.Category
	}
	if update.Amount != 0 {
		record.Amount = update.Amount
	}
	if update.Description != "" {
		record.Description = update.Description
	}
	if update.PaymentMethod != "" {
		record.PaymentMethod = update.PaymentMethod
	}
	if !update.RecordDate.IsZero() {
		record.RecordDate = update.RecordDate
	}
	if err := validateRecord(record); err != nil {
		return nil, err
	}
	return s.financeRepository.SaveRecord(record)
}

func (s *FinanceService) DeleteRecord(id int) error {
	return s.financeRepository.DeleteRecord(id)
}

func validateRecord(record *repository.FinanceRecord) error {
	categories, ok := financeCategories[record.Type]
	if !ok {
		return app_error.New(400, "Type must be income, expense or transfer")
	}
	if !utils.Contains(categories, record.Category) {
		return app_error.New(400, "Invalid category %q for type %s", record.Category, record.Type)
	}
	if record.Amount <= 0 {
		return app_error.New(400, "Amount must be positive")
	}
	return nil
}

type SyncResult struct {
	Created int
	Skipped int
	Errors  []string
}

// Sync backfills one income record per paid registration that lacks one.
// Per-row failures are collected; the batch never aborts.
func (s *FinanceService) Sync() (*SyncResult, error) {
	registrations, err := s.registrationRepository.GetPaidRegistrations()
	if err != nil {
		return nil, err
	}
	result := &SyncResult{Errors: make([]string, 0)}
	for _, registration := range registrations {
		exists, err := s.financeRepository.ExistsByReference(registration.Id, repository.ReferenceTypeRegistration)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("registration %d: %s", registration.Id, err.Error()))
			continue
		}
		if exists {
			result.Skipped++
			continue
		}
		referenceId := registration.Id
		_, err = s.financeRepository.CreateRecord(&repository.FinanceRecord{
			Type:          repository.FinanceTypeIncome,
			Category:      registrationFeeCategory,
			Amount:        registration.Total - registration.Discount,
			Description:   fmt.Sprintf("Registration fee for team %s (reg #%d)", registration.TeamName, registration.RegNumber),
			PaymentMethod: registration.PaymentMethod,
			ReferenceId:   &referenceId,
			ReferenceType: repository.ReferenceTypeRegistration,
			RecordedBy:    "sync",
			RecordDate:    time.Now(),
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("registration %d: %s", registration.Id, err.Error()))
			continue
		}
		result.Created++
		metrics.FinanceSyncBackfillCounter.Inc()
	}
	return result, nil
}

// Report renders the filtered record set as a tabular PDF with a running
// balance, followed by a registration summary page.
func (s *FinanceService) Report(filter repository.FinanceFilter) ([]byte, error) {
	ledger, err := s.GetLedger(filter)
	if err != nil {
		return nil, err
	}
	registrations, err := s.registrationRepository.GetRegistrations(repository.RegistrationFilter{})
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Finance Report", false)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Finance Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	header := []string{"Date", "Type", "Category", "Description", "Method", "Amount", "Balance"}
	widths := []float64{22, 18, 30, 56, 18, 23, 23}
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range header {
		pdf.CellFormat(widths[i], 7, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	running := 0.0
	for _, record := range ledger.Records {
		switch record.Type {
		case repository.FinanceTypeIncome:
			running += record.Amount
		case repository.FinanceTypeExpense:
			running -= record.Amount
		}
		row := []string{
			record.RecordDate.Format("2006-01-02"),
			record.Type,
			labelFor(categoryLabels, record.Category),
			truncate(record.Description, 48),
			labelFor(paymentMethodLabels, record.PaymentMethod),
			fmt.Sprintf("%.2f", record.Amount),
			fmt.Sprintf("%.2f", running),
		}
		for i, cell := range row {
			align := "L"
			if i >= 5 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total income: %.2f", ledger.Totals.TotalIncome), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Total expense: %.2f", ledger.Totals.TotalExpense), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Balance: %.2f", ledger.Totals.Balance()), "", 1, "L", false, 0, "")

	addRegistrationSummaryPage(pdf, registrations)

	buffer := &bytes.Buffer{}
	if err := pdf.Output(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func addRegistrationSummaryPage(pdf *gofpdf.Fpdf, registrations []*repository.Registration) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Registration Summary", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	counts := make(map[string]int)
	collected := 0.0
	for _, registration := range registrations {
		counts[registration.Status]++
		if registration.Status == repository.StatusPaid {
			collected += registration.Total - registration.Discount
		}
	}

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total registrations: %d", len(registrations)), "", 1, "L", false, 0, "")
	for _, status := range []string{repository.StatusPaid, repository.StatusPendingCash, repository.StatusPendingOnline, repository.StatusRejected} {
		pdf.CellFormat(0, 7, fmt.Sprintf("%s: %d", status, counts[status]), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Collected from paid registrations: %.2f", collected), "", 1, "L", false, 0, "")
}

func labelFor(labels map[string]string, key string) string {
	if label, ok := labels[key]; ok {
		return label
	}
	return key
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}
