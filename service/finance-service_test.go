package service

import (
	"testing"

	"sportsfest/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRecord(t *testing.T, service *FinanceService, recordType string, category string, amount float64) *repository.FinanceRecord {
	t.Helper()
	record, err := service.CreateRecord(&repository.FinanceRecord{
		Type:       recordType,
		Category:   category,
		Amount:     amount,
		RecordedBy: "tester",
	}, nil)
	require.NoError(t, err)
	return record
}

func TestCreateRecordValidation(t *testing.T) {
	db := newTestDB(t)
	service := NewFinanceService(db)

	_, err := service.CreateRecord(&repository.FinanceRecord{
		Type: "loan", Category: "equipment", Amount: 100,
	}, nil)
	assert.ErrorContains(t, err, "income, expense or transfer")

	_, err = service.CreateRecord(&repository.FinanceRecord{
		Type: repository.FinanceTypeIncome, Category: "equipment", Amount: 100,
	}, nil)
	assert.ErrorContains(t, err, "Invalid category")

	_, err = service.CreateRecord(&repository.FinanceRecord{
		Type: repository.FinanceTypeIncome, Category: "donation", Amount: 0,
	}, nil)
	assert.ErrorContains(t, err, "must be positive")
}

func TestLedgerTotalsIgnoreTheFilter(t *testing.T) {
	db := newTestDB(t)
	service := NewFinanceService(db)

	createRecord(t, service, repository.FinanceTypeIncome, "sponsorship", 1000)
	createRecord(t, service, repository.FinanceTypeExpense, "equipment", 400)
	createRecord(t, service, repository.FinanceTypeTransfer, "bank_deposit", 200)

	ledger, err := service.GetLedger(repository.FinanceFilter{Type: repository.FinanceTypeExpense})
	require.NoError(t, err)

	// Only expenses are listed, but the summary always spans the whole table.
	require.Len(t, ledger.Records, 1)
	assert.Equal(t, 1000.0, ledger.Totals.TotalIncome)
	assert.Equal(t, 400.0, ledger.Totals.TotalExpense)
	assert.Equal(t, 600.0, ledger.Totals.Balance())
}

func TestTransfersAreExcludedFromTotals(t *testing.T) {
	db := newTestDB(t)
	service := NewFinanceService(db)

	createRecord(t, service, repository.FinanceTypeTransfer, "cash_handover", 5000)

	ledger, err := service.GetLedger(repository.FinanceFilter{})
	require.NoError(t, err)
	require.Len(t, ledger.Records, 1)
	assert.Equal(t, 0.0, ledger.Totals.TotalIncome)
	assert.Equal(t, 0.0, ledger.Totals.TotalExpense)
}

func TestUpdateRecord(t *testing.T) {
	db := newTestDB(t)
	service := NewFinanceService(db)

	record := createRecord(t, service, repository.FinanceTypeExpense, "venue", 900)

	updated, err := service.UpdateRecord(record.Id, &repository.FinanceRecord{Amount: 1200})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, updated.Amount)
	assert.Equal(t, "venue", updated.Category)

	_, err = service.UpdateRecord(record.Id, &repository.FinanceRecord{Category: "sponsorship"})
	assert.ErrorContains(t, err, "Invalid category")
}

func TestDeleteRecordRemovesAttachments(t *testing.T) {
	db := newTestDB(t)
	service := NewFinanceService(db)

	record, err := service.CreateRecord(&repository.FinanceRecord{
		Type:     repository.FinanceTypeExpense,
		Category: "prizes",
		Amount:   1500,
	}, []*repository.FinanceAttachment{
		{FileName: "invoice.pdf", FileUrl: "https://files.example.com/invoice.pdf"},
	})
	require.NoError(t, err)
	require.Len(t, record.Attachments, 1)

	require.NoError(t, service.DeleteRecord(record.Id))

	var attachmentCount int64
	require.NoError(t, db.Model(&repository.FinanceAttachment{}).Count(&attachmentCount).Error)
	assert.Zero(t, attachmentCount)
}

func TestSyncBackfillsPaidRegistrations(t *testing.T) {
	db := newTestDB(t)
	registrationService := NewRegistrationService(db)
	financeService := NewFinanceService(db)

	paid := validRegistrationCreate()
	registration, err := registrationService.CreateRegistration(paid)
	require.NoError(t, err)
	// Flip to paid directly so no finance record exists yet.
	require.NoError(t, db.Model(&repository.Registration{}).
		Where("id = ?", registration.Id).
		Update("status", repository.StatusPaid).Error)

	pending := validRegistrationCreate()
	pending.TeamName = "Falcons"
	_, err = registrationService.CreateRegistration(pending)
	require.NoError(t, err)

	result, err := financeService.Sync()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	result, err = financeService.Sync()
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Skipped)

	records, err := repository.NewFinanceRepository(db).GetRecords(repository.FinanceFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "sync", records[0].RecordedBy)
	assert.Equal(t, registration.Total, records[0].Amount)
}

func TestReportRendersPDF(t *testing.T) {
	db := newTestDB(t)
	service := NewFinanceService(db)

	createRecord(t, service, repository.FinanceTypeIncome, "registration_fee", 2500)
	createRecord(t, service, repository.FinanceTypeExpense, "refreshments", 700)

	report, err := service.Report(repository.FinanceFilter{})
	require.NoError(t, err)
	assert.True(t, len(report) > 0)
	assert.Equal(t, "%PDF", string(report[:4]))
}
