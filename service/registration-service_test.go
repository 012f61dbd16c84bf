package service

import (
	"strings"
	"testing"

	"sportsfest/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistrationCreate() *RegistrationCreate {
	return &RegistrationCreate{
		Name:          "Sam",
		RollNumber:    "CSE-042",
		Phone:         "01712345678",
		Email:         "sam@example.com",
		Gender:        "boys",
		TeamName:      "Thunderbolts",
		Games:         []string{"Cricket", "Badminton"},
		PaymentMethod: repository.PaymentMethodCash,
	}
}

func TestCreateRegistration(t *testing.T) {
	db := newTestDB(t)
	service := NewRegistrationService(db)

	registration, err := service.CreateRegistration(validRegistrationCreate())
	require.NoError(t, err)

	// Cricket 2000 + Badminton 500 from the default pricing table.
	assert.Equal(t, 2500.0, registration.Total)
	assert.Equal(t, repository.StatusPendingCash, registration.Status)
	assert.Equal(t, 1, registration.RegNumber)
	assert.True(t, strings.HasPrefix(registration.SlipId, "SF-"))
	assert.Len(t, registration.SlipId, 11)

	second := validRegistrationCreate()
	second.TeamName = "Falcons"
	second.Gender = "girls"
	second.PaymentMethod = repository.PaymentMethodOnline
	registration, err = service.CreateRegistration(second)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, registration.Total)
	assert.Equal(t, repository.StatusPendingOnline, registration.Status)
	assert.Equal(t, 2, registration.RegNumber)
}

func TestCreateRegistrationDeduplicatesGames(t *testing.T) {
	db := newTestDB(t)
	service := NewRegistrationService(db)

	create := validRegistrationCreate()
	create.Games = []string{"Badminton", "Badminton", "Chess"}
	registration, err := service.CreateRegistration(create)
	require.NoError(t, err)
	assert.Equal(t, []string{"Badminton", "Chess"}, registration.Games)
	// Badminton 500 + Chess 300, charged once each.
	assert.Equal(t, 800.0, registration.Total)
}

func TestCreateRegistrationValidation(t *testing.T) {
	db := newTestDB(t)
	service := NewRegistrationService(db)

	noGames := validRegistrationCreate()
	noGames.Games = nil
	_, err := service.CreateRegistration(noGames)
	assert.ErrorContains(t, err, "at least one game")

	badGender := validRegistrationCreate()
	badGender.Gender = "mixed"
	_, err = service.CreateRegistration(badGender)
	assert.ErrorContains(t, err, "boys or girls")

	badMethod := validRegistrationCreate()
	badMethod.PaymentMethod = "card"
	_, err = service.CreateRegistration(badMethod)
	assert.ErrorContains(t, err, "cash or online")

	unknownGame := validRegistrationCreate()
	unknownGame.Games = []string{"Quidditch"}
	_, err = service.CreateRegistration(unknownGame)
	assert.ErrorContains(t, err, "Quidditch")
}

func TestTeamNameUniquenessIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	service := NewRegistrationService(db)

	_, err := service.CreateRegistration(validRegistrationCreate())
	require.NoError(t, err)

	duplicate := validRegistrationCreate()
	duplicate.TeamName = "THUNDERBOLTS"
	_, err = service.CreateRegistration(duplicate)
	assert.ErrorContains(t, err, "already taken")

	available, err := service.TeamNameAvailable("thunderbolts")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = service.TeamNameAvailable("Falcons")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestUpdateRegistrationIsPartial(t *testing.T) {
	db := newTestDB(t)
	service := NewRegistrationService(db)

	registration, err := service.CreateRegistration(validRegistrationCreate())
	require.NoError(t, err)

	discount := 300.0
	registration, err = service.UpdateRegistration(registration.Id, nil, &discount)
	require.NoError(t, err)
	assert.Equal(t, 300.0, registration.Discount)
	assert.Equal(t, repository.StatusPendingCash, registration.Status)

	status := repository.StatusPaid
	registration, err = service.UpdateRegistration(registration.Id, &status, nil)
	require.NoError(t, err)
	assert.Equal(t, repository.StatusPaid, registration.Status)
	assert.Equal(t, 300.0, registration.Discount)
}

func TestUpdateRegistrationValidation(t *testing.T) {
	db := newTestDB(t)
	service := NewRegistrationService(db)

	registration, err := service.CreateRegistration(validRegistrationCreate())
	require.NoError(t, err)

	_, err = service.UpdateRegistration(registration.Id, nil, nil)
	assert.ErrorContains(t, err, "status or discount")

	badStatus := "refunded"
	_, err = service.UpdateRegistration(registration.Id, &badStatus, nil)
	assert.ErrorContains(t, err, "Invalid status")

	negative := -50.0
	_, err = service.UpdateRegistration(registration.Id, nil, &negative)
	assert.ErrorContains(t, err, "cannot be negative")

	tooLarge := registration.Total + 1
	_, err = service.UpdateRegistration(registration.Id, nil, &tooLarge)
	assert.ErrorContains(t, err, "cannot exceed")
}

func TestPaidTransitionCreatesOneFinanceRecord(t *testing.T) {
	db := newTestDB(t)
	service := NewRegistrationService(db)
	financeRepository := repository.NewFinanceRepository(db)

	registration, err := service.CreateRegistration(validRegistrationCreate())
	require.NoError(t, err)

	discount := 500.0
	_, err = service.UpdateRegistration(registration.Id, nil, &discount)
	require.NoError(t, err)

	status := repository.StatusPaid
	for i := 0; i < 3; i++ {
		_, err = service.UpdateRegistration(registration.Id, &status, nil)
		require.NoError(t, err)
	}

	records, err := financeRepository.GetRecords(repository.FinanceFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, repository.FinanceTypeIncome, records[0].Type)
	assert.Equal(t, "registration_fee", records[0].Category)
	assert.Equal(t, 2000.0, records[0].Amount)
	assert.Equal(t, "system", records[0].RecordedBy)
	require.NotNil(t, records[0].ReferenceId)
	assert.Equal(t, registration.Id, *records[0].ReferenceId)
}

func TestGetTicketRequiresBothIdentifiers(t *testing.T) {
	db := newTestDB(t)
	service := NewRegistrationService(db)

	registration, err := service.CreateRegistration(validRegistrationCreate())
	require.NoError(t, err)

	ticket, err := service.GetTicket(registration.Id, registration.SlipId)
	require.NoError(t, err)
	assert.Equal(t, registration.TeamName, ticket.TeamName)

	_, err = service.GetTicket(registration.Id, "SF-WRONG123")
	assert.Error(t, err)
}
