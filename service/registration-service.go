package service

import (
	"fmt"
	"strings"
	"time"

	"sportsfest/app_error"
	"sportsfest/config"
	"sportsfest/metrics"
	"sportsfest/repository"
	"sportsfest/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const registrationFeeCategory = "registration_fee"

type RegistrationService struct {
	registrationRepository *repository.RegistrationRepository
	financeRepository      *repository.FinanceRepository
	gameService            *GameService
	logger                 *zap.Logger
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{
		registrationRepository: repository.NewRegistrationRepository(db),
		financeRepository:      repository.NewFinanceRepository(db),
		gameService:            NewGameService(db),
		logger:                 config.Logger(),
	}
}

type RegistrationCreate struct {
	Name          string
	RollNumber    string
	Phone         string
	AltPhone      string
	Email         string
	Gender        string
	TeamName      string
	Games         []string
	TeamMembers   []*repository.TeamMember
	PaymentMethod string
	TransactionId string
	PaymentProof  string
}

func (s *RegistrationService) CreateRegistration(create *RegistrationCreate) (*repository.Registration, error) {
	if len(create.Games) == 0 {
		return nil, app_error.New(400, "Select at least one game")
	}
	if create.Gender != "boys" && create.Gender != "girls" {
		return nil, app_error.New(400, "Gender must be boys or girls")
	}
	status := ""
	switch create.PaymentMethod {
	case repository.PaymentMethodCash:
		status = repository.StatusPendingCash
	case repository.PaymentMethodOnline:
		status = repository.StatusPendingOnline
	default:
		return nil, app_error.New(400, "Payment method must be cash or online")
	}

	exists, err := s.registrationRepository.TeamNameExists(create.TeamName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, app_error.New(400, "Team name %q is already taken", create.TeamName)
	}

	total := 0.0
	for _, game := range utils.Uniques(create.Games) {
		price, err := s.gameService.PriceFor(game, create.Gender)
		if err != nil {
			return nil, err
		}
		total += price
	}

	regNumber, err := s.registrationRepository.NextRegNumber()
	if err != nil {
		return nil, err
	}

	registration := &repository.Registration{
		RegNumber:     regNumber,
		SlipId:        newSlipId(),
		Name:          create.Name,
		RollNumber:    create.RollNumber,
		Phone:         create.Phone,
		AltPhone:      create.AltPhone,
		Email:         create.Email,
		Gender:        create.Gender,
		TeamName:      create.TeamName,
		Games:         utils.Uniques(create.Games),
		PaymentMethod: create.PaymentMethod,
		TransactionId: create.TransactionId,
		PaymentProof:  create.PaymentProof,
		Total:         total,
		Status:        status,
		TeamMembers:   create.TeamMembers,
	}
	registration, err = s.registrationRepository.CreateRegistration(registration)
	if err != nil {
		return nil, err
	}
	metrics.RegistrationsCreatedCounter.Inc()
	return registration, nil
}

// newSlipId generates the human-presentable ticket reference printed on the
// payment slip and encoded in the QR code.
func newSlipId() string {
	return "SF-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

var validStatuses = []string{
	repository.StatusPendingCash,
	repository.StatusPendingOnline,
	repository.StatusPaid,
	repository.StatusRejected,
}

// UpdateRegistration applies a partial status/discount update. A nil field
// is never written, so updating one cannot clobber the other. The first
// transition to paid backfills a finance income record; that backfill is
// best-effort and its failure does not fail the update.
func (s *RegistrationService) UpdateRegistration(id int, status *string, discount *float64) (*repository.Registration, error) {
	if status == nil && discount == nil {
		return nil, app_error.New(400, "Provide status or discount")
	}
	if status != nil && !utils.Contains(validStatuses, *status) {
		return nil, app_error.New(400, "Invalid status %q", *status)
	}
	if discount != nil && *discount < 0 {
		return nil, app_error.New(400, "Discount cannot be negative")
	}
	registration, err := s.registrationRepository.GetRegistrationById(id)
	if err != nil {
		return nil, err
	}
	if discount != nil && *discount > registration.Total {
		return nil, app_error.New(400, "Discount cannot exceed the total of %.0f", registration.Total)
	}

	fields := map[string]interface{}{"updated_at": time.Now()}
	if status != nil {
		fields["status"] = *status
	}
	if discount != nil {
		fields["discount"] = *discount
	}
	if err := s.registrationRepository.UpdateRegistrationFields(id, fields); err != nil {
		return nil, err
	}

	registration, err = s.registrationRepository.GetRegistrationById(id)
	if err != nil {
		return nil, err
	}
	if status != nil && *status == repository.StatusPaid {
		if err := s.ensureFinanceRecord(registration); err != nil {
			s.logger.Warn("failed to create finance record for paid registration",
				zap.Int("registration_id", registration.Id), zap.Error(err))
		}
	}
	return registration, nil
}

// ensureFinanceRecord creates the income record for a paid registration,
// keyed by reference so re-triggering paid never duplicates it.
func (s *RegistrationService) ensureFinanceRecord(registration *repository.Registration) error {
	exists, err := s.financeRepository.ExistsByReference(registration.Id, repository.ReferenceTypeRegistration)
	if err != nil {
		return err
	}
	if exists {
		return nil
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
		RecordedBy:    "system",
		RecordDate:    time.Now(),
	})
	if err != nil {
		return err
	}
	metrics.FinanceRecordsCreatedCounter.WithLabelValues(repository.FinanceTypeIncome).Inc()
	return nil
}

func (s *RegistrationService) GetRegistrations(filter repository.RegistrationFilter) ([]*repository.Registration, error) {
	return s.registrationRepository.GetRegistrations(filter)
}

func (s *RegistrationService) GetRegistrationById(id int) (*repository.Registration, error) {
	return s.registrationRepository.GetRegistrationById(id)
}

// GetTicket is the public two-factor lookup: both the internal id and the
// slip id must match.
func (s *RegistrationService) GetTicket(id int, slipId string) (*repository.Registration, error) {
	return s.registrationRepository.GetRegistrationByIdAndSlip(id, slipId)
}

func (s *RegistrationService) TeamNameAvailable(teamName string) (bool, error) {
	exists, err := s.registrationRepository.TeamNameExists(teamName)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *RegistrationService) DeleteRegistration(id int) error {
	if _, err := s.registrationRepository.GetRegistrationById(id); err != nil {
		return err
	}
	return s.registrationRepository.DeleteRegistration(id)
}
