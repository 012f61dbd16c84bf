package controller

import (
	"strconv"
	"time"

	"sportsfest/app_error"
	"sportsfest/repository"
	"sportsfest/service"
	"sportsfest/utils"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type RegistrationController struct {
	registrationService *service.RegistrationService
}

func NewRegistrationController(db *gorm.DB) *RegistrationController {
	return &RegistrationController{
		registrationService: service.NewRegistrationService(db),
	}
}

func setupRegistrationController(db *gorm.DB) []RouteInfo {
	e := NewRegistrationController(db)
	basePath := "/registrations"
	adminRoles := []string{repository.RoleAdmin, repository.RoleFinanceAdmin}
	routes := []RouteInfo{
		{Method: "POST", Path: "", HandlerFunc: e.createRegistrationHandler()},
		{Method: "GET", Path: "", HandlerFunc: e.getRegistrationsHandler(), Authenticated: true, RequiredRoles: adminRoles},
		{Method: "GET", Path: "/check-team-name", HandlerFunc: e.checkTeamNameHandler()},
		{Method: "GET", Path: "/ticket", HandlerFunc: e.getTicketHandler()},
		{Method: "GET", Path: "/ticket/qr", HandlerFunc: e.getTicketQRHandler()},
		{Method: "PATCH", Path: "/:registration_id", HandlerFunc: e.updateRegistrationHandler(), Authenticated: true, RequiredRoles: adminRoles},
		{Method: "DELETE", Path: "/:registration_id", HandlerFunc: e.deleteRegistrationHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Submits a public registration
// @Tags registration
// @Accept json
// @Produce json
// @Param registration body RegistrationCreate true "Registration to submit"
// @Success 201 {object} RegistrationReceipt
// @Router /registrations [post]
func (e *RegistrationController) createRegistrationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request RegistrationCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		registration, err := e.registrationService.CreateRegistration(request.toInput())
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(201, RegistrationReceipt{
			Success:   true,
			Id:        registration.Id,
			RegNumber: registration.RegNumber,
			SlipId:    registration.SlipId,
			Total:     registration.Total,
			Status:    registration.Status,
		})
	}
}

// @Description Lists registrations with optional filters
// @Tags registration
// @Produce json
// @Param status query string false "Status filter"
// @Param gender query string false "Gender filter"
// @Param game query string false "Game filter"
// @Param search query string false "Free-text search"
// @Success 200 {array} RegistrationResponse
// @Router /registrations [get]
func (e *RegistrationController) getRegistrationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		registrations, err := e.registrationService.GetRegistrations(repository.RegistrationFilter{
			Status: c.Query("status"),
			Gender: c.Query("gender"),
			Game:   c.Query("game"),
			Search: c.Query("search"),
		})
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(registrations, toRegistrationResponse))
	}
}

// @Description Checks whether a team name is still available
// @Tags registration
// @Produce json
// @Param team_name query string true "Team name"
// @Success 200 {object} TeamNameResponse
// @Router /registrations/check-team-name [get]
func (e *RegistrationController) checkTeamNameHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		teamName := c.Query("team_name")
		if teamName == "" {
			c.JSON(400, gin.H{"error": "team_name is required"})
			return
		}
		available, err := e.registrationService.TeamNameAvailable(teamName)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, TeamNameResponse{Available: available})
	}
}

// @Description Two-factor public ticket lookup by id and slip id
// @Tags registration
// @Produce json
// @Param id query int true "Registration ID"
// @Param slip_id query string true "Slip ID"
// @Success 200 {object} RegistrationResponse
// @Router /registrations/ticket [get]
func (e *RegistrationController) getTicketHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Query("id"))
		if err != nil {
			c.JSON(400, gin.H{"error": "id is required"})
			return
		}
		slipId := c.Query("slip_id")
		if slipId == "" {
			c.JSON(400, gin.H{"error": "slip_id is required"})
			return
		}
		registration, err := e.registrationService.GetTicket(id, slipId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Ticket not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toRegistrationResponse(registration))
	}
}

// @Description Renders the ticket QR code as a PNG
// @Tags registration
// @Produce png
// @Param id query int true "Registration ID"
// @Param slip_id query string true "Slip ID"
// @Success 200
// @Router /registrations/ticket/qr [get]
func (e *RegistrationController) getTicketQRHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Query("id"))
		if err != nil {
			c.JSON(400, gin.H{"error": "id is required"})
			return
		}
		slipId := c.Query("slip_id")
		if slipId == "" {
			c.JSON(400, gin.H{"error": "slip_id is required"})
			return
		}
		registration, err := e.registrationService.GetTicket(id, slipId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Ticket not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		png, err := qrcode.Encode(registration.SlipId, qrcode.Medium, 256)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "image/png", png)
	}
}

// @Description Partially updates a registration's status and/or discount
// @Tags registration
// @Accept json
// @Produce json
// @Param registrationId path int true "Registration ID"
// @Param update body RegistrationUpdate true "Fields to update"
// @Success 200 {object} RegistrationResponse
// @Router /registrations/{registrationId} [patch]
func (e *RegistrationController) updateRegistrationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		registrationId, err := strconv.Atoi(c.Param("registration_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request RegistrationUpdate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		registration, err := e.registrationService.UpdateRegistration(registrationId, request.Status, request.Discount)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Registration not found"})
			} else {
				app_error.WithHTTPStatus(c, err)
			}
			return
		}
		c.JSON(200, toRegistrationResponse(registration))
	}
}

// @Description Deletes a registration
// @Tags registration
// @Param registrationId path int true "Registration ID"
// @Success 204
// @Router /registrations/{registrationId} [delete]
func (e *RegistrationController) deleteRegistrationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		registrationId, err := strconv.Atoi(c.Param("registration_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		err = e.registrationService.DeleteRegistration(registrationId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Registration not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(204, nil)
	}
}

type TeamMemberCreate struct {
	Game       string `json:"game" binding:"required"`
	Name       string `json:"name" binding:"required"`
	RollNumber string `json:"roll_number"`
}

type RegistrationCreate struct {
	Name          string             `json:"name" binding:"required"`
	RollNumber    string             `json:"roll_number"`
	Phone         string             `json:"phone" binding:"required"`
	AltPhone      string             `json:"alt_phone"`
	Email         string             `json:"email" binding:"required,email"`
	Gender        string             `json:"gender" binding:"required"`
	TeamName      string             `json:"team_name" binding:"required"`
	Games         []string           `json:"games" binding:"required"`
	TeamMembers   []TeamMemberCreate `json:"team_members"`
	PaymentMethod string             `json:"payment_method" binding:"required"`
	TransactionId string             `json:"transaction_id"`
	PaymentProof  string             `json:"payment_proof"`
}

func (r *RegistrationCreate) toInput() *service.RegistrationCreate {
	return &service.RegistrationCreate{
		Name:          r.Name,
		RollNumber:    r.RollNumber,
		Phone:         r.Phone,
		AltPhone:      r.AltPhone,
		Email:         r.Email,
		Gender:        r.Gender,
		TeamName:      r.TeamName,
		Games:         r.Games,
		PaymentMethod: r.PaymentMethod,
		TransactionId: r.TransactionId,
		PaymentProof:  r.PaymentProof,
		TeamMembers: utils.Map(r.TeamMembers, func(member TeamMemberCreate) *repository.TeamMember {
			return &repository.TeamMember{
				Game:       member.Game,
				Name:       member.Name,
				RollNumber: member.RollNumber,
			}
		}),
	}
}

type RegistrationUpdate struct {
	Status   *string  `json:"status"`
	Discount *float64 `json:"discount"`
}

type RegistrationReceipt struct {
	Success   bool    `json:"success"`
	Id        int     `json:"id"`
	RegNumber int     `json:"reg_number"`
	SlipId    string  `json:"slip_id"`
	Total     float64 `json:"total"`
	Status    string  `json:"status"`
}

type TeamNameResponse struct {
	Available bool `json:"available"`
}

type TeamMemberResponse struct {
	Game       string `json:"game"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
}

type RegistrationResponse struct {
	Id            int                  `json:"id"`
	RegNumber     int                  `json:"reg_number"`
	SlipId        string               `json:"slip_id"`
	Name          string               `json:"name"`
	RollNumber    string               `json:"roll_number"`
	Phone         string               `json:"phone"`
	AltPhone      string               `json:"alt_phone"`
	Email         string               `json:"email"`
	Gender        string               `json:"gender"`
	TeamName      string               `json:"team_name"`
	Games         []string             `json:"games"`
	TeamMembers   []TeamMemberResponse `json:"team_members"`
	PaymentMethod string               `json:"payment_method"`
	TransactionId string               `json:"transaction_id"`
	Discount      float64              `json:"discount"`
	Total         float64              `json:"total"`
	Status        string               `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

func toRegistrationResponse(registration *repository.Registration) RegistrationResponse {
	return RegistrationResponse{
		Id:            registration.Id,
		RegNumber:     registration.RegNumber,
		SlipId:        registration.SlipId,
		Name:          registration.Name,
		RollNumber:    registration.RollNumber,
		Phone:         registration.Phone,
		AltPhone:      registration.AltPhone,
		Email:         registration.Email,
		Gender:        registration.Gender,
		TeamName:      registration.TeamName,
		Games:         registration.Games,
		TeamMembers: utils.Map(registration.TeamMembers, func(member *repository.TeamMember) TeamMemberResponse {
			return TeamMemberResponse{
				Game:       member.Game,
				Name:       member.Name,
				RollNumber: member.RollNumber,
			}
		}),
		PaymentMethod: registration.PaymentMethod,
		TransactionId: registration.TransactionId,
		Discount:      registration.Discount,
		Total:         registration.Total,
		Status:        registration.Status,
		CreatedAt:     registration.CreatedAt,
	}
}
