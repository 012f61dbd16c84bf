package controller

import (
	"sportsfest/app_error"
	"sportsfest/repository"
	"sportsfest/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EmailController struct {
	emailService *service.EmailService
}

func NewEmailController(db *gorm.DB) *EmailController {
	return &EmailController{
		emailService: service.NewEmailService(db),
	}
}

func setupEmailController(db *gorm.DB) []RouteInfo {
	e := NewEmailController(db)
	basePath := "/email"
	routes := []RouteInfo{
		{Method: "POST", Path: "/send", HandlerFunc: e.sendHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleAdmin}},
		{Method: "POST", Path: "/test", HandlerFunc: e.testHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Sends a bulk email to registrants or a manual list
// @Tags email
// @Accept json
// @Produce json
// @Param request body EmailSendRequest true "Message and audience"
// @Success 200 {object} EmailSendResponse
// @Router /email/send [post]
func (e *EmailController) sendHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request EmailSendRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		recipients, err := e.emailService.Recipients(request.Status, request.Gender, request.Recipients)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		result, err := e.emailService.SendBulk(request.Subject, request.Body, recipients)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, EmailSendResponse{
			Success: true,
			Sent:    result.Sent,
			Failed:  result.Failed,
		})
	}
}

// @Description Sends a test email to verify SMTP settings
// @Tags email
// @Accept json
// @Produce json
// @Param request body EmailTestRequest true "Test recipient"
// @Success 200 {object} EmailSendResponse
// @Router /email/test [post]
func (e *EmailController) testHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request EmailTestRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.emailService.SendTest(request.To); err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, EmailSendResponse{Success: true, Sent: 1})
	}
}

type EmailSendRequest struct {
	Subject    string `json:"subject" binding:"required"`
	Body       string `json:"body" binding:"required"`
	Status     string `json:"status"`
	Gender     string `json:"gender"`
	Recipients string `json:"recipients"`
}

type EmailTestRequest struct {
	To string `json:"to" binding:"required"`
}

type EmailSendResponse struct {
	Success bool `json:"success"`
	Sent    int  `json:"sent"`
	Failed  int  `json:"failed"`
}
