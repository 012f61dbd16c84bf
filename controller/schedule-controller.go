package controller

import (
	"encoding/json"
	"strconv"
	"time"

	"sportsfest/app_error"
	"sportsfest/repository"
	"sportsfest/service"
	"sportsfest/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ScheduleController struct {
	scheduleService *service.ScheduleService
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{
		scheduleService: service.NewScheduleService(db),
	}
}

func setupScheduleController(db *gorm.DB) []RouteInfo {
	e := NewScheduleController(db)
	basePath := "/schedules"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getSchedulesHandler()},
		{Method: "GET", Path: "/current", HandlerFunc: e.getCurrentScheduleHandler()},
		{Method: "POST", Path: "/generate", HandlerFunc: e.generateScheduleHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleAdmin}},
		{Method: "DELETE", Path: "/:schedule_id", HandlerFunc: e.deleteScheduleHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Lists all stored schedules
// @Tags schedule
// @Produce json
// @Success 200 {array} ScheduleResponse
// @Router /schedules [get]
func (e *ScheduleController) getSchedulesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		schedules, err := e.scheduleService.GetSchedules()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(schedules, toScheduleResponse))
	}
}

// @Description Fetches the current schedule for a game and gender
// @Tags schedule
// @Produce json
// @Param game query string true "Game"
// @Param gender query string true "Gender"
// @Success 200 {object} ScheduleResponse
// @Router /schedules/current [get]
func (e *ScheduleController) getCurrentScheduleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		game := c.Query("game")
		gender := c.Query("gender")
		if game == "" || gender == "" {
			c.JSON(400, gin.H{"error": "game and gender are required"})
			return
		}
		schedule, err := e.scheduleService.GetSchedule(game, gender)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "No schedule for this game and gender"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toScheduleResponse(schedule))
	}
}

// @Description Generates a schedule through the configured AI model and stores it
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body ScheduleGenerateRequest true "Generation request"
// @Success 200 {object} ScheduleResponse
// @Router /schedules/generate [post]
func (e *ScheduleController) generateScheduleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request ScheduleGenerateRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		schedule, err := e.scheduleService.GenerateSchedule(
			c.Request.Context(),
			request.Game,
			request.Gender,
			request.Teams,
			request.Instructions,
			actorFromContext(c),
		)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, toScheduleResponse(schedule))
	}
}

// @Description Deletes a stored schedule
// @Tags schedule
// @Param scheduleId path int true "Schedule ID"
// @Success 204
// @Router /schedules/{scheduleId} [delete]
func (e *ScheduleController) deleteScheduleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		scheduleId, err := strconv.Atoi(c.Param("schedule_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		err = e.scheduleService.DeleteSchedule(scheduleId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Schedule not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(204, nil)
	}
}

type ScheduleGenerateRequest struct {
	Game         string   `json:"game" binding:"required"`
	Gender       string   `json:"gender" binding:"required"`
	Teams        []string `json:"teams" binding:"required"`
	Instructions string   `json:"instructions"`
}

type ScheduleResponse struct {
	Id               int             `json:"id"`
	Game             string          `json:"game"`
	Gender           string          `json:"gender"`
	Payload          json.RawMessage `json:"payload"`
	ValidationStatus string          `json:"validation_status"`
	GeneratedBy      string          `json:"generated_by"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func toScheduleResponse(schedule *repository.MatchSchedule) ScheduleResponse {
	return ScheduleResponse{
		Id:               schedule.Id,
		Game:             schedule.Game,
		Gender:           schedule.Gender,
		Payload:          json.RawMessage(schedule.Payload),
		ValidationStatus: schedule.ValidationStatus,
		GeneratedBy:      schedule.GeneratedBy,
		UpdatedAt:        schedule.UpdatedAt,
	}
}
