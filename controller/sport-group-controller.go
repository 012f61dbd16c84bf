package controller

import (
	"strconv"

	"sportsfest/app_error"
	"sportsfest/repository"
	"sportsfest/service"
	"sportsfest/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SportGroupController struct {
	sportGroupService *service.SportGroupService
}

func NewSportGroupController(db *gorm.DB) *SportGroupController {
	return &SportGroupController{
		sportGroupService: service.NewSportGroupService(db),
	}
}

func setupSportGroupController(db *gorm.DB) []RouteInfo {
	e := NewSportGroupController(db)
	basePath := "/sport-groups"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getGroupsHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleAdmin}},
		{Method: "POST", Path: "", HandlerFunc: e.createGroupHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleAdmin}},
		{Method: "PUT", Path: "/:group_id", HandlerFunc: e.updateGroupHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleAdmin}},
		{Method: "DELETE", Path: "/:group_id", HandlerFunc: e.deleteGroupHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleAdmin}},
		{Method: "POST", Path: "/lookup", HandlerFunc: e.lookupHandler()},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Lists all sport groups
// @Tags sport-group
// @Produce json
// @Success 200 {array} SportGroupResponse
// @Router /sport-groups [get]
func (e *SportGroupController) getGroupsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groups, err := e.sportGroupService.GetGroups()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(groups, toSportGroupResponse))
	}
}

// @Description Creates a sport group entry
// @Tags sport-group
// @Accept json
// @Produce json
// @Param group body SportGroupUpsert true "Group to create"
// @Success 201 {object} SportGroupResponse
// @Router /sport-groups [post]
func (e *SportGroupController) createGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request SportGroupUpsert
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		group, err := e.sportGroupService.SaveGroup(request.toModel(0))
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(201, toSportGroupResponse(group))
	}
}

// @Description Updates a sport group entry
// @Tags sport-group
// @Accept json
// @Produce json
// @Param groupId path int true "Group ID"
// @Param group body SportGroupUpsert true "Fields to update"
// @Success 200 {object} SportGroupResponse
// @Router /sport-groups/{groupId} [put]
func (e *SportGroupController) updateGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupId, err := strconv.Atoi(c.Param("group_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if _, err := e.sportGroupService.GetGroup(groupId); err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Group not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		var request SportGroupUpsert
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		group, err := e.sportGroupService.SaveGroup(request.toModel(groupId))
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, toSportGroupResponse(group))
	}
}

// @Description Deletes a sport group entry
// @Tags sport-group
// @Param groupId path int true "Group ID"
// @Success 204
// @Router /sport-groups/{groupId} [delete]
func (e *SportGroupController) deleteGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupId, err := strconv.Atoi(c.Param("group_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		err = e.sportGroupService.DeleteGroup(groupId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Group not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(204, nil)
	}
}

// @Description Resolves group links and personalized messages for a participant
// @Tags sport-group
// @Accept json
// @Produce json
// @Param lookup body GroupLookupRequest true "Participant and games"
// @Success 200 {array} GroupMessageResponse
// @Router /sport-groups/lookup [post]
func (e *SportGroupController) lookupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request GroupLookupRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		messages, err := e.sportGroupService.Lookup(service.GroupParticipant{
			Name:      request.Name,
			RegNumber: request.RegNumber,
			Roll:      request.Roll,
			Phone:     request.Phone,
			TeamName:  request.TeamName,
			Gender:    request.Gender,
		}, request.Games)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(messages, toGroupMessageResponse))
	}
}

type SportGroupUpsert struct {
	Game             string `json:"game" binding:"required"`
	Gender           string `json:"gender" binding:"required"`
	GroupUrl         string `json:"group_url" binding:"required"`
	CoordinatorName  string `json:"coordinator_name"`
	CoordinatorPhone string `json:"coordinator_phone"`
	MessageTemplate  string `json:"message_template"`
	IsActive         bool   `json:"is_active"`
}

func (g *SportGroupUpsert) toModel(id int) *repository.SportGroup {
	return &repository.SportGroup{
		Id:               id,
		Game:             g.Game,
		Gender:           g.Gender,
		GroupUrl:         g.GroupUrl,
		CoordinatorName:  g.CoordinatorName,
		CoordinatorPhone: g.CoordinatorPhone,
		MessageTemplate:  g.MessageTemplate,
		IsActive:         g.IsActive,
	}
}

type SportGroupResponse struct {
	Id               int    `json:"id"`
	Game             string `json:"game"`
	Gender           string `json:"gender"`
	GroupUrl         string `json:"group_url"`
	CoordinatorName  string `json:"coordinator_name"`
	CoordinatorPhone string `json:"coordinator_phone"`
	MessageTemplate  string `json:"message_template"`
	IsActive         bool   `json:"is_active"`
}

func toSportGroupResponse(group *repository.SportGroup) SportGroupResponse {
	return SportGroupResponse{
		Id:               group.Id,
		Game:             group.Game,
		Gender:           group.Gender,
		GroupUrl:         group.GroupUrl,
		CoordinatorName:  group.CoordinatorName,
		CoordinatorPhone: group.CoordinatorPhone,
		MessageTemplate:  group.MessageTemplate,
		IsActive:         group.IsActive,
	}
}

type GroupLookupRequest struct {
	Name      string   `json:"name"`
	RegNumber int      `json:"reg_number"`
	Roll      string   `json:"roll"`
	Phone     string   `json:"phone"`
	TeamName  string   `json:"team_name"`
	Gender    string   `json:"gender" binding:"required"`
	Games     []string `json:"games" binding:"required"`
}

type GroupMessageResponse struct {
	Game             string `json:"game"`
	GroupUrl         string `json:"group_url"`
	CoordinatorName  string `json:"coordinator_name"`
	CoordinatorPhone string `json:"coordinator_phone"`
	Message          string `json:"message"`
	WhatsappLink     string `json:"whatsapp_link"`
}

func toGroupMessageResponse(message *service.GroupMessage) GroupMessageResponse {
	return GroupMessageResponse{
		Game:             message.Game,
		GroupUrl:         message.GroupUrl,
		CoordinatorName:  message.CoordinatorName,
		CoordinatorPhone: message.CoordinatorPhone,
		Message:          message.Message,
		WhatsappLink:     message.WhatsappLink,
	}
}
