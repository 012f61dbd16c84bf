package controller

import (
	"sportsfest/repository"
	"sportsfest/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SettingController struct {
	settingService *service.SettingService
}

func NewSettingController(db *gorm.DB) *SettingController {
	return &SettingController{
		settingService: service.NewSettingService(db),
	}
}

func setupSettingController(db *gorm.DB) []RouteInfo {
	e := NewSettingController(db)
	basePath := "/settings"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getSettingsHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleSuperAdmin}},
		{Method: "PUT", Path: "", HandlerFunc: e.updateSettingsHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleSuperAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Lists settings with secrets masked
// @Tags setting
// @Produce json
// @Success 200 {object} map[string]string
// @Router /settings [get]
func (e *SettingController) getSettingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := e.settingService.GetSettings()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, settings)
	}
}

// @Description Upserts the supplied settings; masked secret values are ignored
// @Tags setting
// @Accept json
// @Produce json
// @Param settings body map[string]string true "Settings to store"
// @Success 200 {object} map[string]string
// @Router /settings [put]
func (e *SettingController) updateSettingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request map[string]string
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.settingService.SetSettings(request); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		settings, err := e.settingService.GetSettings()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, settings)
	}
}
