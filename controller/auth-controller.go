package controller

import (
	"net/http"
	"strconv"
	"time"

	"sportsfest/app_error"
	"sportsfest/config"
	"sportsfest/repository"
	"sportsfest/service"
	"sportsfest/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		authService: service.NewAuthService(db),
	}
}

func setupAuthController(db *gorm.DB) []RouteInfo {
	e := NewAuthController(db)
	basePath := "/auth"
	routes := []RouteInfo{
		{Method: "POST", Path: "/login", HandlerFunc: e.loginHandler()},
		{Method: "POST", Path: "/logout", HandlerFunc: e.logoutHandler()},
		{Method: "GET", Path: "/me", HandlerFunc: e.meHandler(), Authenticated: true},
		{Method: "GET", Path: "/users", HandlerFunc: e.getUsersHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleSuperAdmin}},
		{Method: "POST", Path: "/users", HandlerFunc: e.createUserHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleSuperAdmin}},
		{Method: "PATCH", Path: "/users/:user_id", HandlerFunc: e.updateUserHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleSuperAdmin}},
		{Method: "DELETE", Path: "/users/:user_id", HandlerFunc: e.deleteUserHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleSuperAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Logs an admin in and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Router /auth/login [post]
func (e *AuthController) loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request LoginRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		result, err := e.authService.Login(request.Username, request.Password)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		maxAge := int(time.Until(result.ExpiresAt).Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookieName, result.Token, maxAge, "/", config.Env().PublicDomain, config.IsProduction(), true)
		c.JSON(200, LoginResponse{
			Success:     true,
			Username:    result.Username,
			Role:        result.Role,
			LandingPath: result.LandingPath,
		})
	}
}

// @Description Logs the current admin out
// @Tags auth
// @Success 200
// @Router /auth/logout [post]
func (e *AuthController) logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(sessionCookieName); err == nil {
			if err := e.authService.Logout(cookie); err != nil {
				c.JSON(500, gin.H{"error": err.Error()})
				return
			}
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookieName, "", -1, "/", config.Env().PublicDomain, config.IsProduction(), true)
		c.JSON(200, gin.H{"success": true})
	}
}

// @Description Returns the resolved session
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /auth/me [get]
func (e *AuthController) meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromContext(c)
		c.JSON(200, SessionResponse{
			Username:  session.Username,
			Role:      session.Role,
			ExpiresAt: session.ExpiresAt,
		})
	}
}

// @Description Lists admin users
// @Tags auth
// @Produce json
// @Success 200 {array} AdminUserResponse
// @Router /auth/users [get]
func (e *AuthController) getUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := e.authService.GetUsers()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(users, toAdminUserResponse))
	}
}

// @Description Creates an admin user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body AdminUserCreate true "User to create"
// @Success 201 {object} AdminUserResponse
// @Router /auth/users [post]
func (e *AuthController) createUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request AdminUserCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.authService.CreateUser(request.Username, request.Password, request.Role)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(201, toAdminUserResponse(user))
	}
}

// @Description Updates an admin user's password or role
// @Tags auth
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param user body AdminUserUpdate true "Fields to update"
// @Success 200 {object} AdminUserResponse
// @Router /auth/users/{userId} [patch]
func (e *AuthController) updateUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request AdminUserUpdate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.authService.UpdateUser(userId, request.Password, request.Role)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "User not found"})
			} else {
				app_error.WithHTTPStatus(c, err)
			}
			return
		}
		c.JSON(200, toAdminUserResponse(user))
	}
}

// @Description Deletes an admin user
// @Tags auth
// @Param userId path int true "User ID"
// @Success 204
// @Router /auth/users/{userId} [delete]
func (e *AuthController) deleteUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		err = e.authService.DeleteUser(userId, actorFromContext(c))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "User not found"})
			} else {
				app_error.WithHTTPStatus(c, err)
			}
			return
		}
		c.JSON(204, nil)
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Success     bool   `json:"success"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	LandingPath string `json:"landing_path"`
}

type SessionResponse struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AdminUserCreate struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type AdminUserUpdate struct {
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AdminUserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func toAdminUserResponse(user *repository.AdminUser) AdminUserResponse {
	return AdminUserResponse{
		ID:       user.Id,
		Username: user.Username,
		Role:     user.Role,
	}
}
