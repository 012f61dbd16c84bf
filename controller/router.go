package controller

import (
	"sportsfest/repository"
	"sportsfest/service"
	"sportsfest/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	RequiredRoles []string
}

const (
	sessionCookieName = "admin_session"
	sessionContextKey = "session"
)

func SetRoutes(r *gin.Engine, db *gorm.DB) {
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupAuthController(db)...)
	routes = append(routes, setupRegistrationController(db)...)
	routes = append(routes, setupGameController(db)...)
	routes = append(routes, setupFinanceController(db)...)
	routes = append(routes, setupInventoryController(db)...)
	routes = append(routes, setupLoanController(db)...)
	routes = append(routes, setupScheduleController(db)...)
	routes = append(routes, setupSportGroupController(db)...)
	routes = append(routes, setupEmailController(db)...)
	routes = append(routes, setupSettingController(db)...)

	authService := service.NewAuthService(db)
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(authService, route.RequiredRoles))
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		r.Handle(route.Method, "/api"+route.Path, handlerfuncs...)
	}
}

// AuthMiddleware rejects requests without a valid session (401) or with a
// role outside the endpoint's allow-list (403). super_admin passes every
// role check implicitly.
func AuthMiddleware(authService *service.AuthService, roles []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(sessionCookieName)
		if err != nil {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			c.Abort()
			return
		}
		session, err := authService.ResolveSession(cookie)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		if session == nil {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			c.Abort()
			return
		}
		c.Set(sessionContextKey, session)
		if len(roles) == 0 || session.Role == repository.RoleSuperAdmin || utils.Contains(roles, session.Role) {
			c.Next()
			return
		}
		c.JSON(403, gin.H{"error": "Unauthorized"})
		c.Abort()
	}
}

func sessionFromContext(c *gin.Context) *repository.AdminSession {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, ok := value.(*repository.AdminSession)
	if !ok {
		return nil
	}
	return session
}

func actorFromContext(c *gin.Context) string {
	session := sessionFromContext(c)
	if session == nil {
		return "unknown"
	}
	return session.Username
}
