package controller

import (
	"sportsfest/app_error"
	"sportsfest/repository"
	"sportsfest/service"
	"sportsfest/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(db *gorm.DB) *GameController {
	return &GameController{
		gameService: service.NewGameService(db),
	}
}

func setupGameController(db *gorm.DB) []RouteInfo {
	e := NewGameController(db)
	basePath := "/games"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getGamesHandler()},
		{Method: "PUT", Path: "", HandlerFunc: e.replaceGamesHandler(), Authenticated: true, RequiredRoles: []string{repository.RoleAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Lists games with gender-specific pricing
// @Tags game
// @Produce json
// @Success 200 {array} GameResponse
// @Router /games [get]
func (e *GameController) getGamesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		games, err := e.gameService.GetGames()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(games, toGameResponse))
	}
}

// @Description Replaces the pricing table
// @Tags game
// @Accept json
// @Produce json
// @Param games body []GameUpdate true "Games to store"
// @Success 200 {array} GameResponse
// @Router /games [put]
func (e *GameController) replaceGamesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request []GameUpdate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		games, err := e.gameService.ReplaceGames(utils.Map(request, func(game GameUpdate) *repository.GamePrice {
			return game.toModel()
		}))
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, utils.Map(games, toGameResponse))
	}
}

type GameUpdate struct {
	Name       string  `json:"name" binding:"required"`
	BoysPrice  float64 `json:"boys_price"`
	GirlsPrice float64 `json:"girls_price"`
	IsTeamGame bool    `json:"is_team_game"`
	TeamSize   int     `json:"team_size"`
}

func (g *GameUpdate) toModel() *repository.GamePrice {
	return &repository.GamePrice{
		Name:       g.Name,
		BoysPrice:  g.BoysPrice,
		GirlsPrice: g.GirlsPrice,
		IsTeamGame: g.IsTeamGame,
		TeamSize:   g.TeamSize,
	}
}

type GameResponse struct {
	Name       string  `json:"name"`
	BoysPrice  float64 `json:"boys_price"`
	GirlsPrice float64 `json:"girls_price"`
	IsTeamGame bool    `json:"is_team_game"`
	TeamSize   int     `json:"team_size"`
}

func toGameResponse(game *repository.GamePrice) GameResponse {
	return GameResponse{
		Name:       game.Name,
		BoysPrice:  game.BoysPrice,
		GirlsPrice: game.GirlsPrice,
		IsTeamGame: game.IsTeamGame,
		TeamSize:   game.TeamSize,
	}
}
