package service

import (
	"sportsfest/app_error"
	"sportsfest/repository"

	"gorm.io/gorm"
)

// defaultGames is the built-in pricing list used while the game_prices table
// is empty.
var defaultGames = []*repository.GamePrice{
	{Name: "Cricket", BoysPrice: 2000, GirlsPrice: 1500, IsTeamGame: true, TeamSize: 11},
	{Name: "Football", BoysPrice: 1500, GirlsPrice: 1200, IsTeamGame: true, TeamSize: 7},
	{Name: "Futsal", BoysPrice: 1000, GirlsPrice: 800, IsTeamGame: true, TeamSize: 5},
	{Name: "Basketball", BoysPrice: 1200, GirlsPrice: 1000, IsTeamGame: true, TeamSize: 5},
	{Name: "Volleyball", BoysPrice: 1000, GirlsPrice: 800, IsTeamGame: true, TeamSize: 6},
	{Name: "Badminton", BoysPrice: 500, GirlsPrice: 500, IsTeamGame: false, TeamSize: 1},
	{Name: "Table Tennis", BoysPrice: 400, GirlsPrice: 400, IsTeamGame: false, TeamSize: 1},
	{Name: "Chess", BoysPrice: 300, GirlsPrice: 300, IsTeamGame: false, TeamSize: 1},
	{Name: "Tug of War", BoysPrice: 800, GirlsPrice: 600, IsTeamGame: true, TeamSize: 8},
}

type GameService struct {
	gameRepository *repository.GameRepository
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{
		gameRepository: repository.NewGameRepository(db),
	}
}

func (s *GameService) GetGames() ([]*repository.GamePrice, error) {
	games, err := s.gameRepository.GetAllGames()
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return defaultGames, nil
	}
	return games, nil
}

// PriceFor returns the gender-specific price for one game.
func (s *GameService) PriceFor(gameName string, gender string) (float64, error) {
	games, err := s.GetGames()
	if err != nil {
		return 0, err
	}
	for _, game := range games {
		if game.Name == gameName {
			if gender == "girls" {
				return game.GirlsPrice, nil
			}
			return game.BoysPrice, nil
		}
	}
	return 0, app_error.New(400, "Unknown game %q", gameName)
}

func (s *GameService) ReplaceGames(games []*repository.GamePrice) ([]*repository.GamePrice, error) {
	for _, game := range games {
		if game.Name == "" {
			return nil, app_error.New(400, "Game name is required")
		}
		if game.BoysPrice < 0 || game.GirlsPrice < 0 {
			return nil, app_error.New(400, "Game %q has a negative price", game.Name)
		}
	}
	if err := s.gameRepository.ReplaceGames(games); err != nil {
		return nil, err
	}
	return s.GetGames()
}
