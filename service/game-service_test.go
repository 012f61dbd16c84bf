package service

import (
	"testing"

	"sportsfest/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPricingIsUsedWhileTableIsEmpty(t *testing.T) {
	db := newTestDB(t)
	service := NewGameService(db)

	games, err := service.GetGames()
	require.NoError(t, err)
	assert.Len(t, games, 9)

	price, err := service.PriceFor("Cricket", "boys")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, price)

	price, err = service.PriceFor("Cricket", "girls")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, price)

	_, err = service.PriceFor("Quidditch", "boys")
	assert.ErrorContains(t, err, "Unknown game")
}

func TestReplaceGames(t *testing.T) {
	db := newTestDB(t)
	service := NewGameService(db)

	games, err := service.ReplaceGames([]*repository.GamePrice{
		{Name: "Carrom", BoysPrice: 250, GirlsPrice: 250},
	})
	require.NoError(t, err)
	require.Len(t, games, 1)

	// The stored table now wins over the defaults.
	price, err := service.PriceFor("Carrom", "boys")
	require.NoError(t, err)
	assert.Equal(t, 250.0, price)

	_, err = service.PriceFor("Cricket", "boys")
	assert.ErrorContains(t, err, "Unknown game")

	_, err = service.ReplaceGames([]*repository.GamePrice{{Name: ""}})
	assert.ErrorContains(t, err, "name is required")

	_, err = service.ReplaceGames([]*repository.GamePrice{{Name: "Carrom", BoysPrice: -1}})
	assert.ErrorContains(t, err, "negative price")
}
