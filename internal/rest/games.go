package rest

import (
	"context"
	"net/http"
	"storefront/domain"
	"storefront/pkg/apperror"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type GamesService interface {
	ListGames(ctx context.Context) ([]domain.Game, error)
	GetGame(ctx context.Context, id int64) (domain.GameDetail, error)
	SearchGames(ctx context.Context, filter domain.GameFilter) ([]domain.Game, error)
}

type GamesHandler struct {
	gamesService GamesService
	timeout      time.Duration
}

func NewGamesHandler(gamesService GamesService) *GamesHandler {
	return &GamesHandler{
		gamesService: gamesService,
		timeout:      10 * time.Second,
	}
}

func (h *GamesHandler) ListGames(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	games, err := h.gamesService.ListGames(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(games))
}

func (h *GamesHandler) GetGame(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	game, err := h.gamesService.GetGame(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(game))
}

// SearchGames serves GET /games?name=&about=&price=.
func (h *GamesHandler) SearchGames(c echo.Context) error {
	filter := domain.GameFilter{
		Name:  c.QueryParam("name"),
		About: c.QueryParam("about"),
	}

	if raw := c.QueryParam("price"); raw != "" {
		price, err := strconv.Atoi(raw)
		if err != nil || price < 0 {
			return apperror.Validation("invalid price", apperror.FieldViolation{
				Field:   "price",
				Rule:    "gte",
				Param:   "0",
				Message: "price must be a non-negative integer",
			})
		}
		filter.MaxPrice = &price
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	games, err := h.gamesService.SearchGames(ctx, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(games))
}
