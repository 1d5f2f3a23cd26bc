package rest

import (
	"context"
	"net/http"
	"storefront/business/user"
	"storefront/domain"
	"storefront/pkg/logger"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	CreateUser(ctx context.Context, in user.CreateUserInput) (domain.PublicUser, error)
	GetAllUsers(ctx context.Context) ([]domain.PublicUser, error)
	GetUserByID(ctx context.Context, id int64) (domain.PublicUser, error)
	ReplaceUser(ctx context.Context, id int64, in user.CreateUserInput) (domain.PublicUser, error)
	PatchUser(ctx context.Context, id int64, in user.PatchUserInput) (domain.PublicUser, error)
	DeleteUser(ctx context.Context, id int64) (domain.PublicUser, error)
}

type UserHandler struct {
	userService UserService
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		timeout:     10 * time.Second,
	}
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var reqUser user.CreateUserInput
	if err := bind(c, &reqUser); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.userService.CreateUser(ctx, reqUser)
	if err != nil {
		logger.Error("Failed to create user", err)
		return err
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *UserHandler) GetAllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.userService.GetAllUsers(ctx)
	if err != nil {
		logger.Error("Failed to get all users", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(users))
}

func (h *UserHandler) GetUserByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.userService.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(found))
}

func (h *UserHandler) ReplaceUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req user.CreateUserInput
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.userService.ReplaceUser(ctx, id, req)
	if err != nil {
		logger.Error("Failed to update user", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *UserHandler) PatchUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req user.PatchUserInput
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.userService.PatchUser(ctx, id, req)
	if err != nil {
		logger.Error("Failed to patch user", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deleted, err := h.userService.DeleteUser(ctx, id)
	if err != nil {
		logger.Error("Failed to delete user", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(deleted))
}
