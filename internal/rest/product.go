package rest

import (
	"context"
	"net/http"
	"storefront/business/product"
	"storefront/domain"
	"storefront/pkg/logger"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetAllProductsWithCategories(ctx context.Context) ([]domain.ProductWithCategories, error)
	GetProductByID(ctx context.Context, id int64) (domain.Product, error)
	GetProductWithCategories(ctx context.Context, id int64) (domain.ProductWithCategories, error)
	CreateProduct(ctx context.Context, in product.CreateProductInput) (domain.Product, error)
	ReplaceProduct(ctx context.Context, id int64, in product.CreateProductInput) (domain.Product, error)
	PatchProduct(ctx context.Context, id int64, in product.PatchProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (domain.Product, error)
}

type ProductHandler struct {
	productService ProductService
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		timeout:        10 * time.Second,
	}
}

// expandCategories reports whether ?expand=categories was requested.
func expandCategories(c echo.Context) bool {
	return c.QueryParam("expand") == "categories"
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if expandCategories(c) {
		products, err := h.productService.GetAllProductsWithCategories(ctx)
		if err != nil {
			logger.Error("Failed to find all Product", err)
			return err
		}
		return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
	}

	products, err := h.productService.GetAllProducts(ctx)
	if err != nil {
		logger.Error("Failed to find all Product", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if expandCategories(c) {
		p, err := h.productService.GetProductWithCategories(ctx, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, fres.Response.StatusOK(p))
	}

	p, err := h.productService.GetProductByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(p))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req product.CreateProductInput
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newProduct, err := h.productService.CreateProduct(ctx, req)
	if err != nil {
		logger.Error("Failed to create Product", err)
		return err
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newProduct))
}

func (h *ProductHandler) ReplaceProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req product.CreateProductInput
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.productService.ReplaceProduct(ctx, id, req)
	if err != nil {
		logger.Error("Failed to update Product", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req product.PatchProductInput
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.productService.PatchProduct(ctx, id, req)
	if err != nil {
		logger.Error("Failed to patch Product", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deleted, err := h.productService.DeleteProduct(ctx, id)
	if err != nil {
		logger.Error("Failed to delete Product", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(deleted))
}
