package rest_test

import (
	"context"
	"net/http"
	"testing"

	"storefront/business/product"
	"storefront/domain"
	"storefront/internal/rest"
	"storefront/pkg/apperror"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductService) GetAllProductsWithCategories(ctx context.Context) ([]domain.ProductWithCategories, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ProductWithCategories), args.Error(1)
}

func (m *mockProductService) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockProductService) GetProductWithCategories(ctx context.Context, id int64) (domain.ProductWithCategories, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ProductWithCategories), args.Error(1)
}

func (m *mockProductService) CreateProduct(ctx context.Context, in product.CreateProductInput) (domain.Product, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockProductService) ReplaceProduct(ctx context.Context, id int64, in product.CreateProductInput) (domain.Product, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockProductService) PatchProduct(ctx context.Context, id int64, in product.PatchProductInput) (domain.Product, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, id int64) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func productsServer(svc *mockProductService) *echo.Echo {
	e := newEcho()
	h := rest.NewProductHandler(svc)
	g := e.Group("/api/v1/products")
	g.GET("", h.GetAllProducts)
	g.GET("/:id", h.GetProductByID)
	g.POST("", h.CreateProduct)
	g.PUT("/:id", h.ReplaceProduct)
	g.PATCH("/:id", h.PatchProduct)
	g.DELETE("/:id", h.DeleteProduct)
	return e
}

func TestGetAllProducts_Expand(t *testing.T) {
	svc := new(mockProductService)
	svc.On("GetAllProducts", mock.Anything).Return([]domain.Product{{ID: 1, Name: "Pad"}}, nil)
	svc.On("GetAllProductsWithCategories", mock.Anything).Return([]domain.ProductWithCategories{{
		Product:    domain.Product{ID: 1, Name: "Pad"},
		Categories: []domain.Category{{ID: 2, Name: "hardware"}},
	}}, nil)

	e := productsServer(svc)

	plain := do(e, http.MethodGet, "/api/v1/products", "")
	assert.Equal(t, http.StatusOK, plain.Code)
	assert.NotContains(t, plain.Body.String(), "hardware")

	expanded := do(e, http.MethodGet, "/api/v1/products?expand=categories", "")
	assert.Equal(t, http.StatusOK, expanded.Code)
	assert.Contains(t, expanded.Body.String(), `"name":"hardware"`)
}

func TestCreateProduct_DecimalPrice(t *testing.T) {
	svc := new(mockProductService)
	svc.On("CreateProduct", mock.Anything, mock.MatchedBy(func(in product.CreateProductInput) bool {
		return in.Name == "Pad" && in.Price.Equal(decimal.RequireFromString("19.99"))
	})).Return(domain.Product{ID: 5, Name: "Pad", Price: decimal.RequireFromString("19.99")}, nil)

	rec := do(productsServer(svc), http.MethodPost, "/api/v1/products", `{"name":"Pad","about":"x","price":19.99}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":19.99`)
	svc.AssertExpectations(t)
}

func TestPatchProduct_NullCategories(t *testing.T) {
	svc := new(mockProductService)
	svc.On("PatchProduct", mock.Anything, int64(5), mock.MatchedBy(func(in product.PatchProductInput) bool {
		return in.CategoryIDs.Set && in.CategoryIDs.Null && !in.Name.Set
	})).Return(domain.Product{ID: 5}, nil)

	rec := do(productsServer(svc), http.MethodPatch, "/api/v1/products/5", `{"categoryIds":null}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc := new(mockProductService)
	svc.On("DeleteProduct", mock.Anything, int64(9)).Return(domain.Product{}, apperror.NotFound("product not found"))

	rec := do(productsServer(svc), http.MethodDelete, "/api/v1/products/9", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "product not found")
}
