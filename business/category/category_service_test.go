package category

import (
	"context"
	"testing"

	"storefront/domain"
	"storefront/pkg/apperror"
	"storefront/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	category.ID = 4
	return args.Error(0)
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id int64) (domain.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) (domain.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Category), args.Error(1)
}

func TestCreateCategory(t *testing.T) {
	repo := new(mockCategoryRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Category")).Return(nil)

	got, err := NewCategoryService(repo, validation.New()).CreateCategory(context.Background(), CategoryInput{Name: "games"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)
	assert.Equal(t, "games", got.Name)
	repo.AssertExpectations(t)
}

func TestCreateCategory_NameRequired(t *testing.T) {
	repo := new(mockCategoryRepo)

	_, err := NewCategoryService(repo, validation.New()).CreateCategory(context.Background(), CategoryInput{})
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, "name", apperror.As(err).Details[0].Field)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReplaceCategory_NotFound(t *testing.T) {
	repo := new(mockCategoryRepo)
	repo.On("Update", mock.Anything, &domain.Category{ID: 9, Name: "tools"}).Return(apperror.NotFound("category not found"))

	_, err := NewCategoryService(repo, validation.New()).ReplaceCategory(context.Background(), 9, CategoryInput{Name: "tools"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteCategory_ReturnsRow(t *testing.T) {
	repo := new(mockCategoryRepo)
	repo.On("Delete", mock.Anything, int64(2)).Return(domain.Category{ID: 2, Name: "hardware"}, nil)

	got, err := NewCategoryService(repo, validation.New()).DeleteCategory(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "hardware", got.Name)
}

func TestGetCategoryByID(t *testing.T) {
	repo := new(mockCategoryRepo)
	repo.On("FindByID", mock.Anything, int64(1)).Return(domain.Category{ID: 1, Name: "games"}, nil)
	svc := NewCategoryService(repo, validation.New())

	got, err := svc.GetCategoryByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "games", got.Name)

	_, err = svc.GetCategoryByID(context.Background(), -1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetAllCategories_CancelledContext(t *testing.T) {
	repo := new(mockCategoryRepo)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCategoryService(repo, validation.New()).GetAllCategories(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	repo.AssertNotCalled(t, "FindAll", mock.Anything)
}
