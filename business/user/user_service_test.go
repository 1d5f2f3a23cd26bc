package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/domain"
	"storefront/pkg/apperror"
	"storefront/pkg/optional"
	"storefront/pkg/utils"
	"storefront/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUsers is an in-memory UserRepository that keeps full rows so tests
// can inspect stored digests.
type memUsers struct {
	rows   map[int64]domain.User
	nextID int64
}

func newMemUsers() *memUsers {
	return &memUsers{rows: map[int64]domain.User{}, nextID: 1}
}

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	for _, u := range m.rows {
		if u.Email == user.Email {
			return apperror.Validation("email already exists")
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.rows[user.ID] = *user
	return nil
}

func (m *memUsers) FindPublicByID(_ context.Context, id int64) (domain.PublicUser, error) {
	u, ok := m.rows[id]
	if !ok {
		return domain.PublicUser{}, apperror.NotFound("user not found")
	}
	return u.Public(), nil
}

func (m *memUsers) FindAllPublic(_ context.Context) ([]domain.PublicUser, error) {
	out := []domain.PublicUser{}
	for id := int64(1); id < m.nextID; id++ {
		if u, ok := m.rows[id]; ok {
			out = append(out, u.Public())
		}
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, id int64, patch domain.UserPatch, now time.Time) (domain.PublicUser, error) {
	u, ok := m.rows[id]
	if !ok {
		return domain.PublicUser{}, apperror.NotFound("user not found")
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	u.UpdatedAt = now
	m.rows[id] = u
	return u.Public(), nil
}

func (m *memUsers) Delete(_ context.Context, id int64) (domain.PublicUser, error) {
	u, ok := m.rows[id]
	if !ok {
		return domain.PublicUser{}, apperror.NotFound("user not found")
	}
	delete(m.rows, id)
	return u.Public(), nil
}

func seeded(t *testing.T) (*userService, *memUsers) {
	t.Helper()
	repo := newMemUsers()
	svc := NewUserService(repo, validation.New())

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	return svc, repo
}

func TestCreateUser_StoresDigest(t *testing.T) {
	_, repo := seeded(t)

	stored := repo.rows[1]
	assert.NotEqual(t, "secret1", stored.Password)
	assert.True(t, utils.CheckPassword("secret1", stored.Password))
}

func TestCreateUser_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		in    CreateUserInput
		field string
	}{
		{name: "missing username", in: CreateUserInput{Email: "a@b.co", Password: "secret1"}, field: "username"},
		{name: "bad email", in: CreateUserInput{Username: "a", Email: "nope", Password: "secret1"}, field: "email"},
		{name: "short password", in: CreateUserInput{Username: "a", Email: "a@b.co", Password: "123"}, field: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemUsers()
			_, err := NewUserService(repo, validation.New()).CreateUser(context.Background(), tt.in)
			require.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, tt.field, apperror.As(err).Details[0].Field)
			assert.Empty(t, repo.rows)
		})
	}
}

func TestCreateUser_HashFailure(t *testing.T) {
	repo := newMemUsers()
	svc := NewUserService(repo, validation.New())
	svc.hash = func(string) ([]byte, error) { return nil, errors.New("boom") }

	_, err := svc.CreateUser(context.Background(), CreateUserInput{Username: "a", Email: "a@b.co", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.Empty(t, repo.rows)
}

func TestPatchUser_DigestsPassword(t *testing.T) {
	svc, repo := seeded(t)

	got, err := svc.PatchUser(context.Background(), 1, PatchUserInput{Password: optional.Of("another1")})
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)

	stored := repo.rows[1]
	assert.True(t, utils.CheckPassword("another1", stored.Password))
}

func TestPatchUser_OnlyUsername(t *testing.T) {
	svc, repo := seeded(t)
	before := repo.rows[1].Password

	got, err := svc.PatchUser(context.Background(), 1, PatchUserInput{Username: optional.Of("bea")})
	require.NoError(t, err)
	assert.Equal(t, "bea", got.Username)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, before, repo.rows[1].Password)
}

func TestPatchUser_NullRejected(t *testing.T) {
	svc, _ := seeded(t)

	_, err := svc.PatchUser(context.Background(), 1, PatchUserInput{Email: optional.Field[string]{Set: true, Null: true}})
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, "email", apperror.As(err).Details[0].Field)
}

func TestReplaceUser(t *testing.T) {
	svc, repo := seeded(t)

	got, err := svc.ReplaceUser(context.Background(), 1, CreateUserInput{
		Username: "carla",
		Email:    "carla@example.com",
		Password: "newpass",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PublicUser{ID: 1, Username: "carla", Email: "carla@example.com"}, got)
	assert.True(t, utils.CheckPassword("newpass", repo.rows[1].Password))

	_, err = svc.ReplaceUser(context.Background(), 99, CreateUserInput{Username: "x", Email: "x@y.co", Password: "123456"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := seeded(t)

	got, err := svc.DeleteUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)

	_, err = svc.GetUserByID(context.Background(), 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	users, err := svc.GetAllUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
