package postgres

import (
	"context"
	"errors"
	"fmt"
	"storefront/domain"
	"storefront/pkg/apperror"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// publicColumns never include the password digest.
var publicColumns = []string{"id", "username", "email"}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := insert(ctx, r.DB, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return duplicateEmail()
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) FindPublicByID(ctx context.Context, id int64) (domain.PublicUser, error) {
	if err := ctx.Err(); err != nil {
		return domain.PublicUser{}, fmt.Errorf("context error: %w", err)
	}

	var user domain.User
	err := conn(ctx, r.DB).Select(publicColumns).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PublicUser{}, apperror.NotFound("user not found")
		}
		return domain.PublicUser{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user.Public(), nil
}

func (r *UserRepository) FindPublicByIDs(ctx context.Context, ids []int64) ([]domain.PublicUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.PublicUser{}, nil
	}

	var users []domain.User
	err := conn(ctx, r.DB).Select(publicColumns).Where("id = ANY(?)", pq.Array(ids)).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find users by ids: %w", err)
	}

	return toPublic(users), nil
}

func (r *UserRepository) FindAllPublic(ctx context.Context) ([]domain.PublicUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var users []domain.User
	if err := conn(ctx, r.DB).Select(publicColumns).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	return toPublic(users), nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch, now time.Time) (domain.PublicUser, error) {
	user, err := updatePartial[domain.User](ctx, r.DB, id, patch.Columns(now), "user not found")
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.PublicUser{}, duplicateEmail()
	}
	if err != nil {
		return domain.PublicUser{}, wrapUnlessNotFound("failed to update user", err)
	}

	return user.Public(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (domain.PublicUser, error) {
	user, err := deleteReturning[domain.User](ctx, r.DB, id, "user not found")
	if err != nil {
		return domain.PublicUser{}, wrapUnlessNotFound("failed to delete user", err)
	}

	return user.Public(), nil
}

func toPublic(users []domain.User) []domain.PublicUser {
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

func duplicateEmail() error {
	return apperror.Validation("email already exists", apperror.FieldViolation{
		Field:   "email",
		Rule:    "unique",
		Message: "email already exists",
	})
}
