package user

import (
	"context"
	"fmt"
	"storefront/domain"
	"storefront/pkg/apperror"
	"storefront/pkg/logger"
	"storefront/pkg/optional"
	"storefront/pkg/utils"
	"storefront/pkg/validation"
	"time"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindPublicByID(ctx context.Context, id int64) (domain.PublicUser, error)
	FindAllPublic(ctx context.Context) ([]domain.PublicUser, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch, now time.Time) (domain.PublicUser, error)
	Delete(ctx context.Context, id int64) (domain.PublicUser, error)
}

type CreateUserInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type PatchUserInput struct {
	Username optional.Field[string] `json:"username" validate:"omitempty,min=1"`
	Email    optional.Field[string] `json:"email" validate:"omitempty,email"`
	Password optional.Field[string] `json:"password" validate:"omitempty,min=6"`
}

type userService struct {
	userRepo UserRepository
	validate *validation.Validator
	hash     func(string) ([]byte, error)
	now      func() time.Time
}

func NewUserService(userRepo UserRepository, validate *validation.Validator) *userService {
	return &userService{
		userRepo: userRepo,
		validate: validate,
		hash:     utils.HashPassword,
		now:      time.Now,
	}
}

func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (domain.PublicUser, error) {
	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid user data", err)
		return domain.PublicUser{}, err
	}

	digest, err := s.digest(in.Password)
	if err != nil {
		return domain.PublicUser{}, err
	}

	now := s.now()
	newUser := domain.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  digest,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.PublicUser{}, err
	}

	logger.Info("user created", "user_id", newUser.ID)

	return newUser.Public(), nil
}

// GetAllUsers retrieves all users
func (s *userService) GetAllUsers(ctx context.Context) ([]domain.PublicUser, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all users")
		return nil, fmt.Errorf("context error: %w", err)
	}

	users, err := s.userRepo.FindAllPublic(ctx)
	if err != nil {
		logger.Error("Failed to get all users", err)
		return nil, err
	}

	return users, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id int64) (domain.PublicUser, error) {
	if id <= 0 {
		return domain.PublicUser{}, apperror.NotFound("user not found")
	}

	user, err := s.userRepo.FindPublicByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.PublicUser{}, err
	}

	return user, nil
}

// ReplaceUser overwrites every field and re-digests the password.
func (s *userService) ReplaceUser(ctx context.Context, id int64, in CreateUserInput) (domain.PublicUser, error) {
	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid user data", err)
		return domain.PublicUser{}, err
	}

	digest, err := s.digest(in.Password)
	if err != nil {
		return domain.PublicUser{}, err
	}

	user, err := s.userRepo.Update(ctx, id, domain.UserPatch{
		Username: &in.Username,
		Email:    &in.Email,
		Password: &digest,
	}, s.now())
	if err != nil {
		logger.Error("Failed to update user", err)
		return domain.PublicUser{}, err
	}

	return user, nil
}

// PatchUser updates any subset of fields. A present password is digested
// before it reaches storage.
func (s *userService) PatchUser(ctx context.Context, id int64, in PatchUserInput) (domain.PublicUser, error) {
	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid user patch", err)
		return domain.PublicUser{}, err
	}

	for i, f := range []optional.Field[string]{in.Username, in.Email, in.Password} {
		if f.Set && f.Null {
			field := [...]string{"username", "email", "password"}[i]
			return domain.PublicUser{}, apperror.Validation("request validation failed", apperror.FieldViolation{
				Field:   field,
				Rule:    "not_null",
				Message: field + " cannot be null",
			})
		}
	}

	var patch domain.UserPatch
	if v, ok := in.Username.Get(); ok {
		patch.Username = &v
	}
	if v, ok := in.Email.Get(); ok {
		patch.Email = &v
	}
	if v, ok := in.Password.Get(); ok {
		digest, err := s.digest(v)
		if err != nil {
			return domain.PublicUser{}, err
		}
		patch.Password = &digest
	}

	user, err := s.userRepo.Update(ctx, id, patch, s.now())
	if err != nil {
		logger.Error("Failed to patch user", err)
		return domain.PublicUser{}, err
	}

	return user, nil
}

// DeleteUser removes the user and returns its public projection. Orders
// that reference it keep the dangling id.
func (s *userService) DeleteUser(ctx context.Context, id int64) (domain.PublicUser, error) {
	user, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("Failed to delete user", err)
		return domain.PublicUser{}, err
	}

	logger.Info("user deleted", "user_id", id)

	return user, nil
}

func (s *userService) digest(password string) (string, error) {
	hash, err := s.hash(password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return "", apperror.Internal("failed to hash password", err)
	}
	return string(hash), nil
}
