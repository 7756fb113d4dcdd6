package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	userserrors "blinktech/internal/users/errors"
	"blinktech/internal/users/repository"
	"blinktech/internal/users/validator"
	"blinktech/pkg/config"
	apperrors "blinktech/pkg/errors"
	"blinktech/pkg/model"
	"blinktech/pkg/sanitizer"
)

type UpdateAck struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type UserService interface {
	Register(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]*model.User, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	GrantAdmin(ctx context.Context, id string) (*UpdateAck, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *userService) Register(ctx context.Context, user *model.User) error {
	user.Email = sanitizer.NormalizeEmail(user.Email)
	user.Name = sanitizer.NormalizeName(user.Name)
	// Role is never accepted from the registration payload.
	user.Role = ""

	if err := s.validator.Validate(user); err != nil {
		s.cfg.Log.Warn("User validation failed", "error", err)
		return apperrors.Validation("User validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			return apperrors.Conflict("A user with this email already exists")
		}
		s.cfg.Log.Error("Failed to create user", "email", user.Email, "error", err)
		return apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User registered successfully", "id", user.ID, "email", user.Email)
	return nil
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	return users, nil
}

// IsAdmin reports whether the stored user carries the admin role. Unknown
// emails answer false rather than erroring; the route is unauthenticated and
// must not leak which emails exist.
func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return false, apperrors.InvalidInput("Email cannot be empty")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return false, nil
		}
		s.cfg.Log.Error("Failed to look up user", "error", err)
		return false, apperrors.Internal("Failed to look up user", err)
	}

	return user.IsAdmin(), nil
}

func (s *userService) GrantAdmin(ctx context.Context, id string) (*UpdateAck, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	result, err := s.repo.UpdateRole(ctx, id, model.RoleAdmin)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to grant admin role", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to grant admin role", err)
	}

	s.cfg.Log.Info("Admin role granted", "id", id)
	return ackFromResult(result), nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to delete user", "id", id, "error", err)
		return apperrors.Internal("Failed to delete user", err)
	}

	s.cfg.Log.Info("User deleted successfully", "id", id)
	return nil
}

func ackFromResult(result *mongo.UpdateResult) *UpdateAck {
	return &UpdateAck{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}
}
