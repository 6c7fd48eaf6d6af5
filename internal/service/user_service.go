package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/repository"
	"mindtrack/internal/domain/service"
	"mindtrack/pkg/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userService implements service.UserService
type userService struct {
	userRepo repository.UserRepository
	events   service.EventPublisher
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, events service.EventPublisher, logger *zap.Logger) service.UserService {
	return &userService{
		userRepo: userRepo,
		events:   events,
		logger:   logger.Named("users"),
	}
}

// GetIdentity retrieves the identity of an active user
func (s *userService) GetIdentity(ctx context.Context, userID uuid.UUID) (*entity.Identity, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.New(errs.ErrUnauthenticated, "User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		return nil, errs.New(errs.ErrUnauthenticated, "Account is deactivated")
	}

	return user.ToIdentity(), nil
}

// UpdateProfile applies a patch and returns the replacement identity
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch entity.IdentityPatch) (*entity.Identity, error) {
	if patch.IsEmpty() {
		return nil, errs.New(errs.ErrValidation, "Nothing to update")
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if patch.Email != nil && !strings.EqualFold(*patch.Email, user.Email) {
		exists, err := s.userRepo.EmailExists(ctx, *patch.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errs.New(errs.ErrConflict, "Email is already in use")
		}
	}

	user.Apply(patch)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	changed := make([]any, 0, 2)
	if patch.DisplayName != nil {
		changed = append(changed, "display_name")
	}
	if patch.Email != nil {
		changed = append(changed, "email")
	}
	publish(ctx, s.events, s.logger, service.EventUserProfileUpdate, user.ID, map[string]any{"fields": changed})

	return user.ToIdentity(), nil
}

// UpdateAccess changes the role or active flag of a user.
// An admin may neither deactivate nor demote their own account.
func (s *userService) UpdateAccess(ctx context.Context, actorID, userID uuid.UUID, patch entity.AccessPatch) (*entity.Identity, error) {
	if patch.IsEmpty() {
		return nil, errs.New(errs.ErrValidation, "Nothing to update")
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.New(errs.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if actorID == userID {
		if patch.Active != nil && !*patch.Active {
			return nil, errs.New(errs.ErrForbidden, "You cannot deactivate your own admin account")
		}
		if patch.Role != nil && *patch.Role != entity.RoleAdmin {
			return nil, errs.New(errs.ErrForbidden, "You cannot change your own admin role")
		}
	}

	user.ApplyAccess(patch)
	if err := s.userRepo.UpdateAccess(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user access updated",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actorID.String()),
		zap.String("role", string(user.Role)),
		zap.Bool("active", user.IsActive),
	)
	publish(ctx, s.events, s.logger, service.EventUserAccessUpdate, user.ID, map[string]any{
		"actor_id": actorID.String(),
		"role":     string(user.Role),
		"active":   user.IsActive,
	})

	return user.ToIdentity(), nil
}

// ListUsers returns all users
func (s *userService) ListUsers(ctx context.Context) ([]*entity.Identity, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	identities := make([]*entity.Identity, 0, len(users))
	for _, u := range users {
		identities = append(identities, u.ToIdentity())
	}
	return identities, nil
}
