package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
	"github.com/rkinstitute/institute_mgmt_app/internal/platform/config"
	"github.com/rkinstitute/institute_mgmt_app/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
}

// NewUserService creates the staff login service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a new staff login.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest, requestingUserID string) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return nil, fmt.Errorf("%w: failed to hash password", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "user registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// AuthenticateUser authenticates a user with username and password. Both an
// unknown username and a wrong password come back as ErrUnauthorized, so
// login failures don't reveal which part was wrong.
func (s *userService) AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// AuthenticateGoogleIDToken validates a Google ID token against the
// configured client ID and resolves the matching user by email-as-username.
func (s *userService) AuthenticateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.User, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("%w: google sign-in not configured", apperrors.ErrUnauthorized)
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		s.LogWarn(ctx, "google id token rejected", slog.String("reason", err.Error()))
		return nil, apperrors.ErrUnauthorized
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByUsername(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Only pre-registered staff may sign in with Google.
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	return user, nil
}
