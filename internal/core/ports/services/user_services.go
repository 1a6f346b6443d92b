package services

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new staff login.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest, requestingUserID string) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with username and password.
	AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error)

	// AuthenticateGoogleIDToken validates a Google ID token and resolves the
	// matching user.
	AuthenticateGoogleIDToken(ctx context.Context, idToken string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken mints a signed JWT for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, error)
}

// GoogleOAuthSvcFacade defines the server side of the Google authorization
// code flow. The frontend sends the code it received on redirect; the
// exchange yields Google's token set including the ID token.
type GoogleOAuthSvcFacade interface {
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
}
