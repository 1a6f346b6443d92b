package services

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/platform/config"
)

// googleOAuthService exchanges authorization codes against Google's token
// endpoint. ID token validation itself lives in the user service.
type googleOAuthService struct {
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates a new instance of googleOAuthService.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	if s.oauth2Config.ClientID == "" || s.oauth2Config.ClientSecret == "" {
		return nil, fmt.Errorf("%w: google sign-in not configured", apperrors.ErrUnauthorized)
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}
