package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
	"github.com/rkinstitute/institute_mgmt_app/internal/middleware"
	"github.com/rkinstitute/institute_mgmt_app/internal/platform/config"
)

// authHandler handles login endpoints.
type authHandler struct {
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	googleOAuthService portssvc.GoogleOAuthSvcFacade
}

func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, gs portssvc.GoogleOAuthSvcFacade) *authHandler {
	return &authHandler{userService: us, tokenService: ts, googleOAuthService: gs}
}

// registerAuthRoutes registers the public authentication routes. Login
// attempts are rate limited per client IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User, services.Token, services.GoogleOAuth)

	rate := limiter.Rate{Period: 1 * time.Minute, Limit: 10}
	limiterInstance := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/auth", middleware.RateLimit(limiterInstance))
	{
		auth.POST("/login", h.login)
		auth.POST("/google", h.googleLogin)
		auth.POST("/google/exchange-code", h.exchangeCodeGoogle)
	}
}

// login godoc
// @Summary Log in with username and password
// @Description Authenticates a staff user and returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("Login failed", slog.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	h.respondWithToken(c, user)
}

// googleLogin godoc
// @Summary Log in with a Google ID token
// @Description Validates a Google ID token and returns a JWT for the matching staff user
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Token validation failed"
// @Failure 403 {object} map[string]string "No staff account for this Google identity"
// @Router /auth/google [post]
func (h *authHandler) googleLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.AuthenticateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "No staff account registered for this Google identity"})
			return
		}
		logger.Warn("Google login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google token validation failed"})
		return
	}

	h.respondWithToken(c, user)
}

// exchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for a JWT
// @Description Exchanges the authorization code from the frontend redirect with Google, validates the resulting ID token and returns a JWT for the matching staff user
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string "Invalid or expired authorization code"
// @Failure 401 {object} map[string]string "Token validation failed"
// @Failure 403 {object} map[string]string "No staff account for this Google identity"
// @Router /auth/google/exchange-code [post]
func (h *authHandler) exchangeCodeGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	oauthToken, err := h.googleOAuthService.ExchangeCodeForToken(c.Request.Context(), req.Code)
	if err != nil {
		logger.Warn("Authorization code exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired authorization code"})
		return
	}

	idTokenString, ok := oauthToken.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token missing from Google token response")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google token validation failed"})
		return
	}

	user, err := h.userService.AuthenticateGoogleIDToken(c.Request.Context(), idTokenString)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "No staff account registered for this Google identity"})
			return
		}
		logger.Warn("Google login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google token validation failed"})
		return
	}

	h.respondWithToken(c, user)
}

func (h *authHandler) respondWithToken(c *gin.Context, user *domain.User) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	token, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)})
}
