package org

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/org"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/rentops/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   org.UserRepository
	directory  *DirectoryService
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo org.UserRepository,
	directory *DirectoryService,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		directory:  directory,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates a user within a tenant and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	organization, err := s.directory.Resolve(ctx, req.Slug)
	if err != nil {
		s.logger.Warn("Login attempt for unknown organization", zap.String("slug", req.Slug))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !organization.IsActive() {
		s.logger.Warn("Login attempt for suspended organization", zap.String("slug", req.Slug))
		return nil, shared.NewDomainError("ORGANIZATION_SUSPENDED", "Organization is suspended")
	}

	user, err := s.userRepo.FindByEmail(ctx, organization.ID, req.Email)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.IsActive {
		s.logger.Warn("Login attempt for deactivated account", zap.String("email", req.Email))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login still succeeds, the last-login stamp is best effort
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("email", user.Email),
		zap.String("organization_id", user.TenantID.String()))

	return &LoginResponse{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshTokenRequest) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}
	tenantID, err := claims.GetTenantUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &LoginResponse{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}

// CurrentUser loads the profile behind a set of validated claims
func (s *AuthService) CurrentUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}
