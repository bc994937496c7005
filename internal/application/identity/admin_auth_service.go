package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/identity"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// MinPasswordLength is the shortest admin password accepted
const MinPasswordLength = 8

var errInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password.")

// AdminAuthService authenticates shop administrators
type AdminAuthService struct {
	adminRepo identity.AdminUserRepository
	tokens    TokenIssuer
	hasher    PasswordHasher
	clock     shared.Clock
	logger    *zap.Logger
}

// NewAdminAuthService creates a new AdminAuthService
func NewAdminAuthService(
	adminRepo identity.AdminUserRepository,
	tokens TokenIssuer,
	hasher PasswordHasher,
	clock shared.Clock,
	logger *zap.Logger,
) *AdminAuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminAuthService{
		adminRepo: adminRepo,
		tokens:    tokens,
		hasher:    hasher,
		clock:     clock,
		logger:    logger,
	}
}

// Login verifies the credentials and issues an access token.
// Unknown, inactive and wrong-password cases return the same error.
func (s *AdminAuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	normalized := identity.NormalizeEmail(email)

	admin, err := s.adminRepo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown admin", zap.String("email", normalized))
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !admin.IsActive {
		s.logger.Warn("Login attempt for inactive admin", zap.String("admin_user_id", admin.ID.String()))
		return nil, errInvalidCredentials
	}
	if !s.hasher.Compare(admin.PasswordHash, password) {
		s.logger.Warn("Invalid password attempt", zap.String("admin_user_id", admin.ID.String()))
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(auth.AccessTokenInput{
		AdminUserID: admin.ID,
		Email:       admin.Email,
		DisplayName: admin.DisplayName,
	})
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Admin logged in", zap.String("admin_user_id", admin.ID.String()))

	return &LoginResult{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		Admin:       ToAdminInfo(admin),
	}, nil
}

// CreateAdmin registers a new admin account
func (s *AdminAuthService) CreateAdmin(ctx context.Context, input CreateAdminInput) (*AdminInfo, error) {
	if len([]rune(input.Password)) < MinPasswordLength {
		return nil, shared.NewValidationError("INVALID_PASSWORD", "Password must be at least 8 characters.")
	}
	email := identity.NormalizeEmail(input.Email)

	exists, err := s.adminRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "An admin with this email already exists.")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	admin, err := identity.NewAdminUser(input.DisplayName, email, hash, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.adminRepo.Save(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("Admin user created",
		zap.String("admin_user_id", admin.ID.String()),
		zap.String("email", admin.Email))

	info := ToAdminInfo(admin)
	return &info, nil
}

// GetAdmin returns an admin by ID
func (s *AdminAuthService) GetAdmin(ctx context.Context, id uuid.UUID) (*AdminInfo, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Admin user was not found.")
		}
		return nil, err
	}
	info := ToAdminInfo(admin)
	return &info, nil
}
