package identity

import (
	"github.com/secondhandshop/backend/internal/infrastructure/auth"
)

// TokenIssuer signs admin access tokens
type TokenIssuer interface {
	GenerateAccessToken(input auth.AccessTokenInput) (*auth.AccessToken, error)
}

// PasswordHasher hashes and verifies admin passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

var (
	_ TokenIssuer    = (*auth.JWTService)(nil)
	_ PasswordHasher = (*auth.BcryptHasher)(nil)
)
