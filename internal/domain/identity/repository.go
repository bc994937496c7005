package identity

import (
	"context"

	"github.com/google/uuid"
)

// AdminUserRepository defines the interface for admin user persistence
type AdminUserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *AdminUser) error
}
