package ports

import (
	"context"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

// UserRepository defines persistence for users. Email uniqueness is enforced
// by the store itself; Create returns domain.ErrDuplicateEmail on collision.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByIDs resolves many users at once; unknown ids are absent from the map.
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
