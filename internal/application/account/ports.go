package account

import (
	"context"
	"time"

	"github.com/baechuer/account-gateway/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// Store is the persistence capability the service runs on. GetByID returns
// (nil, nil) when no record has the id; Update and Delete return
// domain.ErrAccountNotFound for unknown ids.
type Store interface {
	ListAll(ctx context.Context) ([]domain.UserAccount, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Search(ctx context.Context, f Filter) ([]domain.UserAccount, error)
	GetByID(ctx context.Context, id int64) (*domain.UserAccount, error)
	Create(ctx context.Context, in domain.AccountInput) (*domain.UserAccount, error)
	Update(ctx context.Context, id int64, in domain.AccountInput) (*domain.UserAccount, error)
	Delete(ctx context.Context, id int64) (*domain.UserAccount, error)
}

// Cache stores JSON values. SetNX writes only when key is absent and reports
// whether it did.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	SetNX(ctx context.Context, key string, val any, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, routingKey string, payload any) error
}
