package account

import (
	"context"

	"github.com/baechuer/account-gateway/internal/domain"
)

// Create stores in as given; no field is required at this layer.
func (s *Service) Create(ctx context.Context, in domain.AccountInput) (*domain.UserAccount, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	a, err := s.store.Create(sctx, in)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, RoutingKeyCreated, a)
	return a, nil
}
