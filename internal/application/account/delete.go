package account

import (
	"context"

	"github.com/baechuer/account-gateway/internal/domain"
)

// Delete removes account id and returns the record as it was before removal.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.UserAccount, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	a, err := s.store.Delete(sctx, id)
	if err != nil {
		return nil, err
	}
	s.writeThrough(ctx, id, nil)
	s.notify(ctx, RoutingKeyDeleted, a)
	return a, nil
}
