package account

import (
	"context"

	"github.com/baechuer/account-gateway/internal/domain"
	"github.com/baechuer/account-gateway/internal/logger"
)

// Update replaces every field of account id with in.
func (s *Service) Update(ctx context.Context, id int64, in domain.AccountInput) (*domain.UserAccount, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	a, err := s.store.Update(sctx, id, in)
	if err != nil {
		return nil, err
	}
	s.writeThrough(ctx, id, a)
	s.notify(ctx, RoutingKeyUpdated, a)
	return a, nil
}

// writeThrough overwrites the cached entry for id with a, or with a null
// tombstone when a is nil. Ids are never reused, so a tombstone stays valid
// for its whole TTL. If the write fails the entry is dropped instead.
func (s *Service) writeThrough(ctx context.Context, id int64, a *domain.UserAccount) {
	if s.cache == nil {
		return
	}
	key := cacheKeyAccount(id)
	log := logger.WithCtx(ctx)

	err := s.cache.Set(ctx, key, a, s.cacheTTL)
	if err == nil {
		return
	}
	log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
	}
}
