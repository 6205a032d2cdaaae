package account

import (
	"context"

	"github.com/baechuer/account-gateway/internal/domain"
	"github.com/baechuer/account-gateway/internal/logger"
)

// GetByID resolves a raw path id. A missing record is (nil, nil).
func (s *Service) GetByID(ctx context.Context, rawID string) (*domain.UserAccount, error) {
	id, ok := ParseID(rawID)
	if !ok {
		return nil, domain.ErrInvalidURLParam()
	}
	log := logger.WithCtx(ctx)

	// 1. Try Cache. A cached null is a deleted id.
	key := cacheKeyAccount(id)
	if s.cache != nil {
		var cached *domain.UserAccount
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			log.Debug().Str("key", key).Msg("cache hit")
			return cached, nil
		}
	}

	// 2. Store
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	a, err := s.store.GetByID(sctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}

	// 3. Fill Cache (Best Effort). Add-only: a concurrent Update or Delete
	// has already written a newer value and wins.
	if s.cache != nil {
		if _, err := s.cache.SetNX(ctx, key, a, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return a, nil
}
