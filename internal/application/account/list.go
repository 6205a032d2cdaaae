package account

import (
	"context"

	"github.com/baechuer/account-gateway/internal/domain"
)

func (s *Service) List(ctx context.Context) ([]domain.UserAccount, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	items, err := s.store.ListAll(sctx)
	if err != nil {
		return nil, err
	}
	return nonNil(items), nil
}

// Count returns how many accounts match the prefix filters in p. A nil p means
// the request carried no query container at all.
func (s *Service) Count(ctx context.Context, p *SearchParams) (int64, error) {
	if p == nil {
		return 0, domain.ErrUndefinedQuery()
	}
	f := BuildPartialMatchFilter(p.Fields())

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.store.Count(sctx, f)
}

func (s *Service) Search(ctx context.Context, p *SearchParams) ([]domain.UserAccount, error) {
	if p == nil {
		return nil, domain.ErrUndefinedQuery()
	}
	f := BuildPartialMatchFilter(p.Fields())

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	items, err := s.store.Search(sctx, f)
	if err != nil {
		return nil, err
	}
	return nonNil(items), nil
}

func nonNil(items []domain.UserAccount) []domain.UserAccount {
	if items == nil {
		return []domain.UserAccount{}
	}
	return items
}
