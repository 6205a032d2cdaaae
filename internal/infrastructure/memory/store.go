package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/baechuer/account-gateway/internal/application/account"
	"github.com/baechuer/account-gateway/internal/domain"
)

// AccountStore keeps user accounts in process memory. Ids start at 1 and are
// never reused.
type AccountStore struct {
	mu     sync.RWMutex
	byID   map[int64]domain.UserAccount
	nextID int64
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		byID:   make(map[int64]domain.UserAccount),
		nextID: 1,
	}
}

func (s *AccountStore) ListAll(ctx context.Context) ([]domain.UserAccount, error) {
	return s.Search(ctx, nil)
}

func (s *AccountStore) Count(ctx context.Context, f account.Filter) (int64, error) {
	items, err := s.Search(ctx, f)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (s *AccountStore) Search(ctx context.Context, f account.Filter) ([]domain.UserAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.UserAccount, 0, len(s.byID))
	for _, a := range s.byID {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *AccountStore) GetByID(ctx context.Context, id int64) (*domain.UserAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *AccountStore) Create(ctx context.Context, in domain.AccountInput) (*domain.UserAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a := in.Record(s.nextID)
	s.nextID++
	s.byID[a.ID] = a
	return &a, nil
}

func (s *AccountStore) Update(ctx context.Context, id int64, in domain.AccountInput) (*domain.UserAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return nil, domain.ErrAccountNotFound()
	}
	a := in.Record(id)
	s.byID[id] = a
	return &a, nil
}

func (s *AccountStore) Delete(ctx context.Context, id int64) (*domain.UserAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound()
	}
	delete(s.byID, id)
	return &a, nil
}

func (s *AccountStore) Ping(ctx context.Context) error { return ctx.Err() }
