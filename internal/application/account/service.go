package account

import (
	"context"
	"time"
)

const (
	defaultStoreTimeout = 5 * time.Second
	defaultCacheTTL     = 5 * time.Minute
)

type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

type Service struct {
	store Store
	cache Cache
	pub   Publisher
	clock Clock

	storeTimeout time.Duration
	cacheTTL     time.Duration
}

type Option func(*Service)

// WithCache enables the GetByID read-through cache.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.pub = p
		}
	}
}

// WithStoreTimeout bounds every store call.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		pub:          NoopPublisher{},
		clock:        sysClock{},
		storeTimeout: defaultStoreTimeout,
		cacheTTL:     defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}
