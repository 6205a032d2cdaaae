package account

import (
	"context"
	"time"

	"github.com/baechuer/account-gateway/internal/domain"
	"github.com/baechuer/account-gateway/internal/logger"
)

const (
	RoutingKeyCreated = "user_account.created"
	RoutingKeyUpdated = "user_account.updated"
	RoutingKeyDeleted = "user_account.deleted"
)

// AccountChanged is the notification body. Password is never included.
type AccountChanged struct {
	ID         int64     `json:"id"`
	IDNumber   string    `json:"id_number"`
	FullName   string    `json:"full_name"`
	Username   string    `json:"username"`
	Section    string    `json:"section"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (s *Service) notify(ctx context.Context, routingKey string, a *domain.UserAccount) {
	evt := AccountChanged{
		ID:         a.ID,
		IDNumber:   a.IDNumber,
		FullName:   a.FullName,
		Username:   a.Username,
		Section:    a.Section,
		Role:       a.Role,
		OccurredAt: s.clock.Now(),
	}
	if err := s.pub.PublishEvent(ctx, routingKey, evt); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).
			Str("routing_key", routingKey).
			Int64("id", a.ID).
			Msg("account change publish failed")
	}
}
