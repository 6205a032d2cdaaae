package security

import (
	"strings"

	"github.com/baechuer/account-gateway/internal/domain"
)

// APIKeyGate checks presented keys against an allow-list fixed at construction.
// Keys track usage; they do not identify a caller.
type APIKeyGate struct {
	keys map[string]struct{}
}

func NewAPIKeyGate(keys []string) *APIKeyGate {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			continue
		}
		m[k] = struct{}{}
	}
	return &APIKeyGate{keys: m}
}

// Authorize returns the key when it is on the allow-list.
func (g *APIKeyGate) Authorize(presented string) (string, error) {
	if presented == "" {
		return "", domain.ErrAPIKeyRequired()
	}
	if _, ok := g.keys[presented]; !ok {
		return "", domain.ErrInvalidAPIKey()
	}
	return presented, nil
}

func (g *APIKeyGate) Len() int { return len(g.keys) }
