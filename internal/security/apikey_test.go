package security

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baechuer/account-gateway/internal/domain"
)

func TestAPIKeyGate_Authorize(t *testing.T) {
	gate := NewAPIKeyGate([]string{"key1", "key2", " ", ""})

	tests := []struct {
		name       string
		key        string
		wantStatus int
		wantMsg    string
	}{
		{"missing_key", "", http.StatusBadRequest, "api key required"},
		{"unknown_key", "key9", http.StatusUnauthorized, "invalid api key"},
		{"keys_are_case_sensitive", "KEY1", http.StatusUnauthorized, "invalid api key"},
		{"blank_config_entries_never_match", " ", http.StatusUnauthorized, "invalid api key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gate.Authorize(tt.key)
			assert.Empty(t, got)
			assert.Error(t, err)
			assert.Equal(t, tt.wantStatus, domain.StatusOf(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	t.Run("known_key_passes", func(t *testing.T) {
		got, err := gate.Authorize("key2")
		assert.NoError(t, err)
		assert.Equal(t, "key2", got)
	})

	assert.Equal(t, 2, gate.Len())
}
