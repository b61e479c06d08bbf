package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "devdeck/pkg/domain-errors"
)

// TestParseAccountID_Invariants validates the parsing invariant:
// account IDs must be valid, non-empty, non-nil UUIDs.
func TestParseAccountID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseAccountID("")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseAccountID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseAccountID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		accountID, err := ParseAccountID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, AccountID(validUUID), accountID)
	})
}

// TestParseAccountID_SecurityInvariants validates trust boundary parsing:
// account IDs arrive in tokens and must reject attack-shaped input.
func TestParseAccountID_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// Attack vectors
		{"SQL injection attempt", "'; DROP TABLE cards;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},

		// Edge cases
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},

		// Valid
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccountID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestAccountID_TextRoundTrip verifies AccountIDs serialize as UUID strings,
// not byte arrays, in JSON payloads and event records.
func TestAccountID_TextRoundTrip(t *testing.T) {
	original := NewAccountID()

	text, err := original.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, original.String(), string(text))

	var decoded AccountID
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, original, decoded)
}

func TestParseCardID(t *testing.T) {
	t.Run("parses decimal ids", func(t *testing.T) {
		cardID, err := ParseCardID("42")
		require.NoError(t, err)
		assert.Equal(t, CardID(42), cardID)
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		_, err := ParseCardID("forty-two")
		require.Error(t, err)
	})

	t.Run("rejects negative input", func(t *testing.T) {
		_, err := ParseCardID("-1")
		require.Error(t, err)
	})

	t.Run("round-trips through String", func(t *testing.T) {
		cardID := CardID(7)
		parsed, err := ParseCardID(cardID.String())
		require.NoError(t, err)
		assert.Equal(t, cardID, parsed)
	})
}
