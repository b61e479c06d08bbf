// Package domain holds identity and value types shared across modules.
//
// IDs are distinct named types so the compiler rejects cross-type assignment:
// an AccountID can never be passed where a CardID is expected.
package domain

import (
	"strconv"

	"github.com/google/uuid"

	dErrors "devdeck/pkg/domain-errors"
)

// AccountID identifies a principal: card owners, callers, and the registry
// owner that collects creation fees.
type AccountID uuid.UUID

// ParseAccountID parses a UUID string into an AccountID. The nil UUID is
// rejected: an "anonymous" account would defeat every ownership check built
// on these IDs.
func ParseAccountID(s string) (AccountID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return AccountID{}, dErrors.New(dErrors.CodeBadRequest, "account id must be a valid UUID")
	}
	if u == uuid.Nil {
		return AccountID{}, dErrors.New(dErrors.CodeBadRequest, "account id must not be the nil UUID")
	}
	return AccountID(u), nil
}

// NewAccountID returns a random AccountID.
func NewAccountID() AccountID {
	return AccountID(uuid.New())
}

func (a AccountID) String() string {
	return uuid.UUID(a).String()
}

// IsNil reports whether the ID is the zero value.
func (a AccountID) IsNil() bool {
	return uuid.UUID(a) == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler so AccountIDs serialize as
// UUID strings in JSON payloads and event records.
func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AccountID) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// CardID identifies a card. IDs are assigned by the registry from a strictly
// increasing counter starting at 1 and are never reused.
type CardID uint64

// ParseCardID parses a decimal card ID, typically from a URL path segment.
func ParseCardID(s string) (CardID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return CardID(n), nil
}

func (c CardID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}
