package events

import (
	"time"

	id "devdeck/pkg/domain"
)

// Action names a card state change.
type Action string

const (
	ActionCardCreated        Action = "card_created"
	ActionDescriptionUpdated Action = "description_updated"
	ActionPortfolioUpdated   Action = "portfolio_updated"
)

// Event is an immutable, timestamped description of a committed card state
// change, emitted for external observers and indexers. It is fire-and-forget:
// the registry never reads events back.
//
// Deactivation intentionally emits no event; that asymmetry comes from the
// product design, not an oversight.
type Event struct {
	Timestamp time.Time    `json:"timestamp"`
	Action    Action       `json:"action"`
	CardID    id.CardID    `json:"card_id"`
	Owner     id.AccountID `json:"owner"`
	Name      string       `json:"name"`

	// Set on card_created only.
	Title   string `json:"title,omitempty"`
	Contact string `json:"contact,omitempty"`

	// Set on description_updated only.
	Description string `json:"description,omitempty"`

	// Set on portfolio_updated only.
	Portfolio string `json:"portfolio,omitempty"`
}
