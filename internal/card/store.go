package card

import (
	"context"

	id "devdeck/pkg/domain"
)

// Store persists cards. Interface-driven to keep the registry logic testable
// and to allow swapping in-memory and PostgreSQL persistence without rewiring
// business code. Stores return pkg/platform/sentinel errors; the service
// translates them into coded domain errors.
type Store interface {
	Insert(ctx context.Context, card *Card) error
	FindByID(ctx context.Context, cardID id.CardID) (*Card, error)
	Update(ctx context.Context, card *Card) error

	// MaxID returns the highest assigned card ID, or zero when the store is
	// empty. The registry seeds its counter from it so IDs never regress.
	MaxID(ctx context.Context) (id.CardID, error)
}
