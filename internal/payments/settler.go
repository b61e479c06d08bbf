// Package payments defines the payment settlement collaborator.
//
// The card registry validates the fee amount itself; this package only moves
// settled value between accounts. It is interface-driven so a real payment
// processor can replace the in-memory ledger without touching registry code.
package payments

import (
	"context"
	"errors"

	id "devdeck/pkg/domain"
)

// ErrInsufficientBalance is returned when the paying account cannot cover the
// transfer. Distinct from the registry's exact-fee check, which runs first.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Settler forwards a payment amount from one account to another as a single
// atomic step.
type Settler interface {
	Transfer(ctx context.Context, from, to id.AccountID, amount int64) error
}
