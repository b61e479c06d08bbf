package card

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"devdeck/internal/card/metrics"
	"devdeck/internal/events"
	"devdeck/internal/payments"
	id "devdeck/pkg/domain"
	dErrors "devdeck/pkg/domain-errors"
	"devdeck/pkg/platform/sentinel"
)

// ViewCache is an optional read-through cache for card views. Implementations
// must treat themselves as an optimization: a miss or failure falls back to
// the store.
type ViewCache interface {
	Get(ctx context.Context, cardID id.CardID) (View, bool)
	Set(ctx context.Context, view View)
	Invalidate(ctx context.Context, cardID id.CardID)
}

// Service is the card registry. It owns the monotonic ID counter, enforces
// the creation fee and per-card ownership, and emits change notifications
// inside the same exclusive section that commits each mutation.
//
// A single mutex serializes the four mutating operations end to end, matching
// the one-transaction-at-a-time model the registry semantics assume. Reads
// bypass the mutex; the stores guarantee they never expose a torn write.
type Service struct {
	owner   id.AccountID
	fee     int64
	store   Store
	settler payments.Settler
	events  *events.Publisher
	cache   ViewCache
	metrics *metrics.Metrics
	tracer  trace.Tracer

	mu      sync.Mutex
	counter uint64
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithViewCache attaches a read-through cache for Get.
func WithViewCache(cache ViewCache) ServiceOption {
	return func(s *Service) {
		s.cache = cache
	}
}

// NewService constructs the registry. The owner account collects every
// creation fee; fee is the exact amount a creation payment must equal. The
// counter is seeded from the store so IDs never regress over a store that
// already holds cards.
func NewService(
	ctx context.Context,
	owner id.AccountID,
	fee int64,
	store Store,
	settler payments.Settler,
	publisher *events.Publisher,
	m *metrics.Metrics,
	opts ...ServiceOption,
) (*Service, error) {
	maxID, err := store.MaxID(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "seed card counter", err)
	}
	s := &Service{
		owner:   owner,
		fee:     fee,
		store:   store,
		settler: settler,
		events:  publisher,
		metrics: m,
		tracer:  otel.Tracer("devdeck/card"),
		counter: uint64(maxID),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Fee returns the exact creation fee.
func (s *Service) Fee() int64 {
	return s.fee
}

// Create validates the payment, forwards it to the registry owner, assigns
// the next ID, and inserts the card. The payment must equal the fee exactly;
// overpayment is rejected, not accepted and kept.
func (s *Service) Create(ctx context.Context, caller id.AccountID, input NewCardInput, payment int64) (id.CardID, error) {
	ctx, span := s.tracer.Start(ctx, "card.Create")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("create", time.Since(start)) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if payment != s.fee {
		s.metrics.IncrementRejection(string(dErrors.CodeInsufficientFunds))
		return 0, dErrors.New(dErrors.CodeInsufficientFunds, "card creation requires the exact fee")
	}

	if err := s.settler.Transfer(ctx, caller, s.owner, payment); err != nil {
		if errors.Is(err, payments.ErrInsufficientBalance) {
			s.metrics.IncrementRejection(string(dErrors.CodeInsufficientFunds))
			return 0, dErrors.New(dErrors.CodeInsufficientFunds, "payment could not be settled")
		}
		return 0, dErrors.Wrap(dErrors.CodeInternal, "settle creation fee", err)
	}

	newID := id.CardID(s.counter + 1)
	newCard := &Card{
		ID:                newID,
		Owner:             caller,
		Name:              input.Name,
		Title:             input.Title,
		ImageURL:          id.NormalizeImageURL(input.ImageURL),
		Technologies:      input.Technologies,
		Portfolio:         input.Portfolio,
		Contact:           input.Contact,
		YearsOfExperience: input.YearsOfExperience,
		OpenToWork:        true,
		CreatedAt:         time.Now(),
	}

	if err := s.store.Insert(ctx, newCard); err != nil {
		// The fee already moved; send it back so a storage failure leaves
		// no trace of the attempt.
		if refundErr := s.settler.Transfer(ctx, s.owner, caller, payment); refundErr != nil {
			return 0, dErrors.Wrap(dErrors.CodeInternal, "insert card and refund both failed", errors.Join(err, refundErr))
		}
		return 0, dErrors.Wrap(dErrors.CodeInternal, "insert card", err)
	}
	s.counter = uint64(newID)

	span.SetAttributes(attribute.Int64("card.id", int64(newID)))
	s.metrics.IncrementCardsCreated()
	s.emit(ctx, events.Event{
		Action:  events.ActionCardCreated,
		CardID:  newID,
		Owner:   caller,
		Name:    newCard.Name,
		Title:   newCard.Title,
		Contact: newCard.Contact,
	})
	return newID, nil
}

// UpdateDescription replaces the card's description wholesale. Only the
// card's owner may call it.
func (s *Service) UpdateDescription(ctx context.Context, caller id.AccountID, cardID id.CardID, description string) error {
	ctx, span := s.tracer.Start(ctx, "card.UpdateDescription")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("update_description", time.Since(start)) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.authorize(ctx, caller, cardID)
	if err != nil {
		return err
	}

	stored.Description = &description
	if err := s.store.Update(ctx, stored); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "update description", err)
	}
	s.invalidate(ctx, cardID)

	s.emit(ctx, events.Event{
		Action:      events.ActionDescriptionUpdated,
		CardID:      cardID,
		Owner:       stored.Owner,
		Name:        stored.Name,
		Description: description,
	})
	return nil
}

// UpdatePortfolio replaces the card's portfolio. Only the card's owner may
// call it.
func (s *Service) UpdatePortfolio(ctx context.Context, caller id.AccountID, cardID id.CardID, portfolio string) error {
	ctx, span := s.tracer.Start(ctx, "card.UpdatePortfolio")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("update_portfolio", time.Since(start)) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.authorize(ctx, caller, cardID)
	if err != nil {
		return err
	}

	stored.Portfolio = portfolio
	if err := s.store.Update(ctx, stored); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "update portfolio", err)
	}
	s.invalidate(ctx, cardID)

	s.emit(ctx, events.Event{
		Action:    events.ActionPortfolioUpdated,
		CardID:    cardID,
		Owner:     stored.Owner,
		Name:      stored.Name,
		Portfolio: portfolio,
	})
	return nil
}

// Deactivate sets open_to_work to false. Idempotent: deactivating an already
// deactivated card succeeds without effect. There is no reactivation path,
// and unlike the two update operations this one emits no notification.
func (s *Service) Deactivate(ctx context.Context, caller id.AccountID, cardID id.CardID) error {
	ctx, span := s.tracer.Start(ctx, "card.Deactivate")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("deactivate", time.Since(start)) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.authorize(ctx, caller, cardID)
	if err != nil {
		return err
	}

	if !stored.OpenToWork {
		return nil
	}
	stored.OpenToWork = false
	if err := s.store.Update(ctx, stored); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "deactivate card", err)
	}
	s.invalidate(ctx, cardID)
	return nil
}

// Get returns the public view of a card. No authorization: visibility is
// public, only mutation is owner-gated.
func (s *Service) Get(ctx context.Context, cardID id.CardID) (View, error) {
	ctx, span := s.tracer.Start(ctx, "card.Get")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("get", time.Since(start)) }()

	if s.cache != nil {
		if view, ok := s.cache.Get(ctx, cardID); ok {
			return view, nil
		}
	}

	stored, err := s.store.FindByID(ctx, cardID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return View{}, dErrors.New(dErrors.CodeNotFound, "card not found")
	}
	if err != nil {
		return View{}, dErrors.Wrap(dErrors.CodeInternal, "load card", err)
	}

	view := ViewOf(stored)
	if s.cache != nil {
		// Get runs outside the mutation mutex, so a read that loaded the
		// card before a concurrent update+invalidate can re-cache the old
		// view here. The TTL bounds how long that stale entry survives.
		s.cache.Set(ctx, view)
	}
	return view, nil
}

// authorize looks up the card and verifies the caller owns it. Runs under the
// service mutex.
func (s *Service) authorize(ctx context.Context, caller id.AccountID, cardID id.CardID) (*Card, error) {
	stored, err := s.store.FindByID(ctx, cardID)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.metrics.IncrementRejection(string(dErrors.CodeNotFound))
		return nil, dErrors.New(dErrors.CodeNotFound, "card not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "load card", err)
	}
	if stored.Owner != caller {
		s.metrics.IncrementRejection(string(dErrors.CodeNotOwner))
		return nil, dErrors.New(dErrors.CodeNotOwner, "only the card owner may modify it")
	}
	return stored, nil
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	// Sinks are non-blocking; an append failure must not roll back the
	// committed mutation, so it is intentionally not propagated.
	_ = s.events.Emit(ctx, event)
}

func (s *Service) invalidate(ctx context.Context, cardID id.CardID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cardID)
	}
}
