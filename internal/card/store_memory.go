package card

import (
	"context"
	"sync"

	id "devdeck/pkg/domain"
	"devdeck/pkg/platform/sentinel"
)

// InMemoryStore keeps cards in a map. Reads and writes copy the card so no
// caller ever observes a partially applied update.
type InMemoryStore struct {
	mu    sync.RWMutex
	cards map[id.CardID]*Card
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{cards: make(map[id.CardID]*Card)}
}

func (s *InMemoryStore) Insert(_ context.Context, card *Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.cards[card.ID]; exists {
		return sentinel.ErrConflict
	}
	s.cards[card.ID] = card.clone()
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, cardID id.CardID) (*Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.cards[cardID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return stored.clone(), nil
}

func (s *InMemoryStore) Update(_ context.Context, card *Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[card.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.cards[card.ID] = card.clone()
	return nil
}

func (s *InMemoryStore) MaxID(_ context.Context) (id.CardID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var max id.CardID
	for cardID := range s.cards {
		if cardID > max {
			max = cardID
		}
	}
	return max, nil
}
