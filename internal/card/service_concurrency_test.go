package card_test

import (
	"fmt"
	"sync"

	id "devdeck/pkg/domain"
)

// Exercises the registry under parallel callers. Run with -race: the mutex
// serializes all four mutations, so concurrent creates must yield unique,
// gapless IDs and readers must never observe a half-applied update.

func (s *CardServiceSuite) TestConcurrentCreatesAssignUniqueGaplessIDs() {
	const creators = 50

	accounts := make([]id.AccountID, creators)
	for i := range accounts {
		accounts[i] = s.newFundedAccount(1)
	}

	ids := make([]id.CardID, creators)
	errs := make([]error, creators)
	var wg sync.WaitGroup
	for i := range accounts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i], errs[i] = s.registry.Create(s.ctx, accounts[i], sampleInput("Dev"), testFee)
		}()
	}
	wg.Wait()

	seen := make(map[id.CardID]struct{}, creators)
	for i := range ids {
		s.Require().NoError(errs[i])
		seen[ids[i]] = struct{}{}
	}
	s.Require().Len(seen, creators)
	for want := 1; want <= creators; want++ {
		s.Contains(seen, id.CardID(want))
	}

	s.Equal(int64(creators)*testFee, s.ledger.Balance(s.owner))
	s.Len(s.sink.Events(), creators)
}

func (s *CardServiceSuite) TestConcurrentMutationsAndReadsStayConsistent() {
	writer := s.newFundedAccount(1)
	cardID, err := s.registry.Create(s.ctx, writer, sampleInput("Dev"), testFee)
	s.Require().NoError(err)

	const (
		writes  = 25
		readers = 4
		reads   = 50
	)

	revisions := make(map[string]struct{}, writes)
	for i := 0; i < writes; i++ {
		revisions[fmt.Sprintf("revision %d", i)] = struct{}{}
	}

	var wg sync.WaitGroup
	writeErrs := make([]error, writes)
	for i := 0; i < writes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			writeErrs[i] = s.registry.UpdateDescription(s.ctx, writer, cardID, fmt.Sprintf("revision %d", i))
		}()
	}

	readErrs := make([]error, readers)
	torn := make([]string, readers)
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < reads; j++ {
				view, err := s.registry.Get(s.ctx, cardID)
				if err != nil {
					readErrs[r] = err
					return
				}
				// Immutable fields never change and the description is
				// always either unset or one full written revision.
				if view.ID != cardID || view.Owner != writer || view.Name != "Dev" {
					torn[r] = fmt.Sprintf("immutable fields changed: %+v", view)
					return
				}
				if view.Description != nil {
					if _, ok := revisions[*view.Description]; !ok {
						torn[r] = *view.Description
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	for i := range writeErrs {
		s.Require().NoError(writeErrs[i])
	}
	for r := 0; r < readers; r++ {
		s.Require().NoError(readErrs[r])
		s.Empty(torn[r])
	}

	// Once the writers have joined, the card holds exactly one of the
	// written revisions wholesale.
	view, err := s.registry.Get(s.ctx, cardID)
	s.Require().NoError(err)
	s.Require().NotNil(view.Description)
	s.Contains(revisions, *view.Description)

	// One creation plus every description update produced a notification.
	s.Len(s.sink.Events(), 1+writes)
}
