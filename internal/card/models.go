package card

import (
	"time"

	id "devdeck/pkg/domain"
)

// Card is one developer profile card. Identity and ownership are fixed at
// creation; only the owner may change the mutable fields, and a card is never
// deleted — a retired card is deactivated instead.
type Card struct {
	ID    id.CardID
	Owner id.AccountID

	Name         string
	Title        string
	ImageURL     string
	Technologies string
	Portfolio    string
	Contact      string

	// Description is absent until the owner first sets it; every update is a
	// wholesale replace.
	Description *string

	YearsOfExperience uint8

	// OpenToWork starts true and can only ever transition to false.
	OpenToWork bool

	CreatedAt time.Time
}

// NewCardInput carries the initial field values for card creation.
type NewCardInput struct {
	Name              string
	Title             string
	ImageURL          string
	Technologies      string
	Portfolio         string
	Contact           string
	YearsOfExperience uint8
}

// View is the public read model of a card. Any caller may read any card;
// only mutation is owner-gated.
type View struct {
	ID                id.CardID    `json:"id"`
	Owner             id.AccountID `json:"owner"`
	Name              string       `json:"name"`
	Title             string       `json:"title"`
	ImageURL          string       `json:"image_url"`
	Technologies      string       `json:"technologies"`
	Portfolio         string       `json:"portfolio"`
	Contact           string       `json:"contact"`
	Description       *string      `json:"description,omitempty"`
	YearsOfExperience uint8        `json:"years_of_experience"`
	OpenToWork        bool         `json:"open_to_work"`
	CreatedAt         time.Time    `json:"created_at"`
}

// ViewOf builds the read model from a card, copying the optional description
// so callers never alias stored state.
func ViewOf(c *Card) View {
	view := View{
		ID:                c.ID,
		Owner:             c.Owner,
		Name:              c.Name,
		Title:             c.Title,
		ImageURL:          c.ImageURL,
		Technologies:      c.Technologies,
		Portfolio:         c.Portfolio,
		Contact:           c.Contact,
		YearsOfExperience: c.YearsOfExperience,
		OpenToWork:        c.OpenToWork,
		CreatedAt:         c.CreatedAt,
	}
	if c.Description != nil {
		desc := *c.Description
		view.Description = &desc
	}
	return view
}

func (c *Card) clone() *Card {
	dup := *c
	if c.Description != nil {
		desc := *c.Description
		dup.Description = &desc
	}
	return &dup
}
