package card

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	id "devdeck/pkg/domain"
	"devdeck/pkg/platform/sentinel"
)

// PostgresStore persists cards in PostgreSQL. Schema lives in
// migrations/0001_cards.sql.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed card store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres opens and pings a PostgreSQL connection from a DSN.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func (s *PostgresStore) Insert(ctx context.Context, card *Card) error {
	query := `
		INSERT INTO cards (
			id, owner, name, title, image_url, technologies, portfolio,
			contact, description, years_of_experience, open_to_work, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.db.ExecContext(ctx, query,
		int64(card.ID),
		card.Owner.String(),
		card.Name,
		card.Title,
		card.ImageURL,
		card.Technologies,
		card.Portfolio,
		card.Contact,
		card.Description,
		int16(card.YearsOfExperience),
		card.OpenToWork,
		card.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert card %d: %w", card.ID, err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, cardID id.CardID) (*Card, error) {
	query := `
		SELECT id, owner, name, title, image_url, technologies, portfolio,
		       contact, description, years_of_experience, open_to_work, created_at
		FROM cards
		WHERE id = $1`
	row := s.db.QueryRowContext(ctx, query, int64(cardID))

	var (
		card     Card
		rawID    int64
		rawOwner string
		years    int16
	)
	err := row.Scan(
		&rawID,
		&rawOwner,
		&card.Name,
		&card.Title,
		&card.ImageURL,
		&card.Technologies,
		&card.Portfolio,
		&card.Contact,
		&card.Description,
		&years,
		&card.OpenToWork,
		&card.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find card %d: %w", cardID, err)
	}

	card.ID = id.CardID(rawID)
	owner, err := id.ParseAccountID(rawOwner)
	if err != nil {
		return nil, fmt.Errorf("card %d has malformed owner: %w", cardID, err)
	}
	card.Owner = owner
	card.YearsOfExperience = uint8(years)
	return &card, nil
}

func (s *PostgresStore) Update(ctx context.Context, card *Card) error {
	query := `
		UPDATE cards
		SET portfolio = $2, description = $3, open_to_work = $4
		WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query,
		int64(card.ID),
		card.Portfolio,
		card.Description,
		card.OpenToWork,
	)
	if err != nil {
		return fmt.Errorf("update card %d: %w", card.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update card %d: %w", card.ID, err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) MaxID(ctx context.Context) (id.CardID, error) {
	var max sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(id) FROM cards`).Scan(&max); err != nil {
		return 0, fmt.Errorf("max card id: %w", err)
	}
	if !max.Valid {
		return 0, nil
	}
	return id.CardID(max.Int64), nil
}
