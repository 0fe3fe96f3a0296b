package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const createCardsTable = `
CREATE TABLE IF NOT EXISTS cards (
	name          TEXT PRIMARY KEY,
	card_id       TEXT NOT NULL,
	card_type     TEXT NOT NULL,
	cost          INT  NOT NULL DEFAULT 0,
	base_hp       INT,
	base_atk      INT,
	awakened_hp   INT,
	awakened_atk  INT,
	effect_text   TEXT NOT NULL DEFAULT '',
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore is a catalog backed by a PostgreSQL cards table. Lookups by
// display name hit the primary key; the authoring endpoint writes through
// Upsert.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore connects to the database, verifies the connection and
// ensures the cards table exists.
func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if _, err := pool.Exec(ctx, createCardsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure cards table: %w", err)
	}

	logger.Info("card catalog connected",
		zap.Int32("total_conns", pool.Stat().TotalConns()),
	)

	return &PostgresStore{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Lookup fetches a definition by display name. A missing row maps to
// ErrNotFound; any transport failure maps to ErrUnavailable.
func (s *PostgresStore) Lookup(ctx context.Context, name string) (*CardDefinition, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT name, card_id, card_type, cost, base_hp, base_atk, awakened_hp, awakened_atk, effect_text
		FROM cards WHERE name = $1`, name)

	def, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return def, nil
}

// Upsert writes a definition keyed by its display name.
func (s *PostgresStore) Upsert(ctx context.Context, def *CardDefinition) error {
	if def.ID == "" || def.Name == "" {
		return fmt.Errorf("catalog: card id and name are required")
	}

	var baseHP, baseATK, awakenedHP, awakenedATK *int
	if def.Leader != nil {
		baseHP = &def.Leader.BaseHP
		baseATK = &def.Leader.BaseATK
		awakenedHP = &def.Leader.AwakenedHP
		awakenedATK = &def.Leader.AwakenedATK
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO cards (name, card_id, card_type, cost, base_hp, base_atk, awakened_hp, awakened_atk, effect_text, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (name) DO UPDATE SET
			card_id = $2, card_type = $3, cost = $4,
			base_hp = $5, base_atk = $6, awakened_hp = $7, awakened_atk = $8,
			effect_text = $9, updated_at = now()`,
		def.Name, def.ID, string(def.Type), def.Cost,
		baseHP, baseATK, awakenedHP, awakenedATK, def.EffectText,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.logger.Info("card definition saved",
		zap.String("card_id", def.ID),
		zap.String("name", def.Name),
		zap.String("type", string(def.Type)),
	)
	return nil
}

// List returns every definition ordered by card ID.
func (s *PostgresStore) List(ctx context.Context) ([]*CardDefinition, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, card_id, card_type, cost, base_hp, base_atk, awakened_hp, awakened_atk, effect_text
		FROM cards ORDER BY card_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var defs []*CardDefinition
	for rows.Next() {
		def, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return defs, nil
}

func scanCard(row pgx.Row) (*CardDefinition, error) {
	var def CardDefinition
	var cardType string
	var baseHP, baseATK, awakHP, awakATK *int
	if err := row.Scan(&def.Name, &def.ID, &cardType, &def.Cost,
		&baseHP, &baseATK, &awakHP, &awakATK, &def.EffectText); err != nil {
		return nil, err
	}
	def.Type = CardType(cardType)
	if baseHP != nil {
		def.Leader = &LeaderStats{BaseHP: *baseHP}
		if baseATK != nil {
			def.Leader.BaseATK = *baseATK
		}
		if awakHP != nil {
			def.Leader.AwakenedHP = *awakHP
		}
		if awakATK != nil {
			def.Leader.AwakenedATK = *awakATK
		}
	}
	return &def, nil
}
