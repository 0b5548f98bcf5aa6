package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

const pgUniqueViolation = "23505"

// Migrate creates every table the Postgres store needs. It is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Postgres is the production store. Every mutation runs in its own
// transaction together with the outbox row describing it.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Stores exposes the Postgres tables through the store interfaces.
func (p *Postgres) Stores() Stores {
	return Stores{
		Ratings:   &pgClassifications{db: p, kind: KindRating},
		Genres:    &pgClassifications{db: p, kind: KindGenre},
		Languages: &pgClassifications{db: p, kind: KindLanguage},
		Persons:   &pgPersons{db: p},
		Movies:    &pgMovies{db: p},
		TvShows:   &pgTvShows{db: p},
	}
}

func (p *Postgres) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("db begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("db commit: %w", err)
	}
	return nil
}

func insertOutboxEvent(ctx context.Context, tx pgx.Tx, entity, action string, ids []int64) error {
	b, err := json.Marshal(ChangeEvent{IDs: ids})
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO library_outbox (id, event_type, payload) VALUES ($1,$2,$3)`,
		uuid.New(), EventSubject(entity, action), b,
	)
	if err != nil {
		return fmt.Errorf("db outbox: %w", err)
	}
	return nil
}

// deleteRows removes the rows of table with the given ids and records one
// outbox event for the ids actually removed.
func (p *Postgres) deleteRows(ctx context.Context, table, entity string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var deleted []int64
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `DELETE FROM `+table+` WHERE id = ANY($1) RETURNING id`, ids)
		if err != nil {
			return fmt.Errorf("db delete %s: %w", table, err)
		}
		deleted, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return fmt.Errorf("db delete %s: %w", table, err)
		}
		if len(deleted) == 0 {
			return nil
		}
		sort.Slice(deleted, func(i, j int) bool { return deleted[i] < deleted[j] })
		return insertOutboxEvent(ctx, tx, entity, actionDeleted, deleted)
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// refColumns scans the nullable columns produced by LEFT JOINing a classification table.
type refColumns struct {
	id          int64
	name        *string
	description *string
}

func (r refColumns) classification() Classification {
	c := Classification{ID: r.id, Description: r.description}
	if r.name != nil {
		c.Name = *r.name
	}
	return c
}
