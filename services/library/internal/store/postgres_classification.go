package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type pgClassifications struct {
	db   *Postgres
	kind Kind
}

func (s *pgClassifications) Kind() Kind { return s.kind }

func (s *pgClassifications) duplicate(err error, name string) error {
	if isUniqueViolation(err) {
		return &DuplicateNameError{Kind: s.kind, Name: name}
	}
	return fmt.Errorf("db %s: %w", s.kind.table(), err)
}

func (s *pgClassifications) Insert(ctx context.Context, c Classification) (Classification, error) {
	err := s.db.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO `+s.kind.table()+` (name, description) VALUES ($1,$2) RETURNING id`,
			c.Name, c.Description,
		).Scan(&c.ID)
		if err != nil {
			return s.duplicate(err, c.Name)
		}
		return insertOutboxEvent(ctx, tx, string(s.kind), actionCreated, []int64{c.ID})
	})
	if err != nil {
		return Classification{}, err
	}
	return c, nil
}

func (s *pgClassifications) queryOne(ctx context.Context, where string, arg any) (Classification, bool, error) {
	var c Classification
	err := s.db.pool.QueryRow(ctx,
		`SELECT id, name, description FROM `+s.kind.table()+` WHERE `+where+` ORDER BY id LIMIT 1`, arg,
	).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Classification{}, false, nil
		}
		return Classification{}, false, fmt.Errorf("db %s: %w", s.kind.table(), err)
	}
	return c, true, nil
}

func (s *pgClassifications) Get(ctx context.Context, id int64) (Classification, bool, error) {
	return s.queryOne(ctx, "id = $1", id)
}

func (s *pgClassifications) GetByName(ctx context.Context, name string) (Classification, bool, error) {
	return s.queryOne(ctx, "name = $1", name)
}

func (s *pgClassifications) queryMany(ctx context.Context, q string, args ...any) ([]Classification, error) {
	rows, err := s.db.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db %s: %w", s.kind.table(), err)
	}
	defer rows.Close()

	var out []Classification
	for rows.Next() {
		var c Classification
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("db %s scan: %w", s.kind.table(), err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *pgClassifications) ListByIDs(ctx context.Context, ids []int64) ([]Classification, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.queryMany(ctx,
		`SELECT id, name, description FROM `+s.kind.table()+` WHERE id = ANY($1) ORDER BY id`, ids)
}

func (s *pgClassifications) List(ctx context.Context) ([]Classification, error) {
	return s.queryMany(ctx, `SELECT id, name, description FROM `+s.kind.table()+` ORDER BY id`)
}

func (s *pgClassifications) Update(ctx context.Context, c Classification) (Classification, bool, error) {
	found := false
	err := s.db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE `+s.kind.table()+` SET name=$2, description=$3 WHERE id=$1`,
			c.ID, c.Name, c.Description,
		)
		if err != nil {
			return s.duplicate(err, c.Name)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		found = true
		return insertOutboxEvent(ctx, tx, string(s.kind), actionUpdated, []int64{c.ID})
	})
	if err != nil || !found {
		return Classification{}, false, err
	}
	return c, true, nil
}

func (s *pgClassifications) Delete(ctx context.Context, ids []int64) ([]int64, error) {
	return s.db.deleteRows(ctx, s.kind.table(), string(s.kind), ids)
}
