package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const personColumns = `id, first_name, middle_name, last_name, date_of_birth, date_of_death`

type pgPersons struct {
	db *Postgres
}

func (s *pgPersons) Insert(ctx context.Context, p Person) (Person, error) {
	err := s.db.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
INSERT INTO persons (first_name, middle_name, last_name, date_of_birth, date_of_death)
VALUES ($1,$2,$3,$4,$5) RETURNING id`,
			p.FirstName, p.MiddleName, p.LastName, p.DateOfBirth, p.DateOfDeath,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("db persons: %w", err)
		}
		return insertOutboxEvent(ctx, tx, EntityPerson, actionCreated, []int64{p.ID})
	})
	if err != nil {
		return Person{}, err
	}
	return p, nil
}

func (s *pgPersons) Get(ctx context.Context, id int64) (Person, bool, error) {
	var p Person
	err := s.db.pool.QueryRow(ctx, `SELECT `+personColumns+` FROM persons WHERE id=$1`, id).
		Scan(&p.ID, &p.FirstName, &p.MiddleName, &p.LastName, &p.DateOfBirth, &p.DateOfDeath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Person{}, false, nil
		}
		return Person{}, false, fmt.Errorf("db persons: %w", err)
	}
	return p, true, nil
}

func (s *pgPersons) query(ctx context.Context, where string, args ...any) ([]Person, error) {
	q := `SELECT ` + personColumns + ` FROM persons`
	if where != "" {
		q += ` WHERE ` + where
	}
	q += ` ORDER BY id`

	rows, err := s.db.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db persons: %w", err)
	}
	defer rows.Close()

	var out []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.MiddleName, &p.LastName, &p.DateOfBirth, &p.DateOfDeath); err != nil {
			return nil, fmt.Errorf("db persons scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *pgPersons) FindByName(ctx context.Context, q NameQuery) ([]Person, error) {
	var conds []string
	var args []any
	add := func(column string, pattern *string) {
		if pattern == nil {
			return
		}
		args = append(args, sqlPattern(*pattern))
		conds = append(conds, column+" LIKE $"+strconv.Itoa(len(args)))
	}
	add("first_name", q.First)
	add("middle_name", q.Middle)
	add("last_name", q.Last)
	return s.query(ctx, strings.Join(conds, " AND "), args...)
}

func (s *pgPersons) FindByDateOfBirth(ctx context.Context, d time.Time) ([]Person, error) {
	return s.query(ctx, "date_of_birth = $1", Date(d))
}

func (s *pgPersons) FindByDateOfDeath(ctx context.Context, d time.Time) ([]Person, error) {
	return s.query(ctx, "date_of_death = $1", Date(d))
}

func (s *pgPersons) ListByIDs(ctx context.Context, ids []int64) ([]Person, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.query(ctx, "id = ANY($1)", ids)
}

func (s *pgPersons) List(ctx context.Context) ([]Person, error) {
	return s.query(ctx, "")
}

func (s *pgPersons) Update(ctx context.Context, p Person) (Person, bool, error) {
	found := false
	err := s.db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
UPDATE persons
SET first_name=$2, middle_name=$3, last_name=$4, date_of_birth=$5, date_of_death=$6
WHERE id=$1`,
			p.ID, p.FirstName, p.MiddleName, p.LastName, p.DateOfBirth, p.DateOfDeath,
		)
		if err != nil {
			return fmt.Errorf("db persons: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		found = true
		return insertOutboxEvent(ctx, tx, EntityPerson, actionUpdated, []int64{p.ID})
	})
	if err != nil || !found {
		return Person{}, false, err
	}
	return p, true, nil
}

func (s *pgPersons) Delete(ctx context.Context, ids []int64) ([]int64, error) {
	return s.db.deleteRows(ctx, "persons", EntityPerson, ids)
}
