// Package outbox drains library_outbox rows written by the Postgres store
// into the LIBRARY_EVENTS JetStream stream.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	StreamName    = "LIBRARY_EVENTS"
	StreamSubject = "library.>"
)

// JetStream is the subset of nats.JetStreamContext the publisher uses.
type JetStream interface {
	StreamInfo(stream string, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	AddStream(cfg *nats.StreamConfig, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	UpdateStream(cfg *nats.StreamConfig, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

type Publisher struct {
	Log          *zap.Logger
	DB           TxBeginner
	JS           JetStream
	BatchSize    int
	PollInterval time.Duration
}

type outboxRow struct {
	ID        string
	EventType string
	Payload   json.RawMessage
}

func NewPublisher(log *zap.Logger, db TxBeginner, nc *nats.Conn) (*Publisher, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, err
	}
	return &Publisher{
		Log:          log,
		DB:           db,
		JS:           js,
		BatchSize:    100,
		PollInterval: 2 * time.Second,
	}, nil
}

// EnsureStream creates the stream, or widens an existing one to cover StreamSubject.
func (p *Publisher) EnsureStream(ctx context.Context) error {
	info, err := p.JS.StreamInfo(StreamName, nats.Context(ctx))
	if err == nil {
		for _, s := range info.Config.Subjects {
			if s == StreamSubject {
				return nil
			}
		}
		cfg := info.Config
		cfg.Subjects = append(cfg.Subjects, StreamSubject)
		_, err := p.JS.UpdateStream(&cfg, nats.Context(ctx))
		return err
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return err
	}
	_, err = p.JS.AddStream(&nats.StreamConfig{
		Name:       StreamName,
		Subjects:   []string{StreamSubject},
		Storage:    nats.FileStorage,
		MaxAge:     7 * 24 * time.Hour,
		Duplicates: 10 * time.Minute,
	}, nats.Context(ctx))
	return err
}

func (p *Publisher) Run(ctx context.Context) error {
	if err := p.EnsureStream(ctx); err != nil {
		return err
	}
	p.Log.Info("outbox publisher started", zap.String("stream", StreamName), zap.Duration("poll_interval", p.PollInterval))

	ticker := time.NewTicker(p.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := p.flushOnce(ctx)
			if err != nil {
				p.Log.Warn("outbox flush failed", zap.Error(err))
				continue
			}
			if n > 0 {
				p.Log.Debug("outbox flushed", zap.Int("events", n))
			}
		}
	}
}

func (p *Publisher) flushOnce(ctx context.Context) (int, error) {
	tx, err := p.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
SELECT id::text, event_type, payload
FROM library_outbox
WHERE published_at IS NULL
ORDER BY created_at
LIMIT $1
FOR UPDATE SKIP LOCKED
`, p.BatchSize)
	if err != nil {
		return 0, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (outboxRow, error) {
		var item outboxRow
		err := row.Scan(&item.ID, &item.EventType, &item.Payload)
		return item, err
	})
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	ids, err := p.publish(ctx, items)
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `UPDATE library_outbox SET published_at = now() WHERE id::text = ANY($1)`, ids); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// publish sends items in order, deduplicated by outbox id, and returns the
// ids that were acknowledged.
func (p *Publisher) publish(ctx context.Context, items []outboxRow) ([]string, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, err := p.JS.Publish(item.EventType, item.Payload, nats.MsgId(item.ID), nats.Context(ctx)); err != nil {
			return nil, err
		}
		ids = append(ids, item.ID)
	}
	return ids, nil
}
