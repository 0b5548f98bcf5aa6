package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type OutboxConfig struct {
	Enabled      bool
	NATSURL      string
	BatchSize    int
	PollInterval time.Duration
}

// LoadOutbox reads OUTBOX_ENABLED (default true), NATS_URL,
// OUTBOX_BATCH_SIZE and OUTBOX_POLL_INTERVAL.
func LoadOutbox() OutboxConfig {
	cfg := OutboxConfig{
		Enabled:      true,
		NATSURL:      strings.TrimSpace(os.Getenv("NATS_URL")),
		BatchSize:    100,
		PollInterval: 2 * time.Second,
	}
	if v := strings.TrimSpace(os.Getenv("OUTBOX_ENABLED")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if cfg.NATSURL == "" {
		cfg.NATSURL = "nats://nats:4222"
	}
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("OUTBOX_BATCH_SIZE"))); err == nil && n > 0 {
		cfg.BatchSize = n
	}
	if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("OUTBOX_POLL_INTERVAL"))); err == nil && d > 0 {
		cfg.PollInterval = d
	}
	return cfg
}
