// Package listener provides a Postgres LISTEN/NOTIFY consumer for record
// changes. It holds a dedicated pgx connection (not from the pool) listening
// on the match_records_changed channel.
//
// The table trigger fires once per write statement. Every event purges the
// query cache so the next search re-aggregates from the store, including
// writes made by other processes sharing the database.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/gvg-tracker/internal/db"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// Purger drops cached query results.
type Purger interface {
	Purge()
}

// ChangeEvent is the JSON payload from pg_notify('match_records_changed', ...).
type ChangeEvent struct {
	Op        string `json:"op"`
	Timestamp int64  `json:"ts"`
}

// ParseEvent decodes a notification payload.
func ParseEvent(payload string) (ChangeEvent, error) {
	var ev ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return ChangeEvent{}, fmt.Errorf("parse change event: %w", err)
	}
	return ev, nil
}

// Start opens a dedicated connection and listens for record changes. It
// reconnects automatically on connection loss, purging once on every
// reconnect since events may have been missed meanwhile. Blocks until ctx
// is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, purger Purger, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, purger, logger)
		if ctx.Err() != nil {
			logger.Info("Change listener stopped (context cancelled)")
			return
		}

		logger.Error("Change listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
		purger.Purge()
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, purger Purger, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+db.ChangeChannel); err != nil {
		return fmt.Errorf("LISTEN %s: %w", db.ChangeChannel, err)
	}
	logger.Info("Change listener connected", "channel", db.ChangeChannel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		handle(notification.Payload, purger, logger)
	}
}

func handle(payload string, purger Purger, logger *slog.Logger) {
	ev, err := ParseEvent(payload)
	if err != nil {
		// Still a change, just an unreadable one.
		logger.Warn("Failed to parse change event", "payload", payload, "error", err)
	} else {
		logger.Debug("Change event received", "op", ev.Op, "ts", ev.Timestamp)
	}
	purger.Purge()
}
