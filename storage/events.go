package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/myood/winhook/event"
)

// InputRecord is one captured input event as persisted.
type InputRecord struct {
	ID         int64
	Timestamp  time.Time
	Source     string
	Action     string
	Detail     string
	RawCode    int64
	X, Y       int64
	WheelDelta int64
}

// RecordFromEvent flattens a hook event into a persistable row.
func RecordFromEvent(ev event.InputEvent, at time.Time) InputRecord {
	rec := InputRecord{Timestamp: at, Source: ev.Source()}
	switch {
	case ev.Keyboard != nil:
		rec.Action = ev.Keyboard.Press.String()
		rec.Detail = ev.Keyboard.Key.String()
		rec.RawCode = int64(ev.Keyboard.Raw)
	case ev.Mouse != nil:
		rec.Action = ev.Mouse.Action.String()
		if ev.Mouse.Action == event.MousePress {
			rec.Detail = ev.Mouse.Button.String() + " " + ev.Mouse.Press.String()
		}
		rec.X = int64(ev.Mouse.X)
		rec.Y = int64(ev.Mouse.Y)
		rec.WheelDelta = int64(ev.Mouse.Delta)
	}
	return rec
}

// SaveBatch inserts a batch of records in one transaction.
func (db *DB) SaveBatch(records []InputRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO input_events (timestamp, source, action, detail, raw_code, x, y, wheel_delta)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			r.Timestamp.UTC().Format("2006-01-02 15:04:05.000"),
			r.Source, r.Action, r.Detail, r.RawCode, r.X, r.Y, r.WheelDelta,
		); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}

	return tx.Commit()
}

// GetRecent retrieves the newest events, optionally filtered by source,
// with pagination.
func (db *DB) GetRecent(source string, limit, offset int) ([]InputRecord, error) {
	query := `
		SELECT id, timestamp, source, action, detail, raw_code, x, y, wheel_delta
		FROM input_events
	`
	var args []any
	if source != "" {
		query += " WHERE source = ?"
		args = append(args, source)
	}
	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var records []InputRecord
	for rows.Next() {
		var r InputRecord
		var ts string
		if err := rows.Scan(&r.ID, &ts, &r.Source, &r.Action, &r.Detail, &r.RawCode, &r.X, &r.Y, &r.WheelDelta); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		r.Timestamp = parseTimestamp(ts)
		records = append(records, r)
	}

	return records, rows.Err()
}

// Prune deletes events older than the retention window and returns the
// number of rows removed.
func (db *DB) Prune(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	res, err := db.conn.Exec(
		`DELETE FROM input_events WHERE timestamp < datetime('now', '-' || ? || ' days')`,
		retentionDays,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune events: %w", err)
	}
	return res.RowsAffected()
}

func parseTimestamp(ts string) time.Time {
	layouts := []string{
		"2006-01-02 15:04:05.000",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	ts = strings.TrimSpace(ts)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}
