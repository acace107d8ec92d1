package storage

import (
	"fmt"
)

// DailyStats represents capture volume for a single day
type DailyStats struct {
	Date           string
	TotalEvents    int
	KeyboardEvents int
	MouseEvents    int
}

// SourceStats represents statistics grouped by event source
type SourceStats struct {
	Source      string
	TotalEvents int
	FirstEvent  string
	LastEvent   string
}

// KeyStats represents how often a key or button was pressed
type KeyStats struct {
	Detail string
	Count  int
}

// OverallStats represents overall capture statistics
type OverallStats struct {
	TotalEvents    int
	KeyboardEvents int
	MouseEvents    int
	OldestEvent    string
	NewestEvent    string
}

// GetDailyStats retrieves event counts grouped by date for the last N days
func (db *DB) GetDailyStats(days int) ([]DailyStats, error) {
	query := `
		SELECT
			DATE(timestamp) as date,
			COUNT(*) as total_events,
			SUM(CASE WHEN source = 'keyboard' THEN 1 ELSE 0 END) as keyboard_events,
			SUM(CASE WHEN source = 'mouse' THEN 1 ELSE 0 END) as mouse_events
		FROM input_events
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY DATE(timestamp)
		ORDER BY date DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStats
	for rows.Next() {
		var s DailyStats
		err := rows.Scan(&s.Date, &s.TotalEvents, &s.KeyboardEvents, &s.MouseEvents)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetSourceStats retrieves statistics grouped by event source
func (db *DB) GetSourceStats() ([]SourceStats, error) {
	query := `
		SELECT
			source,
			COUNT(*) as total_events,
			MIN(timestamp) as first_event,
			MAX(timestamp) as last_event
		FROM input_events
		GROUP BY source
		ORDER BY total_events DESC
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query source stats: %w", err)
	}
	defer rows.Close()

	var stats []SourceStats
	for rows.Next() {
		var s SourceStats
		err := rows.Scan(&s.Source, &s.TotalEvents, &s.FirstEvent, &s.LastEvent)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetTopKeys retrieves the most frequent key presses over the last N days
func (db *DB) GetTopKeys(days, limit int) ([]KeyStats, error) {
	query := `
		SELECT detail, COUNT(*) as count
		FROM input_events
		WHERE source = 'keyboard'
		  AND action = 'down'
		  AND timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY detail
		ORDER BY count DESC
		LIMIT ?
	`

	rows, err := db.conn.Query(query, days, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top keys: %w", err)
	}
	defer rows.Close()

	var stats []KeyStats
	for rows.Next() {
		var s KeyStats
		if err := rows.Scan(&s.Detail, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan top keys: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetOverallStats retrieves overall capture statistics
func (db *DB) GetOverallStats() (*OverallStats, error) {
	query := `
		SELECT
			COUNT(*),
			SUM(CASE WHEN source = 'keyboard' THEN 1 ELSE 0 END),
			SUM(CASE WHEN source = 'mouse' THEN 1 ELSE 0 END),
			COALESCE(MIN(timestamp), ''),
			COALESCE(MAX(timestamp), '')
		FROM input_events
	`

	var s OverallStats
	var kb, mouse *int
	err := db.conn.QueryRow(query).Scan(&s.TotalEvents, &kb, &mouse, &s.OldestEvent, &s.NewestEvent)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall stats: %w", err)
	}
	if kb != nil {
		s.KeyboardEvents = *kb
	}
	if mouse != nil {
		s.MouseEvents = *mouse
	}

	return &s, nil
}
