package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Result is one finished game.
type Result struct {
	ID          int64
	Mode        string
	Map         string
	Wave        int
	GameTime    float64 // Simulated seconds
	TowersBuilt int
	CreatedAt   time.Time
}

const resultColumns = `id, mode, map_name, wave, game_time, towers_built, created_at`

// SaveResult records a finished game and returns its ID.
func (s *Store) SaveResult(r Result) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		s.rebind(`INSERT INTO results (mode, map_name, wave, game_time, towers_built)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`),
		r.Mode, r.Map, r.Wave, r.GameTime, r.TowersBuilt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}
	return id, nil
}

// TopResults returns the best results for a mode: highest wave first, then
// longest survival. An empty mode matches every mode.
func (s *Store) TopResults(mode string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT ` + resultColumns + ` FROM results`
	args := []any{}
	if mode != "" {
		query += ` WHERE mode = ?`
		args = append(args, mode)
	}
	query += ` ORDER BY wave DESC, game_time DESC, id ASC LIMIT ?`
	args = append(args, limit)

	return s.queryResults(query, args...)
}

// RecentResults returns the latest results across all modes.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+resultColumns+` FROM results ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// BestWave returns the highest wave reached in a mode on a map.
// Returns 0 if no results exist.
func (s *Store) BestWave(mode, mapName string) (int, error) {
	var wave sql.NullInt64
	err := s.db.QueryRow(
		s.rebind(`SELECT MAX(wave) FROM results WHERE mode = ? AND map_name = ?`),
		mode, mapName,
	).Scan(&wave)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best wave: %w", err)
	}
	if !wave.Valid {
		return 0, nil
	}
	return int(wave.Int64), nil
}

// ClearResults deletes all results of a mode.
func (s *Store) ClearResults(mode string) error {
	if _, err := s.db.Exec(s.rebind(`DELETE FROM results WHERE mode = ?`), mode); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Mode, &r.Map, &r.Wave, &r.GameTime, &r.TowersBuilt, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// parseTimestamp handles the driver-specific representations of created_at.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		return parseTimestampString(t)
	case []byte:
		return parseTimestampString(string(t))
	}
	return time.Time{}
}

func parseTimestampString(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
