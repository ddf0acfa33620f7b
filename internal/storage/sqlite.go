// Package storage provides SQLite-based persistence for finished runs and,
// per profile, the campaign unlock record and the save slot.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/forest-survival/internal/savegame"
	"github.com/vovakirdan/forest-survival/internal/survival/campaign"
)

// DefaultProfile is the profile of local play. SSH sessions use the
// connecting user's name.
const DefaultProfile = "local"

// ErrNoSave is returned when a slot holds no save.
var ErrNoSave = errors.New("storage: no save in slot")

// Store manages the SQLite database connection.
type Store struct {
	db      *sql.DB
	profile string
}

// ScoreEntry is one finished run.
type ScoreEntry struct {
	ID         int64
	RunID      string
	Player     string
	Difficulty string
	StageID    int
	Day        int
	Kills      int
	Score      int
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, profile: DefaultProfile}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			stage_id INTEGER NOT NULL,
			day INTEGER NOT NULL DEFAULT 1,
			kills INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_difficulty ON runs(difficulty);

		CREATE TABLE IF NOT EXISTS progress (
			profile TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// WithProfile returns a view of the store whose progress and save slot
// belong to profile. The connection is shared.
func (s *Store) WithProfile(profile string) *Store {
	if profile == "" {
		profile = DefaultProfile
	}
	return &Store{db: s.db, profile: profile}
}

// Profile returns the profile progress and saves are keyed by.
func (s *Store) Profile() string { return s.profile }

// SaveScore records a finished run. A missing RunID is generated.
// Returns the run id.
func (s *Store) SaveScore(e ScoreEntry) (string, error) {
	if e.RunID == "" {
		e.RunID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, player, difficulty, stage_id, day, kills, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Player, e.Difficulty, e.StageID, e.Day, e.Kills, e.Score,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save score: %w", err)
	}
	return e.RunID, nil
}

// TopScores retrieves the top N runs, optionally for a single difficulty.
// Results are ordered by score descending.
func (s *Store) TopScores(difficulty string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, player, difficulty, stage_id, day, kills, score, created_at
		 FROM runs
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Player, &e.Difficulty, &e.StageID, &e.Day, &e.Kills, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best score recorded. Returns 0 if no runs exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes every recorded run.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics for one difficulty.
type RunStats struct {
	Difficulty string
	Runs       int
	HighScore  int
	AvgScore   float64
	BestStage  int
	TotalKills int64
	LastPlayed time.Time
}

// Stats aggregates runs per difficulty.
func (s *Store) Stats() (map[string]*RunStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), MAX(score), AVG(score), MAX(stage_id), SUM(kills), MAX(created_at)
		 FROM runs
		 GROUP BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*RunStats)
	for rows.Next() {
		var st RunStats
		var lastPlayed any
		if err := rows.Scan(&st.Difficulty, &st.Runs, &st.HighScore, &st.AvgScore, &st.BestStage, &st.TotalKills, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Difficulty] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// SaveProgress implements campaign.ProgressSaver.
func (s *Store) SaveProgress(p campaign.Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("storage: cannot encode progress: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO progress (profile, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.profile, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// LoadProgress returns the profile's unlock record. A missing or unreadable
// record yields the zero Progress, which unlocks stage 1 only.
func (s *Store) LoadProgress() (campaign.Progress, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM progress WHERE profile = ?", s.profile).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return campaign.Progress{}, nil
	}
	if err != nil {
		return campaign.Progress{}, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	var p campaign.Progress
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return campaign.Progress{}, nil
	}
	return p, nil
}

// StoreSave writes rec into the profile's slot, replacing what was there.
func (s *Store) StoreSave(rec savegame.Record) error {
	data, err := savegame.Encode(rec)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO saves (slot, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.profile, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write save: %w", err)
	}
	return nil
}

// LoadSave reads and verifies the save in slot.
func (s *Store) LoadSave(slot string) (savegame.Record, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM saves WHERE slot = ?", slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return savegame.Record{}, ErrNoSave
	}
	if err != nil {
		return savegame.Record{}, fmt.Errorf("storage: cannot read save: %w", err)
	}
	rec, err := savegame.Decode(data)
	if err != nil {
		return savegame.Record{}, fmt.Errorf("storage: slot %q: %w", slot, err)
	}
	return rec, nil
}

// SaveInfo describes one occupied slot.
type SaveInfo struct {
	Slot      string
	UpdatedAt time.Time
}

// Saves lists occupied slots, most recent first.
func (s *Store) Saves() ([]SaveInfo, error) {
	rows, err := s.db.Query("SELECT slot, updated_at FROM saves ORDER BY updated_at DESC, slot ASC")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	defer rows.Close()

	var out []SaveInfo
	for rows.Next() {
		var info SaveInfo
		var updated any
		if err := rows.Scan(&info.Slot, &updated); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTime(updated)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// DeleteSave removes a slot. Deleting an empty slot is not an error.
func (s *Store) DeleteSave(slot string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string DATETIME values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Ensure Store implements ProgressSaver
var _ campaign.ProgressSaver = (*Store)(nil)
