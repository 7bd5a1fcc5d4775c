// Package storage persists high scores and simulation runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
// It is safe for concurrent use.
type Store struct {
	db *sqlx.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64     `db:"id"`
	GameID    string    `db:"game_id"`
	Score     int       `db:"score"`
	Moves     int       `db:"moves"`
	CreatedAt Timestamp `db:"created_at"`
}

// Open creates or opens a SQLite database at the given path.
// It expands a leading ~, creates parent directories and migrates the schema.
func Open(dbPath string) (*Store, error) {
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

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; serialize through a single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS sim_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			games INTEGER NOT NULL,
			workers INTEGER NOT NULL,
			max_moves INTEGER NOT NULL,
			total_steps INTEGER NOT NULL,
			total_accepted INTEGER NOT NULL,
			total_cleared INTEGER NOT NULL,
			mean_score REAL NOT NULL,
			mean_moves REAL NOT NULL,
			clear_rate REAL NOT NULL,
			repeat_rate REAL NOT NULL,
			no_path_rate REAL NOT NULL,
			best_score INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sim_runs_game_id ON sim_runs(game_id);
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

// SaveScore records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score, moves int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score, moves) VALUES (?, ?, ?)",
		gameID, score, moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game, best first.
// Ties go to the earlier record.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var entries []ScoreEntry
	err := s.db.Select(&entries,
		`SELECT id, game_id, score, moves, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return entries, nil
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	err := s.db.Select(&entries,
		`SELECT id, game_id, score, moves, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.Get(&score, "SELECT MAX(score) FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string    `db:"game_id"`
	GamesCount int       `db:"games_count"`
	HighScore  int       `db:"high_score"`
	AvgScore   float64   `db:"avg_score"`
	TotalScore int64     `db:"total_score"`
	AvgMoves   float64   `db:"avg_moves"`
	LastPlayed Timestamp `db:"last_played"`
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRowx(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(AVG(moves), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.AvgMoves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	err = s.db.Get(&stats.LastPlayed,
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for every game that has scores.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	var rows []GameStats
	err := s.db.Select(&rows,
		`SELECT game_id, COUNT(*) AS games_count, MAX(score) AS high_score,
		        AVG(score) AS avg_score, SUM(score) AS total_score,
		        AVG(moves) AS avg_moves, MAX(created_at) AS last_played
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}

	stats := make(map[string]*GameStats, len(rows))
	for i := range rows {
		stats[rows[i].GameID] = &rows[i]
	}
	return stats, nil
}

// Timestamp scans the DATETIME values SQLite hands back, which arrive as
// time.Time, text or unix seconds depending on how they were written.
type Timestamp struct {
	time.Time
}

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = v
	case int64:
		t.Time = time.Unix(v, 0).UTC()
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("storage: cannot scan %T into time", src)
	}
	return nil
}

func (t *Timestamp) parse(s string) error {
	for _, layout := range []string{sqliteTimeLayout, time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("storage: cannot parse time %q", s)
}
