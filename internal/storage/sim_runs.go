package storage

import "fmt"

// SimRun is one recorded batch of simulated games.
type SimRun struct {
	ID            int64     `db:"id"`
	GameID        string    `db:"game_id"`
	Seed          int64     `db:"seed"`
	Games         int       `db:"games"`
	Workers       int       `db:"workers"`
	MaxMoves      int       `db:"max_moves"`
	TotalSteps    int64     `db:"total_steps"`
	TotalAccepted int64     `db:"total_accepted"`
	TotalCleared  int64     `db:"total_cleared"`
	MeanScore     float64   `db:"mean_score"`
	MeanMoves     float64   `db:"mean_moves"`
	ClearRate     float64   `db:"clear_rate"`
	RepeatRate    float64   `db:"repeat_rate"`
	NoPathRate    float64   `db:"no_path_rate"`
	BestScore     int       `db:"best_score"`
	DurationMS    int64     `db:"duration_ms"`
	CreatedAt     Timestamp `db:"created_at"`
}

// SaveSimRun records a simulation batch and returns its ID.
func (s *Store) SaveSimRun(run SimRun) (int64, error) {
	result, err := s.db.NamedExec(
		`INSERT INTO sim_runs (
			game_id, seed, games, workers, max_moves,
			total_steps, total_accepted, total_cleared,
			mean_score, mean_moves, clear_rate, repeat_rate, no_path_rate,
			best_score, duration_ms
		) VALUES (
			:game_id, :seed, :games, :workers, :max_moves,
			:total_steps, :total_accepted, :total_cleared,
			:mean_score, :mean_moves, :clear_rate, :repeat_rate, :no_path_rate,
			:best_score, :duration_ms
		)`,
		run,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save sim run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentSimRuns returns the latest simulation batches, newest first.
// An empty gameID matches every variant.
func (s *Store) RecentSimRuns(gameID string, limit int) ([]SimRun, error) {
	if limit <= 0 {
		limit = 10
	}

	var runs []SimRun
	err := s.db.Select(&runs,
		`SELECT * FROM sim_runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sim runs: %w", err)
	}
	return runs, nil
}
