package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidResult is returned by SaveResult for malformed records.
var ErrInvalidResult = errors.New("storage: invalid level result")

// LevelResult is one finished attempt at a level.
type LevelResult struct {
	ID        int64
	RunID     string // Groups the attempts of one campaign run
	LevelID   string
	Status    string  // "won" or "lost"
	Elapsed   float64 // Simulated seconds
	Deaths    int     // Deaths on the level so far, this attempt included
	CreatedAt time.Time
}

// LevelStats aggregates every stored attempt at one level.
type LevelStats struct {
	LevelID      string
	Attempts     int
	Wins         int
	BestTime     float64 // Fastest win in seconds; zero when never won
	FewestDeaths int     // Fewest deaths among wins
	LastPlayed   time.Time
}

// NewRunID returns a fresh identifier for a campaign run.
func NewRunID() string {
	return uuid.NewString()
}

// SaveResult records a finished level attempt.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r LevelResult) (int64, error) {
	if _, err := uuid.Parse(r.RunID); err != nil {
		return 0, fmt.Errorf("%w: run id %q: %v", ErrInvalidResult, r.RunID, err)
	}
	if r.LevelID == "" {
		return 0, fmt.Errorf("%w: empty level id", ErrInvalidResult)
	}
	if r.Status != "won" && r.Status != "lost" {
		return 0, fmt.Errorf("%w: status %q", ErrInvalidResult, r.Status)
	}

	res, err := s.db.Exec(
		`INSERT INTO level_results (run_id, level_id, status, elapsed, deaths)
		 VALUES (?, ?, ?, ?, ?)`,
		r.RunID, r.LevelID, r.Status, r.Elapsed, r.Deaths,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentResults retrieves the latest attempts, newest first.
// An empty levelID returns attempts at every level.
func (s *Store) RecentResults(levelID string, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, level_id, status, elapsed, deaths, created_at
		 FROM level_results
		 WHERE ? = '' OR level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	return scanResults(rows)
}

// RunResults retrieves every attempt of one campaign run in play order.
func (s *Store) RunResults(runID string) ([]LevelResult, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, level_id, status, elapsed, deaths, created_at
		 FROM level_results
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run results: %w", err)
	}
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]LevelResult, error) {
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		var r LevelResult
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.LevelID, &r.Status, &r.Elapsed, &r.Deaths, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// LevelStatsAll retrieves aggregated statistics for every played level,
// ordered by level ID.
func (s *Store) LevelStatsAll() ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id,
		        COUNT(*),
		        SUM(CASE WHEN status = 'won' THEN 1 ELSE 0 END),
		        MIN(CASE WHEN status = 'won' THEN elapsed END),
		        MIN(CASE WHEN status = 'won' THEN deaths END),
		        MAX(created_at)
		 FROM level_results
		 GROUP BY level_id
		 ORDER BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var st LevelStats
		var best sql.NullFloat64
		var fewest sql.NullInt64
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Attempts, &st.Wins, &best, &fewest, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.BestTime = best.Float64
		st.FewestDeaths = int(fewest.Int64)
		st.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// LevelStatsFor retrieves statistics for one level. A level that has never
// been played yields zero stats and no error.
func (s *Store) LevelStatsFor(levelID string) (LevelStats, error) {
	all, err := s.LevelStatsAll()
	if err != nil {
		return LevelStats{}, err
	}
	for _, st := range all {
		if st.LevelID == levelID {
			return st, nil
		}
	}
	return LevelStats{LevelID: levelID}, nil
}
