// README: Historical demand-aggregate provider backed by PostgreSQL.
package market

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryStore reads warehoused demand aggregates. How the table is populated
// is the reporting pipeline's concern; the engine only reads.
type HistoryStore struct {
	db *pgxpool.Pool
}

func NewHistoryStore(db *pgxpool.Pool) *HistoryStore {
	return &HistoryStore{db: db}
}

// AggregateDemand returns the average ride requests recorded for the given
// hour and weekday. Missing history is reported as 0, not an error, so
// predictors fall back to their configured table base.
func (s *HistoryStore) AggregateDemand(ctx context.Context, hour int, weekday time.Weekday) (float64, error) {
	const q = `
		SELECT avg_requests
		FROM demand_history
		WHERE hour_of_day = $1 AND weekday = $2`

	var avg float64
	err := s.db.QueryRow(ctx, q, hour, int(weekday)).Scan(&avg)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return avg, nil
}
