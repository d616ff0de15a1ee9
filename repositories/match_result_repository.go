package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Nosajool/vct-manager-sub005/models"
)

type MatchResultRepository interface {
	Create(ctx context.Context, result *models.StoredMatchResult) error
	ListByTournament(ctx context.Context, tournamentID string) ([]models.StoredMatchResult, error)
	ListBySeason(ctx context.Context, seasonID string) ([]models.StoredMatchResult, error)
}

type postgresMatchResultRepository struct {
	db *sql.DB
}

func NewPostgresMatchResultRepository(db *sql.DB) MatchResultRepository {
	return &postgresMatchResultRepository{db: db}
}

func (r *postgresMatchResultRepository) Create(ctx context.Context, res *models.StoredMatchResult) error {
	resultJSON, err := json.Marshal(res.Result)
	if err != nil {
		return fmt.Errorf("failed to encode match result: %w", err)
	}

	query := `
		INSERT INTO match_results (tournament_id, match_uid, result)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		res.TournamentID, res.MatchUID, resultJSON,
	).Scan(&res.ID, &res.CreatedAt)
}

func (r *postgresMatchResultRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.StoredMatchResult, error) {
	query := `
		SELECT id, tournament_id, match_uid, result, created_at
		FROM match_results
		WHERE tournament_id = $1
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatchResults(rows)
}

// ListBySeason собирает журнал результатов всех турниров сезона.
func (r *postgresMatchResultRepository) ListBySeason(ctx context.Context, seasonID string) ([]models.StoredMatchResult, error) {
	query := `
		SELECT mr.id, mr.tournament_id, mr.match_uid, mr.result, mr.created_at
		FROM match_results mr
		JOIN tournaments t ON t.id = mr.tournament_id
		WHERE t.season_id = $1
		ORDER BY mr.created_at`

	rows, err := r.db.QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatchResults(rows)
}

func scanMatchResults(rows *sql.Rows) ([]models.StoredMatchResult, error) {
	var results []models.StoredMatchResult
	for rows.Next() {
		var (
			res        models.StoredMatchResult
			resultJSON []byte
		)
		if err := rows.Scan(&res.ID, &res.TournamentID, &res.MatchUID, &resultJSON, &res.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(resultJSON, &res.Result); err != nil {
			return nil, fmt.Errorf("failed to decode match result: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
