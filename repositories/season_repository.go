package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Nosajool/vct-manager-sub005/models"
	"github.com/lib/pq"
)

var ErrSeasonNotFound = errors.New("season not found")

type SeasonRepository interface {
	Create(ctx context.Context, season *models.Season) error
	GetByID(ctx context.Context, id string) (*models.Season, error)
	GetCurrent(ctx context.Context) (*models.Season, error)
	Update(ctx context.Context, season *models.Season) error
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

func (r *postgresSeasonRepository) Create(ctx context.Context, s *models.Season) error {
	query := `
		INSERT INTO seasons (id, year, current_phase, start_date, team_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		s.ID, s.Year, s.CurrentPhase, s.StartDate, pq.Array(s.TeamIDs),
	).Scan(&s.CreatedAt)
}

func (r *postgresSeasonRepository) GetByID(ctx context.Context, id string) (*models.Season, error) {
	query := `
		SELECT id, year, current_phase, start_date, team_ids, created_at
		FROM seasons WHERE id = $1`

	s := &models.Season{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Year, &s.CurrentPhase, &s.StartDate, pq.Array(&s.TeamIDs), &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresSeasonRepository) GetCurrent(ctx context.Context) (*models.Season, error) {
	query := `
		SELECT id, year, current_phase, start_date, team_ids, created_at
		FROM seasons ORDER BY year DESC LIMIT 1`

	s := &models.Season{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.Year, &s.CurrentPhase, &s.StartDate, pq.Array(&s.TeamIDs), &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresSeasonRepository) Update(ctx context.Context, s *models.Season) error {
	query := `UPDATE seasons SET current_phase = $2, team_ids = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, s.ID, s.CurrentPhase, pq.Array(s.TeamIDs))
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}
