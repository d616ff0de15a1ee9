package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Nosajool/vct-manager-sub005/models"
	"github.com/lib/pq"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	UpdateStatus(ctx context.Context, id string, status models.TournamentStatus) error
	ListForAutoStatusUpdate(ctx context.Context) ([]*models.Tournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

// Сетка, швейцарский этап и призовой фонд хранятся снимками JSONB: движок
// каждый раз возвращает новую структуру целиком, и БД хранит её как
// значение.
func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	bracketJSON, swissJSON, prizeJSON, err := marshalSnapshots(t)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tournaments (
			id, name, type, format, region, season_id, team_ids, start_date, end_date,
			prize_pool, bracket, swiss_stage, current_stage,
			swiss_team_ids, playoff_only_team_ids, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at`

	err = r.db.QueryRowContext(ctx, query,
		t.ID, t.Name, t.Type, t.Format, t.Region, nullString(t.SeasonID), pq.Array(t.TeamIDs), t.StartDate, t.EndDate,
		prizeJSON, bracketJSON, swissJSON, nullString(string(t.CurrentStage)),
		pq.Array(t.SwissTeamIDs), pq.Array(t.PlayoffOnlyTeamIDs), t.Status,
	).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := selectTournament + ` WHERE id = $1`
	t, err := scanTournament(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := selectTournament + ` ORDER BY start_date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []models.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, *t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	bracketJSON, swissJSON, prizeJSON, err := marshalSnapshots(t)
	if err != nil {
		return err
	}

	query := `
		UPDATE tournaments SET
			bracket = $2, swiss_stage = $3, prize_pool = $4,
			current_stage = $5, status = $6
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		t.ID, bracketJSON, swissJSON, prizeJSON, nullString(string(t.CurrentStage)), t.Status)
	if err != nil {
		return fmt.Errorf("failed to update tournament: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, id string, status models.TournamentStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tournaments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// ListForAutoStatusUpdate возвращает турниры, чей статус мог устареть
// относительно дат: upcoming с наступившей датой старта и in_progress с
// прошедшей датой конца.
func (r *postgresTournamentRepository) ListForAutoStatusUpdate(ctx context.Context) ([]*models.Tournament, error) {
	query := selectTournament + `
		WHERE (status = 'upcoming' AND start_date <= NOW())
		   OR (status = 'in_progress' AND end_date < NOW())`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []*models.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

const selectTournament = `
	SELECT id, name, type, format, region, season_id, team_ids, start_date, end_date,
	       prize_pool, bracket, swiss_stage, current_stage,
	       swiss_team_ids, playoff_only_team_ids, status, created_at
	FROM tournaments`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	t := &models.Tournament{}
	var (
		prizeJSON    []byte
		bracketJSON  []byte
		swissJSON    []byte
		seasonID     sql.NullString
		currentStage sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.Type, &t.Format, &t.Region, &seasonID, pq.Array(&t.TeamIDs),
		&t.StartDate, &t.EndDate, &prizeJSON, &bracketJSON, &swissJSON,
		&currentStage, pq.Array(&t.SwissTeamIDs), pq.Array(&t.PlayoffOnlyTeamIDs),
		&t.Status, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(prizeJSON) > 0 {
		if err := json.Unmarshal(prizeJSON, &t.PrizePool); err != nil {
			return nil, fmt.Errorf("failed to decode prize pool: %w", err)
		}
	}
	if len(bracketJSON) > 0 {
		if err := json.Unmarshal(bracketJSON, &t.Bracket); err != nil {
			return nil, fmt.Errorf("failed to decode bracket snapshot: %w", err)
		}
	}
	if len(swissJSON) > 0 {
		var stage models.SwissStage
		if err := json.Unmarshal(swissJSON, &stage); err != nil {
			return nil, fmt.Errorf("failed to decode swiss snapshot: %w", err)
		}
		t.SwissStage = &stage
	}
	if seasonID.Valid {
		t.SeasonID = seasonID.String
	}
	if currentStage.Valid {
		t.CurrentStage = models.TournamentStage(currentStage.String)
	}
	return t, nil
}

func marshalSnapshots(t *models.Tournament) (bracket, swiss, prize []byte, err error) {
	bracket, err = json.Marshal(t.Bracket)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode bracket snapshot: %w", err)
	}
	if t.SwissStage != nil {
		swiss, err = json.Marshal(t.SwissStage)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to encode swiss snapshot: %w", err)
		}
	}
	prize, err = json.Marshal(t.PrizePool)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode prize pool: %w", err)
	}
	return bracket, swiss, prize, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
