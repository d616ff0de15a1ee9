package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nosajool/vct-manager-sub005/models"
	"github.com/Nosajool/vct-manager-sub005/repositories"
	"github.com/google/uuid"
)

// CreateTeamInput — параметры регистрации команды в лиге.
type CreateTeamInput struct {
	Name   string        `json:"name"`
	Tag    string        `json:"tag"`
	Region models.Region `json:"region"`
	Rating int           `json:"rating"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
}

func NewTeamService(teamRepo repositories.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

func validRegion(r models.Region) bool {
	switch r {
	case models.RegionAmericas, models.RegionEMEA, models.RegionPacific, models.RegionChina:
		return true
	}
	return false
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}
	if !validRegion(input.Region) {
		return nil, fmt.Errorf("%w: unknown region %q", ErrValidationFailed, input.Region)
	}

	team := &models.Team{
		ID:     uuid.NewString(),
		Name:   input.Name,
		Tag:    input.Tag,
		Region: input.Region,
		Rating: input.Rating,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, err
	}
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	return s.teamRepo.List(ctx)
}
