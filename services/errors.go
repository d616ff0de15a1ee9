package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed        = errors.New("validation failed")
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrTeamCountInvalid        = errors.New("team count is outside the allowed range")
	ErrDuplicateTeams          = errors.New("team list contains duplicates")
	ErrMatchAlreadyCompleted   = errors.New("match result already recorded")
	ErrTournamentNotInProgress = errors.New("tournament is not in progress")
	ErrSeasonPhaseLocked       = errors.New("season phase cannot advance yet")
	ErrRosterChangesLocked     = errors.New("roster changes are only allowed in the offseason")

	// Ошибки аутентификации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")

	// Ошибки, специфичные для сущностей
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrTeamNameConflict   = errors.New("team name is already in use")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrSeasonNotFound     = errors.New("season not found")
	ErrMatchNotFound      = errors.New("match not found")
)
