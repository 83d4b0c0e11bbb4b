package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed                  = errors.New("validation failed")
	ErrInvalidScore                      = errors.New("scores must be non-negative")
	ErrInvalidWinner                     = errors.New("winner must be one of the match teams")
	ErrInvalidMatchStatus                = errors.New("invalid match status provided")
	ErrMatchNotEditable                  = errors.New("cancelled matches cannot be edited")
	ErrRegistrationNotOpen               = errors.New("tournament registration is not open")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrNotEliminationBracket             = errors.New("tournament is not played as an elimination bracket")
	ErrBracketAlreadyGenerated           = errors.New("bracket has already been generated for this tournament")

	// Ошибки конфликтов
	ErrRegistrationConflict = errors.New("team is already registered for this tournament")
	ErrAlreadyQueued        = errors.New("team is already in the waiting queue")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Ошибки, специфичные для сущностей
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrGroupNotFound        = errors.New("group not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrNotQueued            = errors.New("team is not in the waiting queue")
	ErrBracketNotAvailable  = errors.New("bracket is not available for this tournament")
	ErrMatchNotInBracket    = errors.New("match is not part of the bracket")
	ErrNothingToUndo        = errors.New("no result changes to undo for this match")

	// Внешние сервисы
	ErrExportDisabled = errors.New("bracket export is not configured")
)
