package game

import (
	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
)

// Service is the entry point for game logic (facade) used by the transports.
type Service struct {
	Sessions       *SessionManager
	DefaultVariant domain.Variant
}

func NewService(sessions *SessionManager, defaultVariant domain.Variant) *Service {
	if defaultVariant == "" {
		defaultVariant = domain.Variant6x7
	}
	return &Service{
		Sessions:       sessions,
		DefaultVariant: defaultVariant,
	}
}

// ParseStarter maps "ai" to the opponent and anything else to the human.
func ParseStarter(s string) domain.PlayerID {
	switch s {
	case "ai", "bot", "opponent":
		return domain.PlayerB
	default:
		return domain.PlayerA
	}
}

// NewGame creates and begins a game. An empty variant uses the default.
func (s *Service) NewGame(variant domain.Variant, starter domain.PlayerID) (StateView, error) {
	if variant == "" {
		variant = s.DefaultVariant
	}
	controller, err := s.Sessions.CreateSession(variant, starter)
	if err != nil {
		return StateView{}, err
	}
	controller.Begin()
	return NewStateView(controller.GameID, controller.Snapshot()), nil
}

func (s *Service) GetGame(gameID string) (StateView, error) {
	controller, ok := s.Sessions.GetSessionByGameID(gameID)
	if !ok {
		return StateView{}, domain.ErrSessionNotFound
	}
	return NewStateView(gameID, controller.Snapshot()), nil
}

func (s *Service) Move(gameID string, column int) (bool, StateView, error) {
	controller, ok := s.Sessions.GetSessionByGameID(gameID)
	if !ok {
		return false, StateView{}, domain.ErrSessionNotFound
	}
	applied, err := controller.HumanMove(column)
	return applied, NewStateView(gameID, controller.Snapshot()), err
}

func (s *Service) Reset(gameID string, starter domain.PlayerID) (StateView, error) {
	controller, ok := s.Sessions.GetSessionByGameID(gameID)
	if !ok {
		return StateView{}, domain.ErrSessionNotFound
	}
	if err := controller.Reset(starter); err != nil {
		return StateView{}, err
	}
	return NewStateView(gameID, controller.Snapshot()), nil
}

// Watch subscribes l and hands it the current state right away.
func (s *Service) Watch(gameID string, l Listener) (func(), error) {
	controller, ok := s.Sessions.GetSessionByGameID(gameID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return controller.Watch(l), nil
}

func (s *Service) ActiveGames() []GameSummary {
	return s.Sessions.ActiveGames()
}

// EndGame drops a game. Watchers keep their connection but receive no more events.
func (s *Service) EndGame(gameID string) error {
	return s.Sessions.RemoveSession(gameID)
}
