package dice

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tabletopforge/battletracker/internal/dice"
	apperrors "github.com/tabletopforge/battletracker/internal/errors"
	"github.com/tabletopforge/battletracker/internal/repositories/dicelog"
)

// Service rolls dice and keeps a bounded history of recent rolls
type Service interface {
	// Roll evaluates dice notation and records the result
	Roll(ctx context.Context, input *RollInput) (*dice.Roll, error)

	// History returns up to limit recent rolls, newest first. A non-positive
	// limit uses the default.
	History(ctx context.Context, limit int) ([]*dice.Roll, error)
}

// RollInput contains data for one roll
type RollInput struct {
	Notation     string
	Modifier     int
	Description  string
	Advantage    bool
	Disadvantage bool
}

type service struct {
	roller     dice.Roller
	repository dicelog.Repository
	log        *logrus.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller     dice.Roller // defaults to a random roller
	Repository dicelog.Repository
	Logger     *logrus.Logger
}

// NewService creates a new dice service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		roller:     cfg.Roller,
		repository: cfg.Repository,
		log:        cfg.Logger,
	}

	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.log == nil {
		svc.log = logrus.StandardLogger()
	}

	return svc
}

// Roll evaluates dice notation and records the result
func (s *service) Roll(ctx context.Context, input *RollInput) (*dice.Roll, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}
	if input.Advantage && input.Disadvantage {
		return nil, apperrors.Validation("advantage and disadvantage are mutually exclusive")
	}

	var (
		roll *dice.Roll
		err  error
	)
	switch {
	case input.Advantage:
		roll, err = s.roller.RollWithAdvantage(input.Modifier, input.Description)
	case input.Disadvantage:
		roll, err = s.roller.RollWithDisadvantage(input.Modifier, input.Description)
	default:
		roll, err = s.roller.Roll(input.Notation, input.Modifier, input.Description)
	}
	if err != nil {
		return nil, err
	}

	if err := s.repository.Append(ctx, roll); err != nil {
		s.log.WithError(err).Warn("failed to record dice roll")
	}

	return roll, nil
}

// History returns up to limit recent rolls, newest first
func (s *service) History(ctx context.Context, limit int) ([]*dice.Roll, error) {
	if limit <= 0 {
		limit = dicelog.DefaultHistoryLimit
	}

	rolls, err := s.repository.List(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list dice rolls")
	}

	return rolls, nil
}
