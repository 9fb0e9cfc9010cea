package dnd5e

import (
	"net/http"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"

	apperrors "github.com/tabletopforge/battletracker/internal/errors"
)

type client struct {
	client dnd5e.Interface
}

type Config struct {
	HttpClient *http.Client
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, apperrors.InvalidArgument("cfg cannot be nil")
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, err
	}

	return &client{
		client: dndClient,
	}, nil
}

func (c *client) GetMonster(key string) (*Monster, error) {
	monster, err := c.client.GetMonster(key)
	if err != nil {
		return nil, err
	}
	if monster == nil {
		return nil, apperrors.NotFoundf("monster '%s' not found", key)
	}

	return &Monster{
		Key:             monster.Key,
		Name:            monster.Name,
		Type:            monster.Type,
		ArmorClass:      monster.ArmorClass,
		HitPoints:       monster.HitPoints,
		HitDice:         monster.HitDice,
		ChallengeRating: float64(monster.ChallengeRating),
	}, nil
}

// ListMonstersByCR returns full stat blocks for every monster at the given
// challenge rating. The API filter returns references only, so each match
// costs an extra fetch.
func (c *client) ListMonstersByCR(cr float64) ([]*Monster, error) {
	refs, err := c.client.ListMonstersWithFilter(&dnd5e.ListMonstersInput{
		ChallengeRating: &cr,
	})
	if err != nil {
		return nil, err
	}

	monsters := make([]*Monster, 0, len(refs))
	for _, ref := range refs {
		if ref.Key == "" {
			continue
		}
		monster, err := c.GetMonster(ref.Key)
		if err != nil {
			continue
		}
		monsters = append(monsters, monster)
	}

	return monsters, nil
}
