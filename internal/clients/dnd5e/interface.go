package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

// Monster is the slice of a 5e SRD stat block the tracker cares about
type Monster struct {
	Key             string
	Name            string
	Type            string
	ArmorClass      int
	HitPoints       int
	HitDice         string
	ChallengeRating float64
}

// Client fetches monster stat blocks from the dnd5e API
type Client interface {
	GetMonster(key string) (*Monster, error)
	ListMonstersByCR(cr float64) ([]*Monster, error)
}
