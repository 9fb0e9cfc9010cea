package dice

// Roller evaluates dice notation. An interface so tests can inject
// deterministic implementations.
type Roller interface {
	// Roll evaluates standard notation like "2d20+5" or "4d6kh3". The
	// modifier is added on top of any modifier embedded in the notation.
	Roll(notation string, modifier int, description string) (*Roll, error)

	// RollWithAdvantage rolls 2d20 keep highest
	RollWithAdvantage(modifier int, description string) (*Roll, error)

	// RollWithDisadvantage rolls 2d20 keep lowest
	RollWithDisadvantage(modifier int, description string) (*Roll, error)

	// RollAbilityScore rolls 4d6 keep highest 3
	RollAbilityScore(description string) (*Roll, error)
}

// Roll is the outcome of one dice-notation evaluation
type Roll struct {
	Notation    string `json:"notation"`
	Rolls       []int  `json:"rolls"` // every die rolled, before keep filtering
	Total       int    `json:"total"`
	Modifier    int    `json:"modifier"`
	Description string `json:"description,omitempty"`
	Timestamp   int64  `json:"timestamp"` // unix milliseconds
}
