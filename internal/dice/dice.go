// Package dice rolls standard D&D dice notation.
//
// Supported notation: [count]d[sides][+/-modifier][kh|kl][keep], e.g. "1d20",
// "2d6+3", "4d6kh3" (keep highest 3), "2d20kl1" (keep lowest 1). Valid die
// sizes are d4, d6, d8, d10, d12, d20 and d100; counts run from 1 to 100.
package dice

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tabletopforge/battletracker/internal/errors"
)

var notationPattern = regexp.MustCompile(`(?i)^(\d+)d(\d+)([+-]\d+)?(kh|kl)?(\d+)?$`)

var validSides = map[int]bool{4: true, 6: true, 8: true, 10: true, 12: true, 20: true, 100: true}

const (
	minCount = 1
	maxCount = 100
)

type randomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller creates a Roller backed by math/rand
func NewRandomRoller() Roller {
	return &randomRoller{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededRoller creates a deterministic Roller for tests
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *randomRoller) Roll(notation string, modifier int, description string) (*Roll, error) {
	spec, err := parse(notation)
	if err != nil {
		return nil, err
	}

	rolls := make([]int, spec.count)
	for i := range rolls {
		rolls[i] = r.rng.Intn(spec.sides) + 1
	}

	kept := keep(rolls, spec.keepType, spec.keepCount)

	total := 0
	for _, roll := range kept {
		total += roll
	}

	totalModifier := spec.modifier + modifier
	fullNotation := notation
	if modifier != 0 {
		fullNotation = fmt.Sprintf("%s%+d", notation, modifier)
	}

	return &Roll{
		Notation:    fullNotation,
		Rolls:       rolls,
		Total:       total + totalModifier,
		Modifier:    totalModifier,
		Description: description,
		Timestamp:   time.Now().UnixMilli(),
	}, nil
}

func (r *randomRoller) RollWithAdvantage(modifier int, description string) (*Roll, error) {
	if description == "" {
		description = "Advantage"
	}
	return r.Roll("2d20kh1", modifier, description)
}

func (r *randomRoller) RollWithDisadvantage(modifier int, description string) (*Roll, error) {
	if description == "" {
		description = "Disadvantage"
	}
	return r.Roll("2d20kl1", modifier, description)
}

func (r *randomRoller) RollAbilityScore(description string) (*Roll, error) {
	if description == "" {
		description = "Ability Score"
	}
	return r.Roll("4d6kh3", 0, description)
}

type rollSpec struct {
	count     int
	sides     int
	modifier  int
	keepType  string // "kh", "kl" or ""
	keepCount int
}

func parse(notation string) (*rollSpec, error) {
	match := notationPattern.FindStringSubmatch(notation)
	if match == nil {
		return nil, errors.Validationf(
			"invalid dice notation: %s (use format like \"2d20\", \"1d6+3\", or \"4d6kh3\")", notation)
	}

	count, _ := strconv.Atoi(match[1])
	sides, _ := strconv.Atoi(match[2])

	if !validSides[sides] {
		return nil, errors.Validationf(
			"invalid die type: d%d (valid dice: d4, d6, d8, d10, d12, d20, d100)", sides)
	}
	if count < minCount || count > maxCount {
		return nil, errors.Validationf("dice count must be between %d and %d", minCount, maxCount)
	}

	spec := &rollSpec{count: count, sides: sides, keepCount: count}
	if match[3] != "" {
		spec.modifier, _ = strconv.Atoi(match[3])
	}
	if match[4] != "" {
		spec.keepType = strings.ToLower(match[4])
		if match[5] != "" {
			spec.keepCount, _ = strconv.Atoi(match[5])
		}
	}

	return spec, nil
}

// keep filters rolls by keep-highest/keep-lowest, leaving them untouched when
// no filter applies
func keep(rolls []int, keepType string, keepCount int) []int {
	if keepType == "" || keepCount >= len(rolls) {
		return rolls
	}

	kept := make([]int, len(rolls))
	copy(kept, rolls)
	if keepType == "kh" {
		sort.Sort(sort.Reverse(sort.IntSlice(kept)))
	} else {
		sort.Ints(kept)
	}
	return kept[:keepCount]
}
