package battle

import (
	"strconv"
	"sync/atomic"
	"time"
)

// ActionType tags a recorded mutation
type ActionType string

const (
	ActionAddCreature             ActionType = "ADD_CREATURE"
	ActionUpdateCreature          ActionType = "UPDATE_CREATURE"
	ActionRemoveCreature          ActionType = "REMOVE_CREATURE"
	ActionMoveCreature            ActionType = "MOVE_CREATURE"
	ActionNextTurn                ActionType = "NEXT_TURN"
	ActionUpdateBattle            ActionType = "UPDATE_BATTLE"
	ActionSetTerrain              ActionType = "SET_TERRAIN"
	ActionToggleDoor              ActionType = "TOGGLE_DOOR"
	ActionUpdateSceneDescription  ActionType = "UPDATE_SCENE_DESCRIPTION"
	ActionUpdateCreaturePositions ActionType = "UPDATE_CREATURE_POSITIONS"
)

// Action is one reversible mutation record in a battle's history
type Action struct {
	ID        string     `json:"id"`
	Timestamp int64      `json:"timestamp"` // unix milliseconds
	Type      ActionType `json:"type"`
	Data      any        `json:"data"`
	Previous  *Snapshot  `json:"previousState,omitempty"`
}

// TurnSnapshot captures the turn pointer and round counter
type TurnSnapshot struct {
	CurrentTurn int `json:"currentTurn"`
	Round       int `json:"round"`
}

// ConfigSnapshot captures battle-level settings touched by an update
type ConfigSnapshot struct {
	Name             string `json:"name"`
	Mode             Mode   `json:"mode"`
	Map              *Map   `json:"map,omitempty"`
	SceneDescription string `json:"sceneDescription,omitempty"`
}

// Snapshot is the typed inverse patch for one mutation. Each non-nil group
// was captured by the mutation and is restored wholesale on undo; nil groups
// are untouched. Keeping the groups explicit (rather than a loose field bag)
// makes "the snapshot covers every field the mutation wrote" checkable per
// operation.
type Snapshot struct {
	// Roster is non-nil when the mutation touched the creature list; an
	// empty captured roster is an empty non-nil slice.
	Roster    []*Creature     `json:"creatures,omitempty"`
	Turn      *TurnSnapshot   `json:"turn,omitempty"`
	Map       *Map            `json:"map,omitempty"`
	Scene     *string         `json:"sceneDescription,omitempty"`
	Positions *string         `json:"creaturePositions,omitempty"`
	Config    *ConfigSnapshot `json:"config,omitempty"`
}

// RosterSnapshot builds a snapshot of the creature list
func RosterSnapshot(creatures []*Creature) *Snapshot {
	return &Snapshot{Roster: CloneRoster(creatures)}
}

// Restore merges the snapshot's captured groups back onto the battle
func (b *Battle) Restore(s *Snapshot) {
	if s == nil {
		return
	}
	if s.Roster != nil {
		b.Creatures = s.Roster
	}
	if s.Turn != nil {
		b.CurrentTurn = s.Turn.CurrentTurn
		b.Round = s.Turn.Round
	}
	if s.Map != nil {
		b.Map = s.Map
	}
	if s.Scene != nil {
		b.SceneDescription = *s.Scene
	}
	if s.Positions != nil {
		b.CreaturePositions = *s.Positions
	}
	if s.Config != nil {
		b.Name = s.Config.Name
		b.Mode = s.Config.Mode
		b.Map = s.Config.Map
		b.SceneDescription = s.Config.SceneDescription
	}
}

// PopAction removes and returns the most recent action, or nil when the
// history is empty. Once popped an action is gone; there is no redo.
func (b *Battle) PopAction() *Action {
	if len(b.History) == 0 {
		return nil
	}
	last := b.History[len(b.History)-1]
	b.History = b.History[:len(b.History)-1]
	return last
}

// Sequence issues monotonically increasing action ids. One sequence is shared
// across all battles in a process.
type Sequence struct {
	counter atomic.Int64
}

// Next returns the next action id
func (s *Sequence) Next() string {
	return strconv.FormatInt(s.counter.Add(1), 10)
}

// NewAction records a mutation with its input and inverse patch
func NewAction(seq *Sequence, actionType ActionType, data any, previous *Snapshot) *Action {
	return &Action{
		ID:        seq.Next(),
		Timestamp: time.Now().UnixMilli(),
		Type:      actionType,
		Data:      data,
		Previous:  previous,
	}
}
