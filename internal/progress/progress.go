// Package progress tracks per-card, per-direction mastery stages. A
// stage is an integer in [1, MaxStage]; absence of an entry means the
// card was never introduced in that direction.
package progress

import (
	"time"

	"github.com/ArndGit/JonMem/internal/vocab"
)

// MaxStage is the highest mastery stage. Stage MaxStage leaves the
// active review rotation but can still decay on a wrong answer.
const MaxStage = 4

// Entry records the learner's state for one card in one direction.
type Entry struct {
	Stage      int    `yaml:"stage" json:"stage"`
	LastSeen   string `yaml:"last_seen,omitempty" json:"last_seen,omitempty"`
	LastResult bool   `yaml:"last_result" json:"last_result"`
}

// Store maps card id -> direction -> entry. The zero value is unusable;
// use NewStore.
type Store map[string]map[vocab.Direction]*Entry

// NewStore returns an empty progress store.
func NewStore() Store {
	return make(Store)
}

// Get returns the entry for (cardID, dir), or nil if never introduced.
func (s Store) Get(cardID string, dir vocab.Direction) *Entry {
	return s[cardID][dir]
}

// Seen reports whether the card has been introduced in dir.
func (s Store) Seen(cardID string, dir vocab.Direction) bool {
	return s.Get(cardID, dir) != nil
}

// Stage returns the current stage for (cardID, dir), defaulting to 1.
func (s Store) Stage(cardID string, dir vocab.Direction) int {
	if e := s.Get(cardID, dir); e != nil {
		return ClampStage(e.Stage)
	}
	return 1
}

// Apply runs the stage transition rule for one graded answer, creating
// the entry at stage 1 if the card was never seen in dir. Returns the
// stage before and after the transition.
func (s Store) Apply(cardID string, dir vocab.Direction, correct bool, now time.Time) (prev, next int) {
	byDir := s[cardID]
	if byDir == nil {
		byDir = make(map[vocab.Direction]*Entry)
		s[cardID] = byDir
	}
	e := byDir[dir]
	if e == nil {
		e = &Entry{Stage: 1}
		byDir[dir] = e
	}
	prev = ClampStage(e.Stage)
	next = NextStage(prev, correct)
	e.Stage = next
	e.LastSeen = now.Format("2006-01-02T15:04:05")
	e.LastResult = correct
	return prev, next
}

// Remove drops the entry for (cardID, dir), deleting the card's map when
// it becomes empty. Used for card deletion and the first-exposure
// rollback of interrupted introduce sessions.
func (s Store) Remove(cardID string, dir vocab.Direction) {
	byDir := s[cardID]
	if byDir == nil {
		return
	}
	delete(byDir, dir)
	if len(byDir) == 0 {
		delete(s, cardID)
	}
}

// RemoveCard drops all entries of a card, in both directions.
func (s Store) RemoveCard(cardID string) {
	delete(s, cardID)
}

// NextStage advances the stage on a correct answer and demotes it on a
// wrong one, clamped to [1, MaxStage].
func NextStage(stage int, correct bool) int {
	stage = ClampStage(stage)
	if correct {
		return min(MaxStage, stage+1)
	}
	return max(1, stage-1)
}

// ClampStage forces a stored stage into [1, MaxStage]. Values below 1
// (including zero from missing fields) clamp to 1.
func ClampStage(stage int) int {
	if stage < 1 {
		return 1
	}
	if stage > MaxStage {
		return MaxStage
	}
	return stage
}
