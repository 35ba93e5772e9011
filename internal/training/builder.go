// Package training builds and runs study sessions over the card corpus:
// item selection and ordering per mode, answer handling with the
// second-chance retry policy, countdown timing, and session logging.
package training

import (
	"errors"
	"math/rand"

	"github.com/ArndGit/JonMem/internal/progress"
	"github.com/ArndGit/JonMem/internal/vocab"
)

// Mode selects the session strategy.
type Mode string

const (
	ModeIntroduce Mode = "introduce"
	ModeReview    Mode = "review"
	ModeExam      Mode = "exam"
)

// ErrEmptySelection signals that a session build yielded zero items:
// nothing to do, not a failure.
var ErrEmptySelection = errors.New("no cards match the session selection")

// SessionItem is one scheduled exposure of a card. Derived per session
// from a card and its progress snapshot; never persisted.
type SessionItem struct {
	CardID string
	Prompt string
	Answer string
	Hint   string
	// Stage is the card's stage at selection time.
	Stage int
	Topic string
	Lang  string
}

// Config holds the session-shaping knobs.
type Config struct {
	// MaxItems is the target session length.
	MaxItems int
	// Seconds is the wall-clock session budget.
	Seconds int
	// RepeatCount is how often each card repeats in an introduce session.
	RepeatCount int
	// StageWeights maps stage -> draw weight for review composition.
	StageWeights map[int]int
}

// DefaultConfig mirrors the stock session shape: ten items in five
// minutes, two exposures per new card, pyramid weights 4/3/2/1.
func DefaultConfig() Config {
	return Config{
		MaxItems:     10,
		Seconds:      300,
		RepeatCount:  2,
		StageWeights: map[int]int{1: 4, 2: 3, 3: 2, 4: 1},
	}
}

// BuildParams parameterizes a single session build.
type BuildParams struct {
	Mode               Mode
	Direction          vocab.Direction
	Lang               string
	TopicFilterEnabled bool
	TopicFilter        map[string]bool
	Config             Config
	Rng                *rand.Rand
}

// BuildSession produces the ordered item list for one session. Returns
// ErrEmptySelection when no card qualifies.
func BuildSession(cards []vocab.Card, prog progress.Store, p BuildParams) ([]SessionItem, error) {
	items := candidateItems(cards, prog, p)

	var session []SessionItem
	switch p.Mode {
	case ModeIntroduce:
		session = buildIntroduce(items, p)
	case ModeReview:
		session = buildReview(items, p)
	default:
		// Exam: single pass over the whole selection, shuffled once.
		p.Rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		session = items
	}
	if len(session) == 0 {
		return nil, ErrEmptySelection
	}
	return session, nil
}

// candidateItems filters the corpus by language, mode, and topic and
// snapshots each qualifying card into a SessionItem.
func candidateItems(cards []vocab.Card, prog progress.Store, p BuildParams) []SessionItem {
	var items []SessionItem
	for i := range cards {
		c := &cards[i]
		if c.ID == "" || c.Lang != p.Lang {
			continue
		}
		seen := prog.Seen(c.ID, p.Direction)
		if p.Mode == ModeIntroduce && seen {
			continue
		}
		if p.Mode == ModeReview && !seen {
			continue
		}
		if p.TopicFilterEnabled && p.Mode != ModeIntroduce && !p.TopicFilter[c.Topic] {
			continue
		}
		items = append(items, newItem(c, prog, p.Direction))
	}
	return items
}

func newItem(c *vocab.Card, prog progress.Store, dir vocab.Direction) SessionItem {
	return SessionItem{
		CardID: c.ID,
		Prompt: c.Prompt(dir),
		Answer: c.Answer(dir),
		Hint:   c.Hint(dir),
		Stage:  prog.Stage(c.ID, dir),
		Topic:  c.Topic,
		Lang:   c.Lang,
	}
}

// buildIntroduce shuffles the unseen candidates, keeps
// ceil(maxItems/repeatCount) unique cards, duplicates each repeatCount
// times, and orders the result avoiding adjacent repeats.
func buildIntroduce(items []SessionItem, p BuildParams) []SessionItem {
	rng := p.Rng
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	limit := uniqueLimit(p.Config.MaxItems, p.Config.RepeatCount)
	if len(items) > limit {
		items = items[:limit]
	}
	return expandAndOrder(items, p.Config, rng)
}

// expandAndOrder duplicates each unique item repeatCount times, shuffles
// with the adjacency constraint, and truncates to the session target.
func expandAndOrder(uniques []SessionItem, cfg Config, rng *rand.Rand) []SessionItem {
	repeat := cfg.RepeatCount
	if repeat < 1 {
		repeat = 1
	}
	session := make([]SessionItem, 0, len(uniques)*repeat)
	for r := 0; r < repeat; r++ {
		session = append(session, uniques...)
	}
	session = ShuffleAvoidAdjacent(session, rng, defaultShuffleAttempts)
	if len(session) > cfg.MaxItems {
		session = session[:cfg.MaxItems]
	}
	return session
}

// uniqueLimit is the number of distinct cards an introduce session
// holds: ceil(maxItems/repeatCount), at least one.
func uniqueLimit(maxItems, repeatCount int) int {
	if repeatCount < 1 {
		repeatCount = 1
	}
	limit := (maxItems + repeatCount - 1) / repeatCount
	if limit < 1 {
		limit = 1
	}
	return limit
}

// buildReview partitions the candidates into per-stage pools and draws
// from them in a weighted round-robin: lower stages are drawn more
// often, no card appears twice. Only composition is weighted; the final
// shuffle randomizes presentation order.
func buildReview(items []SessionItem, p BuildParams) []SessionItem {
	rng := p.Rng

	pools := make(map[int][]SessionItem, progress.MaxStage)
	for _, it := range items {
		stage := progress.ClampStage(it.Stage)
		pools[stage] = append(pools[stage], it)
	}
	for stage := range pools {
		pool := pools[stage]
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	}

	var pattern []int
	for stage := 1; stage <= progress.MaxStage; stage++ {
		weight := p.Config.StageWeights[stage]
		if weight < 1 {
			weight = 1
		}
		for w := 0; w < weight; w++ {
			pattern = append(pattern, stage)
		}
	}

	var session []SessionItem
	for len(session) < p.Config.MaxItems {
		addedAny := false
		for _, stage := range pattern {
			if len(session) >= p.Config.MaxItems {
				break
			}
			pool := pools[stage]
			if len(pool) == 0 {
				continue
			}
			session = append(session, pool[len(pool)-1])
			pools[stage] = pool[:len(pool)-1]
			addedAny = true
		}
		if !addedAny {
			break
		}
	}

	rng.Shuffle(len(session), func(i, j int) { session[i], session[j] = session[j], session[i] })
	return session
}

// unseenCards lists cards never introduced in dir for lang, optionally
// scoped to one topic and excluding given ids, in corpus order.
func unseenCards(v *vocab.Vocabulary, prog progress.Store, lang string, dir vocab.Direction, topicID string, exclude map[string]bool) []vocab.Card {
	var out []vocab.Card
	for _, c := range v.Cards {
		if c.ID == "" || c.Lang != lang {
			continue
		}
		if prog.Seen(c.ID, dir) {
			continue
		}
		if topicID != "" && c.Topic != topicID {
			continue
		}
		if exclude[c.ID] {
			continue
		}
		out = append(out, c)
	}
	return out
}
