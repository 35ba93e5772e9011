package training

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ArndGit/JonMem/internal/grading"
	"github.com/ArndGit/JonMem/internal/progress"
	"github.com/ArndGit/JonMem/internal/vocab"
)

// StartOptions parameterize a training session.
type StartOptions struct {
	Mode               Mode
	Direction          vocab.Direction
	Lang               string
	TopicFilterEnabled bool
	TopicFilter        []string
	// IntroTopic overrides the automatic smallest-completion topic pick
	// in introduce mode.
	IntroTopic string
	Config     Config
	// Rng drives every shuffle; required so sessions are reproducible
	// under test.
	Rng *rand.Rand
}

// Session is the runtime state of one introduce or review session. It
// owns the item queue, the countdown, the second-chance state, and the
// progress mutations; the presentation layer only forwards answers and
// acknowledgements.
type Session struct {
	ID        string
	Mode      Mode
	Direction vocab.Direction
	Lang      string

	Items   []SessionItem
	Index   int
	Correct int

	// TimeLeft is the remaining wall-clock budget in seconds.
	TimeLeft int
	Started  time.Time

	vocab *vocab.Vocabulary
	prog  progress.Store
	cfg   Config
	rng   *rand.Rand

	// introQueue holds the unseen cards presented once before grading
	// starts; introduce mode only.
	introQueue          []SessionItem
	introTopic          string
	introCompleteBefore bool

	timerRunning       bool
	secondChanceCardID string
	pendingNew         *SessionItem
	finished           bool
}

// Feedback is what the runner reports back after a submission.
type Feedback struct {
	Item     SessionItem
	Analysis grading.Analysis
	Correct  bool
	// SecondChance is set when the learner gets one retry; no stage
	// transition has happened yet in that case.
	SecondChance bool
	Hints        []string
	StageBefore  int
	StageAfter   int
	// NewCard is the replacement card queued after a fresh 1->2
	// advance in introduce mode, deferred to the end of the queue.
	NewCard *SessionItem
}

// Summary is the result of a finished session.
type Summary struct {
	Total   int
	Correct int
	Log     LogEntry
	// TopicCompleted names the intro topic if this session made it
	// fully introduced.
	TopicCompleted string
	// RolledBack lists cards whose first exposure was revoked because
	// the time budget expired at stage 1.
	RolledBack []string
}

// Start builds the item queue for opts and returns a running session.
// Returns ErrEmptySelection when there is nothing to train.
func Start(v *vocab.Vocabulary, prog progress.Store, opts StartOptions) (*Session, error) {
	if opts.Rng == nil {
		opts.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Mode == ModeExam {
		return nil, fmt.Errorf("exam sessions use StartExam")
	}

	s := &Session{
		ID:           uuid.NewString(),
		Mode:         opts.Mode,
		Direction:    opts.Direction,
		Lang:         opts.Lang,
		TimeLeft:     opts.Config.Seconds,
		Started:      time.Now(),
		vocab:        v,
		prog:         prog,
		cfg:          opts.Config,
		rng:          opts.Rng,
		timerRunning: true,
	}

	if opts.Mode == ModeIntroduce {
		if err := s.startIntroduce(opts); err != nil {
			return nil, err
		}
		return s, nil
	}

	filter := make(map[string]bool, len(opts.TopicFilter))
	for _, id := range opts.TopicFilter {
		filter[id] = true
	}
	items, err := BuildSession(v.Cards, prog, BuildParams{
		Mode:               opts.Mode,
		Direction:          opts.Direction,
		Lang:               opts.Lang,
		TopicFilterEnabled: opts.TopicFilterEnabled,
		TopicFilter:        filter,
		Config:             opts.Config,
		Rng:                opts.Rng,
	})
	if err != nil {
		return nil, err
	}
	s.Items = items
	return s, nil
}

// startIntroduce picks the target topic, selects unseen cards, backfills
// from review when the topic runs short, and orders the queue.
func (s *Session) startIntroduce(opts StartOptions) error {
	topicID := opts.IntroTopic
	if topicID == "" {
		ranked := IntroTopicProgress(s.vocab, s.prog, s.Lang, s.Direction)
		if len(ranked) == 0 {
			return ErrEmptySelection
		}
		topicID = ranked[0].ID
	}
	s.introTopic = topicID
	s.introCompleteBefore = IsTopicComplete(s.vocab, s.prog, topicID, s.Lang, s.Direction)

	unseen := unseenCards(s.vocab, s.prog, s.Lang, s.Direction, topicID, nil)
	s.rng.Shuffle(len(unseen), func(i, j int) { unseen[i], unseen[j] = unseen[j], unseen[i] })

	limit := uniqueLimit(s.cfg.MaxItems, s.cfg.RepeatCount)
	if len(unseen) > limit {
		unseen = unseen[:limit]
	}
	uniques := make([]SessionItem, 0, limit)
	for i := range unseen {
		uniques = append(uniques, newItem(&unseen[i], s.prog, s.Direction))
	}

	if len(uniques) < limit {
		fill, err := BuildSession(s.vocab.Cards, s.prog, BuildParams{
			Mode:               ModeReview,
			Direction:          s.Direction,
			Lang:               s.Lang,
			TopicFilterEnabled: true,
			TopicFilter:        map[string]bool{topicID: true},
			Config: Config{
				MaxItems:     limit - len(uniques),
				RepeatCount:  s.cfg.RepeatCount,
				StageWeights: s.cfg.StageWeights,
			},
			Rng: s.rng,
		})
		if err == nil {
			uniques = append(uniques, fill...)
		}
	}
	if len(uniques) == 0 {
		return ErrEmptySelection
	}

	s.introQueue = append(s.introQueue, uniques...)
	s.Items = expandAndOrder(uniques, s.cfg, s.rng)
	return nil
}

// Current returns the item awaiting an answer, or nil when the session
// is over.
func (s *Session) Current() *SessionItem {
	if s.finished || s.Index >= len(s.Items) {
		return nil
	}
	return &s.Items[s.Index]
}

// NextIntroCard pops the next never-seen card to present before grading
// begins. Returns nil when the queue is empty; the first grading round
// starts then.
func (s *Session) NextIntroCard() *SessionItem {
	if len(s.introQueue) == 0 {
		return nil
	}
	item := s.introQueue[0]
	s.introQueue = s.introQueue[1:]
	return &item
}

// Submit grades the learner's answer for the current item. The timer is
// paused until the caller acknowledges the feedback via Advance (final
// result) or Resume (second chance). Returns nil when no item is active.
func (s *Session) Submit(text string) *Feedback {
	item := s.Current()
	if item == nil {
		return nil
	}
	analysis := grading.Analyze(text, item.Answer)
	s.timerRunning = false

	// A pending retry resolves now; the retry's outcome drives the
	// stage transition, not the original miss.
	if s.secondChanceCardID == item.CardID {
		s.secondChanceCardID = ""
		return s.finalize(item, analysis)
	}

	if analysis.Correct {
		return s.finalize(item, analysis)
	}

	if ok, hints := grading.SecondChance(item.Stage, analysis, item.Answer); ok {
		s.secondChanceCardID = item.CardID
		return &Feedback{
			Item:         *item,
			Analysis:     analysis,
			SecondChance: true,
			Hints:        hints,
		}
	}

	return s.finalize(item, analysis)
}

// finalize applies the stage transition and, on a fresh 1->2 advance in
// introduce mode, queues one more unseen card.
func (s *Session) finalize(item *SessionItem, analysis grading.Analysis) *Feedback {
	fb := &Feedback{
		Item:     *item,
		Analysis: analysis,
		Correct:  analysis.Correct,
	}
	if analysis.Correct {
		s.Correct++
	}
	fb.StageBefore, fb.StageAfter = s.prog.Apply(item.CardID, s.Direction, analysis.Correct, time.Now())
	if s.Mode == ModeIntroduce && fb.StageBefore == 1 && fb.StageAfter == 2 {
		fb.NewCard = s.queueNewCard()
	}
	return fb
}

// queueNewCard appends one previously unseen card (topic-scoped,
// excluding cards already in the session) to the end of the queue,
// keeping the number of first exposures roughly constant.
func (s *Session) queueNewCard() *SessionItem {
	exclude := make(map[string]bool, len(s.Items))
	for _, it := range s.Items {
		exclude[it.CardID] = true
	}
	unseen := unseenCards(s.vocab, s.prog, s.Lang, s.Direction, s.introTopic, exclude)
	if len(unseen) == 0 {
		return nil
	}
	item := newItem(&unseen[0], s.prog, s.Direction)
	s.Items = append(s.Items, item)
	s.pendingNew = &item
	return &item
}

// Advance acknowledges a final feedback: the session moves to the next
// item and the timer resumes. When a freshly queued card is pending, it
// is returned so the caller can present it first (the timer stays
// paused until Resume). done reports that the queue is exhausted; the
// caller ends the session then.
func (s *Session) Advance() (newCard *SessionItem, done bool) {
	if s.finished {
		return nil, true
	}
	s.Index++
	if s.Index >= len(s.Items) {
		return nil, true
	}
	if s.pendingNew != nil {
		pending := s.pendingNew
		s.pendingNew = nil
		return pending, false
	}
	s.timerRunning = true
	return nil, false
}

// Resume restarts the timer after a second-chance hint or a new-card
// presentation.
func (s *Session) Resume() {
	if !s.finished {
		s.timerRunning = true
	}
}

// Tick consumes one second of the budget. Returns true when the budget
// is exhausted; the caller must End the session then. Ticks are ignored
// while the timer is paused on feedback.
func (s *Session) Tick() bool {
	if s.finished || !s.timerRunning {
		return false
	}
	s.TimeLeft--
	return s.TimeLeft <= 0
}

// Finished reports whether End has run.
func (s *Session) Finished() bool {
	return s.finished
}

// End finalizes the session and returns its summary. When the time
// budget expired during an introduce session, cards still at stage 1
// lose their progress entry for this direction: an interrupted first
// exposure does not count as introduced. Cancellation skips the
// in-flight item's grading but still logs the session.
func (s *Session) End(cancelled bool) Summary {
	s.finished = true
	s.timerRunning = false

	sum := Summary{
		Total:   len(s.Items),
		Correct: s.Correct,
		Log: LogEntry{
			Started:   s.Started.Format(timeLayout),
			Items:     len(s.Items),
			Correct:   s.Correct,
			Mode:      string(s.Mode),
			Direction: string(s.Direction),
		},
	}

	if s.Mode == ModeIntroduce && !cancelled && s.TimeLeft <= 0 {
		seen := make(map[string]bool)
		for _, it := range s.Items {
			if it.CardID == "" || seen[it.CardID] {
				continue
			}
			seen[it.CardID] = true
			if e := s.prog.Get(it.CardID, s.Direction); e != nil && progress.ClampStage(e.Stage) == 1 {
				s.prog.Remove(it.CardID, s.Direction)
				sum.RolledBack = append(sum.RolledBack, it.CardID)
			}
		}
	}

	if s.Mode == ModeIntroduce && s.introTopic != "" && !s.introCompleteBefore {
		if IsTopicComplete(s.vocab, s.prog, s.introTopic, s.Lang, s.Direction) {
			sum.TopicCompleted = s.vocab.TopicName(s.introTopic, s.Lang)
		}
	}
	return sum
}

// Pyramid groups the session's distinct cards by their current stage,
// prompt texts per stage. Read-only; used for the session overview.
func (s *Session) Pyramid() map[int][]string {
	stages := make(map[int][]string, progress.MaxStage)
	seen := make(map[string]bool)
	for _, it := range s.Items {
		if it.CardID == "" || seen[it.CardID] {
			continue
		}
		seen[it.CardID] = true
		stage := s.prog.Stage(it.CardID, s.Direction)
		stages[stage] = append(stages[stage], it.Prompt)
	}
	return stages
}
