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

// ExamOptions parameterize an exam over one topic.
type ExamOptions struct {
	Topic     string
	Direction vocab.Direction
	Lang      string
	// Seconds is the exam time budget; zero falls back to the default
	// session budget.
	Seconds int
	Rng     *rand.Rand
}

// ExamSession runs a strict single-pass quiz over a fully introduced
// topic. Exams never touch the progress store; the outcome is a school
// grade and a wrong-answer list for review.
type ExamSession struct {
	ID        string
	Topic     string
	TopicName string
	Direction vocab.Direction
	Lang      string

	Items   []SessionItem
	Index   int
	Correct int
	Wrong   []WrongAnswer

	TimeLeft int
	Started  time.Time

	timerRunning bool
	finished     bool
}

// ExamSummary is the result of a finished exam.
type ExamSummary struct {
	Total   int
	Correct int
	Grade   int
	Wrong   []WrongAnswer
	Log     ExamLogEntry
}

// StartExam builds an exam over every card of the topic, shuffled once.
// Topics that are not fully introduced in the chosen direction cannot
// be examined.
func StartExam(v *vocab.Vocabulary, prog progress.Store, opts ExamOptions) (*ExamSession, error) {
	if opts.Rng == nil {
		opts.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Topic == "" {
		return nil, fmt.Errorf("exam requires a topic")
	}
	if !IsTopicComplete(v, prog, opts.Topic, opts.Lang, opts.Direction) {
		return nil, ErrEmptySelection
	}

	var items []SessionItem
	for i := range v.Cards {
		c := &v.Cards[i]
		if c.Lang != opts.Lang || c.Topic != opts.Topic {
			continue
		}
		items = append(items, newItem(c, prog, opts.Direction))
	}
	if len(items) == 0 {
		return nil, ErrEmptySelection
	}
	opts.Rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	seconds := opts.Seconds
	if seconds <= 0 {
		seconds = DefaultConfig().Seconds
	}
	return &ExamSession{
		ID:           uuid.NewString(),
		Topic:        opts.Topic,
		TopicName:    v.TopicName(opts.Topic, opts.Lang),
		Direction:    opts.Direction,
		Lang:         opts.Lang,
		Items:        items,
		TimeLeft:     seconds,
		Started:      time.Now(),
		timerRunning: true,
	}, nil
}

// Current returns the item awaiting an answer, or nil when the exam is
// over.
func (e *ExamSession) Current() *SessionItem {
	if e.finished || e.Index >= len(e.Items) {
		return nil
	}
	return &e.Items[e.Index]
}

// Submit grades the answer strictly. Every miss is recorded with the
// prompt, the given text, and the expected answer. No second chance,
// no progress mutation. done reports that this was the last item.
func (e *ExamSession) Submit(text string) (correct bool, done bool) {
	item := e.Current()
	if item == nil {
		return false, true
	}
	correct = grading.StrictMatch(text, item.Answer)
	if correct {
		e.Correct++
	} else {
		e.Wrong = append(e.Wrong, WrongAnswer{
			Prompt:  item.Prompt,
			Given:   text,
			Correct: item.Answer,
		})
	}
	e.Index++
	return correct, e.Index >= len(e.Items)
}

// Tick consumes one second of the budget; true means the exam is out of
// time and must be ended.
func (e *ExamSession) Tick() bool {
	if e.finished || !e.timerRunning {
		return false
	}
	e.TimeLeft--
	return e.TimeLeft <= 0
}

// End finalizes the exam. Unanswered items count as wrong against the
// grade; the grade always covers the full topic.
func (e *ExamSession) End() ExamSummary {
	e.finished = true
	e.timerRunning = false

	total := len(e.Items)
	grade := grading.ExamGrade(e.Correct, total)
	return ExamSummary{
		Total:   total,
		Correct: e.Correct,
		Grade:   grade,
		Wrong:   e.Wrong,
		Log: ExamLogEntry{
			Started:   e.Started.Format(timeLayout),
			Topic:     e.TopicName,
			Direction: string(e.Direction),
			Total:     total,
			Correct:   e.Correct,
			Grade:     grade,
			Wrong:     e.Wrong,
		},
	}
}
