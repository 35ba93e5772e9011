package training

import (
	"errors"
	"testing"

	"github.com/ArndGit/JonMem/internal/progress"
	"github.com/ArndGit/JonMem/internal/vocab"
)

func smallConfig(maxItems, seconds int) Config {
	cfg := DefaultConfig()
	cfg.MaxItems = maxItems
	cfg.Seconds = seconds
	return cfg
}

// answerAll drives the session to completion with always-correct input.
func answerAll(t *testing.T, s *Session) {
	t.Helper()
	for {
		item := s.Current()
		if item == nil {
			break
		}
		fb := s.Submit(item.Answer)
		if fb == nil {
			t.Fatal("Submit returned nil for an active item")
		}
		if !fb.Correct {
			t.Fatalf("correct answer %q graded wrong", item.Answer)
		}
		newCard, done := s.Advance()
		if newCard != nil {
			s.Resume()
		}
		if done {
			break
		}
	}
}

func TestIntroduceSessionCompletesTopic(t *testing.T) {
	v := corpusWithTopic(t, "Tiere", 2)
	prog := progress.NewStore()

	s, err := Start(v, prog, StartOptions{
		Mode:      ModeIntroduce,
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Config:    smallConfig(4, 300),
		Rng:       testRng(),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	var introduced int
	for s.NextIntroCard() != nil {
		introduced++
	}
	if introduced != 2 {
		t.Errorf("intro queue size = %d, want 2", introduced)
	}

	answerAll(t, s)
	sum := s.End(false)

	if sum.Correct != sum.Total {
		t.Errorf("correct = %d, total = %d, want equal", sum.Correct, sum.Total)
	}
	if sum.TopicCompleted != "Tiere" {
		t.Errorf("TopicCompleted = %q, want %q", sum.TopicCompleted, "Tiere")
	}
	if len(sum.RolledBack) != 0 {
		t.Errorf("rolled back %v with time remaining", sum.RolledBack)
	}
	for _, c := range v.Cards {
		if got := prog.Stage(c.ID, vocab.FrontToBack); got != 3 {
			t.Errorf("card %s stage = %d after two correct answers, want 3", c.ID, got)
		}
	}
	if sum.Log.Mode != "introduce" || sum.Log.Items != 4 {
		t.Errorf("log = %+v, want introduce mode with 4 items", sum.Log)
	}
}

func TestIntroduceQueuesNewCardAfterFirstAdvance(t *testing.T) {
	v := corpusWithTopic(t, "Tiere", 3)
	prog := progress.NewStore()

	// MaxItems 2 with repeat 2 keeps one unique card; the other two
	// stay in reserve for mid-session queueing.
	s, err := Start(v, prog, StartOptions{
		Mode:      ModeIntroduce,
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Config:    smallConfig(2, 300),
		Rng:       testRng(),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(s.Items) != 2 {
		t.Fatalf("initial session length = %d, want 2", len(s.Items))
	}
	firstID := s.Items[0].CardID

	fb := s.Submit(s.Current().Answer)
	if fb.StageBefore != 1 || fb.StageAfter != 2 {
		t.Fatalf("transition = %d->%d, want 1->2", fb.StageBefore, fb.StageAfter)
	}
	if fb.NewCard == nil {
		t.Fatal("no new card queued after the first 1->2 advance")
	}
	if fb.NewCard.CardID == firstID {
		t.Error("queued card must differ from the in-session card")
	}
	if len(s.Items) != 3 {
		t.Errorf("session length after queueing = %d, want 3", len(s.Items))
	}

	newCard, done := s.Advance()
	if done {
		t.Fatal("session done too early")
	}
	if newCard == nil || newCard.CardID != fb.NewCard.CardID {
		t.Error("Advance must hand out the pending new card for presentation")
	}
}

func TestSecondChanceRetryDrivesTransition(t *testing.T) {
	v := vocab.New()
	if _, err := v.AddCard("en", "Tiere", "Haus", "house", "", ""); err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	prog := progress.NewStore()

	s, err := Start(v, prog, StartOptions{
		Mode:      ModeIntroduce,
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Config:    smallConfig(2, 300),
		Rng:       testRng(),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	fb := s.Submit("houze")
	if !fb.SecondChance {
		t.Fatal("near miss at stage 1 must grant a second chance")
	}
	if len(fb.Hints) == 0 {
		t.Error("second chance must come with hints")
	}
	if prog.Seen(fb.Item.CardID, vocab.FrontToBack) {
		t.Error("no stage transition may happen before the retry resolves")
	}

	s.Resume()
	fb = s.Submit("house")
	if !fb.Correct {
		t.Fatal("retry with the right answer graded wrong")
	}
	if fb.StageBefore != 1 || fb.StageAfter != 2 {
		t.Errorf("transition = %d->%d, want 1->2", fb.StageBefore, fb.StageAfter)
	}
}

func TestSecondChanceFailedRetryCountsWrong(t *testing.T) {
	v := vocab.New()
	if _, err := v.AddCard("en", "Tiere", "Haus", "house", "", ""); err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	prog := progress.NewStore()

	s, err := Start(v, prog, StartOptions{
		Mode:      ModeIntroduce,
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Config:    smallConfig(2, 300),
		Rng:       testRng(),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	fb := s.Submit("houze")
	if !fb.SecondChance {
		t.Fatal("expected a second chance")
	}
	s.Resume()
	fb = s.Submit("houze")
	if fb.SecondChance {
		t.Error("only one retry per item")
	}
	if fb.Correct {
		t.Error("failed retry graded correct")
	}
	if fb.StageBefore != 1 || fb.StageAfter != 1 {
		t.Errorf("transition = %d->%d, want 1->1", fb.StageBefore, fb.StageAfter)
	}
}

func TestExpiredIntroduceRollsBackFirstExposures(t *testing.T) {
	v := corpusWithTopic(t, "Tiere", 2)
	prog := progress.NewStore()

	s, err := Start(v, prog, StartOptions{
		Mode:      ModeIntroduce,
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Config:    smallConfig(4, 1),
		Rng:       testRng(),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// First card advances to stage 2, second stays at stage 1.
	first := s.Current()
	if fb := s.Submit(first.Answer); !fb.Correct {
		t.Fatalf("correct answer graded wrong")
	}
	s.Advance()
	second := s.Current()
	if second.CardID == first.CardID {
		t.Fatal("adjacency shuffle failed in test setup")
	}
	s.Submit("zzzzzzzzzzzz")
	s.Advance()

	if !s.Tick() {
		t.Fatal("one-second budget must expire after one tick")
	}
	sum := s.End(false)

	if len(sum.RolledBack) != 1 || sum.RolledBack[0] != second.CardID {
		t.Errorf("RolledBack = %v, want [%s]", sum.RolledBack, second.CardID)
	}
	if prog.Seen(second.CardID, vocab.FrontToBack) {
		t.Error("interrupted first exposure must not count as introduced")
	}
	if !prog.Seen(first.CardID, vocab.FrontToBack) {
		t.Error("advanced card must keep its progress")
	}
}

func TestCancelledSessionStillLogs(t *testing.T) {
	v := corpusWithTopic(t, "Tiere", 2)
	prog := progress.NewStore()

	s, err := Start(v, prog, StartOptions{
		Mode:      ModeIntroduce,
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Config:    smallConfig(4, 300),
		Rng:       testRng(),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Submit(s.Current().Answer)
	s.Advance()

	sum := s.End(true)
	if sum.Log.Started == "" {
		t.Error("cancelled session must still produce a log entry")
	}
	if sum.Log.Correct != 1 {
		t.Errorf("log correct = %d, want 1", sum.Log.Correct)
	}
	if len(sum.RolledBack) != 0 {
		t.Error("cancellation must not trigger the expiry rollback")
	}
	if s.Submit("anything") != nil {
		t.Error("submissions after End must be rejected")
	}
}

func TestTickIgnoredWhileFeedbackShown(t *testing.T) {
	v := corpusWithTopic(t, "Tiere", 2)
	prog := progress.NewStore()

	s, err := Start(v, prog, StartOptions{
		Mode:      ModeIntroduce,
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Config:    smallConfig(4, 10),
		Rng:       testRng(),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Submit(s.Current().Answer)
	before := s.TimeLeft
	for i := 0; i < 5; i++ {
		if s.Tick() {
			t.Fatal("paused timer must not expire")
		}
	}
	if s.TimeLeft != before {
		t.Errorf("TimeLeft = %d, want %d while paused", s.TimeLeft, before)
	}
}

func TestReviewSessionDirectionIsolation(t *testing.T) {
	v := corpusWithTopic(t, "Tiere", 4)
	prog := progress.NewStore()
	for _, c := range v.Cards {
		setStage(prog, c.ID, vocab.FrontToBack, 2)
	}

	if _, err := Start(v, prog, StartOptions{
		Mode:      ModeReview,
		Direction: vocab.BackToFront,
		Lang:      "en",
		Config:    DefaultConfig(),
		Rng:       testRng(),
	}); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("err = %v, want ErrEmptySelection for untrained direction", err)
	}

	s, err := Start(v, prog, StartOptions{
		Mode:      ModeReview,
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Config:    DefaultConfig(),
		Rng:       testRng(),
	})
	if err != nil {
		t.Fatalf("Start review: %v", err)
	}
	if len(s.Items) != 4 {
		t.Errorf("review items = %d, want 4", len(s.Items))
	}
}

func TestPyramidGroupsDistinctCardsByStage(t *testing.T) {
	v := corpusWithTopic(t, "Tiere", 4)
	prog := progress.NewStore()
	setStage(prog, v.Cards[0].ID, vocab.FrontToBack, 2)
	setStage(prog, v.Cards[1].ID, vocab.FrontToBack, 2)
	setStage(prog, v.Cards[2].ID, vocab.FrontToBack, 4)
	setStage(prog, v.Cards[3].ID, vocab.FrontToBack, 4)

	s, err := Start(v, prog, StartOptions{
		Mode:      ModeReview,
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Config:    DefaultConfig(),
		Rng:       testRng(),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	pyramid := s.Pyramid()
	if len(pyramid[2]) != 2 || len(pyramid[4]) != 2 {
		t.Errorf("pyramid = %v, want two cards each at stages 2 and 4", pyramid)
	}
}

func TestExamRequiresCompleteTopic(t *testing.T) {
	v := corpusWithTopic(t, "Tiere", 3)
	prog := progress.NewStore()

	if _, err := StartExam(v, prog, ExamOptions{
		Topic:     "tiere",
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Rng:       testRng(),
	}); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("err = %v, want ErrEmptySelection for incomplete topic", err)
	}
}

func TestExamGradesStrictlyWithoutProgressMutation(t *testing.T) {
	v := corpusWithTopic(t, "Tiere", 3)
	prog := progress.NewStore()
	for _, c := range v.Cards {
		setStage(prog, c.ID, vocab.FrontToBack, 3)
	}

	e, err := StartExam(v, prog, ExamOptions{
		Topic:     "tiere",
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Rng:       testRng(),
	})
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}
	if len(e.Items) != 3 {
		t.Fatalf("exam items = %d, want the whole topic", len(e.Items))
	}

	var done bool
	for i := 0; !done; i++ {
		item := e.Current()
		answer := item.Answer
		if i == 0 {
			answer = "wrong"
		}
		_, done = e.Submit(answer)
	}
	sum := e.End()

	if sum.Correct != 2 || sum.Total != 3 {
		t.Errorf("score = %d/%d, want 2/3", sum.Correct, sum.Total)
	}
	// 66.7% sits just under the 67% threshold for grade 3.
	if sum.Grade != 4 {
		t.Errorf("grade = %d, want 4", sum.Grade)
	}
	if len(sum.Wrong) != 1 || sum.Wrong[0].Given != "wrong" {
		t.Errorf("wrong list = %v, want the single miss", sum.Wrong)
	}
	if sum.Log.Topic != "Tiere" {
		t.Errorf("log topic = %q, want display name", sum.Log.Topic)
	}
	for _, c := range v.Cards {
		if got := prog.Stage(c.ID, vocab.FrontToBack); got != 3 {
			t.Errorf("card %s stage changed to %d, exams must not touch progress", c.ID, got)
		}
	}
}

func TestExamExpiryCountsUnansweredAgainstGrade(t *testing.T) {
	v := corpusWithTopic(t, "Tiere", 3)
	prog := progress.NewStore()
	for _, c := range v.Cards {
		setStage(prog, c.ID, vocab.FrontToBack, 2)
	}

	e, err := StartExam(v, prog, ExamOptions{
		Topic:     "tiere",
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Seconds:   1,
		Rng:       testRng(),
	})
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}

	if correct, done := e.Submit(e.Current().Answer); !correct || done {
		t.Fatalf("first answer: correct=%v done=%v, want correct and not done", correct, done)
	}
	if !e.Tick() {
		t.Fatal("one-second budget must expire after one tick")
	}
	sum := e.End()

	if sum.Total != 3 || sum.Correct != 1 {
		t.Errorf("score = %d/%d, want 1/3", sum.Correct, sum.Total)
	}
	// 33.3% clears only the 30% bar for grade 5; the two unanswered
	// items count against the grade.
	if sum.Grade != 5 {
		t.Errorf("grade = %d, want 5", sum.Grade)
	}
	if len(sum.Wrong) != 0 {
		t.Errorf("wrong list = %v, unanswered items are not recorded misses", sum.Wrong)
	}
	if e.Current() != nil {
		t.Error("no item may be active after End")
	}
	if e.Tick() {
		t.Error("ticks after End must be ignored")
	}
}

func TestExamCaseSensitive(t *testing.T) {
	v := vocab.New()
	if _, err := v.AddCard("en", "Tiere", "Hund", "dog", "", ""); err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	prog := progress.NewStore()
	setStage(prog, v.Cards[0].ID, vocab.FrontToBack, 2)

	e, err := StartExam(v, prog, ExamOptions{
		Topic:     "tiere",
		Direction: vocab.FrontToBack,
		Lang:      "en",
		Rng:       testRng(),
	})
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}
	if correct, _ := e.Submit("Dog"); correct {
		t.Error("exam grading must be case sensitive")
	}
}
