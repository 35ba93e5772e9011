package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ArndGit/JonMem/internal/app"
	"github.com/ArndGit/JonMem/internal/progress"
	"github.com/ArndGit/JonMem/internal/training"
	"github.com/ArndGit/JonMem/internal/vocab"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Run a training session",
	Long:  "Runs one timeboxed session: 'introduce' presents new cards of the least-complete topic, 'review' quizzes already-introduced cards weighted by stage.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}

		mode := training.ModeReview
		if introduce, _ := cmd.Flags().GetBool("new"); introduce {
			mode = training.ModeIntroduce
		}
		dir, lang := sessionTarget(cmd, a)
		topic, _ := cmd.Flags().GetString("topic")

		opts := training.StartOptions{
			Mode:       mode,
			Direction:  dir,
			Lang:       lang,
			IntroTopic: topic,
			Config:     a.SessionConfig(),
		}
		if mode == training.ModeReview {
			if topic != "" {
				opts.TopicFilterEnabled = true
				opts.TopicFilter = []string{vocab.Slugify(topic)}
			} else if enabled, topics := a.Settings.ReviewFilter(lang); enabled {
				opts.TopicFilterEnabled = true
				opts.TopicFilter = topics
			}
		}

		s, err := training.Start(a.Vocab, a.Progress, opts)
		if err != nil {
			if errors.Is(err, training.ErrEmptySelection) {
				fmt.Println("Nichts zu üben mit dieser Auswahl.")
				return nil
			}
			return err
		}

		sum := runSession(s)
		a.RecordTraining(sum.Log)
		if err := a.Save(); err != nil {
			return err
		}

		fmt.Printf("\n%d von %d richtig.\n", sum.Correct, sum.Total)
		if sum.TopicCompleted != "" {
			fmt.Printf("Thema %q ist jetzt vollständig eingeführt!\n", sum.TopicCompleted)
		}
		printPyramid(s)
		return nil
	},
}

func init() {
	trainCmd.Flags().Bool("new", false, "Introduce new cards instead of reviewing")
	trainCmd.Flags().String("topic", "", "Restrict the session to one topic")
	trainCmd.Flags().String("direction", "", "Training direction: forward or backward")
	trainCmd.Flags().String("lang", "", "Target language (defaults to the active language)")
}

// sessionTarget resolves direction and language from flags and settings.
func sessionTarget(cmd *cobra.Command, a *app.App) (vocab.Direction, string) {
	dir := vocab.Direction(a.Settings.Direction)
	switch d, _ := cmd.Flags().GetString("direction"); strings.ToLower(d) {
	case "forward":
		dir = vocab.FrontToBack
	case "backward":
		dir = vocab.BackToFront
	}
	if dir != vocab.FrontToBack && dir != vocab.BackToFront {
		dir = vocab.FrontToBack
	}
	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang = a.Settings.ActiveLang
	}
	if lang == "" {
		lang = a.Vocab.TargetLanguages()[0]
	}
	return dir, lang
}

// runSession drives the interactive answer loop on stdin. EOF cancels
// the session; an expired budget ends it.
func runSession(s *training.Session) training.Summary {
	in := bufio.NewScanner(os.Stdin)

	for card := s.NextIntroCard(); card != nil; card = s.NextIntroCard() {
		fmt.Printf("\nNeue Karte: %s  =  %s\n", card.Prompt, card.Answer)
		if card.Hint != "" {
			fmt.Printf("Tipp: %s\n", card.Hint)
		}
		fmt.Print("[Enter] weiter ")
		if !in.Scan() {
			return s.End(true)
		}
	}

	last := time.Now()
	for {
		item := s.Current()
		if item == nil {
			break
		}
		fmt.Printf("\n(%ds) %s: ", s.TimeLeft, item.Prompt)
		if !in.Scan() {
			return s.End(true)
		}
		if tickElapsed(s, &last) {
			fmt.Println("\nZeit ist um!")
			return s.End(false)
		}

		fb := s.Submit(in.Text())
		if fb.SecondChance {
			for _, h := range fb.Hints {
				fmt.Println(h)
			}
			fmt.Print("Noch ein Versuch: ")
			s.Resume()
			last = time.Now()
			continue
		}
		if fb.Correct {
			fmt.Println("Richtig!")
		} else {
			fmt.Printf("Leider falsch. Richtig wäre: %s\n", fb.Item.Answer)
		}
		if fb.NewCard != nil {
			fmt.Printf("Neue Karte: %s  =  %s\n", fb.NewCard.Prompt, fb.NewCard.Answer)
		}

		newCard, done := s.Advance()
		if newCard != nil {
			fmt.Printf("Neue Karte: %s  =  %s\n", newCard.Prompt, newCard.Answer)
			s.Resume()
		}
		last = time.Now()
		if done {
			break
		}
	}
	return s.End(false)
}

// countdown is the timer surface shared by the session and exam runners.
type countdown interface {
	Tick() bool
}

// tickElapsed feeds the wall-clock seconds since last into the session
// timer. Returns true when the budget expired.
func tickElapsed(s countdown, last *time.Time) bool {
	elapsed := int(time.Since(*last).Seconds())
	*last = time.Now()
	for i := 0; i < elapsed; i++ {
		if s.Tick() {
			return true
		}
	}
	return false
}

func printPyramid(s *training.Session) {
	pyramid := s.Pyramid()
	fmt.Println("\nLernpyramide:")
	for stage := progress.MaxStage; stage >= 1; stage-- {
		prompts := pyramid[stage]
		sort.Strings(prompts)
		fmt.Printf("  Stufe %d: %s\n", stage, strings.Join(prompts, ", "))
	}
}
