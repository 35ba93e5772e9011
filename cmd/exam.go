package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ArndGit/JonMem/internal/training"
	"github.com/ArndGit/JonMem/internal/vocab"
)

var examCmd = &cobra.Command{
	Use:   "exam <topic>",
	Short: "Take a strict exam over one topic",
	Long:  "Quizzes every card of a fully introduced topic exactly once. Grading is strict: case, accents, and punctuation all count. The result is a school grade from 1 to 6.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		dir, lang := sessionTarget(cmd, a)

		e, err := training.StartExam(a.Vocab, a.Progress, training.ExamOptions{
			Topic:     vocab.Slugify(args[0]),
			Direction: dir,
			Lang:      lang,
			Seconds:   a.Config.SessionSeconds,
		})
		if err != nil {
			if errors.Is(err, training.ErrEmptySelection) {
				fmt.Println("Das Thema ist noch nicht vollständig eingeführt.")
				return nil
			}
			return err
		}

		in := bufio.NewScanner(os.Stdin)
		fmt.Printf("Prüfung: %s (%d Karten)\n", e.TopicName, len(e.Items))
		last := time.Now()
		done := false
		for !done {
			item := e.Current()
			if item == nil {
				break
			}
			fmt.Printf("\n(%ds) %s: ", e.TimeLeft, item.Prompt)
			if !in.Scan() {
				break
			}
			if tickElapsed(e, &last) {
				fmt.Println("\nZeit ist um!")
				break
			}
			_, done = e.Submit(in.Text())
		}

		sum := e.End()
		a.RecordExam(sum.Log)
		if err := a.Save(); err != nil {
			return err
		}

		fmt.Printf("\n%d von %d richtig. Note: %d\n", sum.Correct, sum.Total, sum.Grade)
		if len(sum.Wrong) > 0 {
			fmt.Println("\nFehler:")
			for _, w := range sum.Wrong {
				fmt.Printf("  %s: %q statt %q\n", w.Prompt, w.Given, w.Correct)
			}
		}
		return nil
	},
}

func init() {
	examCmd.Flags().String("direction", "", "Training direction: forward or backward")
	examCmd.Flags().String("lang", "", "Target language (defaults to the active language)")
}
