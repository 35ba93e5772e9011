package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ArndGit/JonMem/internal/progress"
	"github.com/ArndGit/JonMem/internal/training"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		dir, lang := sessionTarget(cmd, a)

		// Stage distribution over the corpus.
		stages := make(map[int]int, progress.MaxStage)
		unseen := 0
		for _, c := range a.Vocab.Cards {
			if c.Lang != lang {
				continue
			}
			if !a.Progress.Seen(c.ID, dir) {
				unseen++
				continue
			}
			stages[a.Progress.Stage(c.ID, dir)]++
		}
		fmt.Println("Lernstand:")
		for stage := progress.MaxStage; stage >= 1; stage-- {
			fmt.Printf("  Stufe %d: %d Karten\n", stage, stages[stage])
		}
		fmt.Printf("  Neu:     %d Karten\n", unseen)

		counts := training.CountsByDay(a.TrainingLog)
		if len(counts) > 0 {
			days := make([]string, 0, len(counts))
			for day := range counts {
				days = append(days, day)
			}
			sort.Strings(days)
			fmt.Println("\nTrainings pro Tag:")
			for _, day := range days {
				c := counts[day]
				fmt.Printf("  %s: %d neu, %d Wiederholung\n", day, c.Introduce, c.Review)
			}
		}

		if len(a.ExamLog) > 0 {
			fmt.Println("\nPrüfungen:")
			for _, e := range a.ExamLog {
				fmt.Printf("  %s  %-20s Note %d (%d/%d)\n", e.Started, e.Topic, e.Grade, e.Correct, e.Total)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("direction", "", "Training direction: forward or backward")
	statsCmd.Flags().String("lang", "", "Target language")
}
