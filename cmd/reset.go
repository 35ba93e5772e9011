package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ArndGit/JonMem/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all learning progress",
	Long:  "Clears every stage entry and both logs. The card corpus stays untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Print("Wirklich den gesamten Lernstand löschen? [j/N] ")
			in := bufio.NewScanner(os.Stdin)
			if !in.Scan() || !strings.EqualFold(strings.TrimSpace(in.Text()), "j") {
				fmt.Println("Abgebrochen.")
				return nil
			}
		}

		a.Progress = progress.NewStore()
		a.TrainingLog = nil
		a.ExamLog = nil
		if err := a.Save(); err != nil {
			return err
		}
		fmt.Println("Lernstand zurückgesetzt.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
