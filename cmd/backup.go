package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the whole learner state to a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		path, err := a.ExportBackup(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Backup geschrieben: %s\n", path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Replace the learner state with a backup file",
	Long:  "Validates the backup, shows what it contains, and replaces the current state after confirmation. The previous state is snapshotted first and can be restored with 'jonmem rollback'.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		scan, err := a.ImportBackup(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Backup vom %s:\n", scan.Created)
		fmt.Printf("  %d Karten in %d Themen\n", scan.Cards, scan.Topics)
		fmt.Printf("  %d Lernstände, %d Trainings, %d Prüfungen\n",
			scan.ProgressEntries, scan.TrainingSessions, scan.Exams)

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Print("Aktuellen Stand ersetzen? [j/N] ")
			in := bufio.NewScanner(os.Stdin)
			if !in.Scan() || !strings.EqualFold(strings.TrimSpace(in.Text()), "j") {
				a.CancelImport()
				fmt.Println("Abgebrochen.")
				return nil
			}
		}
		if err := a.ConfirmImport(); err != nil {
			return err
		}
		fmt.Println("Import abgeschlossen.")
		return nil
	},
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Restore the state from before the last import",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		snap, err := a.RollbackLastImport()
		if err != nil {
			return err
		}
		fmt.Printf("Stand aus %s wiederhergestellt.\n", snap)
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
