package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ArndGit/JonMem/internal/app"
	"github.com/ArndGit/JonMem/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "jonmem",
	Short: "Bilingual vocabulary trainer",
	Long:  "JonMem — timeboxed vocabulary card trainer with staged repetition, topic exams, and portable backups.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the data directory (overrides JONMEM_DATA_DIR env var)")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadApp resolves configuration (--data flag wins over env and config
// file) and loads the learner state.
func loadApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dir, _ := cmd.Flags().GetString("data"); dir != "" {
		cfg.DataDir = dir
	}
	return app.Load(cfg)
}
