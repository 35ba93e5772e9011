package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ArndGit/JonMem/internal/vocab"
)

var settingsCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the active language, direction, or review filter",
}

var setLangCmd = &cobra.Command{
	Use:   "lang <code>",
	Short: "Set the active target language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		lang := strings.TrimSpace(args[0])
		a.Settings.ActiveLang = lang
		a.Vocab.EnsureTargetLanguage(lang)
		if err := a.Save(); err != nil {
			return err
		}
		fmt.Printf("Aktive Sprache: %s\n", lang)
		return nil
	},
}

var setDirectionCmd = &cobra.Command{
	Use:   "direction <forward|backward>",
	Short: "Set the default training direction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		switch strings.ToLower(args[0]) {
		case "forward":
			a.Settings.Direction = string(vocab.FrontToBack)
		case "backward":
			a.Settings.Direction = string(vocab.BackToFront)
		default:
			return fmt.Errorf("direction must be forward or backward, got %q", args[0])
		}
		if err := a.Save(); err != nil {
			return err
		}
		fmt.Printf("Richtung: %s\n", a.Settings.Direction)
		return nil
	},
}

var setFilterCmd = &cobra.Command{
	Use:   "filter [topic...]",
	Short: "Restrict review sessions to the given topics",
	Long:  "Stores the review topic selection for the active language. Without arguments the filter is disabled and reviews draw from every topic.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		_, lang := sessionTarget(cmd, a)

		if len(args) == 0 {
			a.Settings.SetReviewFilter(lang, false, nil)
			if err := a.Save(); err != nil {
				return err
			}
			fmt.Println("Themenfilter deaktiviert.")
			return nil
		}

		topics := make([]string, 0, len(args))
		for _, name := range args {
			topics = append(topics, vocab.Slugify(name))
		}
		a.Settings.SetReviewFilter(lang, true, topics)
		if err := a.Save(); err != nil {
			return err
		}
		fmt.Printf("Wiederholung beschränkt auf: %s\n", strings.Join(topics, ", "))
		return nil
	},
}

func init() {
	setFilterCmd.Flags().String("lang", "", "Target language (defaults to the active language)")

	settingsCmd.AddCommand(setLangCmd)
	settingsCmd.AddCommand(setDirectionCmd)
	settingsCmd.AddCommand(setFilterCmd)
}
