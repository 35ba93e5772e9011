package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ArndGit/JonMem/internal/training"
	"github.com/ArndGit/JonMem/internal/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage the card corpus",
}

var vocabListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics and cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		dir, lang := sessionTarget(cmd, a)
		topicFilter, _ := cmd.Flags().GetString("topic")

		for _, t := range a.Vocab.TopicsForLang(lang) {
			if topicFilter != "" && t.ID != vocab.Slugify(topicFilter) {
				continue
			}
			cards := a.Vocab.CardsForTopic(lang, t.ID)
			done := 0
			for _, c := range cards {
				if a.Progress.Seen(c.ID, dir) {
					done++
				}
			}
			fmt.Printf("%s (%s): %d Karten, %d eingeführt\n", t.Name, t.ID, len(cards), done)
			for _, c := range cards {
				marker := " "
				if a.Progress.Seen(c.ID, dir) {
					marker = fmt.Sprintf("%d", a.Progress.Stage(c.ID, dir))
				}
				fmt.Printf("  [%s] %-20s %s  =  %s\n", marker, c.ID, c.Front, c.Back)
			}
		}
		return nil
	},
}

var vocabAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a card",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		_, lang := sessionTarget(cmd, a)
		topic, _ := cmd.Flags().GetString("topic")
		front, _ := cmd.Flags().GetString("front")
		back, _ := cmd.Flags().GetString("back")
		hintF, _ := cmd.Flags().GetString("hint-forward")
		hintB, _ := cmd.Flags().GetString("hint-backward")

		card, err := a.Vocab.AddCard(lang, topic, front, back, hintF, hintB)
		if err != nil {
			return err
		}
		if err := a.Save(); err != nil {
			return err
		}
		fmt.Printf("Karte %s angelegt.\n", card.ID)
		return nil
	},
}

var vocabRemoveCmd = &cobra.Command{
	Use:   "remove <card-id>",
	Short: "Remove a card and its progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		if !a.DeleteCard(args[0]) {
			return fmt.Errorf("unknown card %q", args[0])
		}
		if err := a.Save(); err != nil {
			return err
		}
		fmt.Printf("Karte %s entfernt.\n", args[0])
		return nil
	},
}

var vocabNoteCmd = &cobra.Command{
	Use:   "note <card-id> <text>",
	Short: "Attach a mnemonic note to a card",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		if !a.Vocab.SetNote(args[0], args[1]) {
			c := a.Vocab.CardByID(args[0])
			if c == nil {
				return fmt.Errorf("unknown card %q", args[0])
			}
			return nil
		}
		return a.Save()
	},
}

var vocabEditCmd = &cobra.Command{
	Use:   "edit <card-id>",
	Short: "Rewrite the text or hints of a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		c := a.Vocab.CardByID(args[0])
		if c == nil {
			return fmt.Errorf("unknown card %q", args[0])
		}
		front, back := c.Front, c.Back
		hintF, hintB := c.HintForward, c.HintBackward
		if v, _ := cmd.Flags().GetString("front"); v != "" {
			front = v
		}
		if v, _ := cmd.Flags().GetString("back"); v != "" {
			back = v
		}
		if cmd.Flags().Changed("hint-forward") {
			hintF, _ = cmd.Flags().GetString("hint-forward")
		}
		if cmd.Flags().Changed("hint-backward") {
			hintB, _ = cmd.Flags().GetString("hint-backward")
		}
		a.Vocab.UpdateCard(args[0], front, back, hintF, hintB)
		if err := a.Save(); err != nil {
			return err
		}
		fmt.Printf("Karte %s aktualisiert.\n", args[0])
		return nil
	},
}

var vocabTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Show topics ranked by introduction progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		dir, lang := sessionTarget(cmd, a)

		ranked := training.IntroTopicProgress(a.Vocab, a.Progress, lang, dir)
		if len(ranked) == 0 {
			fmt.Println("Alle Themen sind vollständig eingeführt.")
			return nil
		}
		for _, t := range ranked {
			fmt.Printf("%3d%%  %s (%d/%d)\n", t.Percent, t.Name, t.Done, t.Total)
		}
		return nil
	},
}

func init() {
	vocabListCmd.Flags().String("topic", "", "Restrict the listing to one topic")
	vocabListCmd.Flags().String("direction", "", "Training direction: forward or backward")
	vocabListCmd.Flags().String("lang", "", "Target language")

	vocabAddCmd.Flags().String("topic", "", "Topic name (created if new)")
	vocabAddCmd.Flags().String("front", "", "Front text (native language)")
	vocabAddCmd.Flags().String("back", "", "Back text (target language)")
	vocabAddCmd.Flags().String("hint-forward", "", "Hint shown when prompting with the front")
	vocabAddCmd.Flags().String("hint-backward", "", "Hint shown when prompting with the back")
	vocabAddCmd.Flags().String("lang", "", "Target language")

	vocabEditCmd.Flags().String("front", "", "New front text")
	vocabEditCmd.Flags().String("back", "", "New back text")
	vocabEditCmd.Flags().String("hint-forward", "", "New forward hint")
	vocabEditCmd.Flags().String("hint-backward", "", "New backward hint")

	vocabTopicsCmd.Flags().String("direction", "", "Training direction: forward or backward")
	vocabTopicsCmd.Flags().String("lang", "", "Target language")

	vocabCmd.AddCommand(vocabListCmd)
	vocabCmd.AddCommand(vocabAddCmd)
	vocabCmd.AddCommand(vocabRemoveCmd)
	vocabCmd.AddCommand(vocabEditCmd)
	vocabCmd.AddCommand(vocabNoteCmd)
	vocabCmd.AddCommand(vocabTopicsCmd)
}
