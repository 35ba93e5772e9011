package training

import (
	"math"
	"sort"
	"strings"

	"github.com/ArndGit/JonMem/internal/progress"
	"github.com/ArndGit/JonMem/internal/vocab"
)

// TopicProgress describes how far a topic's introduction has come in
// one direction.
type TopicProgress struct {
	ID      string
	Name    string
	Percent int
	Total   int
	Done    int
}

// IntroTopicProgress ranks the not-yet-complete topics of lang by
// completion percentage, lowest first. Fully introduced topics are
// excluded; introduce mode picks the first entry unless the caller
// overrides.
func IntroTopicProgress(v *vocab.Vocabulary, prog progress.Store, lang string, dir vocab.Direction) []TopicProgress {
	if lang == "" {
		return nil
	}
	names := make(map[string]string)
	for _, t := range v.TopicsForLang(lang) {
		names[t.ID] = t.Name
	}
	totals := make(map[string]int)
	done := make(map[string]int)
	for _, c := range v.Cards {
		if c.Lang != lang || c.Topic == "" {
			continue
		}
		totals[c.Topic]++
		if prog.Seen(c.ID, dir) {
			done[c.Topic]++
		}
	}

	var out []TopicProgress
	for topicID, total := range totals {
		percent := int(math.Round(float64(done[topicID]) / float64(total) * 100))
		if percent >= 100 {
			continue
		}
		name := names[topicID]
		if name == "" {
			name = topicID
		}
		out = append(out, TopicProgress{
			ID:      topicID,
			Name:    name,
			Percent: percent,
			Total:   total,
			Done:    done[topicID],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percent != out[j].Percent {
			return out[i].Percent < out[j].Percent
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// IsTopicComplete reports whether every card of the topic has a progress
// entry in dir. Empty topics are never complete.
func IsTopicComplete(v *vocab.Vocabulary, prog progress.Store, topicID, lang string, dir vocab.Direction) bool {
	if topicID == "" || lang == "" {
		return false
	}
	total, done := 0, 0
	for _, c := range v.Cards {
		if c.Lang != lang || c.Topic != topicID {
			continue
		}
		total++
		if prog.Seen(c.ID, dir) {
			done++
		}
	}
	return total > 0 && done >= total
}
