// Package vocab holds the bilingual card corpus: cards, topics, and the
// metadata describing which target languages are in use. The corpus is a
// single-owner in-memory structure; persistence happens at the backup
// layer.
package vocab

import (
	"fmt"
	"strings"
	"unicode"
)

// Direction selects which side of a card is the prompt and which is the
// expected answer.
type Direction string

const (
	// FrontToBack prompts with the front text and expects the back text.
	FrontToBack Direction = "front_to_back"
	// BackToFront prompts with the back text and expects the front text.
	BackToFront Direction = "back_to_front"
)

// Directions lists both training directions in canonical order.
var Directions = []Direction{FrontToBack, BackToFront}

// DefaultTopicName is used when a card is added without a topic.
const DefaultTopicName = "Allgemein"

// Card is a single vocabulary entry. Everything except the hint fields
// and the note is immutable once created.
type Card struct {
	ID           string `yaml:"id" json:"id"`
	Lang         string `yaml:"lang" json:"lang"`
	Topic        string `yaml:"topic" json:"topic"`
	Front        string `yaml:"front" json:"front"`
	Back         string `yaml:"back" json:"back"`
	HintForward  string `yaml:"hint_forward,omitempty" json:"hint_forward,omitempty"`
	HintBackward string `yaml:"hint_backward,omitempty" json:"hint_backward,omitempty"`
	Note         string `yaml:"note,omitempty" json:"note,omitempty"`
}

// Prompt returns the side of the card shown to the learner.
func (c *Card) Prompt(dir Direction) string {
	if dir == BackToFront {
		return c.Back
	}
	return c.Front
}

// Answer returns the side of the card the learner must produce.
func (c *Card) Answer(dir Direction) string {
	if dir == BackToFront {
		return c.Front
	}
	return c.Back
}

// Hint returns the directional hint for dir.
func (c *Card) Hint(dir Direction) string {
	if dir == BackToFront {
		return strings.TrimSpace(c.HintBackward)
	}
	return strings.TrimSpace(c.HintForward)
}

// SetHint rewrites the directional hint for dir, trimming whitespace.
func (c *Card) SetHint(dir Direction, text string) {
	if dir == BackToFront {
		c.HintBackward = strings.TrimSpace(text)
		return
	}
	c.HintForward = strings.TrimSpace(text)
}

// Topic groups cards within one target language.
type Topic struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Lang string `yaml:"lang" json:"lang"`
}

// Meta carries corpus-level metadata.
type Meta struct {
	TargetLangs []string `yaml:"target_langs,omitempty" json:"target_langs,omitempty"`
}

// Vocabulary is the whole corpus: metadata, topics, and cards.
type Vocabulary struct {
	Meta   Meta    `yaml:"meta" json:"meta"`
	Topics []Topic `yaml:"topics" json:"topics"`
	Cards  []Card  `yaml:"cards" json:"cards"`
}

// New returns an empty corpus with non-nil collections.
func New() *Vocabulary {
	return &Vocabulary{Topics: []Topic{}, Cards: []Card{}}
}

// TargetLanguages returns the registered target languages, defaulting to
// "en" when none are registered yet.
func (v *Vocabulary) TargetLanguages() []string {
	if len(v.Meta.TargetLangs) == 0 {
		return []string{"en"}
	}
	return v.Meta.TargetLangs
}

// EnsureTargetLanguage registers lang in the corpus metadata.
func (v *Vocabulary) EnsureTargetLanguage(lang string) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return
	}
	for _, l := range v.Meta.TargetLangs {
		if l == lang {
			return
		}
	}
	v.Meta.TargetLangs = append(v.Meta.TargetLangs, lang)
}

// EnsureTopic returns the topic id for name within lang, creating the
// topic if it does not exist. Empty names fall back to the default topic.
func (v *Vocabulary) EnsureTopic(lang, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTopicName
	}
	id := Slugify(name)
	for _, t := range v.Topics {
		if t.ID == id && t.Lang == lang {
			return id
		}
	}
	v.Topics = append(v.Topics, Topic{ID: id, Name: name, Lang: lang})
	return id
}

// TopicName resolves a topic id to its display name, falling back to the
// id itself when unknown.
func (v *Vocabulary) TopicName(topicID, lang string) string {
	if topicID == "" {
		return ""
	}
	for _, t := range v.Topics {
		if t.ID != topicID {
			continue
		}
		if lang != "" && t.Lang != lang {
			continue
		}
		if t.Name != "" {
			return t.Name
		}
		return topicID
	}
	return topicID
}

// TopicsForLang returns the topics belonging to lang.
func (v *Vocabulary) TopicsForLang(lang string) []Topic {
	var out []Topic
	for _, t := range v.Topics {
		if t.Lang == lang {
			out = append(out, t)
		}
	}
	return out
}

// CardsForTopic returns the cards of one topic within lang.
func (v *Vocabulary) CardsForTopic(lang, topicID string) []Card {
	var out []Card
	for _, c := range v.Cards {
		if c.Topic == topicID && c.Lang == lang {
			out = append(out, c)
		}
	}
	return out
}

// CardByID returns a pointer into the corpus, or nil if unknown.
func (v *Vocabulary) CardByID(id string) *Card {
	if id == "" {
		return nil
	}
	for i := range v.Cards {
		if v.Cards[i].ID == id {
			return &v.Cards[i]
		}
	}
	return nil
}

// AddCard creates a card under the given topic name, ensuring the topic
// and target language exist. The card id encodes topic, per-topic index,
// and language.
func (v *Vocabulary) AddCard(lang, topicName, front, back, hintForward, hintBackward string) (*Card, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return nil, fmt.Errorf("add card: language must be set")
	}
	if strings.TrimSpace(front) == "" || strings.TrimSpace(back) == "" {
		return nil, fmt.Errorf("add card: front and back must be set")
	}
	topicID := v.EnsureTopic(lang, topicName)
	idx := len(v.CardsForTopic(lang, topicID)) + 1
	card := Card{
		ID:           fmt.Sprintf("%s_%03d_%s", topicID, idx, lang),
		Lang:         lang,
		Topic:        topicID,
		Front:        front,
		Back:         back,
		HintForward:  hintForward,
		HintBackward: hintBackward,
	}
	v.Cards = append(v.Cards, card)
	v.EnsureTargetLanguage(lang)
	return &v.Cards[len(v.Cards)-1], nil
}

// UpdateCard rewrites the text and hint fields of an existing card.
func (v *Vocabulary) UpdateCard(id, front, back, hintForward, hintBackward string) bool {
	c := v.CardByID(id)
	if c == nil {
		return false
	}
	c.Front = front
	c.Back = back
	c.HintForward = hintForward
	c.HintBackward = hintBackward
	return true
}

// DeleteCard removes a card from the corpus. The caller is responsible
// for dropping its progress entries as well.
func (v *Vocabulary) DeleteCard(id string) bool {
	for i := range v.Cards {
		if v.Cards[i].ID == id {
			v.Cards = append(v.Cards[:i], v.Cards[i+1:]...)
			return true
		}
	}
	return false
}

// SetNote stores a learner-entered mnemonic on the card, trimmed.
// Reports whether the note changed.
func (v *Vocabulary) SetNote(id, text string) bool {
	c := v.CardByID(id)
	if c == nil {
		return false
	}
	cleaned := strings.TrimSpace(text)
	if c.Note == cleaned {
		return false
	}
	c.Note = cleaned
	return true
}

// Slugify derives a topic id from a display name: lowercase
// alphanumerics, with spaces, hyphens and underscores mapped to "_".
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "topic"
	}
	return slug
}
