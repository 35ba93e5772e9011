package grading

import (
	"fmt"
	"strings"
)

// Second-chance thresholds: stage 4 never retries, stage 3 tolerates two
// letter errors, stages 1-2 tolerate four.
const (
	secondChanceMaxLettersHigh = 2
	secondChanceMaxLettersLow  = 4
)

// SecondChance decides whether a wrong answer is close enough to grant
// one retry, and returns the hint lines shown to the learner. The hints
// name the error class (case, letters, accents, punctuation, missing
// word) without revealing the answer.
func SecondChance(stage int, a Analysis, expected string) (bool, []string) {
	if stage >= 4 {
		return false, nil
	}
	if a.GivenNorm == "" || a.ExpectedNorm == "" {
		return false, nil
	}
	maxLetters := secondChanceMaxLettersLow
	if stage == 3 {
		maxLetters = secondChanceMaxLettersHigh
	}
	if a.LetterErrors > maxLetters {
		return false, nil
	}

	var hints []string
	if stage == 3 {
		switch {
		case a.CaseOnly:
			hints = append(hints, "Achte auf Groß/Kleinschreibung.")
		case a.LetterErrors > 0:
			hints = append(hints, "guck noch mal genau")
		default:
			hints = append(hints, "Irgendwas stimmt noch nicht.")
		}
		return true, hints
	}

	if a.CaseOnly {
		hints = append(hints, "Achte auf Groß/Kleinschreibung.")
	} else if a.LetterErrors > 0 {
		hints = append(hints, "guck noch mal genau")
	}

	if a.AccentErrors > 0 {
		if strings.ContainsAny(expected, "ñÑ") {
			hints = append(hints, "Achte auf die Tilde über dem n.")
		} else {
			hints = append(hints, "Achte auf die Akzente.")
		}
	}

	if a.PunctErrors > 0 {
		if strings.ContainsAny(expected, "'’´") {
			hints = append(hints, "Achte auf das Apostroph.")
		} else {
			hints = append(hints, "Achte auf die Satzzeichen.")
		}
	}

	if stage == 1 && a.MissingWord {
		hints = append(hints, "Hier fehlt noch ein Wort.")
	}

	if a.LetterErrors > 0 && (a.AccentErrors > 0 || a.PunctErrors > 0) {
		total := a.LetterErrors + a.AccentErrors + a.PunctErrors
		hints = append(hints, fmt.Sprintf("Es gibt noch weitere Fehler (insgesamt %d).", total))
	}

	return true, hints
}
