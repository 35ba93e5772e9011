// Package grading classifies a learner's free-text answer against the
// expected answer. Grading never fails: any input, including empty
// strings, produces a well-formed Analysis.
package grading

import (
	"github.com/ArndGit/JonMem/internal/textnorm"
)

// Analysis is the transient result of grading one submission.
type Analysis struct {
	Correct      bool
	GivenNorm    string
	ExpectedNorm string
	// CaseOnly is set when the answer differs from the expected text
	// only in letter case.
	CaseOnly bool
	// LetterErrors is the edit distance between the letters of both
	// strings, ignoring case, accents, spacing, and punctuation.
	LetterErrors int
	// AccentErrors counts accent-only character differences.
	AccentErrors int
	// PunctErrors is the edit distance between the punctuation
	// sequences of both strings.
	PunctErrors int
	// MissingWord is set when the answer has fewer words than expected.
	MissingWord bool
}

// StrictMatch is the exam-mode grading contract: both strings must be
// identical after whitespace normalization. Case, accents, and
// punctuation all matter; there is no partial credit.
func StrictMatch(given, expected string) bool {
	return textnorm.NormalizeSpaces(given) == textnorm.NormalizeSpaces(expected)
}

// LenientMatch accepts answers within a small, length-dependent edit
// distance of the expected text after loose normalization. Short answers
// get no tolerance.
func LenientMatch(given, expected string) bool {
	g := textnorm.NormalizeLoose(given)
	e := textnorm.NormalizeLoose(expected)
	if g == "" || e == "" {
		return false
	}
	if g == e {
		return true
	}
	dist := Levenshtein(g, e)
	switch {
	case len([]rune(e)) <= 4:
		return false
	case len([]rune(e)) <= 7:
		return dist <= 1
	default:
		return dist <= 2
	}
}

// Analyze grades a submission for introduce/review mode, classifying how
// the answer misses: case, letters, accents, punctuation, missing words.
func Analyze(given, expected string) Analysis {
	a := Analysis{
		GivenNorm:    textnorm.NormalizeSpaces(given),
		ExpectedNorm: textnorm.NormalizeSpaces(expected),
	}
	if a.GivenNorm == "" || a.ExpectedNorm == "" {
		return a
	}

	a.Correct = a.GivenNorm == a.ExpectedNorm

	gf := textnorm.Fold(a.GivenNorm)
	ef := textnorm.Fold(a.ExpectedNorm)
	a.CaseOnly = gf == ef && !a.Correct

	a.LetterErrors = Levenshtein(
		textnorm.LettersOnly(textnorm.StripAccents(gf)),
		textnorm.LettersOnly(textnorm.StripAccents(ef)),
	)
	a.AccentErrors = accentErrors(gf, ef)
	a.PunctErrors = Levenshtein(
		textnorm.PunctuationOnly(a.GivenNorm),
		textnorm.PunctuationOnly(a.ExpectedNorm),
	)
	a.MissingWord = textnorm.WordCount(a.GivenNorm) < textnorm.WordCount(a.ExpectedNorm)
	return a
}

// accentErrors counts accent-only differences between the casefolded
// strings. When stripping accents makes them equal and the rune lengths
// match, each position with an accent-insensitive match but an
// accent-sensitive mismatch counts as one error. Otherwise it falls back
// to the edit distance between the accent-stripped given form and the
// expected form.
func accentErrors(gf, ef string) int {
	if gf == ef {
		return 0
	}
	gs := textnorm.StripAccents(gf)
	es := textnorm.StripAccents(ef)
	if gs != es {
		return 0
	}
	gr := []rune(gf)
	er := []rune(ef)
	if len(gr) == len(er) {
		count := 0
		for i := range gr {
			if gr[i] != er[i] && textnorm.StripAccents(string(gr[i])) == textnorm.StripAccents(string(er[i])) {
				count++
			}
		}
		return count
	}
	return Levenshtein(gs, ef)
}
