// Package textnorm provides the string comparison primitives used by the
// answer grader. All functions are pure and total: any input, including
// the empty string, yields a well-defined result.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes to NFD, drops combining marks, and recomposes.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSpaces trims the string and collapses internal whitespace runs
// to single spaces.
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeLoose lowercases, strips everything that is neither
// alphanumeric nor a space, and collapses whitespace. Used for lenient
// (non-exam) comparisons.
func NormalizeLoose(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return NormalizeSpaces(b.String())
}

// StripAccents removes combining marks so that accent-only differences
// can be isolated ("niño" -> "nino").
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// Fold casefolds the string for case-insensitive comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// LettersOnly keeps only alphanumeric characters. Used to compute pure
// letter edit distance independent of spacing and punctuation.
func LettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PunctuationOnly keeps only punctuation characters, in order.
func PunctuationOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if IsPunctuation(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPunctuation reports whether r belongs to a Unicode punctuation category.
func IsPunctuation(r rune) bool {
	return unicode.IsPunct(r)
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
