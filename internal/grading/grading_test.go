package grading

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"haus", "haut", 1},
		{"nino", "niño", 1},
	}
	for _, tt := range tests {
		if got := Levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStrictMatch(t *testing.T) {
	if !StrictMatch("la maleta", "la maleta") {
		t.Error("identical strings must match strictly")
	}
	if !StrictMatch("  la   maleta ", "la maleta") {
		t.Error("whitespace must be normalized before strict comparison")
	}
	if StrictMatch("La Maleta", "la maleta") {
		t.Error("case must matter in exam mode")
	}
	if StrictMatch("nino", "niño") {
		t.Error("accents must matter in exam mode")
	}
	if StrictMatch("", "la maleta") {
		t.Error("empty input must not match a non-empty answer")
	}
	// Pure normalized equality, no special casing of empty strings.
	if !StrictMatch("  ", "") {
		t.Error("whitespace-only input normalizes to the empty answer")
	}
}

func TestAnalyzeExact(t *testing.T) {
	a := Analyze("la maleta", "la  maleta")
	if !a.Correct || a.CaseOnly || a.LetterErrors != 0 || a.AccentErrors != 0 || a.PunctErrors != 0 || a.MissingWord {
		t.Errorf("unexpected analysis for exact match: %+v", a)
	}
}

func TestAnalyzeCaseOnly(t *testing.T) {
	a := Analyze("Haus", "haus")
	if a.Correct {
		t.Error("case mismatch must not be correct")
	}
	if !a.CaseOnly {
		t.Error("expected case-only mismatch")
	}
	if a.LetterErrors != 0 {
		t.Errorf("LetterErrors = %d, want 0", a.LetterErrors)
	}
}

func TestAnalyzeAccentError(t *testing.T) {
	a := Analyze("nino", "niño")
	if a.Correct {
		t.Error("accent mismatch must not be correct")
	}
	if a.AccentErrors < 1 {
		t.Errorf("AccentErrors = %d, want >= 1", a.AccentErrors)
	}
	if a.LetterErrors != 0 {
		t.Errorf("LetterErrors = %d, want 0 (accents are stripped first)", a.LetterErrors)
	}
}

func TestAnalyzeLetterErrors(t *testing.T) {
	a := Analyze("the sutcase", "the suitcase")
	if a.Correct {
		t.Error("expected incorrect")
	}
	if a.LetterErrors != 1 {
		t.Errorf("LetterErrors = %d, want 1", a.LetterErrors)
	}
}

func TestAnalyzePunctuation(t *testing.T) {
	a := Analyze("whats up", "what's up")
	if a.PunctErrors != 1 {
		t.Errorf("PunctErrors = %d, want 1", a.PunctErrors)
	}
	if a.LetterErrors != 0 {
		t.Errorf("LetterErrors = %d, want 0", a.LetterErrors)
	}
}

func TestAnalyzeMissingWord(t *testing.T) {
	a := Analyze("maleta", "la maleta")
	if !a.MissingWord {
		t.Error("expected missing word")
	}
	if Analyze("la maleta", "maleta").MissingWord {
		t.Error("extra words must not count as missing")
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	for _, pair := range [][2]string{{"", "haus"}, {"haus", ""}, {"", ""}} {
		a := Analyze(pair[0], pair[1])
		if a.Correct {
			t.Errorf("Analyze(%q, %q) reported correct", pair[0], pair[1])
		}
		if a.LetterErrors != 0 || a.AccentErrors != 0 || a.PunctErrors != 0 || a.MissingWord {
			t.Errorf("Analyze(%q, %q) must report zero error counts, got %+v", pair[0], pair[1], a)
		}
	}
}

func TestLenientMatch(t *testing.T) {
	tests := []struct {
		given, expected string
		want            bool
	}{
		{"haus", "Haus!", true},       // loose normalization
		{"haut", "haus", false},       // short answers get no tolerance
		{"bahnhof", "banhhof", false}, // transposition costs 2, over the <=1 budget at length 7
		{"", "haus", false},
	}
	for _, tt := range tests {
		if got := LenientMatch(tt.given, tt.expected); got != tt.want {
			t.Errorf("LenientMatch(%q, %q) = %v, want %v", tt.given, tt.expected, got, tt.want)
		}
	}
	if !LenientMatch("ein grosses haus", "ein großes haus") {
		t.Error("single letter slip in a long answer should pass leniently")
	}
}

func TestSecondChanceStageFour(t *testing.T) {
	a := Analyze("haus", "haut")
	if ok, _ := SecondChance(4, a, "haut"); ok {
		t.Error("stage 4 must never get a second chance")
	}
}

func TestSecondChanceThresholds(t *testing.T) {
	a := Analysis{GivenNorm: "x", ExpectedNorm: "y", LetterErrors: 3}
	if ok, _ := SecondChance(3, a, "y"); ok {
		t.Error("3 letter errors exceed the stage-3 threshold")
	}
	if ok, _ := SecondChance(2, a, "y"); !ok {
		t.Error("3 letter errors are within the stage-1/2 threshold")
	}
	a.LetterErrors = 5
	if ok, _ := SecondChance(1, a, "y"); ok {
		t.Error("5 letter errors exceed every threshold")
	}
}

func TestSecondChanceHints(t *testing.T) {
	a := Analyze("nino", "niño")
	ok, hints := SecondChance(2, a, "niño")
	if !ok {
		t.Fatal("expected second chance")
	}
	found := false
	for _, h := range hints {
		if h == "Achte auf die Tilde über dem n." {
			found = true
		}
	}
	if !found {
		t.Errorf("expected tilde hint, got %v", hints)
	}

	a = Analyze("Haus", "haus")
	_, hints = SecondChance(1, a, "haus")
	if len(hints) == 0 || hints[0] != "Achte auf Groß/Kleinschreibung." {
		t.Errorf("expected case hint first, got %v", hints)
	}
}

func TestSecondChanceMissingWordOnlyStageOne(t *testing.T) {
	a := Analyze("maleta", "la maleta")
	_, hints1 := SecondChance(1, a, "la maleta")
	hasMissing := func(hs []string) bool {
		for _, h := range hs {
			if h == "Hier fehlt noch ein Wort." {
				return true
			}
		}
		return false
	}
	if !hasMissing(hints1) {
		t.Errorf("stage 1 should hint at the missing word, got %v", hints1)
	}
	_, hints2 := SecondChance(2, a, "la maleta")
	if hasMissing(hints2) {
		t.Errorf("stage 2 should not hint at the missing word, got %v", hints2)
	}
}

func TestExamGrade(t *testing.T) {
	tests := []struct {
		correct, total int
		want           int
	}{
		{12, 12, 1}, // 100%
		{11, 12, 2}, // 91.7%, just under the 92% bar
		{10, 12, 2}, // 83%
		{8, 12, 3},  // 67%
		{6, 12, 4},  // 50%
		{4, 12, 5},  // 33%
		{2, 12, 6},  // 17%
		{0, 0, 6},
	}
	for _, tt := range tests {
		if got := ExamGrade(tt.correct, tt.total); got != tt.want {
			t.Errorf("ExamGrade(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}
