package textnorm

import "testing"

func TestNormalizeSpaces(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"la maleta", "la maleta"},
		{"  la   maleta ", "la maleta"},
		{"ein\tWort\nnoch", "ein Wort noch"},
	}
	for _, tt := range tests {
		if got := NormalizeSpaces(tt.in); got != tt.want {
			t.Errorf("NormalizeSpaces(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLoose(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Haus!", "haus"},
		{"  What's  up? ", "whats up"},
		{"straße", "straße"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeLoose(tt.in); got != tt.want {
			t.Errorf("NormalizeLoose(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripAccents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"niño", "nino"},
		{"café", "cafe"},
		{"über", "uber"},
		{"nino", "nino"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripAccents(tt.in); got != tt.want {
			t.Errorf("StripAccents(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLettersOnly(t *testing.T) {
	if got := LettersOnly("l'été, 2x!"); got != "lété2x" {
		t.Errorf("LettersOnly = %q, want %q", got, "lété2x")
	}
}

func TestPunctuationOnly(t *testing.T) {
	if got := PunctuationOnly("What's up?"); got != "'?" {
		t.Errorf("PunctuationOnly = %q, want %q", got, "'?")
	}
}

func TestIsPunctuation(t *testing.T) {
	for _, r := range "'.,;!?¿¡" {
		if !IsPunctuation(r) {
			t.Errorf("IsPunctuation(%q) = false, want true", r)
		}
	}
	for _, r := range "aä9 " {
		if IsPunctuation(r) {
			t.Errorf("IsPunctuation(%q) = true, want false", r)
		}
	}
}

func TestFold(t *testing.T) {
	if Fold("Haus") != Fold("haus") {
		t.Error("expected casefolded forms to match")
	}
	if Fold("Maße") != Fold("MASSE") {
		t.Error("expected ß to fold against SS")
	}
}
