package names

import "testing"

func TestSoundex(t *testing.T) {
	tests := []struct {
		word, want string
	}{
		{"Smith", "S530"},
		{"Smyth", "S530"},
		{"Robert", "R163"},
		{"Rupert", "R163"},
		{"Ashcraft", "A226"}, // h resets, so s and c both encode
		{"Tymczak", "T522"},
		{"Pfister", "P236"},
		{"Jackson", "J250"},
		{"A", "A000"},
		{"Lee", "L000"},
		{"", ""},
		{"123", ""},
		{"!!", ""},
		{"o'brien", "O165"},
	}
	for _, tt := range tests {
		if got := Soundex(tt.word); got != tt.want {
			t.Errorf("Soundex(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestSoundexVowelReset(t *testing.T) {
	// A consonant repeated across a vowel boundary encodes twice.
	if got := Soundex("Sosa"); got != "S200" {
		t.Errorf("Soundex(Sosa) = %q, want S200", got)
	}
	if got := Soundex("Ss"); got != "S000" {
		t.Errorf("Soundex(Ss) = %q, want S000", got)
	}
}
