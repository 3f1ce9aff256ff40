package names

import "strings"

// soundexCode maps a letter to its Soundex digit, or 0 for vowels and
// the letters H/W/Y (which reset the previous-code state), per the
// standard historical table.
func soundexCode(c byte) byte {
	switch c {
	case 'B', 'F', 'P', 'V':
		return '1'
	case 'C', 'G', 'J', 'K', 'Q', 'S', 'X', 'Z':
		return '2'
	case 'D', 'T':
		return '3'
	case 'L':
		return '4'
	case 'M', 'N':
		return '5'
	case 'R':
		return '6'
	default:
		return '0'
	}
}

// Soundex returns the 4-character phonetic code for a word: the first
// letter verbatim followed by up to three digits for subsequent
// consonant groups, zero-padded. Consecutive letters with the same code
// collapse; vowels (and H/W/Y) reset the run so a repeated consonant
// across a vowel boundary encodes again. Empty or non-alphabetic input
// yields "".
//
//	Soundex("Smith") == Soundex("Smyth") == "S530"
func Soundex(word string) string {
	// Keep only ASCII letters, uppercased.
	var letters []byte
	for _, r := range strings.ToUpper(word) {
		if r >= 'A' && r <= 'Z' {
			letters = append(letters, byte(r))
		}
	}
	if len(letters) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte(letters[0])
	prev := soundexCode(letters[0])

	for _, c := range letters[1:] {
		code := soundexCode(c)
		if code == '0' {
			prev = '0'
			continue
		}
		if code != prev {
			b.WriteByte(code)
			prev = code
			if b.Len() == 4 {
				break
			}
		}
	}

	coded := b.String()
	for len(coded) < 4 {
		coded += "0"
	}
	return coded
}
