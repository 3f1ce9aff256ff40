// Package names canonicalizes personal names for matching: order
// detection ("Last, First" vs "First Last"), honorific and suffix
// stripping, nickname resolution, and Soundex phonetic coding.
//
// The critical property is order independence: "John Smith" and
// "Smith, John" must produce the identical canonical form, since the
// same person routinely appears both ways across address-book exports.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	titleStart      = regexp.MustCompile(`(?i)^(dr|mr|mrs|ms|miss|prof|rev|hon|sir|dame)\.?\s+`)
	titleAfterComma = regexp.MustCompile(`(?i),\s*(dr|mr|mrs|ms|miss|prof|rev|hon|sir|dame)\.?\s+`)
	nameSuffix      = regexp.MustCompile(`(?i),?\s*\b(jr|sr|ii|iii|iv|v|phd|md|esq|cpa|dds|dvm)\.?\s*$`)
	namePunct       = regexp.MustCompile(`[^\w\s-]`)
)

// stripAccents folds Latin diacritics ("José" -> "Jose"). Non-Latin
// scripts pass through untouched; matching beyond Latin-alphabet
// heuristics is out of scope.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Parsed is the canonical decomposition of a display name. All fields
// are lowercase. Canonical is "first last" when both parts exist,
// whichever part exists otherwise, or empty.
type Parsed struct {
	First     string
	Last      string
	Canonical string
}

// Parse splits a free-text name into first/last/canonical parts
// regardless of input ordering:
//
//	Parse("John Smith")         -> {john, smith, "john smith"}
//	Parse("Smith, John")        -> {john, smith, "john smith"}
//	Parse("Dr. John Smith Jr.") -> {john, smith, "john smith"}
//	Parse("Otte, Mary Jane")    -> {mary, otte, "mary otte"}
//
// Middle names are dropped: the first token is the first name, the last
// token the last name. A single remaining token is a first name only.
func Parse(fullName string) Parsed {
	if fullName == "" {
		return Parsed{}
	}

	name := titleStart.ReplaceAllString(fullName, "")
	name = titleAfterComma.ReplaceAllString(name, ", ")
	name = nameSuffix.ReplaceAllString(name, "")
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return Parsed{}
	}

	var first, last string
	if comma := strings.Index(name, ","); comma >= 0 {
		// "Last, First [Middle...]": the comma marks reversed order.
		last = strings.TrimSpace(name[:comma])
		rest := strings.Fields(name[comma+1:])
		if len(rest) > 0 {
			first = rest[0]
		}
	} else {
		parts := strings.Fields(name)
		switch len(parts) {
		case 0:
			return Parsed{}
		case 1:
			first = parts[0]
		default:
			first = parts[0]
			last = parts[len(parts)-1]
		}
	}

	first = cleanToken(first)
	last = cleanToken(last)

	var canonical string
	switch {
	case first != "" && last != "":
		canonical = first + " " + last
	case first != "":
		canonical = first
	case last != "":
		canonical = last
	}

	return Parsed{First: first, Last: last, Canonical: canonical}
}

// cleanToken lowercases, folds accents, and strips punctuation other
// than word characters and hyphens.
func cleanToken(tok string) string {
	tok = strings.ToLower(strings.TrimSpace(tok))
	if folded, _, err := transform.String(stripAccents, tok); err == nil {
		tok = folded
	}
	return namePunct.ReplaceAllString(tok, "")
}

// CanonicalFirst resolves a parsed first name through the nickname
// table ("bob" -> "robert"). Empty input yields "".
func CanonicalFirst(first string) string {
	if first == "" {
		return ""
	}
	return ResolveNickname(first)
}

// FormatDisplay removes immediately-repeated case-insensitive words
// from a display name ("Mary Jane Jane Otte" -> "Mary Jane Otte").
// Presentation cleanup only; canonical matching never sees its output.
func FormatDisplay(name string) string {
	words := strings.Fields(name)
	if len(words) <= 1 {
		return name
	}

	out := make([]string, 1, len(words))
	out[0] = words[0]
	for _, w := range words[1:] {
		if !strings.EqualFold(w, out[len(out)-1]) {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}
