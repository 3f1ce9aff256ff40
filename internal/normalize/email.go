// Package normalize canonicalizes email addresses and phone numbers so
// that cosmetically different values compare equal. All functions are
// total: malformed input normalizes to a best-effort or empty string,
// never an error.
package normalize

import "strings"

// domainAliases maps secondary provider domains to the canonical domain
// the provider treats as identical.
var domainAliases = map[string]string{
	"googlemail.com": "gmail.com",
}

// dotInsensitiveDomains are providers that ignore dots in the local
// part (j.doe@ and jdoe@ deliver to the same mailbox).
var dotInsensitiveDomains = map[string]bool{
	"gmail.com": true,
}

// genericDomains is the fixed allow-list of consumer email providers.
// A domain outside this set is presumed company-specific, which matters
// for merge warnings (two different work domains is suspicious; two
// different free-mail domains is not). Deliberately US/English-market
// centric; see the locale note in DESIGN.md.
var genericDomains = map[string]bool{
	"gmail.com": true, "googlemail.com": true, "yahoo.com": true, "yahoo.co.uk": true,
	"hotmail.com": true, "outlook.com": true, "live.com": true, "msn.com": true,
	"icloud.com": true, "me.com": true, "mac.com": true,
	"aol.com": true, "protonmail.com": true, "proton.me": true,
	"mail.com": true, "email.com": true, "inbox.com": true,
	"ymail.com": true, "rocketmail.com": true,
	"comcast.net": true, "verizon.net": true, "att.net": true, "sbcglobal.net": true,
	"earthlink.net": true, "cox.net": true, "charter.net": true,
}

// Email canonicalizes an address for comparison: lowercase, provider
// alias domains rewritten, plus-addressing stripped, and dots removed
// from the local part for dot-insensitive providers.
//
//	Email("John.Doe+work@googlemail.com") == "johndoe@gmail.com"
//
// Input without an "@" is returned lowercased as-is.
func Email(email string) string {
	if email == "" {
		return ""
	}
	lower := strings.ToLower(email)
	at := strings.LastIndex(lower, "@")
	if at < 0 {
		return lower
	}
	local, domain := lower[:at], lower[at+1:]

	if canonical, ok := domainAliases[domain]; ok {
		domain = canonical
	}
	if plus := strings.Index(local, "+"); plus >= 0 {
		local = local[:plus]
	}
	if dotInsensitiveDomains[domain] {
		local = strings.ReplaceAll(local, ".", "")
	}
	return local + "@" + domain
}

// EmailDomain extracts the lowercased domain, or "" for input without
// an "@".
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// IsGenericDomain reports whether the domain belongs to a generic
// consumer provider rather than a specific company. Used only by
// warning heuristics, never by matching.
func IsGenericDomain(domain string) bool {
	return genericDomains[strings.ToLower(domain)]
}

// AddGenericDomains extends the consumer-provider allow-list from
// configuration. Call before any warning detection starts.
func AddGenericDomains(domains []string) {
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			genericDomains[d] = true
		}
	}
}
