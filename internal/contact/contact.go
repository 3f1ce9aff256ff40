// Package contact defines the normalized, cached view of one
// address-book entry that every matching component consumes.
package contact

import (
	"strings"

	"github.com/phyllis-tools/cardmerge/internal/names"
	"github.com/phyllis-tools/cardmerge/internal/normalize"
)

// Contact is one address-book entry. Raw fields are stored verbatim;
// derived values (parsed name, normalized emails/phones) are computed
// lazily and cached. Mutate raw fields only through the Add*/Set*
// methods so the caches invalidate; a stale cache is never observable
// after a raw-field mutation.
type Contact struct {
	// DisplayName is the free-text formatted name (vCard FN).
	DisplayName string
	// NameParts holds the structured name components (vCard N,
	// semicolon-delimited), kept verbatim.
	NameParts []string

	Emails    []string
	Phones    []string
	Addresses []string
	Notes     []string

	Org      string
	Title    string
	Birthday string
	URL      string

	// Source identifies the originating file or batch. Reporting
	// only; matching never reads it.
	Source string

	parsedName *names.Parsed
	normEmails []string
	normPhones []string
	cacheValid bool
}

// invalidate drops all derived caches. Called by every raw-field
// mutation.
func (c *Contact) invalidate() {
	c.parsedName = nil
	c.normEmails = nil
	c.normPhones = nil
	c.cacheValid = false
}

// SetDisplayName replaces the formatted name and invalidates caches.
func (c *Contact) SetDisplayName(fn string) {
	c.DisplayName = fn
	c.invalidate()
}

// AddEmail appends an email unless an equal address (case-insensitive)
// is already present.
func (c *Contact) AddEmail(email string) {
	if email == "" {
		return
	}
	for _, e := range c.Emails {
		if strings.EqualFold(e, email) {
			return
		}
	}
	c.Emails = append(c.Emails, email)
	c.invalidate()
}

// AddPhone appends a phone number unless the exact string is present.
func (c *Contact) AddPhone(phone string) {
	if phone == "" || contains(c.Phones, phone) {
		return
	}
	c.Phones = append(c.Phones, phone)
	c.invalidate()
}

// AddAddress appends a postal address unless the exact string is present.
func (c *Contact) AddAddress(addr string) {
	if addr == "" || contains(c.Addresses, addr) {
		return
	}
	c.Addresses = append(c.Addresses, addr)
}

// AddNote appends a note unless the exact string is present.
func (c *Contact) AddNote(note string) {
	if note == "" || contains(c.Notes, note) {
		return
	}
	c.Notes = append(c.Notes, note)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ensure recomputes the derived caches from the current raw fields.
// Deterministic: the same raw fields always produce the same caches.
func (c *Contact) ensure() {
	if c.cacheValid {
		return
	}
	parsed := names.Parse(c.DisplayName)
	c.parsedName = &parsed

	c.normEmails = make([]string, len(c.Emails))
	for i, e := range c.Emails {
		c.normEmails[i] = normalize.Email(e)
	}
	c.normPhones = make([]string, len(c.Phones))
	for i, p := range c.Phones {
		c.normPhones[i] = normalize.Phone(p)
	}
	c.cacheValid = true
}

// ParsedName returns the cached (first, last, canonical) name tuple.
func (c *Contact) ParsedName() names.Parsed {
	c.ensure()
	return *c.parsedName
}

// CanonicalName returns the lowercase order-independent "first last"
// form used as the primary exact-match key.
func (c *Contact) CanonicalName() string {
	return c.ParsedName().Canonical
}

// NormalizedEmails returns cached normalized forms of all emails,
// index-aligned with Emails.
func (c *Contact) NormalizedEmails() []string {
	c.ensure()
	return c.normEmails
}

// NormalizedPhones returns cached normalized forms of all phones,
// index-aligned with Phones.
func (c *Contact) NormalizedPhones() []string {
	c.ensure()
	return c.normPhones
}

// BestDisplayName returns the formatted name with accidental repeated
// words removed, or "Unnamed Contact" when no name exists.
func (c *Contact) BestDisplayName() string {
	if c.DisplayName == "" {
		return "Unnamed Contact"
	}
	return names.FormatDisplay(c.DisplayName)
}

// Empty reports whether the record carries nothing usable for
// matching: no name, no email, no phone.
func (c *Contact) Empty() bool {
	return c.DisplayName == "" && len(c.Emails) == 0 && len(c.Phones) == 0
}

// Clone returns a deep copy. Merge previews edit the copy, never the
// original records.
func (c *Contact) Clone() *Contact {
	dup := &Contact{
		DisplayName: c.DisplayName,
		NameParts:   append([]string(nil), c.NameParts...),
		Emails:      append([]string(nil), c.Emails...),
		Phones:      append([]string(nil), c.Phones...),
		Addresses:   append([]string(nil), c.Addresses...),
		Notes:       append([]string(nil), c.Notes...),
		Org:         c.Org,
		Title:       c.Title,
		Birthday:    c.Birthday,
		URL:         c.URL,
		Source:      c.Source,
	}
	return dup
}
