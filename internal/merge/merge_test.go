package merge

import (
	"testing"

	"github.com/phyllis-tools/cardmerge/internal/contact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mk(name, source string, fill func(*contact.Contact)) *contact.Contact {
	c := &contact.Contact{Source: source}
	c.SetDisplayName(name)
	if fill != nil {
		fill(c)
	}
	return c
}

func TestMergeZeroRecordsFails(t *testing.T) {
	_, err := Merge(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero records")
}

func TestMergeDisplayNameSelection(t *testing.T) {
	a := mk("John Smith", "a.vcf", nil)
	b := mk("John Michael Smith", "b.vcf", nil)
	c := mk("J. Smith", "c.vcf", nil)

	merged, err := Merge([]*contact.Contact{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, "John Michael Smith", merged.DisplayName)

	// Tie on word count: longer raw string wins.
	d := mk("Jon Smith", "", nil)
	e := mk("John Smith", "", nil)
	merged, err = Merge([]*contact.Contact{d, e})
	require.NoError(t, err)
	assert.Equal(t, "John Smith", merged.DisplayName)
}

func TestMergeDuplicateWordCleanup(t *testing.T) {
	a := mk("Mary Jane Jane Otte", "", nil)
	merged, err := Merge([]*contact.Contact{a})
	require.NoError(t, err)
	assert.Equal(t, "Mary Jane Otte", merged.DisplayName)
}

func TestMergeEmailCaseInsensitiveDedup(t *testing.T) {
	a := mk("John Smith", "", func(c *contact.Contact) {
		c.AddEmail("a@x.com")
	})
	b := mk("John Smith", "", func(c *contact.Contact) {
		c.AddEmail("A@X.com")
		c.AddEmail("b@x.com")
	})

	merged, err := Merge([]*contact.Contact{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, merged.Emails)
}

func TestMergePhoneNormalizedDedup(t *testing.T) {
	a := mk("John Smith", "", func(c *contact.Contact) {
		c.AddPhone("(650) 555-1234")
	})
	b := mk("John Smith", "", func(c *contact.Contact) {
		c.AddPhone("+1 650 555 1234") // same number, different format
		c.AddPhone("408-555-9999")
	})

	merged, err := Merge([]*contact.Contact{a, b})
	require.NoError(t, err)
	// Original formatting of the first occurrence is preserved.
	assert.Equal(t, []string{"(650) 555-1234", "408-555-9999"}, merged.Phones)
}

func TestMergeSingleValuedFirstNonEmpty(t *testing.T) {
	a := mk("John Smith", "", func(c *contact.Contact) {
		c.Title = "Engineer"
	})
	b := mk("John Smith", "", func(c *contact.Contact) {
		c.Org = "Acme"
		c.Title = "Manager"
		c.Birthday = "1980-01-01"
		c.URL = "https://example.com"
	})

	merged, err := Merge([]*contact.Contact{a, b})
	require.NoError(t, err)
	assert.Equal(t, "Acme", merged.Org)
	assert.Equal(t, "Engineer", merged.Title) // first non-empty wins
	assert.Equal(t, "1980-01-01", merged.Birthday)
	assert.Equal(t, "https://example.com", merged.URL)
}

func TestMergeProvenance(t *testing.T) {
	a := mk("John Smith", "phone.vcf", nil)
	b := mk("John Smith", "gmail.vcf", nil)
	c := mk("John Smith", "phone.vcf", nil)

	merged, err := Merge([]*contact.Contact{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, "gmail.vcf, phone.vcf", merged.Source)
}

func TestMergeAssociativeFieldUnions(t *testing.T) {
	build := func() []*contact.Contact {
		return []*contact.Contact{
			mk("John Smith", "1", func(c *contact.Contact) {
				c.AddEmail("a@x.com")
				c.AddNote("note a")
			}),
			mk("John Smith", "2", func(c *contact.Contact) {
				c.AddEmail("b@x.com")
				c.AddAddress("1 Main St")
			}),
			mk("John Smith", "3", func(c *contact.Contact) {
				c.AddEmail("a@x.com")
				c.AddNote("note c")
			}),
		}
	}

	// {A,B,C} flat vs merge(merge(A,B),C): same field sets.
	flat, err := Merge(build())
	require.NoError(t, err)

	recs := build()
	ab, err := Merge(recs[:2])
	require.NoError(t, err)
	nested, err := Merge([]*contact.Contact{ab, recs[2]})
	require.NoError(t, err)

	assert.ElementsMatch(t, flat.Emails, nested.Emails)
	assert.ElementsMatch(t, flat.Notes, nested.Notes)
	assert.ElementsMatch(t, flat.Addresses, nested.Addresses)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	a := mk("John Smith", "a.vcf", func(c *contact.Contact) {
		c.AddEmail("a@x.com")
	})
	b := mk("John Smith", "b.vcf", func(c *contact.Contact) {
		c.AddEmail("b@x.com")
	})

	_, err := Merge([]*contact.Contact{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com"}, a.Emails)
	assert.Equal(t, "a.vcf", a.Source)
}
