package merge

import (
	"testing"

	"github.com/phyllis-tools/cardmerge/internal/contact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	pool := []*contact.Contact{
		mk("John Smith", "a.vcf", func(c *contact.Contact) { c.AddEmail("j@x.com") }),
		mk("Alice Wong", "a.vcf", nil),
		mk("Smith, John", "b.vcf", func(c *contact.Contact) { c.AddEmail("js@x.com") }),
	}

	out, err := Apply(pool, [][]int{{2, 0}})
	require.NoError(t, err)
	require.Len(t, out, 2)

	// Merged record takes the first member's position.
	assert.ElementsMatch(t, []string{"j@x.com", "js@x.com"}, out[0].Emails)
	assert.Equal(t, "a.vcf, b.vcf", out[0].Source)
	assert.Equal(t, "Alice Wong", out[1].DisplayName)
}

func TestApplyNoGroups(t *testing.T) {
	pool := []*contact.Contact{mk("John Smith", "", nil)}
	out, err := Apply(pool, nil)
	require.NoError(t, err)
	assert.Equal(t, pool, out)
}

func TestApplyRejectsBadGroups(t *testing.T) {
	pool := []*contact.Contact{
		mk("A B", "", nil), mk("C D", "", nil), mk("E F", "", nil),
	}

	_, err := Apply(pool, [][]int{{0}})
	assert.Error(t, err)

	_, err = Apply(pool, [][]int{{0, 5}})
	assert.Error(t, err)

	_, err = Apply(pool, [][]int{{0, 1}, {1, 2}})
	assert.Error(t, err)
}
