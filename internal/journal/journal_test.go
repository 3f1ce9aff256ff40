package journal

import (
	"path/filepath"
	"testing"

	"github.com/phyllis-tools/cardmerge/internal/contact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "review.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndLookup(t *testing.T) {
	j := openTemp(t)

	_, found, err := j.Lookup("abc")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, j.Record("abc", Approved, 95))
	d, found, err := j.Lookup("abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Approved, d)

	// Re-recording replaces.
	require.NoError(t, j.Record("abc", Rejected, 95))
	d, _, err = j.Lookup("abc")
	require.NoError(t, err)
	assert.Equal(t, Rejected, d)
}

func TestCounts(t *testing.T) {
	j := openTemp(t)
	require.NoError(t, j.Record("a", Approved, 90))
	require.NoError(t, j.Record("b", Approved, 80))
	require.NoError(t, j.Record("c", Rejected, 55))

	approved, rejected, err := j.Counts()
	require.NoError(t, err)
	assert.Equal(t, 2, approved)
	assert.Equal(t, 1, rejected)
}

func TestDecisionsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.db")
	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Record("abc", Approved, 90))
	require.NoError(t, j.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()

	d, found, err := j2.Lookup("abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Approved, d)
}

func TestFingerprintOrderIndependent(t *testing.T) {
	a := &contact.Contact{}
	a.SetDisplayName("John Smith")
	a.AddEmail("john@x.com")

	b := &contact.Contact{}
	b.SetDisplayName("Smith, John")
	b.AddPhone("650-555-1234")

	fp1 := Fingerprint([]*contact.Contact{a, b})
	fp2 := Fingerprint([]*contact.Contact{b, a})
	assert.Equal(t, fp1, fp2)
	assert.Len(t, fp1, 64)

	c := &contact.Contact{}
	c.SetDisplayName("Alice Wong")
	assert.NotEqual(t, fp1, Fingerprint([]*contact.Contact{a, c}))
}
