package review

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyllis-tools/cardmerge/internal/cluster"
	"github.com/phyllis-tools/cardmerge/internal/contact"
	"github.com/phyllis-tools/cardmerge/internal/journal"
)

type scriptedReader struct {
	lines []string
	pos   int
}

func (s *scriptedReader) Readline() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

func (s *scriptedReader) Close() error { return nil }

func testPool(t *testing.T) ([]*contact.Contact, []cluster.Group) {
	t.Helper()

	a := &contact.Contact{Source: "a.vcf"}
	a.SetDisplayName("John Smith")
	a.AddEmail("john@example.com")

	b := &contact.Contact{Source: "b.vcf"}
	b.SetDisplayName("Smith, John")
	b.AddEmail("john@example.com")

	c := &contact.Contact{Source: "a.vcf"}
	c.SetDisplayName("Jane Doe")
	c.AddPhone("(650) 555-1234")

	d := &contact.Contact{Source: "c.vcf"}
	d.SetDisplayName("Jane Doe")
	d.AddPhone("650-555-1234")

	groups := []cluster.Group{
		{Indices: []int{0, 1}, Confidence: 100, MatchFactors: []string{"Exact name match"}},
		{Indices: []int{2, 3}, Confidence: 90, MatchFactors: []string{"Phone exact match (10 digits)"}},
	}
	return []*contact.Contact{a, b, c, d}, groups
}

func TestRunApproveAndReject(t *testing.T) {
	records, groups := testPool(t)
	var out bytes.Buffer

	res, err := Run(context.Background(), Options{
		Records: records,
		Groups:  groups,
		Out:     &out,
		Input:   &scriptedReader{lines: []string{"y", "n"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Approved)
	assert.Equal(t, 1, res.Rejected)
	assert.Equal(t, 0, res.Skipped)
	assert.False(t, res.Quit)
	require.Len(t, res.ApprovedGroups, 1)
	assert.Equal(t, []int{0, 1}, res.ApprovedGroups[0])

	assert.Contains(t, out.String(), "Group 1 of 2")
	assert.Contains(t, out.String(), "Exact name match")
}

func TestRunSkipAndQuit(t *testing.T) {
	records, groups := testPool(t)
	var out bytes.Buffer

	res, err := Run(context.Background(), Options{
		Records: records,
		Groups:  groups,
		Out:     &out,
		Input:   &scriptedReader{lines: []string{"s", "q"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Skipped)
	assert.True(t, res.Quit)
	assert.Empty(t, res.ApprovedGroups)
}

func TestRunEOFQuits(t *testing.T) {
	records, groups := testPool(t)
	var out bytes.Buffer

	res, err := Run(context.Background(), Options{
		Records: records,
		Groups:  groups,
		Out:     &out,
		Input:   &scriptedReader{},
	})
	require.NoError(t, err)
	assert.True(t, res.Quit)
}

func TestRunDetailsAndHelpThenDecide(t *testing.T) {
	records, groups := testPool(t)
	var out bytes.Buffer

	res, err := Run(context.Background(), Options{
		Records: records,
		Groups:  groups[:1],
		Out:     &out,
		Input:   &scriptedReader{lines: []string{"d", "?", "bogus", "y"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Approved)
	assert.Contains(t, out.String(), "--- Record 1 ---")
	assert.Contains(t, out.String(), "john@example.com")
	assert.Contains(t, out.String(), "keep these contacts separate")
	assert.Contains(t, out.String(), `Unknown command "bogus"`)
}

func TestRunResumesFromJournal(t *testing.T) {
	records, groups := testPool(t)

	jnl, err := journal.Open(filepath.Join(t.TempDir(), "review.db"))
	require.NoError(t, err)
	defer jnl.Close()

	var out bytes.Buffer
	res, err := Run(context.Background(), Options{
		Records: records,
		Groups:  groups,
		Journal: jnl,
		Out:     &out,
		Input:   &scriptedReader{lines: []string{"y", "n"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Approved)
	assert.Equal(t, 1, res.Rejected)
	assert.Equal(t, 0, res.Resumed)

	// A second session over the same pool needs no input at all.
	out.Reset()
	res, err = Run(context.Background(), Options{
		Records: records,
		Groups:  groups,
		Journal: jnl,
		Out:     &out,
		Input:   &scriptedReader{},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Resumed)
	assert.Equal(t, 1, res.Approved)
	assert.Equal(t, 1, res.Rejected)
	assert.False(t, res.Quit)
	require.Len(t, res.ApprovedGroups, 1)
	assert.Equal(t, []int{0, 1}, res.ApprovedGroups[0])
}

func TestRunEmptyPool(t *testing.T) {
	_, err := Run(context.Background(), Options{Out: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestRunCanceledContext(t *testing.T) {
	records, groups := testPool(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{
		Records: records,
		Groups:  groups,
		Out:     &bytes.Buffer{},
		Input:   &scriptedReader{lines: []string{"y", "y"}},
	})
	assert.ErrorIs(t, err, context.Canceled)
}
