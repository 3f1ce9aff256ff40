// Package review drives the interactive approval workflow: walking
// duplicate groups in confidence order, showing members, warnings, and
// the merge preview, and collecting the human's verdict for each.
package review

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/phyllis-tools/cardmerge/internal/cluster"
	"github.com/phyllis-tools/cardmerge/internal/contact"
	"github.com/phyllis-tools/cardmerge/internal/journal"
	"github.com/phyllis-tools/cardmerge/internal/merge"
)

// LineReader abstracts the interactive input source so the loop is
// testable without a TTY.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// Options configures a review session.
type Options struct {
	Records []*contact.Contact
	Groups  []cluster.Group

	// Journal, when set, records decisions and lets a re-run skip
	// groups already decided in an earlier session.
	Journal *journal.Journal

	// Out receives all session output. Defaults to os.Stdout.
	Out io.Writer

	// Input supplies user lines; when nil a readline instance is
	// created.
	Input LineReader
}

// Result summarizes a completed (or quit) session.
type Result struct {
	// ApprovedGroups holds the member indices of every approved
	// group, including ones resumed from the journal.
	ApprovedGroups [][]int

	Approved int
	Rejected int
	Skipped  int
	// Resumed counts groups auto-decided from a previous session's
	// journal entries.
	Resumed int
	// Quit reports whether the user left before the last group.
	Quit bool
}

// Run walks the groups interactively. The record pool must be the same
// slice the groups were clustered from.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Records) == 0 {
		return nil, fmt.Errorf("cannot review an empty record pool")
	}

	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	input := opts.Input
	if input == nil {
		rl, err := readline.New(color.New(color.FgCyan).Sprint("review> "))
		if err != nil {
			return nil, fmt.Errorf("failed to create readline: %w", err)
		}
		input = rl
	}
	defer input.Close()

	res := &Result{}

	for i, group := range opts.Groups {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		members := make([]*contact.Contact, len(group.Indices))
		for k, idx := range group.Indices {
			members[k] = opts.Records[idx]
		}
		fp := journal.Fingerprint(members)

		if opts.Journal != nil {
			if decision, found, err := opts.Journal.Lookup(fp); err != nil {
				return res, err
			} else if found {
				res.Resumed++
				if decision == journal.Approved {
					res.ApprovedGroups = append(res.ApprovedGroups, group.Indices)
					res.Approved++
				} else {
					res.Rejected++
				}
				continue
			}
		}

		printGroup(opts.Out, i+1, len(opts.Groups), group, members)

		decided := false
		for !decided {
			line, err := input.Readline()
			if err == readline.ErrInterrupt || err == io.EOF {
				res.Quit = true
				return res, nil
			}
			if err != nil {
				return res, err
			}

			switch strings.ToLower(strings.TrimSpace(line)) {
			case "y", "yes":
				if opts.Journal != nil {
					if err := opts.Journal.Record(fp, journal.Approved, group.Confidence); err != nil {
						return res, err
					}
				}
				res.ApprovedGroups = append(res.ApprovedGroups, group.Indices)
				res.Approved++
				decided = true
			case "n", "no":
				if opts.Journal != nil {
					if err := opts.Journal.Record(fp, journal.Rejected, group.Confidence); err != nil {
						return res, err
					}
				}
				res.Rejected++
				decided = true
			case "s", "skip", "":
				res.Skipped++
				decided = true
			case "d", "details":
				printDetails(opts.Out, members)
			case "q", "quit":
				res.Quit = true
				return res, nil
			case "?", "help":
				printHelp(opts.Out)
			default:
				fmt.Fprintf(opts.Out, "Unknown command %q (try ? for help)\n", line)
			}
		}
	}

	return res, nil
}

func confidenceColor(confidence int) *color.Color {
	switch {
	case confidence >= 90:
		return color.New(color.FgGreen, color.Bold)
	case confidence >= 70:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printGroup(w io.Writer, num, total int, group cluster.Group, members []*contact.Contact) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "\n%s %s\n", cyan(fmt.Sprintf("=== Group %d of %d ===", num, total)),
		confidenceColor(group.Confidence).Sprintf("%d%% confidence", group.Confidence))

	for _, factor := range group.MatchFactors {
		fmt.Fprintf(w, "  %s %s\n", gray("*"), factor)
	}

	for k, rec := range members {
		fmt.Fprintf(w, "  [%d] %s %s\n", k+1, rec.BestDisplayName(), gray(summarize(rec)))
	}

	if has, warnings := merge.DetectWarnings(members); has {
		for _, warning := range warnings {
			fmt.Fprintf(w, "  %s %s\n", red("!"), warning)
		}
	}

	if preview, err := merge.Merge(members); err == nil {
		fmt.Fprintf(w, "  merged -> %s %s\n", preview.BestDisplayName(), gray(summarize(preview)))
	}

	fmt.Fprintf(w, "Merge this group? [y/n/s/d/q/?] ")
}

func summarize(rec *contact.Contact) string {
	var parts []string
	if len(rec.Emails) > 0 {
		parts = append(parts, fmt.Sprintf("%d email(s)", len(rec.Emails)))
	}
	if len(rec.Phones) > 0 {
		parts = append(parts, fmt.Sprintf("%d phone(s)", len(rec.Phones)))
	}
	if rec.Source != "" {
		parts = append(parts, "from "+rec.Source)
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func printDetails(w io.Writer, members []*contact.Contact) {
	for k, rec := range members {
		fmt.Fprintf(w, "\n--- Record %d ---\n", k+1)
		if rec.DisplayName != "" {
			fmt.Fprintf(w, "Name: %s\n", rec.DisplayName)
		}
		if rec.Source != "" {
			fmt.Fprintf(w, "Source: %s\n", rec.Source)
		}
		for _, e := range rec.Emails {
			fmt.Fprintf(w, "Email: %s\n", e)
		}
		for _, p := range rec.Phones {
			fmt.Fprintf(w, "Phone: %s\n", p)
		}
		for _, a := range rec.Addresses {
			fmt.Fprintf(w, "Address: %s\n", a)
		}
		if rec.Org != "" {
			fmt.Fprintf(w, "Organization: %s\n", rec.Org)
		}
		if rec.Title != "" {
			fmt.Fprintf(w, "Title: %s\n", rec.Title)
		}
		if rec.Birthday != "" {
			fmt.Fprintf(w, "Birthday: %s\n", rec.Birthday)
		}
		for _, n := range rec.Notes {
			note := n
			if len(note) > 200 {
				note = note[:200] + "..."
			}
			fmt.Fprintf(w, "Note: %s\n", note)
		}
	}
	fmt.Fprintln(w)
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `  y  merge this group
  n  keep these contacts separate
  s  skip for now (ask again next session)
  d  show full record details
  q  quit the session
`)
}
