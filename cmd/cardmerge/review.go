package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phyllis-tools/cardmerge/internal/journal"
	"github.com/phyllis-tools/cardmerge/internal/merge"
	"github.com/phyllis-tools/cardmerge/internal/review"
	"github.com/phyllis-tools/cardmerge/internal/vcard"
)

var (
	reviewOutput  string
	reviewJournal string
)

var reviewCmd = &cobra.Command{
	Use:   "review <file.vcf...>",
	Short: "Interactively review and merge duplicate groups",
	Long: `Walk every duplicate group found in the given vCard files, one at a
time, and decide whether to merge it. Decisions are journaled, so a
quit-and-resume session picks up where the last one left off.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		records, err := loadContacts(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(records) == 0 {
			fmt.Println("No contacts found.")
			return
		}

		groups, err := runCluster(ctx, records)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(groups) == 0 {
			fmt.Println("No duplicates found.")
			return
		}

		jnl, err := journal.Open(journalPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open journal: %v\n", err)
			os.Exit(1)
		}
		defer jnl.Close()

		res, err := review.Run(ctx, review.Options{
			Records: records,
			Groups:  groups,
			Journal: jnl,
			Out:     os.Stdout,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		gray := color.New(color.FgHiBlack).SprintFunc()
		fmt.Printf("\n%d approved, %d rejected, %d skipped",
			res.Approved, res.Rejected, res.Skipped)
		if res.Resumed > 0 {
			fmt.Printf(" %s", gray(fmt.Sprintf("(%d resumed from a previous session)", res.Resumed)))
		}
		fmt.Println()

		if reviewOutput == "" {
			if len(res.ApprovedGroups) > 0 {
				fmt.Println("No --output given, nothing written.")
			}
			return
		}

		merged, err := merge.Apply(records, res.ApprovedGroups)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := vcard.EncodeFile(reviewOutput, merged); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d contacts to %s\n", len(merged), reviewOutput)
	},
}

func journalPath() string {
	if reviewJournal != "" {
		return reviewJournal
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "cardmerge-review.db"
	}
	return filepath.Join(home, ".cardmerge", "review.db")
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewOutput, "output", "o", "", "write the deduplicated pool to this vCard file")
	reviewCmd.Flags().StringVar(&reviewJournal, "journal", "", "decision journal path (default ~/.cardmerge/review.db)")
	rootCmd.AddCommand(reviewCmd)
}
