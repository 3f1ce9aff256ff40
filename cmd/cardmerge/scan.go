package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phyllis-tools/cardmerge/internal/cluster"
	"github.com/phyllis-tools/cardmerge/internal/contact"
	"github.com/phyllis-tools/cardmerge/internal/merge"
)

var (
	scanMinConfidence int
	scanLimit         int
	scanJSON          bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <file.vcf...>",
	Short: "Find likely duplicate contacts in vCard files",
	Long: `Scan one or more vCard files and report groups of likely duplicates,
ranked by confidence. No files are modified.`,
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

		if scanMinConfidence > 0 {
			kept := groups[:0]
			for _, group := range groups {
				if group.Confidence >= scanMinConfidence {
					kept = append(kept, group)
				}
			}
			groups = kept
		}
		if scanLimit > 0 && len(groups) > scanLimit {
			groups = groups[:scanLimit]
		}

		if scanJSON {
			if err := printScanJSON(records, groups); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		printScanReport(records, groups)
	},
}

func printScanReport(records []*contact.Contact, groups []cluster.Group) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Printf("\n%s\n", cyan("=== Duplicate Scan Report ==="))
	fmt.Printf("%d contacts scanned, %d duplicate group(s) found\n", len(records), len(groups))

	for i, group := range groups {
		members := groupMembers(records, group)

		fmt.Printf("\n%s %s\n", cyan(fmt.Sprintf("Group %d:", i+1)),
			confidenceColor(group.Confidence).Sprintf("%d%% confidence", group.Confidence))
		for _, factor := range group.MatchFactors {
			fmt.Printf("  %s %s\n", gray("*"), factor)
		}
		for _, rec := range members {
			line := rec.BestDisplayName()
			if rec.Source != "" {
				line += " " + gray("("+rec.Source+")")
			}
			fmt.Printf("  - %s\n", line)
		}
		if has, warnings := merge.DetectWarnings(members); has {
			for _, warning := range warnings {
				fmt.Printf("  %s %s\n", red("!"), warning)
			}
		}
	}

	if len(groups) == 0 {
		fmt.Println("\nNo duplicates found.")
	}
	fmt.Println()
}

type scanGroupJSON struct {
	Confidence   int      `json:"confidence"`
	MatchFactors []string `json:"match_factors"`
	Members      []string `json:"members"`
	Sources      []string `json:"sources"`
	Warnings     []string `json:"warnings,omitempty"`
}

func printScanJSON(records []*contact.Contact, groups []cluster.Group) error {
	out := make([]scanGroupJSON, 0, len(groups))
	for _, group := range groups {
		members := groupMembers(records, group)
		entry := scanGroupJSON{
			Confidence:   group.Confidence,
			MatchFactors: group.MatchFactors,
		}
		for _, rec := range members {
			entry.Members = append(entry.Members, rec.BestDisplayName())
			entry.Sources = append(entry.Sources, rec.Source)
		}
		if has, warnings := merge.DetectWarnings(members); has {
			entry.Warnings = warnings
		}
		out = append(out, entry)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func init() {
	scanCmd.Flags().IntVar(&scanMinConfidence, "min-confidence", 0, "only report groups at or above this confidence (0 = report everything the engine found)")
	scanCmd.Flags().IntVar(&scanLimit, "limit", 0, "report at most N groups (0 = all)")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "emit the report as JSON")
	rootCmd.AddCommand(scanCmd)
}
