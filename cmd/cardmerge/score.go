package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phyllis-tools/cardmerge/internal/contact"
	"github.com/phyllis-tools/cardmerge/internal/match"
	"github.com/phyllis-tools/cardmerge/internal/vcard"
)

var (
	scoreIndex1 int
	scoreIndex2 int
)

var scoreCmd = &cobra.Command{
	Use:   "score <a.vcf> [b.vcf]",
	Short: "Explain how two contacts would be scored",
	Long: `Score one pair of contacts and show the match factors. With two
files, the first record of each is compared; with one file, pick the
pair with --index1 and --index2 (zero-based). Useful for understanding
why a scan did (or did not) group two records.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		a, b, err := loadScorePair(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s vs %s\n", a.BestDisplayName(), b.BestDisplayName())

		ok, nameConf, nameFactors := match.NamesMatch(a.DisplayName, b.DisplayName)
		fmt.Printf("\n%s\n", cyan("Name comparison"))
		if ok {
			fmt.Printf("  match, %d%% confidence\n", nameConf)
		} else {
			fmt.Println("  no match")
		}
		for _, factor := range nameFactors {
			fmt.Printf("  %s %s\n", gray("*"), factor)
		}

		confidence, factors := match.Score(a, b)
		fmt.Printf("\n%s\n", cyan("Pair score"))
		fmt.Printf("  %s\n", confidenceColor(confidence).Sprintf("%d / 100", confidence))
		for _, factor := range factors {
			fmt.Printf("  %s %s\n", gray("*"), factor)
		}
		if confidence >= cfg.ConfidenceFloor {
			fmt.Printf("  %s\n", color.GreenString("would be grouped (floor %d)", cfg.ConfidenceFloor))
		} else {
			fmt.Printf("  %s\n", color.RedString("below the floor of %d, not grouped", cfg.ConfidenceFloor))
		}
		fmt.Println()
	},
}

func loadScorePair(args []string) (*contact.Contact, *contact.Contact, error) {
	if len(args) == 2 {
		first, err := vcard.DecodeFile(args[0], "")
		if err != nil {
			return nil, nil, err
		}
		second, err := vcard.DecodeFile(args[1], "")
		if err != nil {
			return nil, nil, err
		}
		if len(first) == 0 || len(second) == 0 {
			return nil, nil, fmt.Errorf("both files must contain at least one contact")
		}
		return first[0], second[0], nil
	}

	records, err := vcard.DecodeFile(args[0], "")
	if err != nil {
		return nil, nil, err
	}
	if scoreIndex1 < 0 || scoreIndex1 >= len(records) ||
		scoreIndex2 < 0 || scoreIndex2 >= len(records) {
		return nil, nil, fmt.Errorf("indices must be within 0..%d", len(records)-1)
	}
	if scoreIndex1 == scoreIndex2 {
		return nil, nil, fmt.Errorf("pick two different records")
	}
	return records[scoreIndex1], records[scoreIndex2], nil
}

func init() {
	scoreCmd.Flags().IntVar(&scoreIndex1, "index1", 0, "first record index when scoring within one file")
	scoreCmd.Flags().IntVar(&scoreIndex2, "index2", 1, "second record index when scoring within one file")
	rootCmd.AddCommand(scoreCmd)
}
