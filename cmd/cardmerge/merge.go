package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phyllis-tools/cardmerge/internal/merge"
	"github.com/phyllis-tools/cardmerge/internal/vcard"
)

var (
	mergeOutput    string
	mergeThreshold int
	mergeForce     bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge <file.vcf...>",
	Short: "Automatically merge high-confidence duplicate groups",
	Long: `Merge every duplicate group at or above the auto threshold without
prompting, and write the deduplicated pool to --output. Groups below
the threshold, and groups with warnings (unless --force), are left
untouched.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if mergeOutput == "" {
			fmt.Fprintln(os.Stderr, "Error: --output is required")
			os.Exit(1)
		}
		threshold := mergeThreshold
		if threshold == 0 {
			threshold = cfg.AutoThreshold
		}

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

		yellow := color.New(color.FgYellow).SprintFunc()

		var approved [][]int
		belowThreshold := 0
		heldBack := 0
		for _, group := range groups {
			if group.Confidence < threshold {
				belowThreshold++
				continue
			}
			members := groupMembers(records, group)
			if has, warnings := merge.DetectWarnings(members); has && !mergeForce {
				heldBack++
				fmt.Printf("%s group at %d%% held back:\n", yellow("warning:"), group.Confidence)
				for _, rec := range members {
					fmt.Printf("  - %s\n", rec.BestDisplayName())
				}
				for _, warning := range warnings {
					fmt.Printf("  ! %s\n", warning)
				}
				continue
			}
			approved = append(approved, group.Indices)
		}

		merged, err := merge.Apply(records, approved)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := vcard.EncodeFile(mergeOutput, merged); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Merged %d group(s), wrote %d contacts to %s\n",
			len(approved), len(merged), mergeOutput)
		if belowThreshold > 0 {
			fmt.Printf("%d group(s) below the %d%% threshold, use 'cardmerge review' for those\n",
				belowThreshold, threshold)
		}
		if heldBack > 0 {
			fmt.Printf("%d group(s) held back by warnings (re-run with --force to merge anyway)\n", heldBack)
		}
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "write the deduplicated pool to this vCard file (required)")
	mergeCmd.Flags().IntVar(&mergeThreshold, "auto-threshold", 0, "minimum confidence to merge without review (default: config auto_threshold)")
	mergeCmd.Flags().BoolVar(&mergeForce, "force", false, "merge groups even when they carry warnings")
	rootCmd.AddCommand(mergeCmd)
}
