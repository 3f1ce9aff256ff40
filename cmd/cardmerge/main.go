// cardmerge finds and merges duplicate contacts across vCard files.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/phyllis-tools/cardmerge/internal/cluster"
	"github.com/phyllis-tools/cardmerge/internal/config"
	"github.com/phyllis-tools/cardmerge/internal/contact"
	"github.com/phyllis-tools/cardmerge/internal/names"
	"github.com/phyllis-tools/cardmerge/internal/normalize"
	"github.com/phyllis-tools/cardmerge/internal/vcard"
)

var version = "0.3.0"

var (
	configPath string
	noColor    bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:     "cardmerge",
	Short:   "Contact deduplication for vCard files",
	Long:    `cardmerge scans vCard (.vcf) exports, finds likely duplicate contacts, and merges them with human review or automatically above a confidence threshold.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if len(cfg.ExtraNicknames) > 0 {
			names.AddNicknames(cfg.ExtraNicknames)
		}
		if len(cfg.ExtraGenericDomains) > 0 {
			normalize.AddGenericDomains(cfg.ExtraGenericDomains)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.cardmerge.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// loadContacts reads every file concurrently and returns one pool in a
// deterministic order (files sorted by path, records in file order).
func loadContacts(paths []string) ([]*contact.Contact, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	perFile := make([][]*contact.Contact, len(sorted))

	var g errgroup.Group
	g.SetLimit(8)
	for i, path := range sorted {
		g.Go(func() error {
			records, err := vcard.DecodeFile(path, "")
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			perFile[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var pool []*contact.Contact
	for _, records := range perFile {
		pool = append(pool, records...)
	}
	return pool, nil
}

// runCluster applies the loaded config and streams progress to stderr,
// throttled so large pools don't flood the terminal.
func runCluster(ctx context.Context, records []*contact.Contact) ([]cluster.Group, error) {
	limiter := rate.NewLimiter(rate.Every(100*time.Millisecond), 1)

	ccfg := cluster.DefaultConfig()
	ccfg.ConfidenceFloor = cfg.ConfidenceFloor
	ccfg.NameBucketCap = cfg.NameBucketCap
	ccfg.PhoneticBucketCap = cfg.PhoneticBucketCap
	ccfg.Progress = func(pct int, msg string) {
		if pct == 100 || limiter.Allow() {
			fmt.Fprintf(os.Stderr, "\r\033[K[%3d%%] %s", pct, msg)
			if pct == 100 {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	return cluster.Cluster(ctx, records, ccfg)
}

func groupMembers(records []*contact.Contact, group cluster.Group) []*contact.Contact {
	members := make([]*contact.Contact, len(group.Indices))
	for i, idx := range group.Indices {
		members[i] = records[idx]
	}
	return members
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

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
