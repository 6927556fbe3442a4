// ABOUTME: CLI command reporting document and chunk counts by type
// ABOUTME: Tenant-scoped by default; cross-tenant totals require --all-tenants
package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fikalabs/pantry/internal/core"
)

var (
	statsTenant     string
	statsAllTenants bool
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge base statistics",
		Long: `Show document and chunk counts, broken down by document type.

Scoped to one restaurant with --tenant; --all-tenants aggregates across
every account and must be requested explicitly.

Examples:
  pantry stats --tenant fika
  pantry stats --all-tenants`,
		RunE: runStats,
	}

	cmd.Flags().StringVar(&statsTenant, "tenant", "", "Restaurant account")
	cmd.Flags().BoolVar(&statsAllTenants, "all-tenants", false, "Aggregate across all restaurants")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsTenant == "" && !statsAllTenants {
		return fmt.Errorf("either --tenant or --all-tenants is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(cmd.Context(), core.StatsFilter{
		TenantID:   statsTenant,
		AllTenants: statsAllTenants,
	})
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Documents: %d\n", stats.Documents)
	fmt.Fprintf(cmd.OutOrStdout(), "Chunks:    %d\n", stats.Chunks)

	if len(stats.ByType) > 0 {
		types := make([]string, 0, len(stats.ByType))
		for t := range stats.ByType {
			types = append(types, t)
		}
		sort.Strings(types)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "\nTYPE\tDOCUMENTS\n")
		for _, t := range types {
			fmt.Fprintf(w, "%s\t%d\n", t, stats.ByType[t])
		}
		return w.Flush()
	}
	return nil
}
