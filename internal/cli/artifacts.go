package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vibhor2702/pr-review/internal/artifacts"
	"github.com/Vibhor2702/pr-review/internal/config"
	"github.com/Vibhor2702/pr-review/internal/output"
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Manage persisted review records",
}

func openStore() (*artifacts.Store, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, err
	}
	return artifacts.NewStore(cfg.ArtifactsDir)
}

var artifactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		summaries, err := store.List()
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Fprintln(os.Stdout, "No saved reviews.")
			return nil
		}
		for _, s := range summaries {
			fmt.Fprintf(os.Stdout, "%-30s %-10s #%-5d %6.1f %-3s %s\n",
				s.ID, s.Provider, s.PRNumber, s.Score, s.Grade, s.Timestamp)
		}
		return nil
	},
}

var artifactsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one saved review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		rec, err := store.Get(args[0])
		if err != nil {
			return err
		}
		return output.WriteReport(&rec, flagArtifactFormat, "")
	},
}

var artifactsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Artifacts cleared.")
		return nil
	},
}

var artifactsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show artifact store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		stats, err := store.GetStats()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Directory: %s\n", stats.Dir)
		fmt.Fprintf(os.Stdout, "Records:   %d\n", stats.Records)
		fmt.Fprintf(os.Stdout, "Size:      %d bytes\n", stats.TotalBytes)
		return nil
	},
}

var flagArtifactFormat string

func init() {
	artifactsShowCmd.Flags().StringVar(&flagArtifactFormat, "format", "text", "Output format (text, json, markdown, sarif)")
	artifactsCmd.AddCommand(artifactsListCmd)
	artifactsCmd.AddCommand(artifactsShowCmd)
	artifactsCmd.AddCommand(artifactsClearCmd)
	artifactsCmd.AddCommand(artifactsStatsCmd)
}
