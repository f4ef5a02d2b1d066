package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vibhor2702/pr-review/internal/artifacts"
	"github.com/Vibhor2702/pr-review/internal/config"
	"github.com/Vibhor2702/pr-review/internal/server"
)

var (
	flagHost string
	flagPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the review API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := map[string]string{}
		if flagHost != "" {
			overrides["serverHost"] = flagHost
		}
		if flagPort > 0 {
			overrides["serverPort"] = fmt.Sprintf("%d", flagPort)
		}

		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}

		store, err := artifacts.NewStore(cfg.ArtifactsDir)
		if err != nil {
			return err
		}

		return server.New(cfg, store).ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagHost, "host", "", "Bind address")
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "Listen port")
}
