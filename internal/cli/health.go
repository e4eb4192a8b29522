package cli

import (
	"github.com/spf13/cobra"
)

// HealthResult is the server health as seen from the CLI
type HealthResult struct {
	Status string `json:"status"`
	Server string `json:"server"`
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the configured server is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult
			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}
			result.Server = cfg.ServerURL

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
