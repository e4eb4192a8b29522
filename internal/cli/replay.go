package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/patchworkgame-go/internal/api/response"
	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/catalog"
	"github.com/mcoot/patchworkgame-go/internal/services/history"
	"github.com/mcoot/patchworkgame-go/internal/services/stats"
)

// ReplayResult is the outcome of replaying a history file offline
type ReplayResult struct {
	Match response.Match `json:"match"`
	Stats *stats.Summary `json:"stats"`
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Archived replays and history files",
	}

	cmd.AddCommand(newReplayListCmd())
	cmd.AddCommand(newReplayGetCmd())
	cmd.AddCommand(newReplayStatsCmd())
	cmd.AddCommand(newReplayUploadCmd())
	cmd.AddCommand(newReplayRunCmd())

	return cmd
}

func newReplayListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived replays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ReplayList
			if err := client.Get("/api/v1/replays", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newReplayGetCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "get <replay-id>",
		Short: "Print or save an archived history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			if err := client.Get("/api/v1/replays/"+args[0], &raw); err != nil {
				return err
			}
			return writeHistory(raw, outFile)
		},
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Write the history to a file instead of stdout")

	return cmd
}

func newReplayStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <replay-id>",
		Short: "Show statistics for an archived replay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result stats.Summary
			if err := client.Get("/api/v1/replays/"+args[0]+"/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newReplayUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Have the server replay a history file and report statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var result stats.Summary
			if err := client.Post("/api/v1/replays/stats", data, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newReplayRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Replay a history file locally, without a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			result, err := ReplayFile(data, cfg.Catalog)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*result)
			return nil
		},
	}
}

// ReplayFile replays a serialized history. fallbackCatalog is used when the
// history does not name the catalog it was recorded with.
func ReplayFile(data []byte, fallbackCatalog string) (*ReplayResult, error) {
	h, err := history.Decode(data)
	if err != nil {
		return nil, err
	}

	name := h.Catalog
	if name == "" {
		name = fallbackCatalog
	}
	c, err := catalog.Lookup(name)
	if err != nil {
		return nil, err
	}

	state, err := history.Replay(h, c)
	if err != nil {
		return nil, err
	}
	summary, err := stats.Compute(h, c)
	if err != nil {
		return nil, err
	}

	match := &model.Match{ID: model.MatchID(fmt.Sprintf("replay-%d", h.Seed)), State: state, History: h}
	return &ReplayResult{Match: response.MatchFromModel(match), Stats: summary}, nil
}
