package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/patchworkgame-go/internal/api/request"
	"github.com/mcoot/patchworkgame-go/internal/api/response"
	"github.com/mcoot/patchworkgame-go/internal/services/stats"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match commands",
		Long: `Match commands. Commands taking [id] fall back to the match remembered
by the last 'match create'.`,
	}

	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchDeleteCmd())
	cmd.AddCommand(newMatchBuyCmd())
	cmd.AddCommand(newMatchSkipCmd())
	cmd.AddCommand(newMatchLeatherCmd())
	cmd.AddCommand(newMatchHistoryCmd())
	cmd.AddCommand(newMatchStatsCmd())

	return cmd
}

func matchPath(id, suffix string) string {
	return fmt.Sprintf("/api/v1/matches/%s%s", id, suffix)
}

func newMatchCreateCmd() *cobra.Command {
	var (
		boardSize   int
		firstPlayer int
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "create <player1> <player2>",
		Short: "Create a new match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateMatchRequest{
				PlayerNames: args,
				FirstPlayer: firstPlayer,
				BoardSize:   boardSize,
			}
			if cmd.Flags().Changed("seed") {
				if seed < 0 || seed > int64(^uint32(0)) {
					return fmt.Errorf("seed must be between 0 and %d", ^uint32(0))
				}
				s := uint32(seed)
				req.Seed = &s
			}

			var result response.Match
			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveMatchID(result.ID); err != nil {
				return fmt.Errorf("failed to remember match: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&boardSize, "board-size", 9, "Board size: 7, 9 or 11")
	cmd.Flags().IntVar(&firstPlayer, "first", 0, "Which named player starts (0 or 1)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Fix the market shuffle seed")

	return cmd
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Get current match state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveMatchID(args)
			if err != nil {
				return err
			}

			var result response.Match
			if err := client.Get(matchPath(id, ""), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a match",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveMatchID(args)
			if err != nil {
				return err
			}

			if err := client.Delete(matchPath(id, "")); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Match deleted")
			return nil
		},
	}
}

// placementFlags binds the flags shared by buy and leather
func placementFlags(cmd *cobra.Command, p *request.PlacementRequest) {
	cmd.Flags().IntVar(&p.X, "x", 0, "Column of the patch's top-left corner")
	cmd.Flags().IntVar(&p.Y, "y", 0, "Row of the patch's top-left corner")
	cmd.Flags().IntVarP(&p.Rotation, "rotation", "r", 0, "Clockwise quarter turns (0-3)")
	cmd.Flags().BoolVar(&p.Reflected, "reflect", false, "Mirror the patch after rotating")
}

func newMatchBuyCmd() *cobra.Command {
	var (
		player    int
		slot      int
		placement request.PlacementRequest
	)

	cmd := &cobra.Command{
		Use:   "buy [id]",
		Short: "Buy a market patch and place it on your board",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveMatchID(args)
			if err != nil {
				return err
			}

			req := request.BuyRequest{Player: &player, MarketIndex: slot, PlacementRequest: placement}
			var result response.TurnResponse
			if err := client.Post(matchPath(id, "/buy"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&player, "player", "p", 0, "Seat making the move (0 or 1)")
	cmd.Flags().IntVarP(&slot, "slot", "s", 0, "Market slot (0-2)")
	placementFlags(cmd, &placement)

	return cmd
}

func newMatchSkipCmd() *cobra.Command {
	var player int

	cmd := &cobra.Command{
		Use:   "skip [id]",
		Short: "Skip ahead past the opponent and collect buttons",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveMatchID(args)
			if err != nil {
				return err
			}

			var result response.TurnResponse
			if err := client.Post(matchPath(id, "/skip"), request.SkipRequest{Player: &player}, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&player, "player", "p", 0, "Seat making the move (0 or 1)")

	return cmd
}

func newMatchLeatherCmd() *cobra.Command {
	var (
		player    int
		placement request.PlacementRequest
	)

	cmd := &cobra.Command{
		Use:   "leather [id]",
		Short: "Place the pending leather patch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveMatchID(args)
			if err != nil {
				return err
			}

			req := request.LeatherRequest{Player: &player, PlacementRequest: placement}
			var result response.LeatherResponse
			if err := client.Post(matchPath(id, "/leather"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&player, "player", "p", 0, "Seat making the move (0 or 1)")
	placementFlags(cmd, &placement)

	return cmd
}

func newMatchHistoryCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "Print or save the match history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveMatchID(args)
			if err != nil {
				return err
			}

			var raw []byte
			if err := client.Get(matchPath(id, "/history"), &raw); err != nil {
				return err
			}
			return writeHistory(raw, outFile)
		},
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Write the history to a file instead of stdout")

	return cmd
}

func newMatchStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [id]",
		Short: "Show match statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveMatchID(args)
			if err != nil {
				return err
			}

			var result stats.Summary
			if err := client.Get(matchPath(id, "/stats"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// writeHistory prints a history document or saves it to a file
func writeHistory(raw []byte, outFile string) error {
	raw = bytes.TrimSpace(raw)
	if outFile == "" {
		_, err := os.Stdout.Write(append(raw, '\n'))
		return err
	}
	if err := os.WriteFile(outFile, raw, 0600); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "History written to %s\n", outFile)
	return nil
}
