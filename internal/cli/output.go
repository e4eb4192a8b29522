package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/patchworkgame-go/internal/api/response"
	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/stats"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return NewOutputTo(format, os.Stdout)
}

// NewOutputTo creates a new Output formatter writing to w
func NewOutputTo(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Match:
		o.printMatch(v)
	case response.TurnResponse:
		o.printTurn(v.Turn)
		fmt.Fprintln(o.w)
		o.printMatch(v.Match)
	case response.LeatherResponse:
		o.printLeather(v.Leather)
		fmt.Fprintln(o.w)
		o.printMatch(v.Match)
	case stats.Summary:
		o.printSummary(v)
	case ReplayResult:
		o.printMatch(v.Match)
		fmt.Fprintln(o.w)
		o.printSummary(*v.Stats)
	case response.ReplayList:
		o.printReplayList(v)
	case response.Catalog:
		o.printCatalog(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printMatch(m response.Match) {
	fmt.Fprintf(o.w, "Match: %s\n", m.ID)
	fmt.Fprintf(o.w, "Board: %dx%d, track length %d\n", m.BoardSize, m.BoardSize, m.TrackLength)

	if m.GameOver {
		fmt.Fprintln(o.w, "State: finished")
	} else {
		fmt.Fprintf(o.w, "To move: %s (player %d)\n", m.Players[m.CurrentPlayer].Name, m.CurrentPlayer)
	}
	if len(m.PendingLeather) > 0 {
		fmt.Fprintf(o.w, "Leather patches to place: %s\n", joinInts(m.PendingLeather))
	}

	for i, p := range m.Players {
		fmt.Fprintf(o.w, "\nPlayer %d: %s\n", i, p.Name)
		fmt.Fprintf(o.w, "  Buttons: %d  Income: %d  Position: %d  Empty: %d  Score: %d\n",
			p.Buttons, p.Income, p.Position, p.EmptyCells, p.Score)
		if p.Bonus7x7 != nil {
			fmt.Fprintf(o.w, "  7x7 bonus at (%d,%d)\n", p.Bonus7x7.X, p.Bonus7x7.Y)
		}
		o.printBoard(p.Board)
	}

	if !m.GameOver {
		fmt.Fprintf(o.w, "\nMarket (%d left in deck):\n", m.DeckSize)
		for i, p := range m.Market {
			fmt.Fprintf(o.w, "  [%d] ", i)
			o.printPatchLine(p)
		}
	}

	if len(m.Scores) > 0 {
		fmt.Fprintln(o.w, "\nFinal Scores:")
		for _, s := range m.Scores {
			fmt.Fprintf(o.w, "  %s: %d (buttons %d, empty %d, penalty %d", m.Players[s.PlayerIndex].Name, s.Total, s.Buttons, s.EmptyCells, s.Penalty)
			if s.HasBonus {
				fmt.Fprint(o.w, ", 7x7 bonus")
			}
			fmt.Fprintln(o.w, ")")
		}
	}
	if m.Winner != nil {
		fmt.Fprintf(o.w, "Winner: %s\n", o.winnerName(*m.Winner, m.Players))
	}
	if m.ReplayID != "" {
		fmt.Fprintf(o.w, "Replay: %s\n", m.ReplayID)
	}
}

func (o *Output) winnerName(winner int, players [2]response.Player) string {
	if winner == model.Tie || winner < 0 || winner > 1 {
		return "tie"
	}
	return players[winner].Name
}

const boardSymbols = "123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func (o *Output) printBoard(cells [][]int) {
	if len(cells) == 0 {
		return
	}

	size := len(cells)

	// Print column headers
	fmt.Fprint(o.w, "    ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(o.w, "%2d", col)
	}
	fmt.Fprintln(o.w)

	border := "   +" + strings.Repeat("--", size) + "-+"
	fmt.Fprintln(o.w, border)

	for row := 0; row < size; row++ {
		fmt.Fprintf(o.w, "%2d |", row)
		for col := 0; col < size; col++ {
			id := cells[row][col]
			switch {
			case id == 0:
				fmt.Fprint(o.w, " .")
			case id < 0:
				// Leather patch
				fmt.Fprint(o.w, " #")
			default:
				fmt.Fprintf(o.w, " %c", boardSymbols[(id-1)%len(boardSymbols)])
			}
		}
		fmt.Fprintln(o.w, " |")
	}

	fmt.Fprintln(o.w, border)
}

func (o *Output) printPatchLine(p response.Patch) {
	fmt.Fprintf(o.w, "#%d cost %d, time %d, income %d\n", p.ID, p.ButtonCost, p.TimeCost, p.ButtonIncome)
	for _, row := range p.Shape {
		fmt.Fprintf(o.w, "        %s\n", row)
	}
}

func (o *Output) printTurn(t response.Turn) {
	if t.Patch != nil {
		fmt.Fprintf(o.w, "Player %d bought patch #%d from slot %d\n", t.PlayerIndex, t.Patch.ID, *t.MarketIndex)
	} else {
		fmt.Fprintf(o.w, "Player %d skipped ahead, earning %d buttons\n", t.PlayerIndex, t.ButtonsEarned)
	}
	fmt.Fprintf(o.w, "Moved %d spaces\n", t.SpacesMoved)
	if t.IncomeCollected > 0 {
		fmt.Fprintf(o.w, "Collected %d buttons of income\n", t.IncomeCollected)
	}
	if len(t.PendingLeather) > 0 {
		fmt.Fprintf(o.w, "Leather patches to place: %s\n", joinInts(t.PendingLeather))
	}
	if t.BonusAwarded != nil {
		fmt.Fprintln(o.w, "Claimed the 7x7 bonus!")
	}
	if t.GameOver {
		fmt.Fprintln(o.w, "Game complete!")
	}
}

func (o *Output) printLeather(l response.Leather) {
	if l.Forfeited {
		fmt.Fprintf(o.w, "Player %d had no room for the leather patch from space %d\n", l.PlayerIndex, l.TrackPosition)
	} else {
		fmt.Fprintf(o.w, "Player %d placed the leather patch from space %d\n", l.PlayerIndex, l.TrackPosition)
	}
	if l.BonusAwarded != nil {
		fmt.Fprintln(o.w, "Claimed the 7x7 bonus!")
	}
	if l.GameOver {
		fmt.Fprintln(o.w, "Game complete!")
	}
}

func (o *Output) printSummary(s stats.Summary) {
	fmt.Fprintf(o.w, "Actions: %d\n", s.TotalActions)
	if s.Finished {
		if s.Winner == model.Tie {
			fmt.Fprintln(o.w, "Result: tie")
		} else {
			fmt.Fprintf(o.w, "Winner: %s\n", s.Players[s.Winner].Name)
		}
	} else {
		fmt.Fprintln(o.w, "Result: in progress")
	}
	if s.BonusPlayer != stats.NoBonus {
		fmt.Fprintf(o.w, "7x7 bonus: %s\n", s.Players[s.BonusPlayer].Name)
	}

	for i, p := range s.Players {
		fmt.Fprintf(o.w, "\nPlayer %d: %s\n", i, p.Name)
		fmt.Fprintf(o.w, "  Turns: %d (buys %d, skips %d)\n", p.Turns, p.Buys, p.Skips)
		fmt.Fprintf(o.w, "  Leather: %d placed, %d forfeited\n", p.LeatherPlaced, p.LeatherForfeited)
		fmt.Fprintf(o.w, "  Buttons: spent %d, from skips %d, income %d\n", p.ButtonsSpent, p.ButtonsFromSkips, p.IncomeCollected)
		fmt.Fprintf(o.w, "  Time spent: %d  Final income: %d  Cells covered: %d  Score: %d\n",
			p.TimeSpent, p.FinalIncome, p.CellsCovered, p.Score.Total)
	}
}

func (o *Output) printReplayList(l response.ReplayList) {
	if len(l.Replays) == 0 {
		fmt.Fprintln(o.w, "No replays")
		return
	}
	for _, id := range l.Replays {
		fmt.Fprintln(o.w, id)
	}
}

func (o *Output) printCatalog(c response.Catalog) {
	fmt.Fprintf(o.w, "Catalog: %s (%d patches)\n", c.Name, len(c.Patches))
	for _, p := range c.Patches {
		fmt.Fprint(o.w, "  ")
		o.printPatchLine(p)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Server: %s\n", h.Server)
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
