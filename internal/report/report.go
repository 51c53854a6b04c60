// Package report renders simulation results for the terminal and as JSON.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/lox/yankeeswap/internal/statistics"
	"github.com/lox/yankeeswap/internal/swap"
)

// Reporter prints the positional and strategy tables
type Reporter struct {
	w io.Writer

	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	best   lipgloss.Style
	muted  lipgloss.Style
}

// New creates a reporter writing to w. plain disables colour.
func New(w io.Writer, plain bool) *Reporter {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Reporter{
		w:      w,
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		best:   r.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("10")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Print writes the run header followed by both tables
func (r *Reporter) Print(s Summary) error {
	lines := []string{
		r.title.Render("YANKEE SWAP"),
		r.muted.Render(fmt.Sprintf("%d games, %d players, max %d steals, player one goes again: %t, seed %d",
			s.Games, s.Players, s.MaxSteals, s.PlayerOneGoesAgain, s.Seed)),
		"",
		r.title.Render("POSITIONAL STATS"),
		r.Table("POSITION", s.Positions),
		"",
		r.title.Render("STRATEGY STATS"),
		r.Table("STRATEGY", s.Strategies),
	}
	if s.BestPosition != "" {
		lines = append(lines, "", fmt.Sprintf("Best position: %s   Best strategy: %s", s.BestPosition, s.BestStrategy))
	}
	lines = append(lines, r.muted.Render(fmt.Sprintf("%d games in %dms (%.0f games/sec, %d workers)",
		s.Games, s.ElapsedMS, s.GamesPerSecond, s.Workers)))

	for _, line := range lines {
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

// Table renders rows with count, mean, standard error and 95% CI columns.
// The row with the highest mean is highlighted.
func (r *Reporter) Table(label string, rows []Row) string {
	bestIdx := -1
	for i, row := range rows {
		if row.Count > 0 && (bestIdx < 0 || row.Mean > rows[bestIdx].Mean) {
			bestIdx = i
		}
	}

	data := make([][]string, len(rows))
	for i, row := range rows {
		data[i] = []string{
			row.Name,
			strconv.Itoa(row.Count),
			formatValue(row.Mean),
			formatValue(row.StdError),
			fmt.Sprintf("[%s, %s]", formatValue(row.CILow), formatValue(row.CIHigh)),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.muted).
		Headers(label, "COUNT", "MEAN", "STD ERR", "95% CI").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return r.header
			case row == bestIdx:
				return r.best
			default:
				return r.cell
			}
		})
	return t.Render()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// PositionRows builds one row per 1-based turn position
func PositionRows(stats *statistics.Statistics) []Row {
	rows := make([]Row, len(stats.Positions))
	for i, b := range stats.Positions {
		rows[i] = newRow(strconv.Itoa(i+1), b)
	}
	return rows
}

// StrategyRows builds one row per strategy that took part in at least one game
func StrategyRows(stats *statistics.Statistics) []Row {
	var rows []Row
	for i, b := range stats.Strategies {
		if b.Count == 0 {
			continue
		}
		rows = append(rows, newRow(swap.Strategy(i).String(), b))
	}
	return rows
}

func newRow(name string, b statistics.Bucket) Row {
	low, high := b.ConfidenceInterval95()
	return Row{
		Name:     name,
		Count:    b.Count,
		Mean:     b.Mean(),
		StdError: b.StdError(),
		CILow:    low,
		CIHigh:   high,
	}
}
