package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/brk3/habitlog/internal/apiclient"
	"github.com/brk3/habitlog/internal/logger"
	"github.com/brk3/habitlog/internal/preferences"
	"github.com/brk3/habitlog/pkg/habit"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type palette struct {
	header lipgloss.Style
	cell   lipgloss.Style
	muted  lipgloss.Style
	good   lipgloss.Style
	border lipgloss.Color
}

func paletteFor(t preferences.Theme) palette {
	if t == preferences.Dark {
		return palette{
			header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7AA2F7")).Padding(0, 1),
			cell:   lipgloss.NewStyle().Foreground(lipgloss.Color("#C0CAF5")).Padding(0, 1),
			muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
			good:   lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71")),
			border: lipgloss.Color("#414868"),
		}
	}
	return palette{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C63FF")).Padding(0, 1),
		cell:   lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1B26")).Padding(0, 1),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		good:   lipgloss.NewStyle().Foreground(lipgloss.Color("#1E8449")),
		border: lipgloss.Color("#AAAAAA"),
	}
}

// currentPalette falls back to the light palette if the theme can't be fetched.
func currentPalette(ctx context.Context, c *apiclient.Client) palette {
	t, err := c.Theme(ctx)
	if err != nil {
		logger.Debug("Falling back to light theme", "error", err)
		t = preferences.Light
	}
	return paletteFor(t)
}

func (p palette) table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(p.border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			return p.cell
		}).
		Render()
}

func swatch(h habit.Habit) string {
	if h.Color == "" {
		return h.Title
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render("●") + " " + h.Title
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

func bestWeekCell(bw habit.BestWeek) string {
	if bw.Completions == 0 {
		return "-"
	}
	return bw.WeekStart + " (" + strconv.Itoa(bw.Completions) + ")"
}
