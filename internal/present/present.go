// Package present renders a solved breakpoint Result as a styled terminal
// table for the CLI's --pretty flag (SPEC_FULL.md §2.8). Grounded on the
// retrieved kanban-board TUI's lipgloss styling (pkg/ui/styles.go: adaptive
// colors, bordered panels built from lipgloss.NewStyle), scaled down from a
// full bubbletea dashboard to a single non-interactive rendered table - this
// CLI has no event loop, just one print per run.
package present

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorHeader = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	colorBorder = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	headerStyle = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder)
)

// BreakpointView carries the data needed to render one solve's breakpoint
// table, already flattened out of the solver's column-major Result.
type BreakpointView struct {
	NumNodes   int
	Lambdas    []float64
	Indicators [][]int // Indicators[k] is the length-NumNodes indicator column for breakpoint k
	ArcScans   int
	Mergers    int
	Pushes     int
	Relabels   int
	Gaps       int
	ReadSec    float64
	InitSec    float64
	SolveSec   float64
}

// Table renders v as a bordered, column-aligned table: one row per node, one
// column per breakpoint, plus a trailing summary line of engine statistics.
func Table(v BreakpointView) string {
	headers := make([]string, 0, len(v.Lambdas)+1)
	headers = append(headers, "node")
	for _, lam := range v.Lambdas {
		headers = append(headers, "λ="+strconv.FormatFloat(lam, 'g', 6, 64))
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	rows := make([][]string, v.NumNodes)
	for i := 0; i < v.NumNodes; i++ {
		row := make([]string, len(headers))
		row[0] = strconv.Itoa(i)
		for k := range v.Lambdas {
			row[k+1] = strconv.Itoa(v.Indicators[k][i])
		}
		for c, cell := range row {
			if len(cell) > widths[c] {
				widths[c] = len(cell)
			}
		}
		rows[i] = row
	}

	var b strings.Builder
	writeRow := func(cells []string, style lipgloss.Style) {
		rendered := make([]string, len(cells))
		for c, cell := range cells {
			rendered[c] = style.Width(widths[c]).Render(cell)
		}
		b.WriteString(strings.Join(rendered, " "))
		b.WriteString("\n")
	}

	writeRow(headers, headerStyle)
	for _, row := range rows {
		writeRow(row, cellStyle)
	}

	summary := fmt.Sprintf(
		"scans=%d mergers=%d pushes=%d relabels=%d gaps=%d  read=%.3fs init=%.3fs solve=%.3fs",
		v.ArcScans, v.Mergers, v.Pushes, v.Relabels, v.Gaps, v.ReadSec, v.InitSec, v.SolveSec,
	)
	b.WriteString(footerStyle.Render(summary))

	return panelStyle.Render(b.String())
}
