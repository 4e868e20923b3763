package present

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableRendersOneColumnPerBreakpoint(t *testing.T) {
	out := Table(BreakpointView{
		NumNodes: 4,
		Lambdas:  []float64{1.5, 5, 10},
		Indicators: [][]int{
			{1, 0, 0, 0},
			{1, 1, 0, 0},
			{1, 1, 1, 0},
		},
		ArcScans: 12, Mergers: 3, Pushes: 5, Relabels: 2, Gaps: 0,
		ReadSec: 0.001, InitSec: 0.002, SolveSec: 0.01,
	})

	require.Contains(t, out, "node")
	require.Contains(t, out, "λ=1.5")
	require.Contains(t, out, "λ=10")
	require.Contains(t, out, "scans=12")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 1+4+1) // header + 4 node rows + footer, at minimum
}

func TestTableHandlesSingleBreakpoint(t *testing.T) {
	out := Table(BreakpointView{
		NumNodes:   2,
		Lambdas:    []float64{1},
		Indicators: [][]int{{1, 0}},
	})
	require.Contains(t, out, "λ=1")
}
