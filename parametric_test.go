// parametric_test.go - the end-to-end scenarios of spec.md §8, written in
// the example-driven style of the teacher's own TestRunCase1 but using
// testify assertions per SPEC_FULL.md §2.5 instead of manual t.Fatal calls.

package pseudo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func solve(t *testing.T, n, source, sink int, arcs []RawArc, lambdaLow, lambdaHigh float64, roundNegative bool) (*SolverContext, *Result) {
	t.Helper()
	g, err := NewGraph(n, source, sink, arcs)
	require.NoError(t, err)
	ctx := NewSolverContext(g, lambdaLow, lambdaHigh, roundNegative)
	result, err := ctx.Solve()
	require.NoError(t, err)
	return ctx, result
}

// Scenario A - trivial disconnected pair.
func TestScenarioADisconnectedPair(t *testing.T) {
	_, result := solve(t, 2, 0, 1, nil, 0, 1, false)

	require.Equal(t, 1, result.K)
	require.InDelta(t, 1.0, result.Lambdas[0], DefaultTolerance)
	require.Equal(t, []int{1, 0}, result.Indicators)
}

// Scenario B - single source-adjacent arc affine in lambda.
func TestScenarioBAffineSourceArc(t *testing.T) {
	arcs := []RawArc{{From: 0, To: 1, Constant: 3, Multiplier: 2}}
	ctx, result := solve(t, 2, 0, 1, arcs, 0, 2, false)

	require.Equal(t, 1, result.K)
	require.InDelta(t, 2.0, result.Lambdas[0], DefaultTolerance)
	require.Equal(t, []int{1, 0}, result.Indicators)

	p := InitializeProblem(ctx, 2.0)
	require.NoError(t, ctx.solveMinCut(p, false))
	require.InDelta(t, 7.0, p.cutValue, DefaultTolerance)
}

// Scenario C - a diamond graph with two differently-sloped sink-adjacent
// arcs, in the spirit of spec.md's classic small parametric example: as
// lambda grows the cheaper-to-absorb interior node joins the source side
// first, then the other, producing two interior breakpoints plus the
// mandatory final one at lambda_high. Arc (1,3) realizes 10-2*6 = -2 at
// lambda_high, so round-negative is on.
func TestScenarioCDiamondTwoSlopes(t *testing.T) {
	arcs := []RawArc{
		{From: 0, To: 1, Constant: 3, Multiplier: 0},
		{From: 0, To: 2, Constant: 3, Multiplier: 0},
		{From: 1, To: 3, Constant: 10, Multiplier: -2},
		{From: 2, To: 3, Constant: 8, Multiplier: -1},
	}
	_, result := solve(t, 4, 0, 3, arcs, 0, 6, true)

	require.Equal(t, 3, result.K)
	require.InDelta(t, 3.5, result.Lambdas[0], 1e-6)
	require.InDelta(t, 5.0, result.Lambdas[1], 1e-6)
	require.InDelta(t, 6.0, result.Lambdas[2], 1e-6)

	require.Equal(t, []int{1, 0, 0, 0}, result.Indicators[0:4])
	require.Equal(t, []int{1, 1, 0, 0}, result.Indicators[4:8])
	require.Equal(t, []int{1, 1, 1, 0}, result.Indicators[8:12])
}

// Scenario D - bipartite selection.
func TestScenarioDBipartiteSelection(t *testing.T) {
	arcs := []RawArc{
		{From: 0, To: 1, Constant: 0, Multiplier: 1},
		{From: 0, To: 2, Constant: 0, Multiplier: 2},
		{From: 1, To: 3, Constant: 5, Multiplier: 0},
		{From: 2, To: 3, Constant: 3, Multiplier: 0},
	}
	_, result := solve(t, 4, 0, 3, arcs, 0, 10, false)

	require.Equal(t, 3, result.K)
	require.InDelta(t, 1.5, result.Lambdas[0], 1e-6)
	require.InDelta(t, 5.0, result.Lambdas[1], 1e-6)
	require.InDelta(t, 10.0, result.Lambdas[2], 1e-6)
}

// Scenario E - round-negative rescue.
func TestScenarioERoundNegativeRescue(t *testing.T) {
	arcs := []RawArc{
		{From: 0, To: 1, Constant: 5, Multiplier: 0},
		{From: 1, To: 2, Constant: 2, Multiplier: -1},
	}
	_, result := solve(t, 3, 0, 2, arcs, 0, 3, true)
	require.GreaterOrEqual(t, result.K, 1)

	// without round-negative the same graph must fail once lambda exceeds 2.
	g, err := NewGraph(3, 0, 2, arcs)
	require.NoError(t, err)
	ctx := NewSolverContext(g, 0, 3, false)
	_, err = ctx.Solve()
	require.Error(t, err)
	var solveErr *Error
	require.ErrorAs(t, err, &solveErr)
	require.Equal(t, CodeCapacityInfeasible, solveErr.Code)
}

// Scenario F - degenerate lambda range.
func TestScenarioFDegenerateRange(t *testing.T) {
	arcs := []RawArc{{From: 0, To: 1, Constant: 4, Multiplier: 0}}
	_, result := solve(t, 2, 0, 1, arcs, 0.7, 0.7, false)

	require.Equal(t, 1, result.K)
	require.InDelta(t, 0.7, result.Lambdas[0], DefaultTolerance)
}

func TestKNeverExceedsN(t *testing.T) {
	arcs := []RawArc{
		{From: 0, To: 1, Constant: 0, Multiplier: 1},
		{From: 0, To: 2, Constant: 0, Multiplier: 2},
		{From: 1, To: 3, Constant: 5, Multiplier: 0},
		{From: 2, To: 3, Constant: 3, Multiplier: 0},
	}
	_, result := solve(t, 4, 0, 3, arcs, 0, 10, false)
	require.LessOrEqual(t, result.K, 4)
}
