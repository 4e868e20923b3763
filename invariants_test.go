// invariants_test.go - property-based checks of the universal invariants in
// spec.md §8, using pgregory.net/rapid per SPEC_FULL.md §2.5. The teacher has
// no property tests at all (pseudo_test.go is purely example-based); rapid
// is adopted from the broader retrieved pack for exactly this kind of
// invariant-over-random-input check.

package pseudo

import (
	"testing"

	"pgregory.net/rapid"
)

// genGraph builds a small random graph honoring the multiplier-sign
// convention (source-adjacent multiplier >= 0, sink-adjacent <= 0, interior
// arcs multiplier 0), so every generated instance is guaranteed valid input.
func genGraph(t *rapid.T) (numNodes, source, sink int, arcs []RawArc) {
	numNodes = rapid.IntRange(2, 6).Draw(t, "numNodes")
	source = 0
	sink = numNodes - 1

	numArcs := rapid.IntRange(0, numNodes*2).Draw(t, "numArcs")
	for i := 0; i < numArcs; i++ {
		from := rapid.IntRange(0, numNodes-1).Draw(t, "from")
		to := rapid.IntRange(0, numNodes-1).Draw(t, "to")
		if from == to {
			continue
		}
		constant := rapid.Float64Range(0, 10).Draw(t, "constant")

		var multiplier float64
		switch {
		case from == source && to == sink:
			// either convention applies; keep it neutral.
			multiplier = 0
		case from == source:
			multiplier = rapid.Float64Range(0, 3).Draw(t, "multiplier")
		case to == sink:
			multiplier = -rapid.Float64Range(0, 3).Draw(t, "multiplier")
		default:
			multiplier = 0
		}

		if to == source || from == sink {
			continue // would be discarded anyway; skip to keep M accurate
		}

		arcs = append(arcs, RawArc{From: from, To: to, Constant: constant, Multiplier: multiplier})
	}
	return numNodes, source, sink, arcs
}

func TestInvariantsOverRandomGraphs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numNodes, source, sink, arcs := genGraph(t)
		lambdaLow := rapid.Float64Range(0, 3).Draw(t, "lambdaLow")
		lambdaSpan := rapid.Float64Range(0, 5).Draw(t, "lambdaSpan")
		lambdaHigh := lambdaLow + lambdaSpan

		g, err := NewGraph(numNodes, source, sink, arcs)
		if err != nil {
			t.Fatalf("unexpected input error: %v", err)
		}
		ctx := NewSolverContext(g, lambdaLow, lambdaHigh, true) // round-negative on: never infeasible
		result, err := ctx.Solve()
		if err != nil {
			t.Fatalf("unexpected solve error: %v", err)
		}

		if result.K > numNodes {
			t.Fatalf("K=%d exceeds N=%d", result.K, numNodes)
		}
		if result.K == 0 {
			t.Fatalf("K must be >= 1")
		}

		for j := 0; j < result.K; j++ {
			col := result.Indicators[j*numNodes : (j+1)*numNodes]
			if col[source] != 1 {
				t.Fatalf("column %d: source not in source side", j)
			}
			if col[sink] != 0 {
				t.Fatalf("column %d: sink in source side", j)
			}
		}

		for j := 1; j < result.K; j++ {
			if result.Lambdas[j] <= result.Lambdas[j-1] {
				t.Fatalf("lambdas not strictly increasing: %v", result.Lambdas)
			}
		}

		// nested monotonicity: once a node joins the source side it stays.
		for i := 0; i < numNodes; i++ {
			seenOne := false
			for j := 0; j < result.K; j++ {
				bit := result.Indicators[j*numNodes+i]
				if bit == 1 {
					seenOne = true
				} else if seenOne {
					t.Fatalf("node %d left the source side between breakpoints (non-monotone)", i)
				}
			}
		}

		if lambdaHigh-lambdaLow <= DefaultTolerance {
			if result.K != 1 {
				t.Fatalf("degenerate range must yield K=1, got %d", result.K)
			}
		}
	})
}
