// parametric.go - the Parametric Driver (spec.md §4.4): solves the low end
// of [lambda_low, lambda_high] for a minimal source-side cut and the high
// end for a maximal one, intersects their affine cut-value functions to
// find the next candidate breakpoint, contracts, and repeats. The teacher
// has no parametric path at all (pseudo.go solves one lambda and stops);
// this is built directly from spec.md's case analysis, using an explicit
// work-stack instead of call recursion per SPEC_FULL.md's supplement (interval
// depth is bounded by N but a pathological input should not consume Go call
// stack frames for it).

package pseudo

// frame is one unit of pending work: an interval (low.lambdaValue,
// high.lambdaValue] whose endpoints are already solved.
type frame struct {
	low, high *CutProblem
}

// Solve runs the full parametric sweep and returns the flattened breakpoint
// sequence. The graph referenced by ctx.Graph must already be validated
// (NewGraph does this at construction).
func (ctx *SolverContext) Solve() (*Result, error) {
	ctx.stats = ParametricStatistics{}

	if ctx.LambdaHigh-ctx.LambdaLow <= ctx.Tolerance {
		p := InitializeProblem(ctx, ctx.LambdaHigh)
		if err := ctx.solveMinCut(p, false); err != nil {
			return nil, err
		}
		store := &BreakpointStore{}
		store.addBreakpoint(ctx.LambdaHigh, p.optimalSourceSetIndicator)
		ctx.stats.Breakpoints = 1
		return store.flatten(ctx.Graph.NumNodes), nil
	}

	low := InitializeProblem(ctx, ctx.LambdaLow)
	if err := ctx.solveMinCut(low, false); err != nil {
		return nil, err
	}
	high := InitializeProblem(ctx, ctx.LambdaHigh)
	if err := ctx.solveMinCut(high, true); err != nil {
		return nil, err
	}

	store := &BreakpointStore{}
	stack := []frame{{low: low, high: high}}

	for len(stack) > 0 {
		if len(stack) > ctx.stats.MaxStackDepth {
			ctx.stats.MaxStackDepth = len(stack)
		}

		top := len(stack) - 1
		f := stack[top]
		stack = stack[:top]

		lo, hi := f.low, f.high

		deltaM := hi.cutMultiplier - lo.cutMultiplier
		deltaC := lo.cutConstant - hi.cutConstant

		if deltaM > -ctx.Tolerance && deltaM < ctx.Tolerance {
			continue // lambda* undefined: parallel cut-value lines, no interior breakpoint
		}
		lambdaStar := deltaC / deltaM

		switch {
		case abs(lambdaStar-lo.lambdaValue) <= ctx.Tolerance:
			store.addBreakpoint(lo.lambdaValue, lo.optimalSourceSetIndicator)
			ctx.stats.Breakpoints++

		case abs(lambdaStar-hi.lambdaValue) <= ctx.Tolerance:
			store.addBreakpoint(hi.lambdaValue, lo.optimalSourceSetIndicator)
			ctx.stats.Breakpoints++

		case lambdaStar > lo.lambdaValue+ctx.Tolerance && lambdaStar < hi.lambdaValue-ctx.Tolerance:
			midHigh := ContractProblem(ctx, lo, lambdaStar, lo.optimalSourceSetIndicator, hi.optimalSourceSetIndicator)
			if err := ctx.solveMinCut(midHigh, true); err != nil {
				return nil, err
			}
			midLow := ContractProblem(ctx, lo, lambdaStar, lo.optimalSourceSetIndicator, hi.optimalSourceSetIndicator)
			if err := ctx.solveMinCut(midLow, false); err != nil {
				return nil, err
			}
			ctx.stats.Contractions += 2

			stack = append(stack, frame{low: midLow, high: hi})
			stack = append(stack, frame{low: lo, high: midHigh})

		default:
			// lambda* lies outside (low.lambda, high.lambda): no breakpoint here.
		}
	}

	store.addBreakpoint(high.lambdaValue, high.optimalSourceSetIndicator)
	ctx.stats.Breakpoints++

	store.removeDuplicateBreakpoints()
	ctx.stats.Breakpoints = store.count
	return store.flatten(ctx.Graph.NumNodes), nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
