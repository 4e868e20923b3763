// dimacs.go - the DIMACS-like text I/O collaborator (spec.md §6). Adapted
// line-for-line in spirit from the teacher's Session.readDimacsFile: a
// bufio.Reader loop switching on the first byte of each trimmed line,
// strings.Fields for tokenizing, strconv for numeric conversion. The grammar
// itself is SPEC_FULL.md's own (N/M/lambda-range/round-negative on the p
// line, affine a-lines, warnings surfaced rather than swallowed) since the
// teacher's format has no parametric fields at all.

package pseudo

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ReadDimacs parses the p/n/n/a grammar of spec.md §6 into a Graph plus the
// lambda range and round-negative flag carried on the p line.
func ReadDimacs(r io.Reader) (g *Graph, lambdaLow, lambdaHigh float64, roundNegative bool, err error) {
	var numNodes, numArcs int
	var source, sink = -1, -1
	var haveSource, haveSink, haveHeader bool
	var raw []RawArc

	buf := bufio.NewReader(r)
	lineNo := 0
	atEOF := false

	for !atEOF {
		line, rerr := buf.ReadBytes('\n')
		if rerr != nil && rerr != io.EOF {
			return nil, 0, 0, false, internalError("reading dimacs input: %v", rerr)
		}
		if rerr == io.EOF {
			if len(bytes.TrimSpace(line)) == 0 {
				break
			}
			atEOF = true
		} else {
			line = line[:len(line)-1]
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		lineNo++

		switch line[0] {
		case 'c':
			continue
		case 'p':
			vals := strings.Fields(string(line))
			if len(vals) != 6 {
				return nil, 0, 0, false, inputError("line", "line %d: p entry needs 5 fields, has %d", lineNo, len(vals)-1)
			}
			numNodes, err = strconv.Atoi(vals[1])
			if err != nil {
				return nil, 0, 0, false, inputError("line", "line %d: bad N: %v", lineNo, err)
			}
			numArcs, err = strconv.Atoi(vals[2])
			if err != nil {
				return nil, 0, 0, false, inputError("line", "line %d: bad M: %v", lineNo, err)
			}
			lambdaLow, err = strconv.ParseFloat(vals[3], 64)
			if err != nil {
				return nil, 0, 0, false, inputError("line", "line %d: bad lambda_low: %v", lineNo, err)
			}
			lambdaHigh, err = strconv.ParseFloat(vals[4], 64)
			if err != nil {
				return nil, 0, 0, false, inputError("line", "line %d: bad lambda_high: %v", lineNo, err)
			}
			rn, err2 := strconv.Atoi(vals[5])
			if err2 != nil || (rn != 0 && rn != 1) {
				return nil, 0, 0, false, inputError("line", "line %d: roundNegative must be 0 or 1", lineNo)
			}
			roundNegative = rn == 1
			raw = make([]RawArc, 0, numArcs)
			haveHeader = true
		case 'n':
			if !haveHeader {
				return nil, 0, 0, false, inputError("line", "line %d: n entry before p entry", lineNo)
			}
			vals := strings.Fields(string(line))
			if len(vals) != 3 {
				return nil, 0, 0, false, inputError("line", "line %d: n entry needs 2 fields, has %d", lineNo, len(vals)-1)
			}
			id, perr := strconv.Atoi(vals[1])
			if perr != nil {
				return nil, 0, 0, false, inputError("line", "line %d: bad node id: %v", lineNo, perr)
			}
			switch vals[2] {
			case "s":
				if haveSource {
					return nil, 0, 0, false, inputError("line", "line %d: multiple source n entries", lineNo)
				}
				source, haveSource = id, true
			case "t":
				if haveSink {
					return nil, 0, 0, false, inputError("line", "line %d: multiple sink n entries", lineNo)
				}
				sink, haveSink = id, true
			default:
				return nil, 0, 0, false, inputError("line", "line %d: unrecognized n entry designator %q", lineNo, vals[2])
			}
		case 'a':
			if !haveSource || !haveSink {
				return nil, 0, 0, false, inputError("line", "line %d: a entry before both n entries", lineNo)
			}
			vals := strings.Fields(string(line))
			if len(vals) != 5 {
				return nil, 0, 0, false, inputError("line", "line %d: a entry needs 4 fields, has %d", lineNo, len(vals)-1)
			}
			from, perr := strconv.Atoi(vals[1])
			if perr != nil {
				return nil, 0, 0, false, inputError("line", "line %d: bad from id: %v", lineNo, perr)
			}
			to, perr := strconv.Atoi(vals[2])
			if perr != nil {
				return nil, 0, 0, false, inputError("line", "line %d: bad to id: %v", lineNo, perr)
			}
			constant, perr := strconv.ParseFloat(vals[3], 64)
			if perr != nil {
				return nil, 0, 0, false, inputError("line", "line %d: bad constant: %v", lineNo, perr)
			}
			multiplier, perr := strconv.ParseFloat(vals[4], 64)
			if perr != nil {
				return nil, 0, 0, false, inputError("line", "line %d: bad multiplier: %v", lineNo, perr)
			}
			raw = append(raw, RawArc{From: from, To: to, Constant: constant, Multiplier: multiplier})
		default:
			return nil, 0, 0, false, inputError("line", "line %d: unrecognized entry %q", lineNo, string(line[:1]))
		}
	}

	if !haveHeader {
		return nil, 0, 0, false, inputError("line", "missing p entry")
	}
	if !haveSource || !haveSink {
		return nil, 0, 0, false, inputError("line", "missing source or sink n entry")
	}
	if len(raw) != numArcs {
		return nil, 0, 0, false, inputError("line", "p entry declared M=%d arcs, read %d", numArcs, len(raw))
	}

	g, gerr := NewGraph(numNodes, source, sink, raw)
	if gerr != nil {
		return nil, 0, 0, false, gerr
	}
	return g, lambdaLow, lambdaHigh, roundNegative, nil
}

// WriteDimacs formats the solved result per spec.md §6: timings (millisecond
// precision), statistics, breakpoint count, the lambda list (12 significant
// digits), and the N x K indicator rows.
func WriteDimacs(w io.Writer, ctx *SolverContext, result *Result) error {
	t := ctx.Timings()
	if _, err := fmt.Fprintf(w, "t %s %s %s\n",
		formatMillis(t.Read), formatMillis(t.Init), formatMillis(t.Solve)); err != nil {
		return err
	}

	s := ctx.Stats()
	if _, err := fmt.Fprintf(w, "s %d %d %d %d %d\n",
		s.ArcScans, s.Mergers, s.Pushes, s.Relabels, s.Gaps); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "p %d\n", result.K); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("l")
	for _, lam := range result.Lambdas {
		sb.WriteString(" ")
		sb.WriteString(strconv.FormatFloat(lam, 'g', 12, 64))
	}
	if _, err := fmt.Fprintln(w, sb.String()); err != nil {
		return err
	}

	for i := 0; i < result.NumNodes; i++ {
		var row strings.Builder
		fmt.Fprintf(&row, "n %d", i)
		for j := 0; j < result.K; j++ {
			fmt.Fprintf(&row, " %d", result.Indicators[j*result.NumNodes+i])
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}

	for _, warn := range ctx.Graph.Warnings {
		if _, err := fmt.Fprintf(w, "c warning: %s (from=%d to=%d)\n", warn.Message, warn.From, warn.To); err != nil {
			return err
		}
	}

	return nil
}

func formatMillis(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

// RunDimacs is the reader-to-writer convenience wrapper: parse, solve,
// write. (cmd/parahpf runs the same steps itself so it can time and log
// each one.) Mirrors the teacher's Run(file) in shape (read/init/solve
// timed separately) though the teacher's Run has no parametric phase to
// separate out.
func RunDimacs(r io.Reader, w io.Writer) error {
	readStart := time.Now()
	g, lambdaLow, lambdaHigh, roundNegative, err := ReadDimacs(r)
	readElapsed := time.Since(readStart)
	if err != nil {
		return err
	}

	initStart := time.Now()
	ctx := NewSolverContext(g, lambdaLow, lambdaHigh, roundNegative)
	ctx.timing.Read = readElapsed
	ctx.timing.Init = time.Since(initStart)

	solveStart := time.Now()
	result, err := ctx.Solve()
	ctx.timing.Solve = time.Since(solveStart)
	if err != nil {
		return err
	}

	return WriteDimacs(w, ctx, result)
}
