// Command parahpf is the CLI front end for the parametric pseudoflow solver.
// Flag handling and the per-file run loop are adapted from the teacher's
// cmd/pseudo/pseudo.go (-stdin, -o, -stats, -times), generalized to a
// parallel batch loop over golang.org/x/sync/errgroup and extended with the
// ambient stack SPEC_FULL.md adds on top of the distilled spec: layered
// config (internal/config), structured logging with a per-run id
// (internal/logging + github.com/google/uuid), an optional Prometheus
// exposition endpoint (internal/metrics), an optional sqlite run-history
// store (internal/history), and an optional styled table for --pretty
// (internal/present).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	goccyjson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	pseudo "github.com/hochbaumlab/parahpf"
	"github.com/hochbaumlab/parahpf/internal/config"
	"github.com/hochbaumlab/parahpf/internal/history"
	"github.com/hochbaumlab/parahpf/internal/logging"
	"github.com/hochbaumlab/parahpf/internal/metrics"
	"github.com/hochbaumlab/parahpf/internal/present"
)

func main() {
	var (
		stdin         bool
		output        string
		reportStats   bool
		reportTimes   bool
		pretty        bool
		jsonOut       bool
		configPath    string
		metricsAddr   string
		historyPath   string
		roundNegative bool
		parallelism   int
	)
	flag.BoolVar(&stdin, "stdin", false, "read a single problem from stdin")
	flag.StringVar(&output, "o", "", "write results to named file (default stdout)")
	flag.BoolVar(&reportStats, "stats", false, "report engine statistics")
	flag.BoolVar(&reportTimes, "times", false, "report phase timings")
	flag.BoolVar(&pretty, "pretty", false, "render a styled breakpoint table instead of raw DIMACS-like output")
	flag.BoolVar(&jsonOut, "json", false, "emit stats/timings as JSON alongside the result")
	flag.StringVar(&configPath, "config", "", "path to an optional YAML config file")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "if set, overrides config and starts a Prometheus /metrics endpoint on this address")
	flag.StringVar(&historyPath, "history-db", "", "if set, overrides config and records each run to this sqlite file")
	flag.BoolVar(&roundNegative, "round-negative", false, "clamp negative realized capacities to zero instead of failing")
	flag.IntVar(&parallelism, "parallelism", runtime.GOMAXPROCS(0), "max number of input files solved concurrently (1 reproduces the sequential teacher loop)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 && !stdin {
		fmt.Fprintln(os.Stderr, "no input file specified and -stdin not set")
		os.Exit(1)
	}
	if stdin {
		args = []string{"-"}
	}

	cfg, err := config.NewLoader(config.WithConfigPath(configPath)).Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}
	if roundNegative {
		cfg.Solver.RoundNegative = true
	}
	if metricsAddr != "" {
		cfg.Metrics.Enabled, cfg.Metrics.Addr = true, metricsAddr
	}
	if historyPath != "" {
		cfg.History.Enabled, cfg.History.Path = true, historyPath
	}

	log := logging.New(logging.Config(cfg.Log))

	if cfg.Metrics.Enabled {
		metrics.Init()
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				log.Error("metrics server exited", "error", err)
			}
		}()
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			log.Error("opening history store", "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	var fh *os.File
	if output == "" {
		fh = os.Stdout
	} else {
		fh, err = os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
		if err != nil {
			fmt.Fprintln(os.Stderr, "unable to open output file:", err)
			os.Exit(1)
		}
		defer fh.Close()
	}

	runs := make([]runOutcome, len(args))
	var group errgroup.Group
	if parallelism > 0 {
		group.SetLimit(parallelism)
	}
	for i, arg := range args {
		i, arg := i, arg
		group.Go(func() error {
			runs[i] = solveOne(arg, cfg, log, store, runOpts{
				reportStats: reportStats,
				reportTimes: reportTimes,
				pretty:      pretty,
				jsonOut:     jsonOut,
			})
			return nil
		})
	}
	_ = group.Wait()

	for _, r := range runs {
		fmt.Fprintln(fh)
		fmt.Fprint(fh, r.output)
	}
}

type runOpts struct {
	reportStats, reportTimes, pretty, jsonOut bool
}

type runOutcome struct {
	output string
}

// solveOne runs one input (a file path, or "-" for stdin) through the full
// read/solve/write pipeline, optionally pretty-printing, JSON-summarizing,
// and recording the run to history. Errors are formatted into the output
// string rather than returned, so one bad input in a batch doesn't abort
// the others - mirroring the teacher's per-arg "ERROR -" continue loop.
func solveOne(arg string, cfg *config.Config, log interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}, store *history.Store, opts runOpts) runOutcome {
	runID := uuid.NewString()

	var r io.ReadCloser
	if arg == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return runOutcome{output: fmt.Sprintf("ERROR - opening %s: %v\n", arg, err)}
		}
		r = f
	}
	defer r.Close()

	readStart := time.Now()
	g, lambdaLow, lambdaHigh, roundNegative, err := pseudo.ReadDimacs(r)
	readElapsed := time.Since(readStart)
	if err != nil {
		log.Error("read failed", "run_id", runID, "source", arg, "error", err)
		recordHistory(store, runID, arg, 0, 0, lambdaLow, lambdaHigh, 0, readElapsed, 0, 0, err)
		return runOutcome{output: fmt.Sprintf("ERROR - %s: %v\n", arg, err)}
	}
	if !roundNegative {
		roundNegative = cfg.Solver.RoundNegative
	}

	initStart := time.Now()
	ctx := pseudo.NewSolverContext(g, lambdaLow, lambdaHigh, roundNegative)
	if cfg.Solver.Tolerance > 0 {
		ctx.Tolerance = cfg.Solver.Tolerance
	}
	initElapsed := time.Since(initStart)

	solveStart := time.Now()
	result, err := ctx.Solve()
	solveElapsed := time.Since(solveStart)

	stats := ctx.Stats()
	if cfg.Metrics.Enabled {
		metrics.Init().Observe(readElapsed.Seconds(), initElapsed.Seconds(), solveElapsed.Seconds(), stats.Breakpoints, stats.Contractions, stats.ArcScans, err)
	}
	recordHistory(store, runID, arg, g.NumNodes, len(g.Arcs), lambdaLow, lambdaHigh, stats.Breakpoints, readElapsed, initElapsed, solveElapsed, err)

	if err != nil {
		log.Error("solve failed", "run_id", runID, "source", arg, "error", err)
		return runOutcome{output: fmt.Sprintf("ERROR - %s: %v\n", arg, err)}
	}
	log.Info("solved", "run_id", runID, "source", arg, "breakpoints", result.K)

	var out strings.Builder
	if opts.pretty {
		indicators := make([][]int, result.K)
		for k := 0; k < result.K; k++ {
			indicators[k] = result.Indicators[k*result.NumNodes : (k+1)*result.NumNodes]
		}
		out.WriteString(present.Table(present.BreakpointView{
			NumNodes:   result.NumNodes,
			Lambdas:    result.Lambdas,
			Indicators: indicators,
			ArcScans:   int(stats.ArcScans),
			Mergers:    int(stats.Mergers),
			Pushes:     int(stats.Pushes),
			Relabels:   int(stats.Relabels),
			Gaps:       int(stats.Gaps),
			ReadSec:    readElapsed.Seconds(),
			InitSec:    initElapsed.Seconds(),
			SolveSec:   solveElapsed.Seconds(),
		}))
		out.WriteString("\n")
	} else if err := pseudo.WriteDimacs(&out, ctx, result); err != nil {
		return runOutcome{output: fmt.Sprintf("ERROR - %s: writing result: %v\n", arg, err)}
	}

	if opts.reportStats {
		fmt.Fprintf(&out, "\nstats: scans=%d mergers=%d pushes=%d relabels=%d gaps=%d breakpoints=%d contractions=%d\n",
			stats.ArcScans, stats.Mergers, stats.Pushes, stats.Relabels, stats.Gaps, stats.Breakpoints, stats.Contractions)
	}
	if opts.reportTimes {
		fmt.Fprintf(&out, "\ntimes: read=%.3fs init=%.3fs solve=%.3fs\n",
			readElapsed.Seconds(), initElapsed.Seconds(), solveElapsed.Seconds())
	}

	if opts.jsonOut {
		payload := map[string]any{
			"run_id": runID, "source": arg, "stats": stats,
			"timings": map[string]float64{
				"read": readElapsed.Seconds(), "init": initElapsed.Seconds(), "solve": solveElapsed.Seconds(),
			},
		}
		encoded, jerr := goccyjson.Marshal(payload)
		if jerr == nil {
			out.WriteString(string(encoded))
			out.WriteString("\n")
		}
	}

	return runOutcome{output: out.String()}
}

func recordHistory(store *history.Store, runID, source string, numNodes, numArcs int, lambdaLow, lambdaHigh float64, breakpoints int, readD, initD, solveD time.Duration, runErr error) {
	if store == nil {
		return
	}
	rec := &history.Run{
		RunID: runID, Source: source,
		NumNodes: numNodes, NumArcs: numArcs,
		LambdaLow: lambdaLow, LambdaHigh: lambdaHigh,
		Breakpoints:  breakpoints,
		ReadSeconds:  readD.Seconds(),
		InitSeconds:  initD.Seconds(),
		SolveSeconds: solveD.Seconds(),
		CreatedAt:    time.Now(),
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	_ = store.Record(context.Background(), rec)
}
