package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, runs)
}

func TestRecordAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	first := &Run{
		RunID: "a", Source: "graph1.dimacs", NumNodes: 4, NumArcs: 5,
		LambdaLow: 0, LambdaHigh: 10, Breakpoints: 2,
		ReadSeconds: 0.001, InitSeconds: 0.001, SolveSeconds: 0.01,
		CreatedAt: time.Now(),
	}
	second := &Run{
		RunID: "b", Source: "graph2.dimacs", NumNodes: 8, NumArcs: 12,
		LambdaLow: 0, LambdaHigh: 5, Breakpoints: 1, Error: "capacity infeasible",
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Record(ctx, first))
	require.NoError(t, store.Record(ctx, second))

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "b", runs[0].RunID) // newest first
	require.Equal(t, "capacity infeasible", runs[0].Error)
	require.Equal(t, "a", runs[1].RunID)
}

func TestRecentRespectsLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, &Run{RunID: "r", Source: "x", CreatedAt: time.Now()}))
	}

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
}
