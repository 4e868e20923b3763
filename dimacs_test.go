// dimacs_test.go - round-trips the text grammar of spec.md §6, in the
// teacher's TestReadDimacsFile style (parse a fixture, assert the resulting
// fields) adapted to the affine grammar and to RunDimacs's t/s/p/l/n output.

package pseudo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const dimacsFixture = `c scenario D, bipartite selection
p 4 4 0 10 0
n 0 s
n 3 t
a 0 1 0 1
a 0 2 0 2
a 1 3 5 0
a 2 3 3 0
`

func TestReadDimacsParsesHeaderAndArcs(t *testing.T) {
	g, lambdaLow, lambdaHigh, roundNegative, err := ReadDimacs(strings.NewReader(dimacsFixture))
	require.NoError(t, err)
	require.Equal(t, 4, g.NumNodes)
	require.Equal(t, 0, g.Source)
	require.Equal(t, 3, g.Sink)
	require.Len(t, g.Arcs, 4)
	require.Equal(t, 0.0, lambdaLow)
	require.Equal(t, 10.0, lambdaHigh)
	require.False(t, roundNegative)
}

func TestReadDimacsRejectsArcBeforeNodeEntries(t *testing.T) {
	bad := "p 2 1 0 1 0\na 0 1 1 0\nn 0 s\nn 1 t\n"
	_, _, _, _, err := ReadDimacs(strings.NewReader(bad))
	require.Error(t, err)
}

func TestReadDimacsRejectsArcCountMismatch(t *testing.T) {
	bad := "p 2 2 0 1 0\nn 0 s\nn 1 t\na 0 1 1 0\n"
	_, _, _, _, err := ReadDimacs(strings.NewReader(bad))
	require.Error(t, err)
}

func TestRunDimacsProducesExpectedOutputShape(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunDimacs(strings.NewReader(dimacsFixture), &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4+g4NumNodes)

	require.True(t, strings.HasPrefix(lines[0], "t "))
	require.True(t, strings.HasPrefix(lines[1], "s "))
	require.True(t, strings.HasPrefix(lines[2], "p "))
	require.True(t, strings.HasPrefix(lines[3], "l "))
	for i := 0; i < g4NumNodes; i++ {
		require.True(t, strings.HasPrefix(lines[4+i], "n "))
	}

	require.Contains(t, lines[2], "p 3") // K == 3 for this fixture (scenario D)
}

const g4NumNodes = 4
