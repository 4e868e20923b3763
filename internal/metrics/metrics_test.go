package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitIsASingleton(t *testing.T) {
	a := Init()
	b := Init()
	require.Same(t, a, b)
}

func TestObserveRecordsWithoutError(t *testing.T) {
	m := Init()
	require.NotPanics(t, func() {
		m.Observe(0.001, 0.002, 0.01, 3, 2, 42, nil)
	})
}

func TestObserveRecordsOutcomeOnError(t *testing.T) {
	m := Init()
	require.NotPanics(t, func() {
		m.Observe(0.001, 0.002, 0.01, 0, 0, 0, errFailed)
	})
}

var errFailed = &testError{"boom"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
