package executors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerialExecutorRunsInSubmissionOrder(t *testing.T) {
	e := NewSerialExecutor(16)

	var got []int
	for i := 0; i < 10; i++ {
		i := i
		e.Execute(func() { got = append(got, i) })
	}
	e.Shutdown()

	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestShutdownWaitsForQueuedTasks(t *testing.T) {
	e := NewSerialExecutor(16)

	ran := 0
	for i := 0; i < 5; i++ {
		e.Execute(func() { ran++ })
	}
	e.Shutdown()

	require.Equal(t, 5, ran)
}

func TestSyncDispatcherRunsInline(t *testing.T) {
	ran := false
	SyncDispatcher{}.Dispatch(func() { ran = true })
	require.True(t, ran)
}
