package hostproc

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotOfCurrentProcess(t *testing.T) {
	st, err := Snapshot()
	require.NoError(t, err)
	assert.Equal(t, int32(os.Getpid()), st.PID)
	assert.Greater(t, st.RSSBytes, uint64(0))
	assert.GreaterOrEqual(t, st.NumThreads, int32(1))
}
