package hostproc

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Stats is a point-in-time view of the host process.
type Stats struct {
	PID        int32
	RSSBytes   uint64
	Uptime     time.Duration
	NumThreads int32
}

// Snapshot collects stats for the current process.
func Snapshot() (Stats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return Stats{}, err
	}
	st := Stats{PID: p.Pid}
	if mem, err := p.MemoryInfo(); err == nil && mem != nil {
		st.RSSBytes = mem.RSS
	}
	if createdMs, err := p.CreateTime(); err == nil {
		st.Uptime = time.Since(time.UnixMilli(createdMs))
	}
	if n, err := p.NumThreads(); err == nil {
		st.NumThreads = n
	}
	return st, nil
}
