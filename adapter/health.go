// Package adapter integrates the sleep-timer plugin with external
// monitoring and audit systems.
package adapter

import (
	"errors"
	"fmt"

	"github.com/heptiolabs/healthcheck"

	"github.com/playerkit/plugin-sleeptimer/internal/hostproc"
	"github.com/playerkit/plugin-sleeptimer/pkg/sleeptimer"
)

// WorkerAlive is a liveness check that fails once the countdown worker
// has exited. Mount it while the plugin is active; after deactivation
// the worker is expected to be gone.
func WorkerAlive(svc *sleeptimer.Service) healthcheck.Check {
	return func() error {
		if svc.Alive() {
			return nil
		}
		if svc.Snapshot().Expired {
			// expiry is a normal end: the host is on its way out
			return nil
		}
		return errors.New("timer worker has exited")
	}
}

// MaxRSS is a readiness check that fails when the host process RSS
// exceeds the given bound.
func MaxRSS(bound uint64) healthcheck.Check {
	return func() error {
		st, err := hostproc.Snapshot()
		if err != nil {
			return err
		}
		if st.RSSBytes > bound {
			return fmt.Errorf("rss %d exceeds bound %d", st.RSSBytes, bound)
		}
		return nil
	}
}

// NewHealthHandler builds a healthcheck handler for an active plugin.
// maxRSSBytes of 0 disables the memory readiness check.
func NewHealthHandler(svc *sleeptimer.Service, maxRSSBytes uint64) healthcheck.Handler {
	h := healthcheck.NewHandler()
	h.AddLivenessCheck("timer-worker", WorkerAlive(svc))
	if maxRSSBytes > 0 {
		h.AddReadinessCheck("process-rss", MaxRSS(maxRSSBytes))
	}
	return h
}
