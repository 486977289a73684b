package adapter

import (
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/playerkit/plugin-sleeptimer/internal/logging"
)

var adapterLogger = logging.New("adapter", nil)

// Event is one audit record.
type Event struct {
	Name    string
	Time    time.Time
	Details map[string]interface{}
}

// Sink receives audit events. Implementations may be remote; Deliver
// errors are treated as transient and retried.
type Sink interface {
	Deliver(e Event) error
}

// Recorder delivers plugin and timer events to a Sink with bounded
// retry. It satisfies the plugin's Auditor interface.
type Recorder struct {
	sink       Sink
	maxRetries uint64
	interval   time.Duration
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithMaxRetries bounds delivery attempts at 1+n.
func WithMaxRetries(n uint64) RecorderOption {
	return func(r *Recorder) { r.maxRetries = n }
}

// WithRetryInterval sets the delay between delivery attempts.
func WithRetryInterval(d time.Duration) RecorderOption {
	return func(r *Recorder) {
		if d > 0 {
			r.interval = d
		}
	}
}

// NewRecorder returns a Recorder with 5 retries at 100ms intervals.
func NewRecorder(sink Sink, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		sink:       sink,
		maxRetries: 5,
		interval:   100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LogEvent delivers one event, retrying transient sink failures. The
// returned error is the last delivery error once retries are exhausted.
func (r *Recorder) LogEvent(event string, details map[string]interface{}) error {
	e := Event{Name: event, Time: time.Now(), Details: details}
	op := func() error { return r.sink.Deliver(e) }
	err := backoff.Retry(op, backoff.WithMaxRetries(backoff.NewConstantBackOff(r.interval), r.maxRetries))
	if err != nil {
		adapterLogger.Warnf("audit event %s undelivered: %v", event, err)
	}
	return err
}
