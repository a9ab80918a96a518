package watcher

import (
	"context"
	"time"

	"github.com/ritzau/socialgraph/pkg/logging"
)

// Debouncer batches rapid file system events so an editor save triggers one re-run
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer. A batch is flushed once no
// event has arrived for quietPeriod, or maxWait after its first event.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 4),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Debouncer) run(ctx context.Context) {
	defer close(d.output)

	var (
		quiet, deadline *time.Timer
		quietC          <-chan time.Time
		deadlineC       <-chan time.Time
		paths           []string
		seen            = make(map[string]bool)
		eventCount      int
	)

	stop := func() {
		if quiet != nil {
			quiet.Stop()
		}
		if deadline != nil {
			deadline.Stop()
		}
		quietC, deadlineC = nil, nil
	}

	flush := func() bool {
		stop()
		if eventCount == 0 {
			return true
		}

		logging.Debug("flushing accumulated events", "count", eventCount)
		ev := ChangeEvent{Paths: paths, Timestamp: time.Now()}
		paths = nil
		seen = make(map[string]bool)
		eventCount = 0

		select {
		case d.output <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				return
			}

			for _, p := range event.Paths {
				if !seen[p] {
					seen[p] = true
					paths = append(paths, p)
				}
			}
			eventCount++

			if quiet == nil {
				quiet = time.NewTimer(d.quietPeriod)
			} else {
				quiet.Reset(d.quietPeriod)
			}
			quietC = quiet.C

			if deadlineC == nil {
				if deadline == nil {
					deadline = time.NewTimer(d.maxWait)
				} else {
					deadline.Reset(d.maxWait)
				}
				deadlineC = deadline.C
			}

		case <-quietC:
			if !flush() {
				return
			}

		case <-deadlineC:
			if !flush() {
				return
			}
		}
	}
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
