package vessel

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Sender receives telemetry messages; *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Feed plays a Profile in real time for demo mode.
type Feed struct {
	profile  Profile
	interval time.Duration
	program  Sender

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewFeed creates a feed emitting one snapshot per interval.
func NewFeed(p Profile, interval time.Duration) *Feed {
	return &Feed{
		profile:  p,
		interval: interval,
	}
}

// Start begins the feed. Snapshots are delivered via p.Send.
func (f *Feed) Start(p Sender) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.running {
		return nil
	}
	f.program = p
	f.running = true

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.done = make(chan struct{})

	go f.loop(ctx)
	return nil
}

func (f *Feed) loop(ctx context.Context) {
	defer close(f.done)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	t := 0.0
	f.emit(t)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t += f.interval.Seconds()
			f.emit(t)
		}
	}
}

func (f *Feed) emit(t float64) {
	if f.program != nil {
		f.program.Send(SignalMsg{Signal: f.profile.At(t)})
	}
}

// Stop halts the feed and waits for the loop to exit.
func (f *Feed) Stop() {
	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		return
	}
	f.running = false
	cancel, done := f.cancel, f.done
	f.mu.Unlock()

	cancel()
	<-done
}
