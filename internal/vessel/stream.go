package vessel

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// StreamErrorMsg reports that a telemetry stream ended with an error.
type StreamErrorMsg struct {
	Err error
}

// Decode parses one JSON telemetry line. Absent fields keep real-time,
// powered defaults.
func Decode(line []byte) (Signal, error) {
	sig := Signal{WarpRate: 1, Powered: true}
	if err := json.Unmarshal(line, &sig); err != nil {
		return Signal{}, fmt.Errorf("decoding telemetry: %w", err)
	}
	return sig, nil
}

// Stream reads newline-delimited JSON snapshots from an external source,
// such as a file or pipe written by a flight simulator bridge.
type Stream struct {
	r io.Reader

	mu       sync.Mutex
	running  bool
	done     chan struct{}
	skipped  int
	received int
}

// NewStream wraps r. If r is an io.Closer, Stop closes it.
func NewStream(r io.Reader) *Stream {
	return &Stream{r: r}
}

// Start reads in a goroutine until EOF, an error or Stop.
func (s *Stream) Start(p Sender) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	s.running = true
	s.done = make(chan struct{})

	go s.loop(p)
	return nil
}

func (s *Stream) loop(p Sender) {
	defer close(s.done)

	scanner := bufio.NewScanner(s.r)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		sig, err := Decode(line)
		s.mu.Lock()
		if err != nil {
			// Malformed snapshots are dropped; the next one supersedes them.
			s.skipped++
			s.mu.Unlock()
			continue
		}
		s.received++
		s.mu.Unlock()

		p.Send(SignalMsg{Signal: sig})
	}

	if err := scanner.Err(); err != nil {
		p.Send(StreamErrorMsg{Err: fmt.Errorf("telemetry read error: %w", err)})
	}
}

// Stats reports decoded and dropped line counts.
func (s *Stream) Stats() (received, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.received, s.skipped
}

// Stop closes the source if possible and waits for the reader to exit.
// A stream that was never started still closes its source.
func (s *Stream) Stop() {
	s.mu.Lock()
	running := s.running
	s.running = false
	done := s.done
	s.mu.Unlock()

	if c, ok := s.r.(io.Closer); ok {
		_ = c.Close()
	}
	if running {
		<-done
	}
}

// Done is closed when the reader exits.
func (s *Stream) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
