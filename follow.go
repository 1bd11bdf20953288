package adclient

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"9fans.net/go/plan9"
)

// Follower is a lazy, infinite stream of lines from one of the editor's
// tailing files (log, or a buffer's event file). A follower delivers only
// lines produced after it was opened; there is no replay and no way to
// rewind. The only way to stop a blocked Next is Close, which aborts the
// underlying read.
type Follower struct {
	path string
	fid  Fid
	br   *bufio.Reader

	mu     sync.Mutex
	closed bool
}

// FollowLog opens a tailing stream over the editor's event log. Each line
// is one buffer lifecycle or edit event; the payload format is owned by
// the editor and passed through opaquely.
func (c *Client) FollowLog() (*Follower, error) {
	return c.follow("log")
}

// FollowEvents opens a tailing stream over buffers/<id>/event. While the
// stream is open the editor routes the buffer's input events to it instead
// of handling them itself; see RunEventFilter for the write-back loop.
func (c *Client) FollowEvents(id string) (*Follower, error) {
	return c.follow(bufferFile(id, "event"))
}

func (c *Client) follow(path string) (*Follower, error) {
	fid, err := c.fsys.Open(path, plan9.OREAD)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Follower{
		path: path,
		fid:  fid,
		br:   bufio.NewReader(ioReader{fid}),
	}, nil
}

// Next blocks until the editor produces the next line and returns it
// without its trailing newline. After Close it returns ErrFollowerClosed.
func (f *Follower) Next() (string, error) {
	line, err := f.br.ReadString('\n')
	if err != nil {
		if f.isClosed() {
			return "", ErrFollowerClosed
		}
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", fmt.Errorf("read %s: %w", f.path, err)
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// Close stops the stream, unblocking any in-flight Next.
func (f *Follower) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()

	return f.fid.Close()
}

func (f *Follower) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// WriteEvent passes an event line back to the editor for it to handle as
// if no filter were attached to the buffer.
func (c *Client) WriteEvent(id, event string) error {
	if !strings.HasSuffix(event, "\n") {
		event += "\n"
	}
	return c.WriteBufferFile(id, "event", []byte(event))
}

// Outcome is an EventFilter's decision for a single event.
type Outcome int

const (
	// Passthrough hands the event back to the editor unmodified.
	Passthrough Outcome = iota
	// Handled consumes the event; the editor never sees it.
	Handled
	// Exit consumes the event and stops the filter loop.
	Exit
)

// EventFilter inspects one event line and decides its outcome. Returning a
// non-nil error stops the loop and propagates the error.
type EventFilter func(event string) (Outcome, error)

// RunEventFilter streams the given buffer's events through filter until it
// returns Exit or an error, writing Passthrough events back to the editor.
// While the loop runs the editor delegates the buffer's event handling to
// this client, so a filter that consumes everything effectively freezes
// the buffer.
func (c *Client) RunEventFilter(id string, filter EventFilter) error {
	f, err := c.FollowEvents(id)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		event, err := f.Next()
		if err != nil {
			return err
		}

		outcome, err := filter(event)
		if err != nil {
			return err
		}

		switch outcome {
		case Passthrough:
			if err := c.WriteEvent(id, event); err != nil {
				return err
			}
		case Handled:
			// consumed
		case Exit:
			return nil
		default:
			return fmt.Errorf("event filter returned unknown outcome %d", outcome)
		}
	}
}

// BodyWriter returns a writer that appends everything written to it to the
// given buffer's body over a single open handle. Useful for streaming the
// output of a long-running command into a buffer.
func (c *Client) BodyWriter(id string) (io.WriteCloser, error) {
	path := bufferFile(id, "body")
	fid, err := c.fsys.Open(path, plan9.OWRITE)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &bodyWriter{fid: fid}, nil
}

type bodyWriter struct {
	fid Fid
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	if err := writeAll(w.fid, b); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (w *bodyWriter) Close() error {
	return w.fid.Close()
}
