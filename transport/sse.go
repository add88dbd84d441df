package transport

import (
	"bufio"
	"io"
	"strings"
)

// Event is a single server-sent event decoded from a text/event-stream body.
type Event struct {
	// Name is the event type from the "event:" field. Empty for the default
	// "message" event.
	Name string

	// Data is the event payload, with multi-line data fields joined by newlines.
	Data string

	// ID is the last-event-id from the "id:" field, if the server sets one.
	ID string
}

// SSEReader incrementally decodes server-sent events from a stream body.
// It implements the subset of the SSE wire format the AEGIS backend emits:
// "event", "data", and "id" fields, comment lines, and blank-line dispatch.
type SSEReader struct {
	scanner *bufio.Scanner
}

// NewSSEReader wraps a response body in an SSE decoder. The caller retains
// ownership of the reader and must close it when done.
func NewSSEReader(r io.Reader) *SSEReader {
	scanner := bufio.NewScanner(r)
	// Event payloads can carry whole graph fragments; allow up to 1 MiB lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &SSEReader{scanner: scanner}
}

// Next returns the next event from the stream. It blocks until a full event
// has been received, and returns io.EOF when the stream ends.
func (r *SSEReader) Next() (Event, error) {
	var (
		event    Event
		dataSeen bool
		lines    []string
	)

	for r.scanner.Scan() {
		line := r.scanner.Text()

		// Blank line dispatches the accumulated event.
		if line == "" {
			if dataSeen || event.Name != "" {
				event.Data = strings.Join(lines, "\n")
				return event, nil
			}
			continue
		}

		// Comment line.
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			event.Name = value
		case "data":
			dataSeen = true
			lines = append(lines, value)
		case "id":
			event.ID = value
		}
	}

	if err := r.scanner.Err(); err != nil {
		return Event{}, err
	}

	// Dispatch a trailing event that was not terminated by a blank line.
	if dataSeen || event.Name != "" {
		event.Data = strings.Join(lines, "\n")
		return event, nil
	}

	return Event{}, io.EOF
}
