package ssepoll

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Event holds data for single event in SSE stream.
type Event struct {
	ID    int64
	Event string
	Data  string
}

// writeEvent dumps single event in SSE wire format to an io.Writer. Multi-line
// payloads produce one "data:" line per input line. Flushing should be
// performed by the caller.
func writeEvent(w io.Writer, e *Event) error {
	if _, err := fmt.Fprintf(w, "id: %d\n", e.ID); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: %s\n", e.Event); err != nil {
		return err
	}

	for _, line := range strings.Split(e.Data, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "\n")
	return err
}

// writeComment dumps a comment-only frame. SSE clients ignore it but it
// resets idle timers on proxies between server and client.
func writeComment(w io.Writer, token string) error {
	_, err := fmt.Fprintf(w, ": %s\n\n", token)
	return err
}

// writeRetry dumps a retry directive advising the client how long to wait
// before reconnecting.
func writeRetry(w io.Writer, d time.Duration) error {
	_, err := fmt.Fprintf(w, "retry: %d\n", d/time.Millisecond)
	return err
}
