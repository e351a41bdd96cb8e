package ssepoll

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LastEventIDHeader is the request header SSE clients use to report the last
// event ID they received before reconnecting.
const LastEventIDHeader = "Last-Event-ID"

var errFlusherIface = errors.New("http.ResponseWriter does not implement http.Flusher interface")

// Session is a per-connection SSE streaming session. It owns the event ID
// counter, the registered handler set and the polling loop that turns handler
// output into SSE frames. A single session serves a single client connection
// and is driven by a single goroutine; create a new session for every inbound
// request.
type Session struct {
	cfg      *Config
	nextID   int64
	handlers map[string]Handler
	order    []string

	// injected for tests
	now   func() time.Time
	sleep func(time.Duration)
	token func() string

	log logrus.FieldLogger
}

// NewSession creates a session for a single inbound SSE request. The
// Last-Event-ID header, if present, sets the starting point of the event ID
// sequence so that IDs continue without gaps across client reconnects; its
// presence also fixes the read-only is_reconnect configuration flag. Passing
// a nil request starts a fresh session with IDs from 1.
func NewSession(r *http.Request) *Session {
	var lastID int64
	var reconnect bool
	if r != nil {
		if raw := r.Header.Get(LastEventIDHeader); raw != "" {
			reconnect = true
			lastID, _ = strconv.ParseInt(raw, 10, 64)
		}
	}

	return &Session{
		cfg:      newConfig(reconnect),
		nextID:   lastID,
		handlers: make(map[string]Handler),
		now:      time.Now,
		sleep:    time.Sleep,
		token:    uuid.NewString,
		log:      logrus.StandardLogger(),
	}
}

// Config returns the session configuration. Callers adjust stream behavior by
// setting the recognized keys before calling Respond.
func (s *Session) Config() *Config {
	return s.cfg
}

// SetLogger replaces the logger used for session lifecycle messages. By
// default the logrus standard logger is used.
func (s *Session) SetLogger(log logrus.FieldLogger) {
	s.log = log
}

// AddEventListener registers handler under the given event name. Events
// produced by the handler are sent with this name as the SSE event field.
// Registering a name that already exists replaces the handler but keeps its
// position in the polling order. Handlers may be added at any time, including
// from another handler's Update call; the polling loop picks them up on the
// next cycle.
func (s *Session) AddEventListener(name string, handler Handler) {
	if _, ok := s.handlers[name]; !ok {
		s.order = append(s.order, name)
	}
	s.handlers[name] = handler
}

// RemoveEventListener unregisters the handler under the given event name.
// Removing an unknown name is a no-op. Once the last handler is removed the
// polling loop ends the stream on its next cycle.
func (s *Session) RemoveEventListener(name string) {
	if _, ok := s.handlers[name]; !ok {
		return
	}
	delete(s.handlers, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// HasEventListener reports whether any handlers are registered. The polling
// loop keeps running for as long as this is true.
func (s *Session) HasEventListener() bool {
	return len(s.handlers) > 0
}

// GetEventListeners returns the live handler map, not a snapshot. Mutations
// are observed by the polling loop on its next cycle. Prefer
// AddEventListener/RemoveEventListener which keep the polling order in sync.
func (s *Session) GetEventListeners() map[string]Handler {
	return s.handlers
}

// NewID mints the next event ID. Every event written to the wire gets its ID
// from here, which is what makes the sequence strictly increasing and
// continuous across reconnects. Calling it outside of an Update cycle will
// leave a gap in the stream.
func (s *Session) NewID() int64 {
	s.nextID++
	return s.nextID
}

// Respond writes a complete SSE response for this session. It sets the SSE
// response headers, disables proxy buffering and runs the polling loop until
// it terminates. Conditional headers are controlled by the allow_cors and
// use_chunked_encoding configuration keys.
//
// Respond panics if w does not implement http.Flusher.
func (s *Session) Respond(w http.ResponseWriter) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		panic(errFlusherIface)
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Accel-Buffering", "no")
	if s.cfg.boolean(KeyAllowCORS) {
		h.Set("Access-Control-Allow-Origin", "*")
	}
	if s.cfg.boolean(KeyUseChunkedEncoding) {
		h.Set("Transfer-Encoding", "chunked")
	}

	return s.Stream(w, flusher.Flush)
}

// Stream runs the polling loop against a raw writer and flush callback. This
// is the host-independent core of Respond for environments that do not hand
// out an http.ResponseWriter. Each emitted frame is flushed immediately so
// data reaches the client without sitting in buffering layers.
//
// The loop ends cleanly (nil error) when the handler set becomes empty or
// when the exec_limit wall-clock bound passes. Write errors and handler
// errors are fatal: they terminate the loop and are returned as-is, no frame
// is retried. The client's native SSE reconnect behavior is the recovery
// path for both.
func (s *Session) Stream(w io.Writer, flush func()) error {
	start := s.now()
	log := s.log.WithFields(logrus.Fields{
		"reconnect": s.cfg.boolean(KeyIsReconnect),
		"last_id":   s.nextID,
	})
	log.Debug("sse session started")

	if err := writeRetry(w, s.cfg.clientReconnect()); err != nil {
		return err
	}
	flush()

	for {
		if !s.HasEventListener() {
			log.Debug("sse session ended: no handlers")
			return nil
		}

		if onKeepAliveBoundary(s.now().Sub(start), s.cfg.keepAliveTime()) {
			if err := writeComment(w, s.token()); err != nil {
				return err
			}
			flush()
		}

		// Iterate over a copy of the polling order: handlers may
		// mutate the registry from Update. Additions are honored next
		// cycle, removals are honored immediately via the map lookup.
		for _, name := range append([]string(nil), s.order...) {
			handler, ok := s.handlers[name]
			if !ok || !handler.Check() {
				continue
			}

			data, err := handler.Update()
			if err != nil {
				log.WithField("event", name).WithError(err).Error("handler failed, ending session")
				return fmt.Errorf("handler %q: %w", name, err)
			}

			event := Event{
				ID:    s.NewID(),
				Event: name,
				Data:  data,
			}
			if err := writeEvent(w, &event); err != nil {
				return err
			}
			flush()
		}

		if limit := s.cfg.execLimit(); limit > 0 && s.now().Sub(start) > limit {
			log.Debug("sse session ended: execution limit")
			return nil
		}

		s.sleep(s.cfg.sleepTime())
	}
}
