package ssepoll

// Handler is a pluggable unit of work polled by a session once per cycle.
//
// Check is a readiness probe and must be free of side effects, it will be
// called every cycle whether or not data is produced. Update is called only
// after Check returns true, it produces the payload to send and may advance
// internal state (for example a cursor into a data source). An error returned
// from Update terminates the session; the client is expected to reconnect and
// resume from the last delivered event ID.
type Handler interface {
	Check() bool
	Update() (string, error)
}

// HandlerFunc adapts a pair of plain functions to the Handler interface.
func HandlerFunc(check func() bool, update func() (string, error)) Handler {
	return &funcHandler{check: check, update: update}
}

type funcHandler struct {
	check  func() bool
	update func() (string, error)
}

func (h *funcHandler) Check() bool { return h.check() }

func (h *funcHandler) Update() (string, error) { return h.update() }
