// Package ssepoll is a library for serving SSE streams by polling.
//
// Unlike publish/subscribe SSE libraries this package drives the stream from
// the server side: a session owns a set of event handlers and repeatedly asks
// each one "is new data ready?", framing and flushing whatever they produce.
// It handles keep-alive comments, client reconnect hints, bounded connection
// lifetime and event ID continuity across reconnects.
//
// Typical usage of this package is:
//	* Create a Session from the inbound request with NewSession, it picks up
//	  the Last-Event-ID header so event IDs continue where the previous
//	  connection left off.
//	* Register one or more Handler implementations with AddEventListener.
//	* Call Respond from the HTTP handler, it writes the SSE response until
//	  the handler set empties or the configured execution limit passes.
//	* Handlers that need to remember state between reconnects can use the
//	  storage subpackage.
//
// A session that hits its execution limit ends cleanly; the browser's native
// SSE reconnect behavior starts a fresh session that resumes from the last
// delivered ID.
package ssepoll
