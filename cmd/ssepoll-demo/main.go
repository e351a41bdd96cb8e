// Command ssepoll-demo serves an SSE endpoint that emits a counter event once
// per second. The counter position is persisted through a storage mechanism,
// so it keeps counting across client reconnects and, with the sqlite backend,
// across server restarts.
//
// Test with:
//
//	curl http://localhost:8000/events
//	curl -H "Last-Event-ID: 5" http://localhost:8000/events
package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ssepoll/ssepoll"
	"github.com/ssepoll/ssepoll/storage"
)

type tickPayload struct {
	Msg string `json:"msg"`
	Val int64  `json:"val"`
}

// counterHandler emits one event per second, remembering its position in a
// storage mechanism under a fixed key.
type counterHandler struct {
	store storage.Mechanism
	last  time.Time
}

func (h *counterHandler) Check() bool {
	return time.Since(h.last) >= time.Second
}

func (h *counterHandler) Update() (string, error) {
	var val int64
	if raw, ok, err := h.store.Get("counter"); err != nil {
		return "", err
	} else if ok {
		val, _ = strconv.ParseInt(string(raw), 10, 64)
	}
	val++
	if err := h.store.Set("counter", []byte(strconv.FormatInt(val, 10))); err != nil {
		return "", err
	}
	h.last = time.Now()

	data, err := json.Marshal(tickPayload{Msg: "ticks since start", Val: val})
	return string(data), err
}

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	backend := flag.String("storage", "cache", "storage mechanism name (cache, file, sqlite)")
	dir := flag.String("dir", "/tmp/ssepoll-demo", "directory for the file mechanism")
	dsn := flag.String("dsn", "/tmp/ssepoll-demo.db", "data source name for the sqlite mechanism")
	flag.Parse()

	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)

	store, err := storage.Resolve(*backend, map[string]string{
		"dir": *dir,
		"dsn": *dsn,
	})
	if err != nil {
		log.WithError(err).Fatal("resolving storage mechanism")
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/events", func(w http.ResponseWriter, req *http.Request) {
		session := ssepoll.NewSession(req)
		session.SetLogger(log)
		if err := session.Config().Set(ssepoll.KeyAllowCORS, true); err != nil {
			log.WithError(err).Error("configuring session")
			return
		}
		session.AddEventListener("counter", &counterHandler{store: store})

		if err := session.Respond(w); err != nil {
			log.WithError(err).Warn("sse session failed")
		}
	})

	log.WithField("addr", *addr).Info("listening")
	log.Fatal(http.ListenAndServe(*addr, r))
}
