// Package diag serves the simulator's diagnostics HTTP endpoints:
// health, Prometheus metrics, a JSON state snapshot, retained logs,
// and a websocket stream of bus events.
package diag

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eecsim-go/event"
	"eecsim-go/logx"
	"eecsim-go/x/timex"
)

// StateFunc returns the snapshot served at /api/state. It runs on the
// request goroutine, so implementations must do their own locking.
type StateFunc func() any

type Server struct {
	log    *logx.Logger
	reg    *prometheus.Registry
	state  StateFunc
	router *chi.Mux
	hub    *hub
}

func NewServer(log *logx.Logger, reg *prometheus.Registry, state StateFunc) *Server {
	s := &Server{
		log:    log,
		reg:    reg,
		state:  state,
		router: chi.NewRouter(),
		hub:    newHub(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}).ServeHTTP)
	s.router.Get("/api/state", s.handleState)
	s.router.Get("/api/log", s.handleLog)
	s.router.Get("/ws", s.handleWS)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Attach subscribes the server to every event kind so connected
// websocket clients see the bus traffic.
func (s *Server) Attach(bus *event.Bus) error {
	for k := event.Kind(0); k < event.KindCount; k++ {
		if err := bus.Subscribe(k, "diag", s.onEvent, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) onEvent(kind event.Kind, data *event.Payload, _ any) {
	we := wireEvent{Kind: kind.String(), AtMs: timex.NowMs()}
	if data != nil {
		we.Channel = data.Channel
		we.Raw = data.Raw
		we.Value = data.Value
		we.Button = data.Button
		we.Pressed = data.Pressed
		we.Num = data.Num
		we.Str = data.Str
	}
	s.hub.broadcast(we)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var snap any
	if s.state != nil {
		snap = s.state()
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.log.Debugf("diag: state encode: %v", err)
	}
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	type line struct {
		Level string    `json:"level"`
		Msg   string    `json:"msg"`
		At    time.Time `json:"at"`
	}
	entries := s.log.Recent(50)
	out := make([]line, 0, len(entries))
	for _, e := range entries {
		out = append(out, line{Level: e.Level.String(), Msg: e.Msg, At: e.At})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := (&websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}).Upgrade(w, r, nil)
	if err != nil {
		s.log.Debugf("diag: ws upgrade: %v", err)
		return
	}
	c := s.hub.add(conn)
	defer s.hub.remove(c)

	// reader loop only notices close; clients do not send
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.hub.remove(c)
				return
			}
		}
	}()

	for we := range c.send {
		if err := conn.WriteJSON(we); err != nil {
			return
		}
	}
}
