package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/gostp/InputParameters"
	"github.com/notargets/gostp/metrics"
	"github.com/notargets/gostp/model_problems/RAC"
)

// Server runs one transient simulation at a time and exposes its history,
// summary, live steps and metrics.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	base     *InputParameters.InputParameters
	hub      *Hub
	ctx      context.Context

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	input   *InputParameters.InputParameters
	history *RAC.History
	runErr  error
	done    chan struct{}
}

// NewServer serves runs based on base. A POST to /run may replace any part
// of it.
func NewServer(ctx context.Context, addr string, base *InputParameters.InputParameters) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		base: base,
		hub:  NewHub(),
		ctx:  ctx,
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/run", s.startRunHandler).Methods("POST")
	router.HandleFunc("/run", s.stopRunHandler).Methods("DELETE")
	router.HandleFunc("/history", s.historyHandler).Methods("GET")
	router.HandleFunc("/summary", s.summaryHandler).Methods("GET")
	router.HandleFunc("/ws", s.serveWs)
	router.Handle("/metrics", promhttp.Handler())
	return router
}

func (s *Server) Serve() error {
	srv := &http.Server{Addr: s.addr, Handler: s.Router()}
	go func() {
		<-s.ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	log.Infof("serving on %s", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// startRunHandler reads an optional YAML or JSON body layered over the base
// input and starts the run. With ?wait=true it answers with the summary
// once the run is over, otherwise with 202 straight away.
func (s *Server) startRunHandler(w http.ResponseWriter, r *http.Request) {
	ip := *s.base
	ip.MassFlow = append([]InputParameters.FlowSegment{}, s.base.MassFlow...)
	if s.base.RAC.Overrides != nil {
		ov := *s.base.RAC.Overrides
		ip.RAC.Overrides = &ov
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(body) != 0 {
		if err = ip.Parse(body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	var cfg *RAC.Config
	if cfg, err = ip.BuildConfig(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, errors.New("a simulation is already running"))
		return
	}
	var (
		ctx, cancel = context.WithCancel(s.ctx)
		done        = make(chan struct{})
	)
	s.running, s.cancel, s.input, s.done = true, cancel, &ip, done
	s.history, s.runErr = nil, nil
	s.mu.Unlock()

	cfg.OnStep = func(sr RAC.StepResult) {
		metrics.UpdateStep(sr)
		s.hub.Broadcast(Msg{Type: "step", Step: &sr})
	}
	metrics.SetStatus(RAC.Running)
	go s.run(ctx, cancel, cfg, done)

	if r.URL.Query().Get("wait") == "true" {
		select {
		case <-done:
		case <-r.Context().Done():
			return
		}
		s.summaryHandler(w, r)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": RAC.Running.String(), "title": ip.Title})
}

func (s *Server) run(ctx context.Context, cancel context.CancelFunc, cfg *RAC.Config, done chan struct{}) {
	defer close(done)
	defer cancel()
	h, err := RAC.Simulate(ctx, cfg)
	msg := Msg{Type: "status"}
	if h != nil {
		metrics.SetStatus(h.Status)
		msg.Status = h.Status.String()
	} else {
		metrics.SetStatus(RAC.Failed)
		msg.Status = RAC.Failed.String()
	}
	if err != nil {
		msg.Message = err.Error()
	}
	s.hub.Broadcast(msg)
	s.mu.Lock()
	s.history, s.runErr, s.running = h, err, false
	s.mu.Unlock()
}

func (s *Server) stopRunHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	running, cancel, done := s.running, s.cancel, s.done
	s.mu.Unlock()
	if !running {
		writeError(w, http.StatusNotFound, errors.New("no simulation is running"))
		return
	}
	cancel()
	<-done
	w.WriteHeader(http.StatusNoContent)
}

// snapshot returns the finished history, or an HTTP status explaining why
// there is none
func (s *Server) snapshot() (h *RAC.History, ip *InputParameters.InputParameters, runErr error, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.running:
		return nil, nil, nil, http.StatusConflict
	case s.history == nil:
		return nil, nil, s.runErr, http.StatusNotFound
	}
	return s.history, s.input, s.runErr, http.StatusOK
}

type historyResponse struct {
	Title   string       `json:"title"`
	History *RAC.History `json:"history"`
	Error   string       `json:"error,omitempty"`
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	h, ip, runErr, status := s.snapshot()
	if status != http.StatusOK {
		writeError(w, status, errors.New(http.StatusText(status)))
		return
	}
	resp := historyResponse{Title: ip.Title, History: h}
	if runErr != nil {
		resp.Error = runErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type summaryResponse struct {
	Title   string      `json:"title"`
	Summary RAC.Summary `json:"summary"`
	Error   string      `json:"error,omitempty"`
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	h, ip, runErr, status := s.snapshot()
	if status != http.StatusOK {
		writeError(w, status, errors.New(http.StatusText(status)))
		return
	}
	resp := summaryResponse{Title: ip.Title, Summary: h.Summary(ip.PIn, ip.Irradiation.Power)}
	if runErr != nil {
		resp.Error = runErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// serveWs upgrades the connection and streams every step of the runs that
// follow.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("websocket upgrade: %v", err)
		return
	}
	c := s.hub.register(conn)
	go s.hub.readPump(c)
}
