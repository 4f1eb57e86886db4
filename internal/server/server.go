package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/standardbeagle/lmi/internal/config"
	"github.com/standardbeagle/lmi/internal/debug"
	"github.com/standardbeagle/lmi/internal/engine"
	lmierrors "github.com/standardbeagle/lmi/internal/errors"
	"github.com/standardbeagle/lmi/internal/types"
	"github.com/standardbeagle/lmi/internal/version"
)

// MeterServer serves meter searches over HTTP and keeps one engine, and so
// one corpus index, alive across requests.
type MeterServer struct {
	engine *engine.Engine
	cfg    *config.Config

	listener     net.Listener
	server       *http.Server
	startTime    time.Time
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	warmCancel   context.CancelFunc
	wg           sync.WaitGroup

	mu      sync.RWMutex
	running bool
	warmErr error
}

// NewMeterServer creates a server for e. cfg supplies the listen address and
// the optional static directory.
func NewMeterServer(e *engine.Engine, cfg *config.Config) (*MeterServer, error) {
	if e == nil {
		return nil, errors.New("server: engine is required")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &MeterServer{
		engine:       e,
		cfg:          cfg,
		startTime:    time.Now(),
		shutdownChan: make(chan struct{}),
	}, nil
}

// Start listens on the configured address, begins building the corpus index
// in the background and serves requests until Shutdown.
func (s *MeterServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	listener, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.Addr, err)
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	warmCtx, cancel := context.WithCancel(context.Background())
	s.warmCancel = cancel
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.warm(warmCtx)
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			debug.LogServer("serve error: %v", err)
		}
	}()

	s.running = true
	debug.LogServer("listening on %s", listener.Addr())
	return nil
}

func (s *MeterServer) warm(ctx context.Context) {
	started := time.Now()
	err := s.engine.Warm(ctx)

	s.mu.Lock()
	s.warmErr = err
	s.mu.Unlock()

	if err != nil {
		debug.LogServer("corpus build failed: %v", err)
		return
	}
	debug.LogServer("corpus %s ready in %v", s.engine.CorpusName(), time.Since(started))
}

// Addr returns the address the server is listening on, or "" before Start.
func (s *MeterServer) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler returns the request router. It is usable without Start.
func (s *MeterServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", s.handlePing)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /count", s.handleCount)
	mux.HandleFunc("POST /hyphenate", s.handleHyphenate)
	mux.HandleFunc("POST /shutdown", s.handleShutdown)
	mux.HandleFunc("GET /fuzzy_search/{corpus}/{query}", s.handleFuzzySearch)

	if dir := s.cfg.Server.StaticDir; dir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(dir)))
	}
	return mux
}

func (s *MeterServer) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PingResponse{
		Uptime:  time.Since(s.startTime).Seconds(),
		Version: version.Version,
		BuildID: version.BuildID(),
	})
}

func (s *MeterServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Status:        s.engine.Status(),
		UptimeSeconds: time.Since(s.startTime).Seconds(),
	}
	s.mu.RLock()
	if s.warmErr != nil {
		resp.Error = s.warmErr.Error()
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *MeterServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	resp := SearchResponse{Query: req.Query}
	query, err := s.engine.Query(req.Query)
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, statusFor(err), resp)
		return
	}
	resp.Digits = query.Digits

	tables, err := s.engine.SearchCorpusWith(r.Context(), req.Query, engine.SearchParams{
		ScoreCutoff: req.ScoreCutoff,
		MaxResults:  req.MaxResults,
	})
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, statusFor(err), resp)
		return
	}
	resp.Tables = tables
	writeJSON(w, http.StatusOK, resp)
}

// handleFuzzySearch answers the older path-style route with aligned word pairs.
func (s *MeterServer) handleFuzzySearch(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("corpus") != s.engine.CorpusName() {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("unknown corpus %q", r.PathValue("corpus"))})
		return
	}

	tables, err := s.engine.SearchCorpus(r.Context(), r.PathValue("query"))
	if err != nil {
		writeJSON(w, statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, legacyTables(tables))
}

func legacyTables(tables []types.MatchTable) [][]LegacyRow {
	out := make([][]LegacyRow, len(tables))
	for i, t := range tables {
		rows := make([]LegacyRow, len(t.Rows))
		for j, row := range t.Rows {
			rows[j] = LegacyRow{
				WordLong:      row.CorpusWord,
				WordShort:     row.QueryWord,
				SyllableLong:  row.CorpusCount,
				SyllableShort: row.QueryCount,
			}
		}
		out[i] = rows
	}
	return out
}

func (s *MeterServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	words, err := s.engine.Analyze(req.Text)
	if err != nil {
		writeJSON(w, statusFor(err), AnalyzeResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, AnalyzeResponse{Words: words})
}

func (s *MeterServer) handleCount(w http.ResponseWriter, r *http.Request) {
	var req CountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	total, words := s.engine.Count(req.Text)
	writeJSON(w, http.StatusOK, CountResponse{Total: total, Words: words})
}

func (s *MeterServer) handleHyphenate(w http.ResponseWriter, r *http.Request) {
	var req HyphenateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Word == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, HyphenateResponse{
		Word:       req.Word,
		Hyphenated: s.engine.Hyphenate(req.Word, req.Parts),
	})
}

func (s *MeterServer) handleShutdown(w http.ResponseWriter, r *http.Request) {
	var req ShutdownRequest
	// An empty body is a plain shutdown request.
	_ = json.NewDecoder(r.Body).Decode(&req)

	writeJSON(w, http.StatusOK, ShutdownResponse{Success: true, Message: "Server shutting down"})

	go func() {
		time.Sleep(100 * time.Millisecond)
		s.shutdownOnce.Do(func() { close(s.shutdownChan) })
	}()
}

// Wait blocks until a client requests shutdown.
func (s *MeterServer) Wait() {
	<-s.shutdownChan
}

// Done is closed when a client requests shutdown.
func (s *MeterServer) Done() <-chan struct{} {
	return s.shutdownChan
}

// Shutdown stops serving, cancels a corpus build still in progress and waits
// for background work to finish.
func (s *MeterServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	srv := s.server
	cancel := s.warmCancel
	s.mu.Unlock()

	cancel()
	err := srv.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.shutdownOnce.Do(func() { close(s.shutdownChan) })
	debug.LogServer("server stopped")
	return err
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		debug.LogServer("encode response: %v", err)
	}
}

func statusFor(err error) int {
	switch {
	case lmierrors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
