// Package api serves a sheet over HTTP for `xl serve`.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/codefionn/xl/internal/consts"
	"github.com/codefionn/xl/internal/formula"
	"github.com/codefionn/xl/internal/grid"
	"github.com/codefionn/xl/internal/logger"
)

// Options configures a Server.
type Options struct {
	Addr string
	// Runner executes SHELL formulas. SHELL stays disabled when nil.
	Runner formula.ShellRunner
	// Memoize caches formula results between requests.
	Memoize bool
}

// Server exposes one sheet. All sheet access holds mu.
type Server struct {
	opts   Options
	router *httprouter.Router
	hub    *Hub
	log    *logger.Logger

	mu     sync.Mutex
	sheet  *grid.Sheet
	engine *formula.Engine

	httpServer *http.Server
	upgrader   websocket.Upgrader
}

// NewServer creates a server for sheet.
func NewServer(sheet *grid.Sheet, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = consts.DefaultServerAddr
	}
	s := &Server{
		opts:   opts,
		router: httprouter.New(),
		hub:    NewHub(),
		log:    logger.Global().WithPrefix("api"),
		sheet:  sheet,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	var engineOpts []formula.Option
	if opts.Memoize {
		engineOpts = append(engineOpts, formula.WithMemo())
	}
	s.engine = formula.New(sheet, engineOpts...)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/api/sheet", s.handleSheet)
	s.router.GET("/api/cells/:ref", s.handleGetCell)
	s.router.PUT("/api/cells/:ref", s.handlePutCell)
	s.router.POST("/api/eval", s.handleEval)
	s.router.GET("/ws", s.handleWebSocket)
}

// Handler is the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Hub is the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// ready, when non-nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, ready chan<- string) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln, ready)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, ready chan<- string) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: consts.ServerReadHeaderTimeout,
		ErrorLog:          logger.NewStdLogger(s.log, slog.LevelWarn),
	}

	go s.hub.Run()
	defer s.hub.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", ln.Addr())
		errCh <- s.httpServer.Serve(ln)
	}()
	if ready != nil {
		ready <- ln.Addr().String()
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), consts.ServerShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("failed to upgrade websocket: %v", err)
		return
	}
	client := NewClient(s.hub, conn, s.handleMessage)
	s.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// handleMessage answers websocket get and set requests.
func (s *Server) handleMessage(msg *Message) *Message {
	switch msg.Type {
	case MessageTypeGet:
		cell, err := s.getCell(msg.Ref)
		if err != nil {
			return &Message{Type: MessageTypeError, Ref: msg.Ref, Error: err.Error()}
		}
		return &Message{Type: MessageTypeCell, Ref: cell.Ref, Raw: cell.Raw, Value: cell.Value}
	case MessageTypeSet:
		if _, err := s.setCell(context.Background(), msg.Ref, msg.Raw); err != nil {
			return &Message{Type: MessageTypeError, Ref: msg.Ref, Error: err.Error()}
		}
		// The broadcast already reaches this client.
		return nil
	default:
		return &Message{Type: MessageTypeError, Error: fmt.Sprintf("unknown message type %q", msg.Type)}
	}
}
