package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/jgresham/based-poker/internal/randutil"
)

// Server owns the WebSocket transport and the set of authoritative tables.
// All game semantics live in internal/engine; the server's job is to
// serialize each client's requests onto the right table and broadcast the
// resulting snapshots.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger
	clock    quartz.Clock

	mu           sync.RWMutex
	connections  map[*Connection]bool
	tables       map[string]*Table // by table ID
	tablesByName map[string]*Table // by configured name

	register   chan *Connection
	unregister chan *Connection
}

// NewServer creates a server and its tables from configuration
func NewServer(cfg *Config, logger *log.Logger, clock quartz.Clock) *Server {
	s := &Server{
		addr: cfg.ListenAddress(),
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:       logger.WithPrefix("server"),
		clock:        clock,
		connections:  make(map[*Connection]bool),
		tables:       make(map[string]*Table),
		tablesByName: make(map[string]*Table),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
	}

	for _, tc := range cfg.Tables {
		table := NewTable(tc, logger, clock, randutil.New(time.Now().UnixNano()))
		table.SetSnapshotHandler(s.broadcastSnapshot)
		s.tables[table.ID] = table
		s.tablesByName[tc.Name] = table
		s.logger.Info("Created table", "id", table.ID, "name", tc.Name,
			"stakes", tc.SmallBlind, "bigBlind", tc.BigBlind, "maxPlayers", tc.MaxPlayers)
	}

	return s
}

// Table resolves a table by ID or by configured name
func (s *Server) Table(ref string) *Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tables[ref]; ok {
		return t
	}
	return s.tablesByName[ref]
}

// Start runs the server until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	httpServer := &http.Server{Addr: s.addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.run(ctx)
		return nil
	})
	g.Go(func() error {
		s.logger.Info("Listening", "addr", s.addr)
		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// run handles connection lifecycle
func (s *Server) run(ctx context.Context) {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, ok := s.connections[conn]
			if ok {
				delete(s.connections, conn)
			}
			total := len(s.connections)
			s.mu.Unlock()
			if ok {
				// Free the seat so the hand can finish without them
				if table := s.Table(conn.TableID()); table != nil {
					if snap, err := table.Leave(conn.ClientID); err == nil && snap != nil {
						s.broadcastSnapshot(*snap)
					}
				}
				_ = conn.Close()
			}
			s.logger.Info("Client disconnected", "total", total)

		case <-ctx.Done():
			s.mu.Lock()
			for conn := range s.connections {
				_ = conn.Close()
			}
			s.connections = make(map[*Connection]bool)
			s.mu.Unlock()
			return
		}
	}
}

// broadcastSnapshot sends a table snapshot to every connection seated at
// or watching that table
func (s *Server) broadcastSnapshot(snap SnapshotData) {
	msg, err := NewMessage(TypeSnapshot, snap)
	if err != nil {
		s.logger.Error("Failed to encode snapshot", "error", err)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn := range s.connections {
		if conn.TableID() == snap.TableID {
			conn.Send(msg)
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(ws, s, s.logger)
	s.register <- conn
	conn.Start()

	go func() {
		<-conn.Done()
		s.unregister <- conn
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
