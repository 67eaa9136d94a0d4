package socket

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"chat-relay/contract"
	"chat-relay/sink"
)

// ServerConfig carries the transport tunables, wired from the process
// configuration.
type ServerConfig struct {
	BufferSize      int
	DeliveryTimeout time.Duration
	WriteTimeout    time.Duration
	PongTimeout     time.Duration
	MaxMessageSize  int64
}

// Server accepts websocket connections and runs one pump pair per
// connection. Clients of any origin are accepted; authentication happens
// in-band through the gate, not at upgrade time.
type Server struct {
	upgrader websocket.Upgrader
	registry contract.IRegistry
	router   *Router
	config   ServerConfig
	log      *slog.Logger
}

func NewServer(log *slog.Logger, registry contract.IRegistry, router *Router, config ServerConfig) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		registry: registry,
		router:   router,
		config:   config,
		log:      log,
	}
}

// ServeHTTP upgrades the request and blocks on the read pump until the
// connection dies. Registration happens before the pumps start so fan-out
// can reach the connection from its first frame.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	out := sink.NewBufferedSink(s.log, s.config.BufferSize, s.config.DeliveryTimeout)
	conn := newConn(ws, out, s.log, s.config.WriteTimeout, s.config.PongTimeout)

	s.registry.Register(conn.id, out)
	s.log.Debug("connection accepted", "conn_id", conn.id, "remote", r.RemoteAddr)

	defer func() {
		s.registry.Remove(conn.id)
		s.log.Debug("connection closed", "conn_id", conn.id)
	}()

	go conn.writePump()
	conn.readPump(r.Context(), s.router, s.config.MaxMessageSize)
}

// Listen runs the websocket endpoint until the context is canceled.
func (s *Server) Listen(ctx context.Context, host string, port int) error {
	mux := http.NewServeMux()
	mux.Handle("/", s)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: mux,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe()
	}()

	s.log.Info("relay listening", "addr", server.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
