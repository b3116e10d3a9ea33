package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/core/errors"
	cplxlog "github.com/msto63/cplx/foundation/core/log"
	"github.com/msto63/cplx/foundation/core/validation"
	"github.com/msto63/cplx/foundation/utils/complexx"
	"github.com/msto63/cplx/internal/calc"
	"github.com/msto63/cplx/internal/history"
	"github.com/msto63/cplx/pkg/core/config"
	"github.com/msto63/cplx/pkg/core/health"
	"github.com/msto63/cplx/pkg/core/version"
)

// Config holds server configuration
type Config struct {
	Address        string
	ReadLimit      int64
	PingInterval   time.Duration
	WriteTimeout   time.Duration
	MaxConnections int
	// AllowedOrigins lists browser origins besides the server's own host;
	// "*" allows any origin
	AllowedOrigins []string
	// Format and Precision render the text form of results
	Format    byte
	Precision int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Address:        "127.0.0.1:8765",
		ReadLimit:      64 * 1024,
		PingInterval:   30 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxConnections: 64,
		Format:         'f',
		Precision:      6,
	}
}

// ConfigFromSettings builds the server configuration from settings
func ConfigFromSettings(s *config.Settings) Config {
	return Config{
		Address:        s.ServerAddress(),
		ReadLimit:      s.Server.ReadLimit,
		PingInterval:   s.Server.PingInterval,
		WriteTimeout:   s.Server.WriteTimeout,
		MaxConnections: s.Server.MaxConnections,
		AllowedOrigins: s.Server.AllowedOrigins,
		Format:         s.Output.FormatByte(),
		Precision:      s.Output.FormatPrecision(),
	}
}

// Server exposes an Evaluator over websocket connections
type Server struct {
	cfg       Config
	evaluator *calc.Evaluator
	health    *health.Registry
	logger    *cplxlog.Logger
	upgrader  websocket.Upgrader

	active atomic.Int32
	total  atomic.Int64
	wg     sync.WaitGroup

	mu       sync.Mutex
	conns    map[*connection]struct{}
	shutdown bool
}

// New creates a server. Health checks for the evaluator and the
// connection count are registered; callers may add more via Health.
func New(cfg Config, evaluator *calc.Evaluator, logger *cplxlog.Logger) *Server {
	def := DefaultConfig()
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = def.ReadLimit
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = def.MaxConnections
	}
	if cfg.Format == 0 {
		cfg.Format, cfg.Precision = def.Format, def.Precision
	}
	if logger == nil {
		logger = cplxlog.GetDefault()
	}

	s := &Server{
		cfg:       cfg,
		evaluator: evaluator,
		health:    health.NewRegistry("cplx", version.Toolkit),
		logger:    logger.WithField("component", "server"),
		conns:     make(map[*connection]struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	s.health.Register(health.PingCheck("evaluator", func(ctx context.Context) error {
		add, err := evaluator.Registry().Lookup("add")
		if err != nil {
			return err
		}
		res, err := add.Call(complexx.One, complexx.One)
		if err != nil {
			return err
		}
		if !res.Value.Equal(complexx.FromReal(2)) {
			return errors.NewErrorBuilder(errors.ModuleServer).
				Operation("health").
				Messagef("self test returned %s", res).
				Build()
		}
		return nil
	}))
	s.health.Register(health.ThresholdCheck("connections", func() float64 {
		return float64(s.active.Load()) / float64(s.cfg.MaxConnections) * 100
	}, 80, 99))

	return s
}

// SetOutput changes how results are rendered for subsequent evaluations
func (s *Server) SetOutput(format byte, precision int) {
	s.mu.Lock()
	s.cfg.Format, s.cfg.Precision = format, precision
	s.mu.Unlock()
}

func (s *Server) output() (byte, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Format, s.cfg.Precision
}

// Health returns the health check registry
func (s *Server) Health() *health.Registry {
	return s.health
}

// ActiveConnections returns the number of open websocket connections
func (s *Server) ActiveConnections() int {
	return int(s.active.Load())
}

// Handler returns the HTTP routes: /ws, /health and /functions
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/functions", s.handleFunctions)
	return mux
}

// ListenAndServe serves until ctx is canceled, then closes all
// connections and waits for their handlers to return
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return errors.NewErrorBuilder(errors.ModuleServer).
			Operation("listen").
			Messagef("cannot listen on %s", s.cfg.Address).
			Cause(err).
			Code(cplxerror.CodeServiceInitialization).
			Build()
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("server listening", cplxlog.Fields{
		"address":         ln.Addr().String(),
		"max_connections": s.cfg.MaxConnections,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.OperationFailed(errors.ModuleServer, "serve", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeConnections()
	s.wg.Wait()

	s.logger.Info("server stopped", cplxlog.Fields{"connections_served": s.total.Load()})
	if err != nil {
		return errors.OperationFailed(errors.ModuleServer, "shutdown", err)
	}
	return nil
}

func (s *Server) closeConnections() {
	s.mu.Lock()
	s.shutdown = true
	conns := make([]*connection, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.close(websocket.CloseGoingAway, "server shutting down")
	}
}

// checkOrigin accepts clients without an Origin header, the server's own
// host and the configured origins
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report := s.health.Check(ctx)
	status := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, functionInfos(s.evaluator.Registry()))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if int(s.active.Add(1)) > s.cfg.MaxConnections {
		s.active.Add(-1)
		s.logger.Warn("connection limit reached", cplxlog.Fields{"remote": r.RemoteAddr})
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.active.Add(-1)
		s.logger.Warn("websocket upgrade failed", cplxlog.Fields{"remote": r.RemoteAddr, "error": err.Error()})
		return
	}

	c := newConnection(s, ws)
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		c.close(websocket.CloseGoingAway, "server shutting down")
		s.active.Add(-1)
		return
	}
	s.conns[c] = struct{}{}
	s.wg.Add(1)
	s.mu.Unlock()
	s.total.Add(1)

	defer func() {
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		s.active.Add(-1)
		s.wg.Done()
	}()
	c.serve()
}

// connection is one websocket client. Writes are serialized by mu;
// gorilla/websocket allows one concurrent writer.
type connection struct {
	server    *Server
	ws        *websocket.Conn
	sessionID string
	logger    *cplxlog.Logger

	mu        sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

func newConnection(s *Server, ws *websocket.Conn) *connection {
	id := history.NewSessionID()
	return &connection{
		server:    s,
		ws:        ws,
		sessionID: id,
		logger: s.logger.WithFields(cplxlog.Fields{
			"remote":     ws.RemoteAddr().String(),
			"session_id": id,
		}),
		done: make(chan struct{}),
	}
}

func (c *connection) serve() {
	defer c.close(websocket.CloseNormalClosure, "")

	readLimit, pingInterval := c.server.cfg.ReadLimit, c.server.cfg.PingInterval
	c.ws.SetReadLimit(readLimit)
	if pingInterval > 0 {
		wait := 2 * pingInterval
		c.ws.SetReadDeadline(time.Now().Add(wait))
		c.ws.SetPongHandler(func(string) error {
			return c.ws.SetReadDeadline(time.Now().Add(wait))
		})
		go c.pingLoop(pingInterval)
	}

	c.logger.Info("websocket connection established")
	c.send(Response{Type: TypeWelcome, Payload: WelcomePayload{
		SessionID: c.sessionID,
		Version:   version.Toolkit,
		Protocol:  version.Protocol,
		Strict:    c.server.evaluator.Strict(),
	}})

	ctx := validation.WithSessionID(context.Background(), c.sessionID)
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.logReadError(err)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("", errors.ServerProtocolError("message is not valid JSON", err))
			continue
		}
		c.handle(ctx, msg)
	}
}

func (c *connection) handle(ctx context.Context, msg Message) {
	switch msg.Type {
	case TypePing:
		c.send(Response{Type: TypePong, ID: msg.ID})

	case TypeFunctions:
		c.send(Response{Type: TypeFunctions, ID: msg.ID, Payload: functionInfos(c.server.evaluator.Registry())})

	case TypeEval:
		var p EvalPayload
		if len(msg.Payload) == 0 {
			c.sendError(msg.ID, errors.ServerProtocolError("eval requires a payload", nil))
			return
		}
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.sendError(msg.ID, errors.ServerProtocolError("invalid eval payload", err))
			return
		}
		if msg.ID != "" {
			ctx = validation.WithRequestID(ctx, msg.ID)
		}
		name, res, err := c.evaluate(ctx, p)
		if err != nil {
			c.sendError(msg.ID, err)
			return
		}
		format, precision := c.server.output()
		c.send(Response{Type: TypeResult, ID: msg.ID, Payload: newResultPayload(name, res, format, precision)})

	default:
		c.sendError(msg.ID, errors.ServerProtocolError("unknown message type "+strconv.Quote(msg.Type), nil))
	}
}

func (c *connection) evaluate(ctx context.Context, p EvalPayload) (string, calc.Result, error) {
	if p.Line != "" {
		call, res, err := c.server.evaluator.EvaluateLine(ctx, p.Line)
		return call.Function, res, err
	}

	args := make([]complexx.Complex, len(p.Args))
	for i, a := range p.Args {
		z, err := calc.ParseArg(a)
		if err != nil {
			return p.Function, calc.Result{}, errors.CalcParseError(a, "not a complex number").WithDetail("index", i)
		}
		args[i] = z
	}
	res, err := c.server.evaluator.Evaluate(ctx, p.Function, args...)
	return strings.ToLower(p.Function), res, err
}

func (c *connection) logReadError(err error) {
	switch {
	case stderrors.Is(err, websocket.ErrReadLimit):
		c.logger.Warn("closing connection", cplxlog.Err(errors.ServerMessageTooLarge(c.server.cfg.ReadLimit)))
	case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived):
		c.logger.Warn("websocket read error", cplxlog.Fields{"error": err.Error()})
	default:
		c.logger.Info("websocket connection closed")
	}
}

func (c *connection) pingLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.server.cfg.WriteTimeout))
			c.mu.Unlock()
			if err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *connection) send(resp Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ws.SetWriteDeadline(time.Now().Add(c.server.cfg.WriteTimeout))
	if err := c.ws.WriteJSON(resp); err != nil {
		c.logger.Debug("failed to send response", cplxlog.Fields{"type": resp.Type, "error": err.Error()})
	}
}

func (c *connection) sendError(id string, err error) {
	c.logger.Debug("request failed", cplxlog.Err(err))
	c.send(Response{Type: TypeError, ID: id, Payload: newErrorPayload(err)})
}

// close sends a close frame and releases the socket; repeated calls are no-ops
func (c *connection) close(code int, reason string) {
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(code, reason),
			time.Now().Add(time.Second))
		c.mu.Unlock()
		c.ws.Close()
	})
}
