package mockapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kbukum/apikit/logger"
)

// Config configures the mock API server.
type Config struct {
	// Addr is the listen address. Defaults to an ephemeral localhost port.
	Addr string
	// Username and Password are the accepted login credentials.
	Username string
	Password string
	// JWTSecret signs issued tokens.
	JWTSecret string
	// TokenTTL is the issued token lifetime.
	TokenTTL time.Duration
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:0"
	}
	if c.Username == "" {
		c.Username = "tester"
	}
	if c.Password == "" {
		c.Password = "secret"
	}
	if c.JWTSecret == "" {
		c.JWTSecret = "mockapi-signing-secret"
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = time.Hour
	}
}

// Widget is the resource served by the mock API.
type Widget struct {
	ID       string `json:"id"`
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
}

// Server is the mock API. It implements testutil.Component.
type Server struct {
	cfg          Config
	passwordHash []byte

	engine     *gin.Engine
	httpServer *http.Server
	listener   net.Listener

	mu      sync.RWMutex
	widgets map[string]Widget

	log *logger.Logger
}

// New creates a mock API server. Call Start before use.
func New(cfg Config) *Server {
	cfg.ApplyDefaults()

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.MinCost)
	if err != nil {
		// bcrypt only fails on oversized input; defaults never hit this.
		panic(fmt.Sprintf("mockapi: hash password: %v", err))
	}

	s := &Server{
		cfg:          cfg,
		passwordHash: hash,
		widgets:      make(map[string]Widget),
		log:          logger.WithComponent("mockapi"),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.POST("/auth/login", s.handleLogin)

	widgets := engine.Group("/widgets", s.requireAuth)
	widgets.GET("", s.handleList)
	widgets.HEAD("", s.handleHead)
	widgets.OPTIONS("", s.handleOptions)
	widgets.POST("", s.handleCreate)
	widgets.GET("/:id", s.handleGet)
	widgets.PUT("/:id", s.handleReplace)
	widgets.PATCH("/:id", s.handlePatch)
	widgets.DELETE("/:id", s.handleDelete)

	s.engine = engine
	return s
}

// Name returns the component name.
func (s *Server) Name() string { return "mockapi" }

// Start binds the listen address and begins serving. It returns once the
// listener is bound so URL() is valid immediately after.
func (s *Server) Start(_ context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("mockapi: bind %s: %w", s.cfg.Addr, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{Handler: s.engine}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Debug("mock API started", logger.Fields(logger.FieldURL, s.URL()))
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Reset clears all stored widgets.
func (s *Server) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widgets = make(map[string]Widget)
	return nil
}

// URL returns the server's base URL. Valid after Start.
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

// Seed inserts a widget directly into the store and returns its ID.
func (s *Server) Seed(w Widget) string {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widgets[w.ID] = w
	return w.ID
}

// --- handlers ---

func (s *Server) handleList(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Widget, 0, len(s.widgets))
	for _, w := range s.widgets {
		out = append(out, w)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleHead(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c.Header("X-Widget-Count", fmt.Sprintf("%d", len(s.widgets)))
	c.Status(http.StatusOK)
}

func (s *Server) handleOptions(c *gin.Context) {
	c.Header("Allow", "GET, HEAD, OPTIONS, POST, PUT, PATCH, DELETE")
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCreate(c *gin.Context) {
	var w Widget
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w.ID = uuid.NewString()

	s.mu.Lock()
	s.widgets[w.ID] = w
	s.mu.Unlock()

	c.JSON(http.StatusCreated, w)
}

func (s *Server) handleGet(c *gin.Context) {
	s.mu.RLock()
	w, ok := s.widgets[c.Param("id")]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "widget not found"})
		return
	}
	c.JSON(http.StatusOK, w)
}

func (s *Server) handleReplace(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.widgets[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "widget not found"})
		return
	}

	var w Widget
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w.ID = id
	s.widgets[id] = w
	c.JSON(http.StatusOK, w)
}

func (s *Server) handlePatch(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.widgets[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "widget not found"})
		return
	}

	var patch struct {
		Name     *string `json:"name"`
		Quantity *int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Name != nil {
		w.Name = *patch.Name
	}
	if patch.Quantity != nil {
		w.Quantity = *patch.Quantity
	}
	s.widgets[id] = w
	c.JSON(http.StatusOK, w)
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.widgets[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "widget not found"})
		return
	}
	delete(s.widgets, id)
	c.Status(http.StatusNoContent)
}
