package nowplaying

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/trackmeta"
)

// Source provides the track state served to clients. *trackmeta.Session
// implements it.
type Source interface {
	Snapshot() trackmeta.Snapshot
}

// Server exposes a Source over HTTP.
type Server struct {
	source  Source
	hub     *Hub
	router  *gin.Engine
	origins []string
	logger  *slog.Logger

	upgrader websocket.Upgrader
}

// NewServer builds the router for source. An empty origins list allows
// every origin.
func NewServer(source Source, origins []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		source:  source,
		hub:     NewHub(logger),
		origins: origins,
		logger:  logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(s.origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.origins
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/now-playing", s.handleNowPlaying)
		api.GET("/ws/now-playing", s.handleWebSocket)
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Publish pushes the source's current state to every WebSocket client.
func (s *Server) Publish(typ string) {
	s.hub.Broadcast(NewMessage(typ, s.source.Snapshot()))
}

// PublishSnapshot pushes snap to every WebSocket client.
func (s *Server) PublishSnapshot(typ string, snap trackmeta.Snapshot) {
	s.hub.Broadcast(NewMessage(typ, snap))
}

// Run serves on addr and runs the hub until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.hub.Run(ctx)
		return nil
	})
	g.Go(func() error {
		s.logger.Info("now-playing server listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "trackmeta",
		"version": trackmeta.Version,
	})
}

func (s *Server) handleNowPlaying(c *gin.Context) {
	c.JSON(http.StatusOK, NewMessage("", s.source.Snapshot()))
}

// handleWebSocket upgrades the connection, sends the current state, and
// registers the client for pushes.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", slog.Any("error", err))
		return
	}

	client := NewClient(s.hub, conn)
	client.send <- NewMessage(TypeTrack, s.source.Snapshot())
	if !s.hub.RegisterClient(client) {
		conn.Close()
		return
	}
	client.StartPumps()
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.origins) == 0 {
		return true
	}
	return slices.Contains(s.origins, origin)
}
