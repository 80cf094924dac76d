// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/itsatony/stationhub/api"
	_ "github.com/itsatony/stationhub/docs"
	"github.com/itsatony/stationhub/internal/cleanup"
	"github.com/itsatony/stationhub/internal/config"
	"github.com/itsatony/stationhub/internal/database"
	"github.com/itsatony/stationhub/internal/events"
	"github.com/itsatony/stationhub/internal/hubservice"
	"github.com/itsatony/stationhub/internal/monitoring"
	"github.com/itsatony/stationhub/internal/repository/sqlrepo"
	"github.com/itsatony/stationhub/internal/session"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	redis      *redis.Client
	publisher  events.Publisher
	hubservice *hubservice.HubService
	monitoring *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config: cfg,
		srv:    srv,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	ctx := context.Background()
	defer s.Close()
	if err := s.Init(ctx); err != nil {
		return err
	}

	if err := s.bootstrapAdmin(ctx); err != nil {
		return err
	}

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// Init connects the storage, session and event backends and builds the handler chain
func (s *Server) Init(ctx context.Context) error {
	db, err := database.Open(s.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := Migrate(db); err != nil {
		return err
	}

	sessions, err := s.initSessions(ctx)
	if err != nil {
		return err
	}

	s.publisher = events.NopPublisher{}
	if len(s.config.Events.Brokers) > 0 {
		s.publisher = events.NewKafkaPublisher(s.config.Events.Brokers, s.config.Events.Topic)
		nuts.L.Infof("[Server] Publishing history events to %v (topic %s)", s.config.Events.Brokers, s.config.Events.Topic)
	}

	s.monitoring = monitoring.NewService(monitoring.Config{
		Namespace: s.config.Monitoring.Namespace,
	})

	s.hubservice = hubservice.New(sqlrepo.NewStore(db), sessions,
		hubservice.WithPublisher(s.publisher),
		hubservice.WithMonitor(s.monitoring),
	)
	if err := s.hubservice.Validate(); err != nil {
		return err
	}

	// Set up cleanup event handlers
	s.setupCleanupHandlers()

	s.srv.Handler = s.buildHandler()
	return nil
}

// Handler returns the fully wrapped HTTP handler; Init must have run
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Service returns the hub service; Init must have run
func (s *Server) Service() *hubservice.HubService {
	return s.hubservice
}

// Close releases the backends opened by Init
func (s *Server) Close() {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing event publisher: %v", err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing redis client: %v", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing database: %v", err)
		}
	}
}

func (s *Server) initSessions(ctx context.Context) (session.Store, error) {
	if s.config.Redis.Addr == "" {
		nuts.L.Warnf("[Server] No redis address configured, sessions are kept in memory")
		return session.NewMemoryStore(s.config.Session.TTL), nil
	}

	s.redis = redis.NewClient(&redis.Options{
		Addr:     s.config.Redis.Addr,
		Password: s.config.Redis.Password,
		DB:       s.config.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.redis.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", s.config.Redis.Addr, err)
	}
	nuts.L.Infof("[Server] Sessions stored in redis at %s", s.config.Redis.Addr)
	return session.NewRedisStore(s.redis, s.config.Session.TTL), nil
}

func (s *Server) buildHandler() http.Handler {
	router := api.NewRouter(s.hubservice, api.RouterConfig{
		CookieName:   s.config.Session.CookieName,
		CookieSecure: s.config.Session.Secure,
	})
	router.Resources().SetHealthCheck(s.handleHealth())
	router.Resources().SetMetrics(s.monitoring.Handler().ServeHTTP)

	var h http.Handler = router
	if len(s.config.Server.AllowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(s.config.Server.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
			handlers.AllowCredentials(),
		)(h)
	}
	h = handlers.CombinedLoggingHandler(os.Stdout, h)
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth reports the version and whether the database answers
func (s *Server) handleHealth() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		if err := s.db.Ping(ctx); err != nil {
			nuts.L.Errorf("[Server] Health check failed: %v", err)
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		w.Write([]byte(`{"status":"` + status + `","version":"` + nuts.GetVersion() + `"}`))
	}
}

func (s *Server) setupCleanupHandlers() {
	for _, event := range []string{
		cleanup.EventHistoryDeleted,
		cleanup.EventInterventionsDeleted,
		cleanup.EventBreakdownsDeleted,
		cleanup.EventDetailsDeleted,
		cleanup.EventRouterDeleted,
		cleanup.EventSensorsDeleted,
		cleanup.EventStationDeleted,
	} {
		event := event
		s.hubservice.Cleanup.OnCleanup(event, func(id string) {
			s.monitoring.RecordEvent(event, map[string]string{
				"station_id": id,
			})
		})
	}
}

// bootstrapAdmin creates the configured admin account on first start
func (s *Server) bootstrapAdmin(ctx context.Context) error {
	b := s.config.Bootstrap
	if b.AdminUsername == "" {
		return nil
	}
	user, created, err := s.hubservice.EnsureAdmin(ctx, b.AdminUsername, b.AdminEmail, b.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin %s: %w", b.AdminUsername, err)
	}
	if created {
		nuts.L.Infof("[Server] Bootstrap admin %s created (%s)", user.Username, user.ID)
	}
	return nil
}

// Migrate applies all pending schema migrations
func Migrate(db database.DB) error {
	runner, err := database.NewMigrationsRunner(db)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := runner.Run(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
