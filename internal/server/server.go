package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/ProgrammerShajib/fullstack/config"
	"github.com/ProgrammerShajib/fullstack/internal/db"
	"github.com/ProgrammerShajib/fullstack/internal/handlers"
	"github.com/ProgrammerShajib/fullstack/internal/mq"
	"github.com/ProgrammerShajib/fullstack/internal/services"
	"github.com/ProgrammerShajib/fullstack/internal/store"
	"github.com/ProgrammerShajib/fullstack/web"
)

const requestTimeout = 60 * time.Second

// Server wraps the HTTP server, router and the connections it owns.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        zerolog.Logger
	closers    []func(context.Context) error
}

// New opens the configured store and broker and assembles the router.
// No listener is opened until Start is called.
func New(ctx context.Context, cfg config.Config, log zerolog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var closers []func(context.Context) error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i](context.Background())
		}
	}

	repo, closeStore, err := openRepository(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	closers = append(closers, closeStore)

	queue, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		closeAll()
		return nil, err
	}

	var events services.EventPublisher
	if queue != nil {
		events = services.NewMQEventPublisher(queue, cfg.MQ.Channel)
		closers = append(closers, func(context.Context) error { return queue.Close() })
		log.Info().Str("backend", cfg.MQ.Backend).Str("channel", cfg.MQ.Channel).Msg("publishing user events")
	}

	srv := NewWithRepository(cfg, log, repo, events)
	srv.closers = closers
	return srv, nil
}

// NewWithRepository assembles a server around an already opened repository.
func NewWithRepository(cfg config.Config, log zerolog.Logger, repo services.UserRepository, events services.EventPublisher) *Server {
	userService := services.NewUserService(repo, events)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		RequestLogger(log),
		middleware.Recoverer,
		middleware.Timeout(requestTimeout),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{
				http.MethodGet,
				http.MethodPost,
				http.MethodPatch,
				http.MethodDelete,
				http.MethodOptions,
			},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{HeaderCorrelationID},
			MaxAge:         300,
		}),
	)
	router.Get("/healthz", handlers.Healthz)
	mountUI(router)
	handlers.UserRouter(router, userService)

	port := cfg.ServerPort
	if port == 0 {
		port = config.DefaultServerPort
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		log:        log,
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens and serves until the server is shut down.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln. It returns nil after a graceful shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info().Str("addr", ln.Addr().String()).Msg("server is running")
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the store and broker.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	for i := len(s.closers) - 1; i >= 0; i-- {
		if cerr := s.closers[i](ctx); cerr != nil {
			s.log.Error().Err(cerr).Msg("close dependency")
			err = errors.Join(err, cerr)
		}
	}
	s.closers = nil
	return err
}

func openRepository(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (services.UserRepository, func(context.Context) error, error) {
	backend, err := cfg.Backend()
	if err != nil {
		return nil, nil, err
	}

	switch backend {
	case config.BackendMongo:
		client, database, err := db.OpenMongo(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongodb: %w", err)
		}
		repo := store.NewMongoUserRepository(database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		log.Info().Str("database", database.Name()).Msg("connected successfully to MongoDB")
		return repo, client.Disconnect, nil
	case config.BackendPostgres:
		conn, err := db.OpenPostgres(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Info().Msg("connected successfully to Postgres")
		return store.NewPostgresUserRepository(conn), func(context.Context) error { return conn.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database backend %q", backend)
	}
}

func mountUI(router chi.Router) {
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	router.Get("/ui", http.RedirectHandler("/ui/", http.StatusMovedPermanently).ServeHTTP)
	router.Handle("/ui/*", http.StripPrefix("/ui/", http.FileServer(http.FS(static))))
}
