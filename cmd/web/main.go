package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/form/v4"
	_ "github.com/go-sql-driver/mysql"
	"github.com/mabego/galeria/internal/config"
	"github.com/mabego/galeria/internal/endpoints"
	"github.com/mabego/galeria/internal/migrations"
	"github.com/mabego/galeria/internal/models"
	"github.com/mabego/galeria/internal/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	IdleTimeout     = time.Minute
	ReadTimeout     = 5 * time.Second
	ShutdownTimeout = 10 * time.Second
	WriteTimeout    = 10 * time.Second
)

type application struct {
	debug          bool
	logger         *zap.Logger
	admins         models.AdminModelInterface
	items          models.ItemModelInterface
	site           *router.Table
	templateCache  map[string]*template.Template
	formDecoder    *form.Decoder
	sessionManager *scs.SessionManager
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags override the environment.
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP network address")
	flag.StringVar(&cfg.DSN, "dsn", cfg.DSN, "MySQL data source name")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug mode in the browser")
	flag.BoolVar(&cfg.Migrate, "migrate", cfg.Migrate, "Apply database migrations on startup")
	flag.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "Base URL of the gallery API")
	flag.StringVar(&cfg.SessionStore, "session-store", cfg.SessionStore, "Session store: mysql or redis")

	flag.Parse()

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := openDB(cfg.DSN)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			logger.Error("close database", zap.Error(err))
		}
	}(db)

	if cfg.Migrate {
		if err := migrations.Up(db); err != nil {
			logger.Fatal("apply migrations", zap.Error(err))
		}
		logger.Info("migrations applied")
	}

	templateCache, err := newTemplateCache()
	if err != nil {
		logger.Fatal("parse templates", zap.Error(err))
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		client, err := openRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Fatal("open redis", zap.Error(err))
		}
		defer client.Close()
		sessionManager.Store = goredisstore.New(client)
	default:
		sessionManager.Store = mysqlstore.New(db)
	}

	app := &application{
		debug:  cfg.Debug,
		logger: logger,
		admins: &models.AdminModel{DB: db},
		items: &models.ItemModel{
			Client:    &http.Client{Timeout: cfg.APITimeout},
			Endpoints: endpoints.New(cfg.APIURL),
		},
		site:           router.Site(),
		templateCache:  templateCache,
		formDecoder:    form.NewDecoder(),
		sessionManager: sessionManager,
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      app.routes(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
		ErrorLog:     zap.NewStdLog(logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", cfg.Addr), zap.String("api_url", cfg.APIURL),
			zap.String("session_store", cfg.SessionStore))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return
	}

	logger.Info("server stopped")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openDB wraps sql.Open and returns a sql.DB connection pool for a given data source name
func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("database pool initialization: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}

	return db, nil
}

func openRedis(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection: %w", err)
	}

	return client, nil
}
