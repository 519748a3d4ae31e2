package app

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/filmdb/config"
	"github.com/haguru/filmdb/internal/auth"
	"github.com/haguru/filmdb/internal/filmrepo"
	"github.com/haguru/filmdb/internal/filmservice"
	"github.com/haguru/filmdb/internal/interfaces"
	appMetrics "github.com/haguru/filmdb/internal/metrics"
	"github.com/haguru/filmdb/internal/middleware"
	"github.com/haguru/filmdb/internal/routes"
	"github.com/haguru/filmdb/internal/server"
	"github.com/haguru/filmdb/internal/userrepo"
	"github.com/haguru/filmdb/internal/userservice"
	"github.com/haguru/filmdb/pkg/databases/mongo"
	"github.com/haguru/filmdb/pkg/databases/sqldb"
	"github.com/haguru/filmdb/pkg/metrics"
	"github.com/haguru/filmdb/pkg/zerolog"

	structValidator "github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

var (
	// StartupTimeout bounds connecting to the database and creating its schema.
	StartupTimeout = 10 * time.Second
	// ShutdownTimeout bounds draining in-flight requests.
	ShutdownTimeout = 15 * time.Second
)

// App represents the main application, containing server and configuration.
// It owns the database connection and releases it in Close.
type App struct {
	Server     *server.Server
	Config     *config.ServiceConfig
	Logger     interfaces.Logger
	Metrics    interfaces.Metrics
	dbClient   interfaces.DBClient
	privateKey *ecdsa.PrivateKey
}

// NewApp reads the configuration, connects the database and registers every route.
func NewApp(configPath, envPath string) (*App, error) {
	if err := config.LoadEnvFile(envPath); err != nil {
		return nil, err
	}

	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg.ApplyEnvOverrides()

	validator := structValidator.New()
	if err := cfg.Validate(validator); err != nil {
		return nil, err
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Metrics = metrics.NewMetrics(cfg.ServiceName)
	appMetrics.Register(app.Metrics)

	if err := app.initializePrivateKey(); err != nil {
		return nil, fmt.Errorf("failed to initialize private key: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), StartupTimeout)
	defer cancel()

	if err := app.initializeDBClient(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database client: %w", err)
	}

	userService, filmService, err := app.initializeServices(ctx)
	if err != nil {
		_ = app.Close(context.Background())
		return nil, err
	}

	app.Server = server.NewServer(cfg.Host, cfg.Port, logger)
	route := routes.NewRoute(app.Metrics, userService, filmService, app.privateKey, logger, validator)
	if err := app.registerRoutes(route); err != nil {
		_ = app.Close(context.Background())
		return nil, fmt.Errorf("failed to add routes: %w", err)
	}

	return app, nil
}

// Run serves requests until ctx is cancelled, then shuts the server down gracefully
// and closes the database connection.
func (app *App) Run(ctx context.Context) error {
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Close disconnects the database.
func (app *App) Close(ctx context.Context) error {
	if app.dbClient == nil {
		return nil
	}
	err := app.dbClient.Disconnect(ctx)
	app.dbClient = nil
	return err
}

func (app *App) initializeDBClient(ctx context.Context) error {
	dbCfg := app.Config.Database

	var dbClient interfaces.DBClient
	var dsn string

	switch dbCfg.Type {
	case config.DatabaseSQLite:
		dbClient = sqldb.NewSQLiteClient(dbCfg.ValidTables, dbCfg.ValidFields)
		dsn = dbCfg.SQLite.SQLiteDSN()

	case config.DatabasePostgres:
		dbClient = sqldb.NewPostgresClient(dbCfg.Postgres.Options, dbCfg.ValidTables, dbCfg.ValidFields)
		dsn = dbCfg.Postgres.DSN

	case config.DatabaseMongo:
		dbClient = mongo.NewMongoDB(dbCfg.MongoDB, dbCfg.ValidTables, dbCfg.ValidFields)
		dsn = dbCfg.MongoDB.DSN

	default:
		return fmt.Errorf("unsupported database type: %s", dbCfg.Type)
	}

	if err := dbClient.Connect(ctx, dsn); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", dbCfg.Type, err)
	}
	app.Logger.Info("Connected to database", "type", dbCfg.Type)

	app.dbClient = dbClient
	return nil
}

func (app *App) initializeServices(ctx context.Context) (*userservice.UserService, *filmservice.FilmService, error) {
	userRepo, err := userrepo.NewUserRepository(app.dbClient)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize user repository: %w", err)
	}
	if err := userRepo.EnsureIndices(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure user indices: %w", err)
	}

	filmRepo, err := filmrepo.NewFilmRepository(app.dbClient, app.Config.MaxFilmLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize film repository: %w", err)
	}
	if err := filmRepo.EnsureIndices(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure film indices: %w", err)
	}

	return userservice.NewUserService(userRepo, app.Logger), filmservice.NewFilmService(filmRepo, app.Logger), nil
}

func (app *App) registerRoutes(route *routes.Route) error {
	session := middleware.SessionMiddleware(&app.privateKey.PublicKey)

	var loginMiddlewares []func(http.Handler) http.Handler
	if rl := app.Config.RateLimit; rl.RequestsPerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(rl.RequestsPerSecond), rl.Burst)
		loginMiddlewares = append(loginMiddlewares, middleware.RateLimitMiddleware(limiter, func() {
			app.Metrics.IncCounter(appMetrics.LoginRateLimitedTotal)
		}))
	}

	routeTable := []struct {
		method      string
		pattern     string
		handler     http.HandlerFunc
		middlewares []func(http.Handler) http.Handler
	}{
		{http.MethodGet, routes.MetricsRouteAPI, route.MetricsHandler().ServeHTTP, nil},
		{http.MethodPost, routes.SignupRouteAPI, route.Signup, nil},
		{http.MethodPost, routes.LoginRouteAPI, route.Login, loginMiddlewares},
		{http.MethodGet, routes.MeRouteAPI, route.Me, []func(http.Handler) http.Handler{session}},
		{http.MethodGet, routes.FilmsRouteAPI, route.ListFilms, nil},
		{http.MethodGet, routes.FilmRouteAPI, route.GetFilm, nil},
		{http.MethodPost, routes.FilmsRouteAPI, route.CreateFilm, []func(http.Handler) http.Handler{session}},
		{http.MethodPut, routes.FilmRouteAPI, route.UpdateFilm, []func(http.Handler) http.Handler{session}},
		{http.MethodDelete, routes.FilmRouteAPI, route.DeleteFilm, []func(http.Handler) http.Handler{session}},
	}

	for _, rt := range routeTable {
		if err := app.Server.AddRoute(rt.method, rt.pattern, rt.handler, rt.middlewares...); err != nil {
			return err
		}
	}
	return nil
}

func (app *App) initializePrivateKey() error {
	privateKey, generated, err := auth.LoadOrGenerateKey(app.Config.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load private key: %w", err)
	}
	if generated {
		app.Logger.Warn("No private key configured, sessions will not survive a restart")
	}

	app.privateKey = privateKey
	return nil
}
