// Package app assembles stores, session backends and use cases from
// configuration. The HTTP server, the terminal client and the CLI commands
// all start from here.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/internal/config"
	"github.com/fastygo/progress/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/progress/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/progress/internal/infrastructure/redis"
	sqliteInfra "github.com/fastygo/progress/internal/infrastructure/sqlite"
	"github.com/fastygo/progress/internal/services"
	"github.com/fastygo/progress/internal/services/lifecycle"
	"github.com/fastygo/progress/pkg/password"
	"github.com/fastygo/progress/pkg/token"
	"github.com/fastygo/progress/repository"
	boltRepo "github.com/fastygo/progress/repository/bolt"
	"github.com/fastygo/progress/repository/memory"
	"github.com/fastygo/progress/repository/postgres"
	redisRepo "github.com/fastygo/progress/repository/redis"
	"github.com/fastygo/progress/repository/sqlite"
	"github.com/fastygo/progress/usecase/activity"
	authUC "github.com/fastygo/progress/usecase/auth"
	"github.com/fastygo/progress/usecase/dashboard"
	"github.com/fastygo/progress/usecase/export"
	habitUC "github.com/fastygo/progress/usecase/habit"
	"github.com/fastygo/progress/usecase/navigation"
	profileUC "github.com/fastygo/progress/usecase/profile"
	taskUC "github.com/fastygo/progress/usecase/task"
)

// PingFunc adapts a plain function to repository.Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Stores groups the record repositories of one storage backend.
type Stores struct {
	Users  repository.UserRepository
	Tasks  repository.TaskRepository
	Logs   repository.LogRepository
	Habits repository.HabitRepository
	Ping   repository.Pinger
}

// App holds every wired component. Close releases them in reverse order.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Clock     domain.Clock
	Stores    Stores
	Sessions  repository.SessionRepository
	Tokens    *token.Issuer
	Monitor   *monitor.Monitor
	Purger    *services.SessionPurger
	Lifecycle *lifecycle.Manager

	Auth      *authUC.UseCase
	Profile   *profileUC.UseCase
	Tasks     *taskUC.UseCase
	Logs      *activity.UseCase
	Habits    *habitUC.UseCase
	Dashboard *dashboard.UseCase
	Export    *export.UseCase
}

// New opens the configured backends and wires the use cases on top of them.
// On error everything opened so far is closed again.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		Config:    cfg,
		Logger:    logger,
		Clock:     domain.NewClock(cfg.Location()),
		Lifecycle: lifecycle.New(cfg.Context.ShutdownTimeout, logger),
	}

	stores, err := a.openStores(ctx)
	if err != nil {
		_ = a.Close(context.Background())
		return nil, err
	}
	a.Stores = stores

	sessions, sessionPing, err := a.openSessions(ctx)
	if err != nil {
		_ = a.Close(context.Background())
		return nil, err
	}
	a.Sessions = sessions

	secret := cfg.JWT.Secret
	if secret == "" {
		// Tokens then stop verifying after a restart, which only matters outside production.
		secret = uuid.NewString()
		logger.Warn("JWT_SECRET not set, using an ephemeral signing key")
	}
	a.Tokens = token.NewIssuer(secret, cfg.JWT.Issuer)

	a.Auth = authUC.New(stores.Users, sessions, password.NewBcrypt(0), a.Tokens, cfg.Sessions.TTL, logger)
	a.Profile = profileUC.New(stores.Users, stores.Tasks, stores.Logs, logger)
	a.Tasks = taskUC.New(stores.Tasks, a.Clock, logger)
	a.Logs = activity.New(stores.Logs, a.Clock, logger)
	a.Habits = habitUC.New(stores.Habits, a.Clock, logger)
	a.Dashboard = dashboard.New(stores.Tasks, stores.Logs, a.Clock, logger).WithHabits(stores.Habits)
	a.Export = export.New(stores.Tasks, stores.Logs, logger)

	a.Monitor = monitor.New(stores.Ping, sessionPing, cfg.Monitor.Interval, logger)
	return a, nil
}

// StartBackground launches the dependency monitor and, for stores that need
// it, the expired-session purger.
func (a *App) StartBackground() {
	a.Monitor.Start()
	a.Lifecycle.Register("monitor", func(context.Context) error {
		a.Monitor.Stop()
		return nil
	})
	if a.Purger != nil {
		a.Purger.Start()
		a.Lifecycle.Register("session_purger", a.Purger.Stop)
	}
}

// Navigation returns a fresh controller for one interactive session.
func (a *App) Navigation() *navigation.Controller {
	return navigation.NewController(navigation.Services{
		Auth:      a.Auth,
		Tasks:     a.Tasks,
		Logs:      a.Logs,
		Habits:    a.Habits,
		Dashboard: a.Dashboard,
		Export:    a.Export,
	}, a.Logger)
}

// Close runs every registered shutdown hook.
func (a *App) Close(ctx context.Context) error {
	return a.Lifecycle.Shutdown(ctx)
}

func (a *App) openStores(ctx context.Context) (Stores, error) {
	cfg := a.Config
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		return Stores{
			Users:  store.Users(),
			Tasks:  store.Tasks(),
			Logs:   store.Logs(),
			Habits: store.Habits(),
			Ping:   store,
		}, nil

	case config.StoragePostgres:
		if cfg.Migrations.Enabled {
			if err := pgInfra.RunMigrations(cfg.Storage.Database, a.Logger); err != nil {
				return Stores{}, fmt.Errorf("postgres migrations: %w", err)
			}
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Storage.Database, cfg.AppName, a.Logger)
		if err != nil {
			return Stores{}, fmt.Errorf("postgres connection: %w", err)
		}
		a.Lifecycle.Register("postgres", func(context.Context) error {
			pool.Close()
			return nil
		})
		return Stores{
			Users:  postgres.NewUserRepository(pool),
			Tasks:  postgres.NewTaskRepository(pool),
			Logs:   postgres.NewLogRepository(pool),
			Habits: postgres.NewHabitRepository(pool),
			Ping:   pool,
		}, nil

	default:
		db, err := sqliteInfra.Open(ctx, cfg.Storage.SQLite, a.Logger)
		if err != nil {
			return Stores{}, fmt.Errorf("sqlite open: %w", err)
		}
		a.Lifecycle.RegisterCloser("sqlite", db)
		if cfg.Migrations.Enabled {
			if err := sqliteInfra.RunMigrations(db, a.Logger); err != nil {
				return Stores{}, fmt.Errorf("sqlite migrations: %w", err)
			}
		}
		return Stores{
			Users:  sqlite.NewUserRepository(db),
			Tasks:  sqlite.NewTaskRepository(db),
			Logs:   sqlite.NewLogRepository(db),
			Habits: sqlite.NewHabitRepository(db),
			Ping:   PingFunc(db.PingContext),
		}, nil
	}
}

func (a *App) openSessions(ctx context.Context) (repository.SessionRepository, repository.Pinger, error) {
	cfg := a.Config.Sessions
	switch cfg.Driver {
	case config.SessionMemory:
		return memory.NewSessionRepository(cfg.TTL), PingFunc(func(context.Context) error { return nil }), nil

	case config.SessionRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis, a.Logger)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection: %w", err)
		}
		a.Lifecycle.RegisterCloser("redis", client)
		return redisRepo.NewSessionRepository(client, cfg.TTL), PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}), nil

	default:
		store, err := boltRepo.Open(cfg.BoltPath, cfg.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("bolt sessions: %w", err)
		}
		a.Lifecycle.RegisterCloser("bolt", store)
		purger, err := services.NewSessionPurger(store, services.EverySchedule(cfg.PurgeInterval), a.Logger)
		if err != nil {
			return nil, nil, err
		}
		a.Purger = purger
		return store, store, nil
	}
}

// RequestTimeout bounds a single use case call outside the HTTP stack.
func (a *App) RequestTimeout() time.Duration {
	if a.Config.Context.RequestTimeout <= 0 {
		return 5 * time.Second
	}
	return a.Config.Context.RequestTimeout
}
