package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/http"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

const collectorInterval = 15 * time.Second

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Redis    *goredis.Client
	Cfg      Config
	Metrics  *observability.Metrics
	Repos    Repos
	Services Services
	Server   *http.Server

	shutdownOtel func(context.Context) error
	cancel       context.CancelFunc
}

// New wires the whole service. The provider argument overrides the
// configured generation backend when non-nil.
func New(ctx context.Context, cfg Config, log *logger.Logger, provider llm.Provider) (*App, error) {
	shutdownOtel := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.Init()

	theDB, err := OpenDatabase(cfg, log)
	if err != nil {
		_ = shutdownOtel(ctx)
		return nil, err
	}
	catalog, rdb := OpenCatalog(ctx, cfg, log)

	if provider == nil {
		provider, err = llm.NewProvider(ctx, cfg.LLM, log, metrics)
		if err != nil {
			closeDB(theDB)
			_ = shutdownOtel(ctx)
			return nil, fmt.Errorf("init llm provider: %w", err)
		}
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, provider, metrics, catalog)
	handlerset := wireHandlers(log, theDB, serviceset)
	server := wireServer(log, cfg, metrics, serviceset, handlerset)

	return &App{
		Log:          log,
		DB:           theDB,
		Redis:        rdb,
		Cfg:          cfg,
		Metrics:      metrics,
		Repos:        reposet,
		Services:     serviceset,
		Server:       server,
		shutdownOtel: shutdownOtel,
	}, nil
}

// Start launches the background pool collectors.
func (a *App) Start(ctx context.Context) {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.Metrics.StartDBCollector(ctx, a.Log, a.DB, collectorInterval)
	if a.Redis != nil {
		a.Metrics.StartRedisCollector(ctx, a.Log, a.Redis, collectorInterval)
	}
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("http server listening", "addr", a.Cfg.HTTP.Address())
	return a.Server.Run()
}

// Shutdown drains the http server, then releases the stores.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil {
		return nil
	}
	var firstErr error
	if a.Server != nil {
		firstErr = a.Server.Shutdown(ctx)
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.shutdownOtel != nil {
		if err := a.shutdownOtel(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	closeDB(a.DB)
	a.Log.Sync()
	return firstErr
}
