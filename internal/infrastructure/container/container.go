// Package container provides dependency injection using Uber FX
package container

import (
	"context"

	"github.com/forkcast/forkcast/internal/application/coach"
	domainCatalog "github.com/forkcast/forkcast/internal/domain/catalog"
	"github.com/forkcast/forkcast/internal/infrastructure/ai/airia"
	"github.com/forkcast/forkcast/internal/infrastructure/ai/openai"
	catalogLoader "github.com/forkcast/forkcast/internal/infrastructure/catalog"
	"github.com/forkcast/forkcast/internal/infrastructure/config"
	"github.com/forkcast/forkcast/internal/infrastructure/http/server"
	"github.com/forkcast/forkcast/internal/infrastructure/monitoring"
	gormRepo "github.com/forkcast/forkcast/internal/infrastructure/persistence/gorm"
	"github.com/forkcast/forkcast/internal/infrastructure/persistence/memory"
	"github.com/forkcast/forkcast/internal/infrastructure/persistence/redis"
	"github.com/forkcast/forkcast/internal/infrastructure/persistence/sqlite"
	"github.com/forkcast/forkcast/internal/ports/inbound"
	"github.com/forkcast/forkcast/internal/ports/outbound"
	"github.com/forkcast/forkcast/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	CatalogModule,
	MonitoringModule,

	// Repository modules
	RepositoryModule,

	// External collaborator modules
	CollaboratorModule,

	// Service modules
	ServiceModule,

	// HTTP modules
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the SQLite connection
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
		if err != nil {
			return nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
		)

		return db, nil
	},
)

// CacheModule provides caching, Redis when enabled and in-memory
// otherwise
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Enabled {
			cache, err := redis.NewCacheRepository(cfg.Redis)
			if err != nil {
				return nil, err
			}
			log.Info("Using Redis cache", zap.String("addr", cfg.RedisAddr()))
			return cache, nil
		}

		log.Info("Using in-memory cache")
		return memory.NewCacheRepository(), nil
	},
)

// CatalogModule loads the catalog at startup
var CatalogModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*domainCatalog.Catalog, error) {
		return catalogLoader.Load(cfg.Catalog.Dir, log)
	},
)

// MonitoringModule provides metrics
var MonitoringModule = fx.Provide(
	monitoring.NewMetrics,
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewPreferenceRepository,
	gormRepo.NewEventRepository,
)

// CollaboratorModule provides the external chat and speech services
var CollaboratorModule = fx.Provide(
	fx.Annotate(
		func(cfg *config.Config, log *zap.Logger) *airia.ChatClient {
			return airia.NewChatClient(cfg.AI.Airia, log)
		},
		fx.As(new(outbound.ChatService)),
	),
	fx.Annotate(
		func(cfg *config.Config, log *zap.Logger) *openai.SpeechClient {
			return openai.NewSpeechClient(cfg.AI.OpenAI, log)
		},
		fx.As(new(outbound.SpeechService)),
	),
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(
		cat *domainCatalog.Catalog,
		prefs outbound.PreferenceRepository,
		events outbound.EventRepository,
		cache outbound.CacheRepository,
		chat outbound.ChatService,
		speech outbound.SpeechService,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.CoachService {
		return coach.NewCoachService(cat, prefs, events, cache, chat, speech, coach.Options{
			TopN:     cfg.Coach.TopN,
			CacheTTL: cfg.Coach.CacheTTL,
		}, log)
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Forkcast application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Forkcast application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
