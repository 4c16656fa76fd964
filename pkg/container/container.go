package container

import (
	"context"
	"fmt"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/internal/domains/catalog"
	catalogHandler "bookstore-catalog/internal/domains/catalog/handler"
	catalogRepo "bookstore-catalog/internal/domains/catalog/repository"
	infraCache "bookstore-catalog/internal/infrastructure/cache"
	"bookstore-catalog/internal/infrastructure/database"
	"bookstore-catalog/pkg/cache"
	"bookstore-catalog/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	DB     *database.Gateway
	Cache  cache.Cache // nil when CACHE_ENABLED=false

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	AuthorRepo catalog.AuthorRepository
	GenreRepo  catalog.GenreRepository
	BookRepo   catalog.BookRepository

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	AuthorHandler *catalogHandler.AuthorHandler
	GenreHandler  *catalogHandler.GenreHandler
	BookHandler   *catalogHandler.BookHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, Cache) - phụ thuộc Config
// 3. Repositories - phụ thuộc Infrastructure
// 4. Handlers - phụ thuộc Repositories
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	logger.Info("Initializing DI container", map[string]interface{}{
		"environment": cfg.App.Environment,
		"driver":      cfg.Database.Driver,
		"cache":       cfg.Redis.Enabled,
	})

	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	c.initHandlers()

	logger.Info("DI container initialized", nil)
	return c, nil
}

// ========================================
// INFRASTRUCTURE
// ========================================

func (c *Container) initInfrastructure(ctx context.Context) error {
	db := c.Config.Database
	gw, err := database.Open(ctx, &database.DBConfig{
		Driver:          database.Dialect(db.Driver),
		Host:            db.Host,
		Port:            db.Port,
		Username:        db.User,
		Password:        db.Password,
		DBName:          db.Name,
		SSLMode:         db.SSLMode,
		Path:            db.Path,
		MaxConns:        db.MaxConns,
		MinConns:        db.MinConns,
		MaxConnLifetime: db.MaxConnLifetime,
		MaxConnIdleTime: db.MaxConnIdleTime,
		MaxRetries:      db.MaxRetries,
		RetryDelay:      db.RetryDelay,
		ConnectTimeout:  db.ConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	c.DB = gw

	if db.AutoMigrate {
		if err := gw.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if c.Config.Redis.Enabled {
		rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			_ = rc.Close()
			return fmt.Errorf("failed to connect redis: %w", err)
		}
		c.Cache = rc
	}

	return nil
}

// ========================================
// REPOSITORIES
// ========================================

func (c *Container) initRepositories() {
	c.AuthorRepo = catalogRepo.NewAuthorRepository(c.DB)
	c.GenreRepo = catalogRepo.NewGenreRepository(c.DB)
	c.BookRepo = catalogRepo.NewBookRepository(c.DB)

	if c.Cache == nil {
		return
	}

	ttl := c.Config.Redis.TTL
	c.AuthorRepo = catalogRepo.NewCachedAuthorRepository(c.AuthorRepo, c.Cache, ttl)
	c.GenreRepo = catalogRepo.NewCachedGenreRepository(c.GenreRepo, c.Cache, ttl)
	c.BookRepo = catalogRepo.NewCachedBookRepository(c.BookRepo, c.Cache, ttl)
}

// ========================================
// HANDLERS
// ========================================

func (c *Container) initHandlers() {
	c.AuthorHandler = catalogHandler.NewAuthorHandler(c.AuthorRepo)
	c.GenreHandler = catalogHandler.NewGenreHandler(c.GenreRepo)
	c.BookHandler = catalogHandler.NewBookHandler(c.BookRepo)
}

// ========================================
// HEALTH & CLEANUP
// ========================================

// HealthCheck pings the store and, when enabled, the cache.
func (c *Container) HealthCheck(ctx context.Context) map[string]error {
	status := map[string]error{"database": c.DB.Ping(ctx)}
	if c.Cache != nil {
		status["cache"] = c.Cache.Ping(ctx)
	}
	return status
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	logger.Debug("Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Warn("Failed to close database", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Warn("Failed to close Redis", err)
		}
	}
}
