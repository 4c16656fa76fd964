package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	pkgdb "bookstore-catalog/pkg/database"
	"bookstore-catalog/pkg/logger"
)

// Dialect identifies the SQL engine behind a Gateway.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Placeholder returns the bind parameter format of the dialect.
func (d Dialect) Placeholder() squirrel.PlaceholderFormat {
	if d == DialectPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// Fold wraps column in the dialect's Unicode lower-case function.
// It folds the same way strings.ToLower does for the text the catalog stores.
func (d Dialect) Fold(column string) string {
	if d == DialectSQLite {
		return foldFunc + "(" + column + ")"
	}
	return "LOWER(" + column + ")"
}

//go:embed schema/*.sql
var schemaFS embed.FS

// Gateway owns the connection to the backing store and the unit-of-work boundary.
// It is safe for concurrent use.
type Gateway struct {
	DB      *sql.DB
	Dialect Dialect

	builder   squirrel.StatementBuilderType
	closePool func()
}

// Open connects to the store described by cfg.
func Open(ctx context.Context, cfg *DBConfig) (*Gateway, error) {
	switch cfg.Driver {
	case DialectPostgres:
		db, closePool, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return newGateway(db, DialectPostgres, closePool), nil
	case DialectSQLite:
		db, err := openSQLite(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return newGateway(db, DialectSQLite, nil), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenSQLiteMemory opens a private in-memory store with the schema applied.
func OpenSQLiteMemory(ctx context.Context, name string) (*Gateway, error) {
	gw, err := Open(ctx, &DBConfig{
		Driver: DialectSQLite,
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	if err != nil {
		return nil, err
	}
	if err := gw.Migrate(ctx); err != nil {
		_ = gw.Close()
		return nil, err
	}
	return gw, nil
}

func newGateway(db *sql.DB, dialect Dialect, closePool func()) *Gateway {
	return &Gateway{
		DB:        db,
		Dialect:   dialect,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(dialect.Placeholder()),
		closePool: closePool,
	}
}

// Builder returns a squirrel statement builder bound to the dialect placeholders.
func (g *Gateway) Builder() squirrel.StatementBuilderType {
	return g.builder
}

// WithTx runs fn in its own transaction and commits before returning.
// Errors from fn or from the commit are classified with TranslateError.
func (g *Gateway) WithTx(ctx context.Context, fn pkgdb.TxFunc) error {
	return TranslateError(pkgdb.WithTransaction(ctx, g.DB, fn))
}

// Migrate applies the embedded schema of the dialect. Statements are idempotent.
func (g *Gateway) Migrate(ctx context.Context) error {
	content, err := schemaFS.ReadFile("schema/" + string(g.Dialect) + ".sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	return g.WithTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range strings.Split(string(content), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		logger.Info("[DATABASE] Schema applied", map[string]interface{}{"dialect": g.Dialect})
		return nil
	})
}

// Ping kiểm tra database connection có còn sống và responsive không
func (g *Gateway) Ping(ctx context.Context) error {
	if g.DB == nil {
		return fmt.Errorf("database is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := g.DB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("%w: database ping failed: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Stats trả về snapshot của connection pool statistics
// Zero after Close.
func (g *Gateway) Stats() sql.DBStats {
	if g.DB == nil {
		return sql.DBStats{}
	}
	return g.DB.Stats()
}

// Close đóng tất cả connections và cleanup resources.
// Safe to call multiple times.
func (g *Gateway) Close() error {
	if g.DB == nil {
		return nil
	}

	logger.Debug("[DATABASE] Closing database connection pool...")
	err := g.DB.Close()
	if g.closePool != nil {
		g.closePool()
	}
	g.DB = nil
	return err
}

// TxResult is WithTx for functions producing a value.
func TxResult[T any](ctx context.Context, g *Gateway, fn func(*sql.Tx) (T, error)) (T, error) {
	v, err := pkgdb.WithTransactionResult(ctx, g.DB, fn)
	return v, TranslateError(err)
}
