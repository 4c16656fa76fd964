package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	pkgdb "bookstore-catalog/pkg/database"
)

var (
	ErrIntegrityViolation = pkgdb.ErrIntegrityViolation
	ErrStorageUnavailable = pkgdb.ErrStorageUnavailable
)

// TranslateError classifies a driver error into the storage error taxonomy.
// The original error stays in the chain, unknown errors are returned as is.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrIntegrityViolation) || errors.Is(err, ErrStorageUnavailable) {
		return err
	}

	switch {
	case isIntegrityViolation(err):
		return fmt.Errorf("%w: %w", ErrIntegrityViolation, err)
	case isUnavailable(err):
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return err
}

func isIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 23: integrity constraint violation
		return strings.HasPrefix(pgErr.Code, "23")
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT
	}

	return false
}

func isUnavailable(err error) bool {
	if errors.Is(err, pkgdb.ErrTxBoundary) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"), // connection exception
			strings.HasPrefix(pgErr.Code, "53"), // insufficient resources
			pgErr.Code == "57P01", pgErr.Code == "57P02", pgErr.Code == "57P03":
			return true
		}
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED, sqlite3lib.SQLITE_IOERR,
			sqlite3lib.SQLITE_CANTOPEN, sqlite3lib.SQLITE_FULL, sqlite3lib.SQLITE_READONLY:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
