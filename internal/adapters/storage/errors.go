package storage

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned by reads when no row matches.
var ErrNotFound = errors.New("record not found")

// Failure reasons reported by Reason.
const (
	ReasonNotFound     = "not_found"
	ReasonForeignKey   = "foreign_key"
	ReasonUnique       = "unique"
	ReasonCheck        = "check"
	ReasonConnectivity = "connectivity"
	ReasonTimeout      = "timeout"
	ReasonUnknown      = "unknown"
)

// Reason classifies a storage error for logging.
// The result never reaches users.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNotFound) {
		return ReasonNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ReasonTimeout
	}
	if errors.Is(err, driver.ErrBadConn) {
		return ReasonConnectivity
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return ReasonForeignKey
		case pgerrcode.UniqueViolation:
			return ReasonUnique
		case pgerrcode.CheckViolation:
			return ReasonCheck
		}
		if pgerrcode.IsConnectionException(pgErr.Code) {
			return ReasonConnectivity
		}
		return ReasonUnknown
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return ReasonConnectivity
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ReasonForeignKey
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return ReasonUnique
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return ReasonCheck
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN:
			return ReasonConnectivity
		}
		// Connections opened without extended result codes report the primary code only.
		msg := liteErr.Error()
		switch {
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return ReasonForeignKey
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return ReasonUnique
		case strings.Contains(msg, "CHECK constraint failed"):
			return ReasonCheck
		}
	}
	return ReasonUnknown
}
