package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Driver names accepted in configuration. Each maps to a registered
// database/sql driver.
const (
	DriverSQLite   = "sqlite"
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Dialect captures the few places where the supported stores disagree:
// placeholder syntax and connection setup.
type Dialect struct {
	Driver string
}

// DialectFor returns the dialect for a configured driver name
func DialectFor(driverName string) (Dialect, error) {
	switch driverName {
	case DriverSQLite, DriverPgx, DriverPostgres, DriverMySQL:
		return Dialect{Driver: driverName}, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q (must be: sqlite, pgx, postgres, mysql)", driverName)
	}
}

// Postgres reports whether the dialect uses numbered placeholders
func (d Dialect) Postgres() bool {
	return d.Driver == DriverPgx || d.Driver == DriverPostgres
}

// Rebind rewrites '?' placeholders into the dialect's form. Queries in this
// package never contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	if !d.Postgres() {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Reason classifies why a statement failed
type Reason string

const (
	ReasonDuplicate  Reason = "duplicate"
	ReasonForeignKey Reason = "foreign_key"
	ReasonNotNull    Reason = "not_null"
	ReasonNoRows     Reason = "no_rows"
	ReasonOther      Reason = "other"
	ReasonTimeout    Reason = "timeout"
	ReasonConnection Reason = "connection"
)

// classify inspects a driver error and reports the constraint that failed,
// if any. All four supported drivers are understood.
func classify(err error) Reason {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ReasonTimeout
	}
	if errors.Is(err, errNoRowsAffected) {
		return ReasonNoRows
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return ReasonConnection
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return ReasonDuplicate
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ReasonForeignKey
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return ReasonNotNull
		}
		// primary result code only: fall back to the message
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			msg := liteErr.Error()
			switch {
			case strings.Contains(msg, "UNIQUE constraint failed"):
				return ReasonDuplicate
			case strings.Contains(msg, "FOREIGN KEY constraint failed"):
				return ReasonForeignKey
			case strings.Contains(msg, "NOT NULL constraint failed"):
				return ReasonNotNull
			}
		}
		return ReasonOther
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return postgresReason(pgErr.Code)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return postgresReason(string(pqErr.Code))
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return ReasonDuplicate
		case 1451, 1452:
			return ReasonForeignKey
		case 1048:
			return ReasonNotNull
		}
		return ReasonOther
	}

	return ReasonOther
}

func postgresReason(code string) Reason {
	switch code {
	case "23505":
		return ReasonDuplicate
	case "23503":
		return ReasonForeignKey
	case "23502":
		return ReasonNotNull
	}
	return ReasonOther
}

// unavailable reports whether a reason means the store itself failed rather
// than the data being rejected.
func (r Reason) unavailable() bool {
	return r == ReasonTimeout || r == ReasonConnection
}
