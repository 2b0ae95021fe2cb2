// Package store adapts the teacher's driver layer (one sql.DB wrapper per
// dialect, dispatched by a string/enum) into the execution and persistence
// collaborators spec.md §1 treats as external to the core: running a
// generated SQL string against a live warehouse, and keeping a small
// bookkeeping table of report definitions. Neither of these is "the core";
// both exist because a deployed reportsql would need them.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects which database/sql driver Engine opens, mirroring the
// teacher's schema.GeneratorMode / driver.Config.DbType switch.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
	DialectMSSQL    Dialect = "mssql"
)

func (d Dialect) driverName() (string, error) {
	switch d {
	case DialectMySQL:
		return "mysql", nil
	case DialectPostgres:
		return "postgres", nil
	case DialectSQLite:
		return "sqlite", nil
	case DialectMSSQL:
		return "sqlserver", nil
	default:
		return "", fmt.Errorf("store: unknown dialect %q", d)
	}
}

// Open opens a *sql.DB for the given dialect and DSN, selecting the driver
// the same way driver.NewDatabase switches on config.DbType.
func Open(dialect Dialect, dsn string) (*sql.DB, error) {
	driverName, err := dialect.driverName()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", dialect, err)
	}
	return db, nil
}
