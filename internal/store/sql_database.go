package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/migrations"
)

// Dialect identifies the SQL database behind a [DB].
type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectSQLite
)

// String implements [fmt.Stringer].
func (d Dialect) String() string {
	switch d {
	case DialectPostgres:
		return "postgres"
	case DialectSQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// placeholderFormat returns the bind parameter style of the dialect.
func (d Dialect) placeholderFormat() sq.PlaceholderFormat {
	if d == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

func (d Dialect) gooseDialect() goose.Dialect {
	if d == DialectPostgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}

// DB is a database handle together with the dialect-specific helpers the
// repositories need.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// openDB opens driverName, applies the pool settings and pings the database
// before handing it out. The connection is closed again when the ping fails.
func openDB(
	ctx context.Context,
	driverName, dsn string,
	dialect Dialect,
	classifier ErrorClassificator,
	log *logger.Logger,
	configure func(*sql.DB),
) (*DB, error) {
	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		log.Err(err).Str("dialect", dialect.String()).Msg("error opening database")
		return nil, fmt.Errorf("error opening %s database: %w", dialect, err)
	}

	if configure != nil {
		configure(conn)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("dialect", dialect.String()).Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting %s database: %w", dialect, err)
	}
	log.Info().Str("dialect", dialect.String()).Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		logger:             log,
		errorClassificator: classifier,
	}, nil
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect.gooseDialect())
}

// statementBuilder returns a squirrel builder using the dialect's
// placeholder format.
func (db *DB) statementBuilder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.dialect.placeholderFormat())
}
