package surveyload

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

//go:embed schema.sql
var schemaSQL string

const (
	schemaName = "mental_health"
	tableName  = "mental_health_wellbeing"
)

// loader provisions the destination table and persists a projection into it.
type loader interface {
	// provision recreates the destination table. Destructive: any prior
	// contents are discarded.
	provision(context.Context) error
	// load inserts all projected rows as one batched statement in one
	// transaction. A projection with zero rows is a no-op.
	load(context.Context, *projection) error
	close(context.Context)
}

type postgresLoader struct {
	dsn    string
	schema string
	table  string

	conn *pgx.Conn
}

func newPostgresLoader(dsn string) loader {
	return &postgresLoader{dsn: dsn, schema: schemaName, table: tableName}
}

func (l *postgresLoader) provision(ctx context.Context) error {
	lg := log.Ctx(ctx)

	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return xerrors.Errorf("failed to connect to postgres: %w", err)
	}
	l.conn = conn

	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return xerrors.Errorf("failed to recreate %s.%s: %w", l.schema, l.table, err)
	}

	lg.Info().Str("table", l.schema+"."+l.table).Msg("destination table recreated")

	return nil
}

func (l *postgresLoader) load(ctx context.Context, p *projection) error {
	lg := log.Ctx(ctx)

	if len(p.rows) == 0 {
		lg.Warn().Msg("export has no data rows, nothing to insert")
		return nil
	}

	placeholders := make([]string, len(p.columns))
	for i := range p.columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	// Column names come from the static mapping and are left unquoted so
	// they fold the same way as the unquoted DDL identifiers.
	insert := fmt.Sprintf(
		"INSERT INTO %s.%s (%s) VALUES (%s)",
		l.schema, l.table,
		strings.Join(p.columns, ", "),
		strings.Join(placeholders, ", "),
	)

	tx, err := l.conn.Begin(ctx)
	if err != nil {
		return xerrors.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	b := &pgx.Batch{}
	for _, row := range p.rows {
		b.Queue(insert, row...)
	}

	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return xerrors.Errorf("failed to insert rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return xerrors.Errorf("failed to commit: %w", err)
	}

	lg.Info().Int("rows", len(p.rows)).Msg("rows inserted")

	return nil
}

func (l *postgresLoader) close(ctx context.Context) {
	if l.conn != nil {
		l.conn.Close(ctx)
	}
}
