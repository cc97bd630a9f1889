package migrations

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	chstore "city-stats/internal/storage/clickhouse"
)

// ErrQuotedSemicolon is returned for archive schema files that put a ';'
// inside a string literal, which the statement splitter cannot handle.
var ErrQuotedSemicolon = errors.New("semicolon inside string literal")

// RunClickhouseMigrations creates the archive database named in dsn if
// needed, applies the turn_snapshots schema and returns a connection to
// that database.
func RunClickhouseMigrations(ctx context.Context, dsn string) (*chstore.Conn, error) {
	database, err := archiveDatabase(dsn)
	if err != nil {
		return nil, err
	}
	if err := createDatabase(ctx, dsn, database); err != nil {
		return nil, err
	}

	files, err := load(ClickhouseFS, "clickhouse")
	if err != nil {
		return nil, err
	}

	conn, err := chstore.NewConnWithDatabase(ctx, dsn, database)
	if err != nil {
		return nil, fmt.Errorf("connect archive %s: %w", database, err)
	}
	for _, m := range files {
		stmts, err := statements(m.sql)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("archive schema %s: %w", m.name, err)
		}
		// The driver runs one statement per Exec.
		for _, stmt := range stmts {
			if err := conn.Exec(ctx, stmt); err != nil {
				conn.Close()
				return nil, fmt.Errorf("archive schema %s: %w", m.name, err)
			}
		}
	}
	return conn, nil
}

func createDatabase(ctx context.Context, dsn, database string) error {
	admin, err := chstore.NewConnWithDatabase(ctx, dsn, "")
	if err != nil {
		return fmt.Errorf("connect archive server: %w", err)
	}
	defer admin.Close()

	if err := admin.Exec(ctx, "CREATE DATABASE IF NOT EXISTS "+database); err != nil {
		return fmt.Errorf("create archive database %s: %w", database, err)
	}
	return nil
}

// statements drops blank and "--" comment lines and splits the rest on ';'.
// Quoted semicolons are rejected rather than parsed.
func statements(sql string) ([]string, error) {
	inQuote := false
	for i := 0; i < len(sql); i++ {
		switch {
		case sql[i] == '\'' && i+1 < len(sql) && sql[i+1] == '\'':
			i++ // escaped quote
		case sql[i] == '\'':
			inQuote = !inQuote
		case sql[i] == ';' && inQuote:
			return nil, ErrQuotedSemicolon
		}
	}

	var kept []string
	for _, line := range strings.Split(sql, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		kept = append(kept, line)
	}

	var out []string
	for _, part := range strings.Split(strings.Join(kept, "\n"), ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out, nil
}

// archiveDatabase returns the database path segment of a clickhouse:// DSN.
func archiveDatabase(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse archive dsn: %w", err)
	}
	database := strings.TrimPrefix(u.Path, "/")
	if database == "" {
		return "", fmt.Errorf("archive dsn %q names no database", u.Redacted())
	}
	return database, nil
}
