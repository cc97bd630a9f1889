// Package migrations applies the embedded schema for the save-slot
// (PostgreSQL) and turn archive (ClickHouse) backends.
package migrations

import "embed"

// PostgresFS embeds the save_slots schema, applied in file-name order.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS embeds the turn_snapshots archive schema.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS
