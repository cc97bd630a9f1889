package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"city-stats/internal/config"
	"city-stats/internal/pipeline"
	"city-stats/internal/reporting"
	"city-stats/internal/storage/backends"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "YAML configuration file")
	envFile := flag.String("env-file", ".env", "Environment file loaded before CITYSTATS_* overrides")
	input := flag.String("input", "", "JSON file with an array of {turn, state} objects")
	useFixtures := flag.Bool("use-fixtures", false, "Use generated demo turns instead of -input")
	fixtureTurns := flag.Int("fixture-turns", 10, "Number of demo turns with -use-fixtures")
	outputDir := flag.String("output-dir", "output", "Output directory for generated files")
	saveSlot := flag.String("save-slot", "", "Save the resulting report state under this slot")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string for -save-slot")
	sqlitePath := flag.String("sqlite-path", "", "SQLite database file for -save-slot")
	saveDir := flag.String("save-dir", "", "Directory of state files for -save-slot")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string for the turn archive")
	session := flag.String("session", "", "Archive session ID (default: random UUID)")
	flag.Parse()

	logger := log.New(os.Stdout, "[report] ", log.LstdFlags)
	ctx := context.Background()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	overrideStorage(&cfg.Storage, *postgresDSN, *sqlitePath, *saveDir, *clickhouseDSN)

	// Validate flags
	if !*useFixtures && *input == "" {
		fmt.Fprintln(os.Stderr, "Error: --input is required when not using fixtures")
		fmt.Fprintln(os.Stderr, "Use --use-fixtures to run with demo data instead")
		os.Exit(1)
	}

	var turns []pipeline.TurnInput
	if *useFixtures {
		turns = pipeline.FixtureTurns(*fixtureTurns)
	} else {
		turns, err = pipeline.LoadTurns(*input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading turns: %v\n", err)
			os.Exit(1)
		}
	}

	manager := reporting.NewManager(cfg.ManagerOptions(log.New(os.Stdout, "[manager] ", log.LstdFlags)))
	p := pipeline.New(manager, *outputDir).WithLogger(logger)
	if *useFixtures {
		p = p.WithEngine(pipeline.FixtureEngine().Engine())
	}

	// Optional save store
	var closers []func()
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	if *saveSlot != "" {
		store, closeStore, err := backends.OpenSaveStore(ctx, cfg.Storage)
		closers = append(closers, closeStore)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening save store: %v\n", err)
			os.Exit(1)
		}
		if store == nil {
			fmt.Fprintln(os.Stderr, "Error: --save-slot needs --postgres-dsn, --sqlite-path or --save-dir")
			os.Exit(1)
		}
		p = p.WithSaveStore(store, *saveSlot)
	}

	// Optional ClickHouse archive
	archive, closeArchive, err := backends.OpenArchive(ctx, cfg.Storage)
	closers = append(closers, closeArchive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to clickhouse: %v\n", err)
		os.Exit(1)
	}
	if archive != nil {
		sessionID := *session
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		p = p.WithArchive(archive, sessionID)
	}

	result, err := p.Run(ctx, turns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running pipeline: %v\n", err)
		os.Exit(1)
	}

	score := result.Report.Score
	fmt.Printf("City report #%d generated from %d turns (score %.1f, grade %s):\n",
		result.Report.Number, result.TurnsRecorded, score.Overall, score.Grade)
	fmt.Printf("Input digest: %s\n", result.InputDigest)
	for _, f := range result.Files {
		fmt.Printf("  - %s\n", f)
	}
}

// overrideStorage applies non-empty flag values over the configured backends.
func overrideStorage(s *config.StorageConfig, postgresDSN, sqlitePath, saveDir, clickhouseDSN string) {
	if postgresDSN != "" {
		s.PostgresDSN = postgresDSN
	}
	if sqlitePath != "" {
		s.SQLitePath = sqlitePath
	}
	if saveDir != "" {
		s.SaveDir = saveDir
	}
	if clickhouseDSN != "" {
		s.ClickhouseDSN = clickhouseDSN
	}
}
