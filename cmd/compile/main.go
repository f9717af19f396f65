// Command compile runs the note compiler once over the stored collection and
// writes the processed field of every note it can compile.
//
// Usage:
//
//	compile [-note-type nouns,verbs] [-dry-run] [-workers 8]
//
// Exit codes: 0 = every note compiled, 1 = setup error or failed notes.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/heartmarshall/czechplus-backend/internal/adapter/postgres"
	"github.com/heartmarshall/czechplus-backend/internal/app"
	"github.com/heartmarshall/czechplus-backend/internal/config"
	"github.com/heartmarshall/czechplus-backend/internal/service/compiler"
)

// noteTypes collects repeated or comma-separated -note-type values.
type noteTypes []string

func (n *noteTypes) String() string { return strings.Join(*n, ",") }

func (n *noteTypes) Set(v string) error {
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			*n = append(*n, s)
		}
	}
	return nil
}

func main() {
	var types noteTypes
	flag.Var(&types, "note-type", "note type to compile, repeatable or comma-separated (default: all configured)")
	dryRun := flag.Bool("dry-run", false, "compile without writing results")
	workers := flag.Int("workers", 0, "number of concurrent workers (default: compiler.workers from config)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, types, *dryRun, *workers))
}

func run(ctx context.Context, types []string, dryRun bool, workers int) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		return 1
	}
	if workers > 0 {
		cfg.Compiler.Workers = workers
	}

	logger := app.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		return 1
	}
	defer pool.Close()

	svc, _, err := app.NewCompiler(logger, pool, cfg)
	if err != nil {
		logger.Error("build compiler", slog.String("error", err.Error()))
		return 1
	}

	result, err := svc.CompileAll(ctx, compiler.CompileAllInput{NoteTypes: types, DryRun: dryRun})
	if err != nil {
		logger.Error("compile", slog.String("error", err.Error()))
		return 1
	}

	for _, f := range result.Failures {
		logger.Warn("note failed",
			slog.String("note_id", f.NoteID.String()),
			slog.String("note_type", f.NoteType),
			slog.String("error", f.Err.Error()),
		)
	}

	logger.Info("done",
		slog.Int("total", result.Total),
		slog.Int("compiled", result.Compiled),
		slog.Int("unchanged", result.Unchanged),
		slog.Int("failed", len(result.Failures)),
		slog.Bool("dry_run", result.DryRun),
	)

	if result.Failed() {
		return 1
	}
	return 0
}
