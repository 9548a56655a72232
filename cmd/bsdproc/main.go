// bsdproc lists processes and reads their arguments, environment and
// liveness from the BSD kernel.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrzor/bsdproc/internal/attributes"
	"github.com/mrzor/bsdproc/internal/config"
	"github.com/mrzor/bsdproc/internal/inspect"
	"github.com/mrzor/bsdproc/internal/kernel"
	"github.com/mrzor/bsdproc/internal/liveness"
	"github.com/mrzor/bsdproc/internal/otel"
	"github.com/mrzor/bsdproc/internal/output"
	"github.com/mrzor/bsdproc/internal/proctable"

	"go.opentelemetry.io/otel/trace"
)

// Version information injected by GoReleaser at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errNotAlive makes the alive command exit 1 without a message.
var errNotAlive = errors.New("process is not alive")

func main() {
	if err := run(); err != nil {
		if errors.Is(err, errNotAlive) {
			os.Exit(1)
		}
		log.Fatalf("Error: %v", err)
	}
}

// setupOTEL returns the tracer for this run and a cleanup function flushing it.
func setupOTEL() (trace.Tracer, func(), error) {
	otelCfg, err := config.ParseOTELConfig()
	if err != nil {
		return nil, nil, err
	}

	versionInfo := fmt.Sprintf("%s (%s)", version, commit)
	tracer, shutdown, err := otel.Tracer(otelCfg, versionInfo)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize OTEL provider: %w", err)
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down OTEL provider: %v", err)
		}
	}

	return tracer, cleanup, nil
}

// newClient builds the kernel client from the environment settings.
func newClient(cfg *config.Config, settings *config.Settings) *kernel.Client {
	opts := kernel.Options{
		Allocator:  kernel.HeapAllocator{Limit: settings.MaxBufferBytes},
		MaxRetries: settings.MaxRetries,
	}
	if cfg.Verbose {
		opts.Logger = log.New(os.Stderr, "bsdproc: ", log.LstdFlags)
	}
	return kernel.NewClient(kernel.Native(), opts)
}

func run() error {
	cfg, err := config.ParseArgs(os.Args, version, commit, date)
	if err != nil {
		return err
	}

	if cfg.Command == config.CommandVersion {
		fmt.Println(cfg.VersionText)
		return nil
	}

	settings, err := config.ParseSettings()
	if err != nil {
		return err
	}
	workers := settings.Workers
	if cfg.Workers > 0 {
		workers = cfg.Workers
	}

	if cfg.Verbose {
		log.Printf("Starting bsdproc %s (commit: %s, built: %s)", version, commit, date)
	}

	tracer, cleanupOTEL, err := setupOTEL()
	if err != nil {
		return err
	}
	defer cleanupOTEL()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	insp := inspect.New(newClient(cfg, settings), proctable.Native, tracer)
	out := output.New(cfg.JSON, nil)

	switch cfg.Command {
	case config.CommandPS:
		return listProcesses(ctx, cfg, insp, workers, os.Stdout)
	case config.CommandArgs:
		args, err := insp.Arguments(ctx, cfg.PID)
		if err != nil {
			return err
		}
		return out.Strings(os.Stdout, args)
	case config.CommandEnv:
		env, err := insp.Environment(ctx, cfg.PID)
		if err != nil {
			return err
		}
		return out.Strings(os.Stdout, env)
	case config.CommandAlive:
		state, err := insp.Alive(ctx, cfg.PID)
		if err != nil {
			return err
		}
		if err := out.State(os.Stdout, cfg.PID, state); err != nil {
			return err
		}
		if state != liveness.Alive {
			return errNotAlive
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
}

// listProcesses runs the ps command.
func listProcesses(ctx context.Context, cfg *config.Config, insp *inspect.Inspector, workers int, w io.Writer) error {
	filter, err := attributes.NewFilter(cfg.Filter)
	if err != nil {
		return err
	}
	eval, err := attributes.NewEvaluator(cfg.CustomAttributes)
	if err != nil {
		return err
	}

	snap, err := insp.Processes(ctx)
	if err != nil {
		return err
	}
	defer snap.Release()

	metadata, err := insp.Collect(ctx, snap, workers)
	if err != nil {
		return err
	}

	out := output.New(cfg.JSON, eval.Names())
	return out.Rows(w, output.BuildRows(snap, metadata, filter, eval))
}
