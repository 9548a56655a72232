// Package inspect runs process queries against the kernel and records
// each one as an OpenTelemetry span.
package inspect

import (
	"context"
	"fmt"

	"github.com/mrzor/bsdproc/internal/liveness"
	"github.com/mrzor/bsdproc/internal/procargs"
	"github.com/mrzor/bsdproc/internal/procmeta"
	"github.com/mrzor/bsdproc/internal/proctable"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Source is everything an Inspector needs from the kernel.
// *kernel.Client implements it.
type Source interface {
	proctable.Querier
	procargs.Reader
	liveness.Signaler
}

// Inspector answers process queries.
type Inspector struct {
	src    Source
	layout proctable.Layout
	tracer trace.Tracer
}

// New creates an Inspector decoding process records with layout.
func New(src Source, layout proctable.Layout, tracer trace.Tracer) *Inspector {
	return &Inspector{src: src, layout: layout, tracer: tracer}
}

// finish records err on span and ends it.
func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Processes takes a snapshot of the process table. The caller releases it.
func (i *Inspector) Processes(ctx context.Context) (*proctable.Snapshot, error) {
	_, span := i.tracer.Start(ctx, "proctable.list")

	snap, err := proctable.List(i.src, i.layout)
	if err == nil {
		span.SetAttributes(attribute.Int("process.count", snap.Len()))
	}
	finish(span, err)
	return snap, err
}

// Arguments returns the argument vector of pid.
func (i *Inspector) Arguments(ctx context.Context, pid int) ([]string, error) {
	_, span := i.tracer.Start(ctx, "procargs.arguments", trace.WithAttributes(semconv.ProcessPID(pid)))

	args, err := procargs.Arguments(i.src, pid)
	finish(span, err)
	return args, err
}

// Environment returns the environment strings of pid.
func (i *Inspector) Environment(ctx context.Context, pid int) ([]string, error) {
	_, span := i.tracer.Start(ctx, "procargs.environment", trace.WithAttributes(semconv.ProcessPID(pid)))

	env, err := procargs.Environment(i.src, pid)
	finish(span, err)
	return env, err
}

// Metadata collects the arguments and environment of pid.
func (i *Inspector) Metadata(ctx context.Context, pid int) (*procmeta.ProcessMetadata, []string, error) {
	_, span := i.tracer.Start(ctx, "procmeta.collect", trace.WithAttributes(semconv.ProcessPID(pid)))

	md, issues, err := procmeta.Collect(i.src, pid)
	if len(issues) > 0 {
		span.SetAttributes(attribute.StringSlice("bsdproc.issues", issues))
	}
	finish(span, err)
	return md, issues, err
}

// Alive probes pid. Only an Unknown state comes with an error.
func (i *Inspector) Alive(ctx context.Context, pid int) (liveness.State, error) {
	_, span := i.tracer.Start(ctx, "liveness.probe", trace.WithAttributes(semconv.ProcessPID(pid)))

	state, err := liveness.Probe(i.src, pid)
	span.SetAttributes(attribute.String("process.state", state.String()))
	finish(span, err)
	return state, err
}

// Collect gathers the metadata of every process in snap, at most workers at
// a time. Per-process failures are stored in the returned Manager; the
// error is non-nil only when ctx ends before all reads were scheduled.
func (i *Inspector) Collect(ctx context.Context, snap *proctable.Snapshot, workers int) (*procmeta.Manager, error) {
	ctx, span := i.tracer.Start(ctx, "procmeta.collect_all",
		trace.WithAttributes(attribute.Int("process.count", snap.Len()), attribute.Int("bsdproc.workers", workers)))

	if workers < 1 {
		workers = 1
	}

	m := procmeta.NewManager()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var stopped error
	for _, rec := range snap.Records() {
		pid := rec.PID()
		if stopped = gctx.Err(); stopped != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			md, issues, err := i.Metadata(gctx, pid)
			if err != nil {
				m.SetError(pid, err)
				return nil
			}
			m.Set(pid, md)
			m.AddIssues(pid, issues)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = stopped
	}
	if err != nil {
		err = fmt.Errorf("collecting process metadata: %w", err)
	}
	finish(span, err)
	return m, err
}
