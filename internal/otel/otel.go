package otel

import (
	"context"
	"sync"

	eventbus "github.com/quithub/qgraphql/internal/eventbus"
	events "github.com/quithub/qgraphql/internal/events"
	reqid "github.com/quithub/qgraphql/internal/reqid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured. The OTLP exporter
// talks gRPC to the collector; that dial is the only gRPC this module
// makes now that compiling an operation never reaches a backend.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("qgraphql")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer       trace.Tracer
	httpSpans    sync.Map // rid -> trace.Span
	compileSpans sync.Map // rid -> trace.Span
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.HTTPStart) {
		rid, _ := reqid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "http.request")
		span.SetAttributes(
			semconv.HTTPMethodKey.String(e.Request.Method),
			attribute.String("http.target", e.Request.URL.Path),
		)
		s.httpSpans.Store(rid, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.httpSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(semconv.HTTPStatusCodeKey.Int(e.Status))
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e events.CompileStarted) {
		rid, _ := reqid.FromContext(ctx)
		parent := ctx
		if v, ok := s.httpSpans.Load(rid); ok {
			parent = trace.ContextWithSpan(ctx, v.(trace.Span))
		}
		_, span := s.tracer.Start(parent, "graphql.compile")
		span.SetAttributes(attribute.String("graphql.operation.name", e.OperationName))
		s.compileSpans.Store(rid, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.CompilePhase) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.compileSpans.Load(rid)
		if !ok {
			return
		}
		v.(trace.Span).AddEvent(e.Phase, trace.WithAttributes(attribute.Int("graphql.problem_count", e.ProblemCount)))
	})

	eventbus.Subscribe(func(ctx context.Context, e events.CompileFailed) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.compileSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(attribute.Int("graphql.problem_count", e.ProblemCount))
		span.SetStatus(codes.Error, "compile failed")
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e events.CompileDone) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.compileSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		v.(trace.Span).End()
	})
}
