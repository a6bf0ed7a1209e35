package domain

import (
	"context"
	"fmt"
	"log"
	"time"

	apperrors "github.com/louisbranch/vttbridge/internal/platform/errors"
	"github.com/louisbranch/vttbridge/internal/platform/id"
	platformotel "github.com/louisbranch/vttbridge/internal/platform/otel"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/mcp/metrics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// toolInvocation carries the per-call state shared by every tool handler.
type toolInvocation struct {
	RunCtx       context.Context
	InvocationID string

	tool    string
	cancel  context.CancelFunc
	span    trace.Span
	metrics *metrics.Metrics
	start   time.Time
	outcome string
}

// newToolInvocation starts a span and a bounded context for one tool call.
// Callers must defer End. m may be nil.
func newToolInvocation(ctx context.Context, m *metrics.Metrics, tool string, timeout time.Duration) (*toolInvocation, error) {
	invocationID, err := id.New("call")
	if err != nil {
		return nil, fmt.Errorf("generate invocation id: %w", err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	spanCtx, span := platformotel.Tracer().Start(ctx, "mcp.tool/"+tool,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("tool.name", tool),
			attribute.String("mcp.invocation_id", invocationID),
		),
	)
	runCtx, cancel := context.WithTimeout(spanCtx, timeout)
	return &toolInvocation{
		RunCtx:       runCtx,
		InvocationID: invocationID,
		tool:         tool,
		cancel:       cancel,
		span:         span,
		metrics:      m,
		start:        time.Now(),
		outcome:      metrics.OutcomeOK,
	}, nil
}

// SetSystem tags the span with the game system of the resolved actor.
func (inv *toolInvocation) SetSystem(system character.System) {
	inv.span.SetAttributes(attribute.String("character.system", string(system)))
}

// End releases the call context, closes the span and records the call.
func (inv *toolInvocation) End() {
	inv.cancel()
	inv.span.End()
	inv.metrics.ObserveToolCall(inv.tool, inv.outcome, time.Since(inv.start))
}

// Fail records err on the span, logs it and returns the error the client
// sees, rendered in locale.
func (inv *toolInvocation) Fail(err error, locale string) error {
	code := apperrors.GetCode(err)
	category := code.Category()
	inv.outcome = string(code)
	inv.span.RecordError(err)
	inv.span.SetAttributes(attribute.String("error.category", string(category)))
	inv.span.SetStatus(codes.Error, string(code))
	log.Printf("mcp tool %s failed: invocation=%s code=%s category=%s err=%v", inv.tool, inv.InvocationID, code, category, err)
	return &toolError{message: apperrors.Localize(err, locale), cause: err}
}

// toolError shows a localized message while keeping the domain error in
// the chain.
type toolError struct {
	message string
	cause   error
}

func (e *toolError) Error() string { return e.message }

func (e *toolError) Unwrap() error { return e.cause }

// textResult wraps text as the tool's content block.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
