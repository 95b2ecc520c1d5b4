package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/zerr"
)

// ErrSpanFailed wraps the status description of a span that ended with an error.
var ErrSpanFailed = zerr.New("span failed")

// LogBridge implements sdktrace.SpanProcessor and reports every ended span
// to the logger at debug level. Failed spans are reported as errors.
type LogBridge struct {
	logger ports.Logger
}

// NewLogBridge returns a new LogBridge.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// OnStart does nothing.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	if s.Status().Code == codes.Error {
		err := zerr.With(ErrSpanFailed, "span", s.Name())
		if desc := s.Status().Description; desc != "" {
			err = zerr.With(err, "reason", desc)
		}
		b.logger.Error(err)
		return
	}

	args := []any{"span", s.Name(), "duration", s.EndTime().Sub(s.StartTime())}
	for _, kv := range s.Attributes() {
		args = append(args, string(kv.Key), kv.Value.AsInterface())
	}
	b.logger.Debug("span finished", args...)
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(_ context.Context) error {
	return nil
}
