package ports

import (
	"context"
	"crypto/rand"
	"fmt"
)

// Logger is the structured logger every builder component writes through.
// Fields are alternating key/value pairs. The builder logs under these keys:
// component (catalog, pipeline, source, output), family, slug, template,
// locator, destination and duration_ms. Implementations add correlation_id
// from the context and must tolerate concurrent calls from render workers.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, msg string, fields ...interface{})
	Error(ctx context.Context, msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// runIDKey keys the per-command run identifier in a context.
type runIDKey struct{}

// WithCorrelationID tags ctx with the run identifier id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// GetCorrelationID returns the run identifier carried by ctx, or "".
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// GenerateCorrelationID returns a random version 4 UUID. Each CLI command
// run draws one so that every fetch and render log line of a build can be
// grouped.
func GenerateCorrelationID() string {
	var u [16]byte
	if _, err := rand.Read(u[:]); err != nil {
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	u[6] = u[6]&0x0f | 0x40 // version 4
	u[8] = u[8]&0x3f | 0x80 // RFC 4122 variant

	return fmt.Sprintf("%x-%x-%x-%x-%x", u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}
