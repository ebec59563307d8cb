package contextkeys

import (
	"context"

	"github.com/google/uuid"
)

// TraceIDHeader - заголовок, в котором trace_id передается между сервисами
const TraceIDHeader = "X-Trace-ID"

type traceIDKey struct{}

// NormalizeTraceID оставляет входящий trace_id, если это uuid, иначе выдает новый.
// Произвольные строки из заголовка в логи не попадают.
func NormalizeTraceID(incoming string) string {
	if id, err := uuid.Parse(incoming); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext возвращает "" для контекста без trace_id
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}
