package logging

import "context"

// LogDataKey is the context key the request LogData is stored under. It is
// exported so API middleware can attach the collector with huma.WithValue.
type LogDataKey struct{}

// WithLogData attaches a LogData collector to the context so handlers deeper
// in the stack can add fields and timings to the request log line.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, LogDataKey{}, logData)
}

// GetLogData returns the LogData attached to the context, or nil.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(LogDataKey{}).(*LogData)
	return logData
}
