package logger

import "context"

// noopLogger is the global logger until Initialize runs, so packages and
// tests can log without any setup.
type noopLogger struct{}

var _ Logger = (*noopLogger)(nil)

func (*noopLogger) Log(context.Context, LogEntry) {}

func (*noopLogger) Shutdown(context.Context) error {
	return nil
}
