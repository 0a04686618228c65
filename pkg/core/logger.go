package core

// Logger interface for optics-core diagnostics
type Logger interface {
	Printf(format string, args ...interface{})
}

// SilentLogger discards all output
type SilentLogger struct{}

// Printf implements Logger by doing nothing
func (SilentLogger) Printf(format string, args ...interface{}) {}
