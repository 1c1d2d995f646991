package core

// Logger is any leveled logger the application reports through.
// Implementations may inspect args for well-known types (errors, the
// request's user) and forward the rest as-is.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
