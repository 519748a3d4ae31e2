package interfaces

// Logger defines a generic logging interface.
// keyvals are alternating key/value pairs; non-string keys are dropped.
type Logger interface {
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
	Debug(msg string, keyvals ...interface{})
	SetLevel(level string)
	With(keyvals ...interface{}) Logger
}
