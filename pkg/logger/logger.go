// Package logger is the process-wide structured logging facade. A backend
// implements Instance; Init installs one or more backends at startup and the
// package-level functions fan every record out to all of them. Records
// logged before Init are dropped.
package logger

// Instance is a logging backend. Keyvals are alternating key/value pairs,
// charmbracelet style.
type Instance interface {
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

var backends []Instance

// Init installs the logging backends. Call once, before anything logs.
func Init(instances ...Instance) {
	backends = instances
}

func Debug(message string, keyvals ...any) {
	for _, b := range backends {
		b.Debug(message, keyvals...)
	}
}

func Info(message string, keyvals ...any) {
	for _, b := range backends {
		b.Info(message, keyvals...)
	}
}

func Warn(message string, keyvals ...any) {
	for _, b := range backends {
		b.Warn(message, keyvals...)
	}
}

func Error(message string, keyvals ...any) {
	for _, b := range backends {
		b.Error(message, keyvals...)
	}
}

// Fatal logs on every backend; the last backend is expected to terminate the
// process, so backends that exit must be installed last.
func Fatal(message string, keyvals ...any) {
	for _, b := range backends {
		b.Fatal(message, keyvals...)
	}
}
