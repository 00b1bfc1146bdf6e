// Package log provides the Modular logger every component in this module
// takes at construction time, following the log.Modular / log.Noop()
// calling convention used by this module's own manager and domain-stack
// tests.
package log

import (
	"go.uber.org/zap"
)

// Modular is a structured, leveled logger that can be narrowed to a
// sub-component via With/WithFields without mutating the parent.
type Modular struct {
	l *zap.SugaredLogger
}

// New wraps an existing zap.Logger.
func New(l *zap.Logger) *Modular {
	return &Modular{l: l.Sugar()}
}

// Noop returns a logger that discards everything, for tests and any
// component that doesn't care about logging.
func Noop() *Modular {
	return New(zap.NewNop())
}

// With returns a child logger tagged with an additional "component" label,
// narrowing it to a named subsystem.
func (m *Modular) With(component string) *Modular {
	return &Modular{l: m.l.With("component", component)}
}

// WithFields returns a child logger with the given structured key/value
// pairs attached to every subsequent message.
func (m *Modular) WithFields(fields map[string]interface{}) *Modular {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Modular{l: m.l.With(args...)}
}

func (m *Modular) Tracef(format string, args ...interface{}) { m.l.Debugf(format, args...) }
func (m *Modular) Debugf(format string, args ...interface{}) { m.l.Debugf(format, args...) }
func (m *Modular) Infof(format string, args ...interface{})  { m.l.Infof(format, args...) }
func (m *Modular) Warnf(format string, args ...interface{})  { m.l.Warnf(format, args...) }
func (m *Modular) Errorf(format string, args ...interface{}) { m.l.Errorf(format, args...) }
func (m *Modular) Fatalf(format string, args ...interface{}) { m.l.Fatalf(format, args...) }
