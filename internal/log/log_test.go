package log_test

import (
	"testing"

	"github.com/hatlonely/goflux/internal/log"
)

func TestNoopDoesNotPanic(t *testing.T) {
	l := log.Noop()
	l.Infof("hello %s", "world")
	sub := l.With("watch").WithFields(map[string]interface{}{"path": "/tmp/x"})
	sub.Warnf("settling")
}
