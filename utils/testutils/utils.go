// Package testutils provides assertions and log capture helpers
// shared by the tests of the module.
package testutils

import (
	"reflect"
	"testing"

	"github.com/benoitkugler/webstyle/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

func AssertNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

// CapturedLogs records the entries sent to the package-wide logger,
// at the warning level and above.
type CapturedLogs struct {
	logs     *observer.ObservedLogs
	previous *zap.Logger
}

// CaptureLogs replaces the package-wide logger until Restore is called.
// Components built with a nil logger after this call are captured.
func CaptureLogs() *CapturedLogs {
	core, logs := observer.New(zap.WarnLevel)
	out := &CapturedLogs{logs: logs, previous: logger.Default()}
	logger.SetDefault(zap.New(core))
	return out
}

// Logger returns the capturing logger, to be passed explicitly.
func (c *CapturedLogs) Logger() *zap.Logger { return logger.Default() }

// Restore puts back the previous package-wide logger.
func (c *CapturedLogs) Restore() { logger.SetDefault(c.previous) }

// Logs returns the captured messages, and resets the capture.
func (c *CapturedLogs) Logs() []string {
	var out []string
	for _, entry := range c.logs.TakeAll() {
		msg := entry.Message
		for _, field := range entry.Context {
			if field.Type == zapcore.StringType {
				msg += " " + field.Key + "=" + field.String
			}
			if err, ok := field.Interface.(error); ok {
				msg += " " + field.Key + "=" + err.Error()
			}
		}
		out = append(out, msg)
	}
	return out
}

// AssertNoLogs fails if any message has been captured.
func (c *CapturedLogs) AssertNoLogs(t *testing.T) {
	t.Helper()
	assert.Empty(t, c.Logs(), "unexpected logs")
}
