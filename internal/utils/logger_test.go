package utils

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Zlog
	Zlog = zap.New(core)
	t.Cleanup(func() { Zlog = prev })
	return logs
}

func TestRouteLogrus(t *testing.T) {
	logs := observe(t)
	RouteLogrus()
	RouteLogrus()

	assert.Equal(t, io.Discard, logrus.StandardLogger().Out)

	logrus.WithField("template", "journal.jinja.html").Errorf("Value.Iterate() not available for type: %s\n", "invalid")
	logrus.Warn("slow render")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "Value.Iterate() not available for type: invalid", entries[0].Message)
	assert.Equal(t, "journal.jinja.html", entries[0].ContextMap()["template"])
	assert.Equal(t, "logrus", entries[0].ContextMap()["logger"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}
