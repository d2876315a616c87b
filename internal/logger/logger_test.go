package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug", "json")
	require.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("component", "test").Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["msg"])
	require.Equal(t, "test", line["component"])
}

func TestNewWithWriter_BadLevelFallsBackToInfo(t *testing.T) {
	l := NewWithWriter(&bytes.Buffer{}, "loud", "text")
	require.Equal(t, logrus.InfoLevel, l.GetLevel())
}
