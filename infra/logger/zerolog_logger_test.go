package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	require.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { _ = os.Unsetenv("APP_ENV") }()
	l := NewZerologLogger("test")
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}
