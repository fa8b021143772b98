package logging

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	defer Log.SetLevel(logrus.ErrorLevel)

	require.NoError(t, SetLogLevel(0))
	require.Equal(t, logrus.ErrorLevel, Log.GetLevel())

	require.NoError(t, SetLogLevel(2))
	require.Equal(t, logrus.InfoLevel, Log.GetLevel())

	require.NoError(t, SetLogLevel(9))
	require.Equal(t, logrus.DebugLevel, Log.GetLevel())

	err := SetLogLevel(-1)
	require.Equal(t, ErrBadLevel, errors.Cause(err))
}

func TestLevelFilter(t *testing.T) {
	var console, file bytes.Buffer
	old := Log
	Log = newLogger()
	defer func() { Log = old }()

	SetOutput(&console)
	SetLogFile(&file)
	require.NoError(t, SetLogLevel(int(LogLevelWarning)))

	Debugf("hidden %d", 1)
	Warnf("shown %d", 2)

	require.NotContains(t, console.String(), "hidden")
	require.Contains(t, console.String(), "shown 2")
	require.Contains(t, file.String(), "level=warning")
	require.NotContains(t, file.String(), "hidden")
}
