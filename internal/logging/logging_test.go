package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/cinevault/internal/config"
)

func TestNewWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cinevault.log")

	log, err := New(config.LogConfig{File: path, Level: "debug", MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	log.WithField("page", "home").Debug("navigation started")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "navigation started")
	assert.Contains(t, string(data), "page=home")
}

func TestNewWithoutFileDiscards(t *testing.T) {
	log, err := New(config.LogConfig{Level: "warn"})
	require.NoError(t, err)

	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.NoError(t, log.Close())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"":        logrus.InfoLevel,
		"INFO":    logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
