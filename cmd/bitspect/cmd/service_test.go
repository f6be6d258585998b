package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemdUnit(t *testing.T) {
	unit := systemdUnit("/etc/bitspect/config.yaml", "svc", "/opt/bin/bitspect")

	assert.Contains(t, unit, "ExecStart=/opt/bin/bitspect serve --config /etc/bitspect/config.yaml")
	assert.Contains(t, unit, "User=svc")
	assert.Contains(t, unit, "Group=svc")
	assert.True(t, strings.HasPrefix(unit, "[Unit]\n"))
	assert.Contains(t, unit, "WantedBy=multi-user.target")
}

func TestWriteSystemdUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), serviceName)

	require.NoError(t, writeSystemdUnit(path, "/tmp/config.yaml", "bitspect", "/usr/local/bin/bitspect"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, systemdUnit("/tmp/config.yaml", "bitspect", "/usr/local/bin/bitspect"), string(data))
}

func TestServiceCommands(t *testing.T) {
	var names []string
	for _, c := range serviceCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"install", "uninstall", "start", "stop", "restart", "status"}, names)
}
