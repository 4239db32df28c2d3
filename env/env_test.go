package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/3636adesh/spring-proxies/marker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probeService struct{}

func (probeService) Ping() {}
func (probeService) Pong() {}

const configDoc = `interception:
  - type: env.probeService
    operations: [Ping]
server:
  port: 8080
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configDoc), 0o644))
	return path
}

func TestNewWithPath(t *testing.T) {
	environment, err := NewWithPath(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, 8080, environment.Config.GetInt("server.port"))
}

func TestNewMissingFile(t *testing.T) {
	_, err := NewWithPath(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestInterceptions(t *testing.T) {
	environment, err := NewWithPath(writeConfig(t))
	require.NoError(t, err)

	table, err := environment.Interceptions()
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "env.probeService", table[0].Type)
	assert.Equal(t, []string{"Ping"}, table[0].Operations)
}

func TestLoadMarkers(t *testing.T) {
	environment, err := NewWithPath(writeConfig(t))
	require.NoError(t, err)

	require.NoError(t, environment.LoadMarkers())
	assert.True(t, marker.IsMarked(probeService{}, "Ping"))
	assert.False(t, marker.IsMarked(probeService{}, "Pong"))
}
