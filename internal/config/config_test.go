package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoshape/internal/geom"
)

func newTestViper(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	v := New()
	// keep the developer's home config out of the test
	v.AddConfigPath(t.TempDir())
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse(args))
	return Load(v, "")
}

func TestDefaults(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	c, err := newTestViper(t)
	require.NoError(t, err)
	assert.False(t, c.Debug)
	assert.Equal(t, 1.0, c.Zoom)
	assert.Equal(t, geom.DefaultPointLimit, c.PointLimit)
	assert.Equal(t, geom.VertexXY, c.VertexKind)
}

func TestFlagsOverride(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	c, err := newTestViper(t, "--debug", "--zoom", "2.5", "--vertex-kind", "xyzm", "--point-limit", "500")
	require.NoError(t, err)
	assert.True(t, c.Debug)
	assert.Equal(t, 2.5, c.Zoom)
	assert.Equal(t, 500, c.PointLimit)
	assert.Equal(t, geom.VertexXYZM, c.VertexKind)
	assert.Equal(t, geom.Options{PointLimit: 500, Kind: geom.VertexXYZM}, c.Options())
}

func TestEnvOverride(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEOMAP_ZOOM", "3")
	c, err := newTestViper(t)
	require.NoError(t, err)
	assert.Equal(t, 3.0, c.Zoom)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "geomap.yaml")
	require.NoError(t, os.WriteFile(file, []byte("vertex_kind: xyz\nzoom: 4\n"), 0o644))

	v := New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(v, fs))
	c, err := Load(v, file)
	require.NoError(t, err)
	assert.Equal(t, geom.VertexXYZ, c.VertexKind)
	assert.Equal(t, 4.0, c.Zoom)
}

func TestInvalidValues(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	_, err := newTestViper(t, "--vertex-kind", "xym")
	assert.Error(t, err)

	_, err = newTestViper(t, "--zoom", "0")
	assert.Error(t, err)
}

func TestMissingExplicitFile(t *testing.T) {
	v := New()
	_, err := Load(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
