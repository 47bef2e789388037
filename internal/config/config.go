// Package config resolves viewer settings from flags, GEOMAP_* environment
// variables and an optional $HOME/.geomap.yaml, in that order of precedence.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"geoshape/internal/geom"
)

const (
	KeyDebug      = "debug"
	KeyLogDir     = "log_dir"
	KeyZoom       = "zoom"
	KeyPointLimit = "point_limit"
	KeyVertexKind = "vertex_kind"
)

type Config struct {
	Debug      bool
	LogDir     string
	Zoom       float64
	PointLimit int
	VertexKind geom.VertexKind
}

// Options returns the loader options described by c.
func (c Config) Options() geom.Options {
	return geom.Options{PointLimit: c.PointLimit, Kind: c.VertexKind}
}

// New returns a viper instance with defaults, env binding and the config file search path.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogDir, "")
	v.SetDefault(KeyZoom, 1.0)
	v.SetDefault(KeyPointLimit, geom.DefaultPointLimit)
	v.SetDefault(KeyVertexKind, geom.VertexXY.String())

	v.SetEnvPrefix("geomap")
	v.AutomaticEnv()

	v.SetConfigName(".geomap")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	return v
}

// BindFlags registers the persistent flags on fs and binds them to v.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.BoolP(KeyDebug, "d", false, "write debug logs")
	fs.String("log-dir", "", "log directory (default ~/.geomap/logs)")
	fs.Float64(KeyZoom, 1.0, "initial zoom factor")
	fs.Int("point-limit", geom.DefaultPointLimit, "maximum points per part")
	fs.String("vertex-kind", geom.VertexXY.String(), "minimum vertex kind of loaded shapes: xy, xyz, xyzm")

	for key, flag := range map[string]string{
		KeyDebug:      KeyDebug,
		KeyLogDir:     "log-dir",
		KeyZoom:       KeyZoom,
		KeyPointLimit: "point-limit",
		KeyVertexKind: "vertex-kind",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return errors.Wrapf(err, "bind flag %s", flag)
		}
	}
	return nil
}

// Load reads the config file if present and decodes the settings.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(filepath.Clean(file))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config")
		}
	}
	kind, err := geom.ParseVertexKind(v.GetString(KeyVertexKind))
	if err != nil {
		return Config{}, err
	}
	c := Config{
		Debug:      v.GetBool(KeyDebug),
		LogDir:     v.GetString(KeyLogDir),
		Zoom:       v.GetFloat64(KeyZoom),
		PointLimit: v.GetInt(KeyPointLimit),
		VertexKind: kind,
	}
	if c.Zoom <= 0 {
		return Config{}, errors.Errorf("zoom must be positive, got %g", c.Zoom)
	}
	if c.PointLimit <= 0 {
		return Config{}, errors.Errorf("point limit must be positive, got %d", c.PointLimit)
	}
	return c, nil
}
