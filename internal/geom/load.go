package geom

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom/encoding/wkb"
	"go.uber.org/zap"

	"geoshape/internal/logger"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".geojson", ".json", ".csv", ".kml", ".wkt", ".wkb"}

// Supported reports whether Load handles the extension of path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads any supported file into a layer, dispatching on the extension.
func Load(path string, opts Options) (*Layer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var l *Layer
	var err error
	switch ext {
	case ".geojson", ".json":
		l, err = LoadGeoJSON(path, opts)
	case ".csv":
		l, err = LoadCSV(path, opts)
	case ".kml":
		l, err = LoadKML(path, opts)
	case ".wkt":
		var data []byte
		if data, err = os.ReadFile(path); err == nil {
			l, err = ParseWKT(string(data), opts)
		}
	case ".wkb":
		var data []byte
		if data, err = os.ReadFile(path); err == nil {
			l, err = ParseWKB(data, opts)
		}
	default:
		return nil, errors.Errorf("unsupported file: %s", ext)
	}
	if err != nil {
		logger.L.Warn("load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	logger.L.Info("loaded", zap.String("path", path), zap.Int("shapes", len(l.Shapes)),
		zap.Int("points", l.PointCount()), zap.Stringer("kind", l.VertexKind()))
	return l, nil
}

// ParseWKB decodes one WKB geometry into a layer.
func ParseWKB(data []byte, opts Options) (*Layer, error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "wkb")
	}
	shapes, err := FromGeom(g, nil, opts)
	if err != nil {
		return nil, errors.Wrap(err, "wkb")
	}
	l := &Layer{}
	for _, s := range shapes {
		l.Add(s)
	}
	if len(l.Shapes) == 0 {
		return nil, errors.Wrap(ErrNoGeometry, "wkb")
	}
	return l, nil
}

// EncodeWKB renders a shape as little-endian WKB.
func EncodeWKB(s *Shape) ([]byte, error) {
	g, err := ShapeGeom(s)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}
