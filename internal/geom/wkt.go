package geom

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom/encoding/wkt"
	"go.uber.org/zap"

	"geoshape/internal/logger"
)

// ParseWKT parses one WKT geometry into a layer.
// Supported: POINT, MULTIPOINT, LINESTRING, MULTILINESTRING, POLYGON, MULTIPOLYGON,
// GEOMETRYCOLLECTION, each with optional Z/M.
func ParseWKT(s string, opts Options) (*Layer, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "wkt")
	}
	shapes, err := FromGeom(g, nil, opts)
	if err != nil {
		return nil, errors.Wrap(err, "wkt")
	}
	l := &Layer{}
	for _, sh := range shapes {
		l.Add(sh)
	}
	if len(l.Shapes) == 0 {
		return nil, errors.Wrap(ErrNoGeometry, "wkt")
	}
	logger.L.Debug("parsed wkt", zap.Int("shapes", len(l.Shapes)), zap.Int("points", l.PointCount()))
	return l, nil
}

// EncodeWKT renders a shape as WKT.
func EncodeWKT(s *Shape) (string, error) {
	g, err := ShapeGeom(s)
	if err != nil {
		return "", err
	}
	return wkt.Marshal(g)
}
