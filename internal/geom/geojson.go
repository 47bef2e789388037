package geom

import (
	"encoding/json"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	gogeojson "github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"geoshape/internal/logger"
)

// LoadGeoJSON reads a GeoJSON file. See ParseGeoJSON.
func LoadGeoJSON(path string, opts Options) (*Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := ParseGeoJSON(data, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "geojson %s", path)
	}
	return l, nil
}

// ParseGeoJSON accepts a FeatureCollection, a Feature or a bare geometry.
// A third coordinate is read as elevation and a fourth as measure.
func ParseGeoJSON(data []byte, opts Options) (*Layer, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	l := &Layer{}
	switch head.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		for _, f := range fc.Features {
			if err := addGeometry(l, f.Geometry, f.Properties, opts); err != nil {
				return nil, err
			}
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		if err := addGeometry(l, f.Geometry, f.Properties, opts); err != nil {
			return nil, err
		}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		if err := addGeometry(l, g, nil, opts); err != nil {
			return nil, err
		}
	}
	if len(l.Shapes) == 0 {
		return nil, ErrNoGeometry
	}
	logger.L.Debug("parsed geojson", zap.Int("shapes", len(l.Shapes)), zap.Int("points", l.PointCount()))
	return l, nil
}

func addGeometry(l *Layer, g *geojson.Geometry, props map[string]any, opts Options) error {
	if g == nil {
		return nil
	}
	if g.Type == geojson.GeometryCollection {
		for _, member := range g.Geometries {
			if err := addGeometry(l, member, props, opts); err != nil {
				return err
			}
		}
		return nil
	}
	var s *Shape
	switch g.Type {
	case geojson.GeometryPoint:
		s = opts.newShape(ShapePoint, kindOfCoords(g.Point))
		if err := addCoords(s, 0, [][]float64{g.Point}); err != nil {
			return err
		}
	case geojson.GeometryMultiPoint:
		s = opts.newShape(ShapePoint, kindOfCoords(g.MultiPoint...))
		if err := addCoords(s, 0, g.MultiPoint); err != nil {
			return err
		}
	case geojson.GeometryLineString:
		s = opts.newShape(ShapeLine, kindOfCoords(g.LineString...))
		if err := addCoords(s, 0, g.LineString); err != nil {
			return err
		}
	case geojson.GeometryMultiLineString:
		s = opts.newShape(ShapeLine, kindOfRings(g.MultiLineString))
		for _, ls := range g.MultiLineString {
			if err := addCoords(s, s.NumParts(), ls); err != nil {
				return err
			}
		}
	case geojson.GeometryPolygon:
		s = opts.newShape(ShapePolygon, kindOfRings(g.Polygon))
		for _, ring := range g.Polygon {
			if err := addCoords(s, s.NumParts(), ring); err != nil {
				return err
			}
		}
	case geojson.GeometryMultiPolygon:
		var rings [][][]float64
		for _, poly := range g.MultiPolygon {
			rings = append(rings, poly...)
		}
		s = opts.newShape(ShapePolygon, kindOfRings(rings))
		for _, ring := range rings {
			if err := addCoords(s, s.NumParts(), ring); err != nil {
				return err
			}
		}
	default:
		return errors.Wrapf(ErrUnsupported, "geojson type %q", g.Type)
	}
	s.Properties = props
	l.Add(s)
	return nil
}

func kindOfCoords(coords ...[]float64) VertexKind {
	k := VertexXY
	for _, c := range coords {
		switch {
		case len(c) >= 4:
			return VertexXYZM
		case len(c) == 3:
			k = VertexXYZ
		}
	}
	return k
}

func kindOfRings(rings [][][]float64) VertexKind {
	k := VertexXY
	for _, r := range rings {
		if rk := kindOfCoords(r...); rk > k {
			k = rk
		}
	}
	return k
}

// addCoords appends coordinates to part, starting it when part == NumParts.
// Positions with fewer than two values are skipped.
func addCoords(s *Shape, part int, coords [][]float64) error {
	if part == s.NumParts() {
		s.AddPart()
	}
	p := s.Part(part)
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		var z, m float64
		if len(c) > 2 {
			z = c[2]
		}
		if len(c) > 3 {
			m = c[3]
		}
		if err := p.AddPointZM(c[0], c[1], z, m); err != nil {
			return err
		}
	}
	return nil
}

// EncodeGeoJSON renders a shape as a GeoJSON Feature with its properties.
func EncodeGeoJSON(s *Shape) ([]byte, error) {
	g, err := ShapeGeom(s)
	if err != nil {
		return nil, err
	}
	f := &gogeojson.Feature{Geometry: g, Properties: s.Properties}
	return f.MarshalJSON()
}

// EncodeGeoJSONCollection renders every shape of a layer as a FeatureCollection.
func EncodeGeoJSONCollection(l *Layer) ([]byte, error) {
	fc := &gogeojson.FeatureCollection{}
	for _, s := range l.Shapes {
		g, err := ShapeGeom(s)
		if err != nil {
			return nil, err
		}
		fc.Features = append(fc.Features, &gogeojson.Feature{Geometry: g, Properties: s.Properties})
	}
	return fc.MarshalJSON()
}
