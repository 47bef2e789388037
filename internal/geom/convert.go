package geom

import (
	"github.com/pkg/errors"
	gogeom "github.com/twpayne/go-geom"
)

// kindOfLayout maps a go-geom layout onto a vertex kind. A measure without an
// elevation still needs the full kind; its elevation reads as zero.
func kindOfLayout(l gogeom.Layout) VertexKind {
	switch l {
	case gogeom.XYZ:
		return VertexXYZ
	case gogeom.XYM, gogeom.XYZM:
		return VertexXYZM
	}
	return VertexXY
}

func layoutOfKind(k VertexKind) gogeom.Layout {
	switch k {
	case VertexXYZ:
		return gogeom.XYZ
	case VertexXYZM:
		return gogeom.XYZM
	}
	return gogeom.XY
}

// appendFlat adds every vertex of a flat coordinate run to part.
func appendFlat(s *Shape, part int, flat []float64, layout gogeom.Layout) error {
	stride := layout.Stride()
	zi, mi := layout.ZIndex(), layout.MIndex()
	if part == s.NumParts() {
		s.AddPart()
	}
	p := s.Part(part)
	for i := 0; i+stride <= len(flat); i += stride {
		var z, m float64
		if zi >= 0 {
			z = flat[i+zi]
		}
		if mi >= 0 {
			m = flat[i+mi]
		}
		if err := p.AddPointZM(flat[i], flat[i+1], z, m); err != nil {
			return err
		}
	}
	return nil
}

// appendRuns adds one part per run of flat coordinates delimited by ends.
func appendRuns(s *Shape, flat []float64, ends []int, layout gogeom.Layout) error {
	offset := 0
	for _, end := range ends {
		if err := appendFlat(s, s.NumParts(), flat[offset:end], layout); err != nil {
			return err
		}
		offset = end
	}
	return nil
}

// FromGeom converts a go-geom geometry into shapes. Collections yield one shape
// per member.
func FromGeom(g gogeom.T, props map[string]any, opts Options) ([]*Shape, error) {
	var s *Shape
	var err error
	switch v := g.(type) {
	case *gogeom.Point:
		s = opts.newShape(ShapePoint, kindOfLayout(v.Layout()))
		err = appendFlat(s, 0, v.FlatCoords(), v.Layout())
	case *gogeom.MultiPoint:
		s = opts.newShape(ShapePoint, kindOfLayout(v.Layout()))
		err = appendFlat(s, 0, v.FlatCoords(), v.Layout())
	case *gogeom.LineString:
		s = opts.newShape(ShapeLine, kindOfLayout(v.Layout()))
		err = appendFlat(s, 0, v.FlatCoords(), v.Layout())
	case *gogeom.MultiLineString:
		s = opts.newShape(ShapeLine, kindOfLayout(v.Layout()))
		err = appendRuns(s, v.FlatCoords(), v.Ends(), v.Layout())
	case *gogeom.Polygon:
		s = opts.newShape(ShapePolygon, kindOfLayout(v.Layout()))
		err = appendRuns(s, v.FlatCoords(), v.Ends(), v.Layout())
	case *gogeom.MultiPolygon:
		s = opts.newShape(ShapePolygon, kindOfLayout(v.Layout()))
		// Endss offsets are absolute in the flat buffer
		offset := 0
		for _, ends := range v.Endss() {
			for _, end := range ends {
				if err = appendFlat(s, s.NumParts(), v.FlatCoords()[offset:end], v.Layout()); err != nil {
					return nil, err
				}
				offset = end
			}
		}
	case *gogeom.GeometryCollection:
		var out []*Shape
		for _, member := range v.Geoms() {
			shapes, err := FromGeom(member, props, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, shapes...)
		}
		return out, nil
	default:
		return nil, errors.Wrapf(ErrUnsupported, "%T", g)
	}
	if err != nil {
		return nil, err
	}
	s.Properties = props
	return []*Shape{s}, nil
}

// ShapeGeom converts a shape back into a go-geom geometry.
func ShapeGeom(s *Shape) (gogeom.T, error) {
	layout := layoutOfKind(s.VertexKind())
	stride := layout.Stride()
	var flat []float64
	var ends []int
	for _, p := range s.Parts() {
		for i := 0; i < p.Count(); i++ {
			pt := p.Point(i)
			flat = append(flat, pt.X, pt.Y)
			if stride > 2 {
				flat = append(flat, p.Z(i))
			}
			if stride > 3 {
				flat = append(flat, p.M(i))
			}
		}
		ends = append(ends, len(flat))
	}
	switch s.Kind() {
	case ShapePoint:
		if s.PointCount() == 1 {
			return gogeom.NewPointFlat(layout, flat), nil
		}
		return gogeom.NewMultiPointFlat(layout, flat), nil
	case ShapeLine:
		if s.NumParts() == 1 {
			return gogeom.NewLineStringFlat(layout, flat), nil
		}
		return gogeom.NewMultiLineStringFlat(layout, flat, ends), nil
	case ShapePolygon:
		return gogeom.NewPolygonFlat(layout, flat, ends), nil
	}
	return nil, errors.Wrapf(ErrUnsupported, "shape kind %v", s.Kind())
}
