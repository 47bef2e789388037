package geom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseWKT(t *testing.T) {
	tests := []struct {
		name   string
		wkt    string
		kind   ShapeKind
		vkind  VertexKind
		parts  int
		points int
	}{
		{"point", "POINT (1 2)", ShapePoint, VertexXY, 1, 1},
		{"multipoint", "MULTIPOINT ((1 2), (3 4))", ShapePoint, VertexXY, 1, 2},
		{"linestring z", "LINESTRING Z (0 0 1, 1 1 2, 2 0 3)", ShapeLine, VertexXYZ, 1, 3},
		{"multilinestring", "MULTILINESTRING ((0 0, 1 1), (2 2, 3 3, 4 4))", ShapeLine, VertexXY, 2, 5},
		{"polygon with hole", "POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 2 1, 2 2, 1 1))", ShapePolygon, VertexXY, 2, 9},
		{"multipolygon", "MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5)))", ShapePolygon, VertexXY, 2, 8},
		{"linestring zm", "LINESTRING ZM (0 0 1 10, 1 1 2 20)", ShapeLine, VertexXYZM, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseWKT(tt.wkt, Options{})
			require.NoError(t, err)
			require.Len(t, l.Shapes, 1)
			s := l.Shapes[0]
			assert.Equal(t, tt.kind, s.Kind())
			assert.Equal(t, tt.vkind, s.VertexKind())
			assert.Equal(t, tt.parts, s.NumParts())
			assert.Equal(t, tt.points, s.PointCount())
		})
	}
}

func TestParseWKTCollectionAndErrors(t *testing.T) {
	l, err := ParseWKT("GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (0 0, 3 3))", Options{})
	require.NoError(t, err)
	pts, lines, polys := l.Counts()
	assert.Equal(t, 1, pts)
	assert.Equal(t, 1, lines)
	assert.Equal(t, 0, polys)
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 3, MaxY: 3}, l.Extent())

	_, err = ParseWKT("   ", Options{})
	assert.Error(t, err)
	_, err = ParseWKT("POLYGON ((0 0, 1", Options{})
	assert.Error(t, err)
}

func TestParseWKTOptions(t *testing.T) {
	l, err := ParseWKT("LINESTRING (0 0, 1 1)", Options{Kind: VertexXYZM})
	require.NoError(t, err)
	s := l.Shapes[0]
	assert.Equal(t, VertexXYZM, s.VertexKind())
	assert.True(t, s.Part(0).HasZ())
	assert.True(t, s.Part(0).HasM())

	_, err = ParseWKT("LINESTRING (0 0, 1 1, 2 2)", Options{PointLimit: 2})
	assert.True(t, errors.Is(err, ErrAllocation), "got %v", err)
}

func TestWKTRoundTrip(t *testing.T) {
	in := "POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 2 1, 2 2, 1 1))"
	l, err := ParseWKT(in, Options{})
	require.NoError(t, err)
	out, err := EncodeWKT(l.Shapes[0])
	require.NoError(t, err)

	back, err := ParseWKT(out, Options{})
	require.NoError(t, err)
	require.Equal(t, 2, back.Shapes[0].NumParts())
	for i, p := range l.Shapes[0].Parts() {
		assert.Equal(t, p.Points(), back.Shapes[0].Part(i).Points())
	}
}

func TestWKBRoundTrip(t *testing.T) {
	s := NewShape(ShapeLine, VertexXYZ)
	require.NoError(t, s.AddPointZ(1, 2, 3, 0))
	require.NoError(t, s.AddPointZ(4, 5, 6, 0))

	data, err := EncodeWKB(s)
	require.NoError(t, err)
	l, err := ParseWKB(data, Options{})
	require.NoError(t, err)
	got := l.Shapes[0]
	assert.Equal(t, ShapeLine, got.Kind())
	assert.Equal(t, VertexXYZ, got.VertexKind())
	assert.Equal(t, s.Part(0).Points(), got.Part(0).Points())
	assert.Equal(t, 6.0, got.Part(0).Z(1))

	path := writeTemp(t, "line.wkb", string(data))
	l, err = Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, l.PointCount())

	_, err = ParseWKB([]byte{1, 2}, Options{})
	assert.Error(t, err)
}

func TestParseGeoJSON(t *testing.T) {
	data := `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"name": "a", "pop": 12},
			 "geometry": {"type": "Point", "coordinates": [10, 20]}},
			{"type": "Feature", "properties": {"name": "b"},
			 "geometry": {"type": "LineString", "coordinates": [[0, 0, 5], [1, 1, 7]]}},
			{"type": "Feature", "properties": null,
			 "geometry": {"type": "MultiPolygon", "coordinates": [
				[[[0, 0], [1, 0], [1, 1], [0, 0]]],
				[[[5, 5], [6, 5], [6, 6], [5, 5]], [[5.2, 5.1], [5.5, 5.1], [5.5, 5.4], [5.2, 5.1]]]
			 ]}},
			{"type": "Feature", "properties": {}, "geometry": null}
		]
	}`
	l, err := ParseGeoJSON([]byte(data), Options{})
	require.NoError(t, err)
	require.Len(t, l.Shapes, 3)

	pt := l.Shapes[0]
	assert.Equal(t, ShapePoint, pt.Kind())
	assert.Equal(t, "a", pt.Properties["name"])
	assert.Equal(t, 12.0, pt.Properties["pop"])

	line := l.Shapes[1]
	assert.Equal(t, VertexXYZ, line.VertexKind())
	assert.Equal(t, Range{Min: 5, Max: 7, N: 2}, line.ZRange())

	poly := l.Shapes[2]
	assert.Equal(t, ShapePolygon, poly.Kind())
	assert.Equal(t, 3, poly.NumParts())
	assert.Equal(t, 12, poly.PointCount())

	cols, rows := l.Attributes()
	assert.Equal(t, []string{"name", "pop"}, cols)
	assert.Equal(t, []string{"a", "12"}, rows[0])
	assert.Equal(t, []string{"b", ""}, rows[1])
}

func TestParseGeoJSONVariants(t *testing.T) {
	l, err := ParseGeoJSON([]byte(`{"type":"Feature","properties":{"k":true},"geometry":{"type":"Polygon","coordinates":[[[0,0,1,9],[2,0,1,8],[2,2,1,7],[0,0,1,9]]]}}`), Options{})
	require.NoError(t, err)
	s := l.Shapes[0]
	assert.Equal(t, VertexXYZM, s.VertexKind())
	assert.Equal(t, Range{Min: 7, Max: 9, N: 4}, s.MRange())

	l, err = ParseGeoJSON([]byte(`{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[1,1]},{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2],[3,3]]]}]}`), Options{})
	require.NoError(t, err)
	require.Len(t, l.Shapes, 2)
	assert.Equal(t, 2, l.Shapes[1].NumParts())

	_, err = ParseGeoJSON([]byte(`{"features":[]}`), Options{})
	assert.Error(t, err, "missing type")
	_, err = ParseGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`), Options{})
	assert.True(t, errors.Is(err, ErrNoGeometry))
	_, err = ParseGeoJSON([]byte(`not json`), Options{})
	assert.Error(t, err)
}

func TestGeoJSONEncode(t *testing.T) {
	s := NewShape(ShapeLine, VertexXY)
	require.NoError(t, s.AddPoint(0, 0, 0))
	require.NoError(t, s.AddPoint(1, 2, 0))
	s.Properties = map[string]any{"name": "road"}

	data, err := EncodeGeoJSON(s)
	require.NoError(t, err)
	l, err := ParseGeoJSON(data, Options{})
	require.NoError(t, err)
	require.Len(t, l.Shapes, 1)
	assert.Equal(t, "road", l.Shapes[0].Properties["name"])
	assert.Equal(t, s.Part(0).Points(), l.Shapes[0].Part(0).Points())

	src := &Layer{Shapes: []*Shape{s, s}}
	data, err = EncodeGeoJSONCollection(src)
	require.NoError(t, err)
	l, err = ParseGeoJSON(data, Options{})
	require.NoError(t, err)
	assert.Len(t, l.Shapes, 2)
}

func TestLoadCSV(t *testing.T) {
	path := writeTemp(t, "pts.csv", "name,Lat,lon,elev\nA,10,20,5\nB,bad,1,0\nC,-1,2,7\n")
	l, err := Load(path, Options{})
	require.NoError(t, err)
	require.Len(t, l.Shapes, 2, "rows with bad coordinates are skipped")
	assert.Equal(t, VertexXYZ, l.VertexKind())
	assert.Equal(t, BBox{MinX: 2, MinY: -1, MaxX: 20, MaxY: 10}, l.Extent())
	assert.Equal(t, Range{Min: 5, Max: 7, N: 2}, l.ZRange())
	assert.Equal(t, "C", l.Shapes[1].Properties["name"])

	cols, rows := l.Attributes()
	assert.Equal(t, []string{"name", "Lat", "lon", "elev"}, cols)
	assert.Equal(t, []string{"A", "10", "20", "5"}, rows[0])

	_, err = LoadCSV(writeTemp(t, "nocols.csv", "a,b\n1,2\n"), Options{})
	assert.EqualError(t, err, "csv: latitude/longitude columns not found")
	_, err = LoadCSV(writeTemp(t, "empty.csv", ""), Options{})
	assert.EqualError(t, err, "empty csv")
	_, err = LoadCSV(writeTemp(t, "bad.csv", "lat,lon\nx,y\n"), Options{})
	assert.EqualError(t, err, "csv: no valid points parsed")
}

func TestLoadKML(t *testing.T) {
	data := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <name>peak</name>
      <Point><coordinates>7.5,46.1,4000</coordinates></Point>
    </Placemark>
    <Folder>
      <Placemark>
        <name>lake</name>
        <description> blue </description>
        <Polygon>
          <outerBoundaryIs><LinearRing><coordinates>0,0 4,0 4,4 0,0</coordinates></LinearRing></outerBoundaryIs>
          <innerBoundaryIs><LinearRing><coordinates>1,1 2,1 2,2 1,1</coordinates></LinearRing></innerBoundaryIs>
        </Polygon>
      </Placemark>
      <Placemark>
        <name>trail</name>
        <MultiGeometry>
          <LineString><coordinates>0,0 1,1 bad 2,2</coordinates></LineString>
        </MultiGeometry>
      </Placemark>
    </Folder>
  </Document>
</kml>`
	l, err := Load(writeTemp(t, "doc.kml", data), Options{})
	require.NoError(t, err)
	require.Len(t, l.Shapes, 3)

	peak := l.Shapes[0]
	assert.Equal(t, "peak", peak.Properties["name"])
	assert.Equal(t, VertexXYZ, peak.VertexKind())
	assert.Equal(t, 4000.0, peak.Part(0).Z(0))

	lake := l.Shapes[1]
	assert.Equal(t, ShapePolygon, lake.Kind())
	assert.Equal(t, 2, lake.NumParts())
	assert.Equal(t, "blue", lake.Properties["description"])

	trail := l.Shapes[2]
	assert.Equal(t, ShapeLine, trail.Kind())
	assert.Equal(t, 3, trail.PointCount())

	_, err = ParseKML([]byte(`<kml><Document/></kml>`), Options{})
	assert.Error(t, err)
}

func TestLoadDispatch(t *testing.T) {
	assert.True(t, Supported("a/b/C.GeoJSON"))
	assert.True(t, Supported("x.wkt"))
	assert.False(t, Supported("notes.txt"))

	_, err := Load("notes.txt", Options{})
	assert.Error(t, err)

	l, err := Load(writeTemp(t, "shape.wkt", "LINESTRING (0 0, 1 1)\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, l.PointCount())

	_, err = Load(filepath.Join(t.TempDir(), "missing.geojson"), Options{})
	assert.Error(t, err)
}

func TestShapeGeomKinds(t *testing.T) {
	pts := NewShape(ShapePoint, VertexXY)
	require.NoError(t, pts.AddPoint(1, 1, 0))
	out, err := EncodeWKT(pts)
	require.NoError(t, err)
	assert.Contains(t, out, "POINT")
	assert.NotContains(t, out, "MULTIPOINT")

	require.NoError(t, pts.AddPoint(2, 2, 0))
	out, err = EncodeWKT(pts)
	require.NoError(t, err)
	assert.Contains(t, out, "MULTIPOINT")

	lines := NewShape(ShapeLine, VertexXY)
	require.NoError(t, lines.AddPoint(0, 0, 0))
	require.NoError(t, lines.AddPoint(1, 1, 0))
	require.NoError(t, lines.AddPoint(2, 2, 1))
	require.NoError(t, lines.AddPoint(3, 3, 1))
	out, err = EncodeWKT(lines)
	require.NoError(t, err)
	assert.Contains(t, out, "MULTILINESTRING")
}
