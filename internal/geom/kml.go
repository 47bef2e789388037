package geom

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"geoshape/internal/logger"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlRing struct {
	LinearRing kmlCoords `xml:"LinearRing"`
}

type kmlPolygon struct {
	Outer kmlRing   `xml:"outerBoundaryIs"`
	Inner []kmlRing `xml:"innerBoundaryIs"`
}

type kmlGeometry struct {
	Points      []kmlCoords   `xml:"Point"`
	LineStrings []kmlCoords   `xml:"LineString"`
	Polygons    []kmlPolygon  `xml:"Polygon"`
	Multi       []kmlGeometry `xml:"MultiGeometry"`
}

type kmlPlacemark struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	kmlGeometry
}

type kmlFolder struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Folders    []kmlFolder    `xml:"Folder"`
	Documents  []kmlFolder    `xml:"Document"`
}

// LoadKML extracts Point, LineString and Polygon placemarks from a KML file.
// KML coordinates are "lon,lat[,alt]"; altitude becomes the elevation.
func LoadKML(path string, opts Options) (*Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := ParseKML(data, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "kml %s", path)
	}
	logger.L.Debug("loaded kml", zap.String("path", path), zap.Int("shapes", len(l.Shapes)))
	return l, nil
}

func ParseKML(data []byte, opts Options) (*Layer, error) {
	var doc kmlFolder
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	l := &Layer{Columns: []string{"name", "description"}}
	var walk func(f kmlFolder) error
	walk = func(f kmlFolder) error {
		for _, pm := range f.Placemarks {
			props := map[string]any{"name": pm.Name, "description": strings.TrimSpace(pm.Description)}
			if err := addKMLGeometry(l, pm.kmlGeometry, props, opts); err != nil {
				return err
			}
		}
		for _, sub := range f.Folders {
			if err := walk(sub); err != nil {
				return err
			}
		}
		for _, sub := range f.Documents {
			if err := walk(sub); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(doc); err != nil {
		return nil, err
	}
	if len(l.Shapes) == 0 {
		return nil, errors.New("kml: no placemarks found")
	}
	return l, nil
}

func addKMLGeometry(l *Layer, g kmlGeometry, props map[string]any, opts Options) error {
	for _, pt := range g.Points {
		coords := parseKMLCoords(pt.Coordinates)
		s := opts.newShape(ShapePoint, kindOfCoords(coords...))
		if err := addCoords(s, 0, coords); err != nil {
			return err
		}
		s.Properties = props
		l.Add(s)
	}
	for _, ls := range g.LineStrings {
		coords := parseKMLCoords(ls.Coordinates)
		s := opts.newShape(ShapeLine, kindOfCoords(coords...))
		if err := addCoords(s, 0, coords); err != nil {
			return err
		}
		s.Properties = props
		l.Add(s)
	}
	for _, poly := range g.Polygons {
		rings := [][][]float64{parseKMLCoords(poly.Outer.LinearRing.Coordinates)}
		for _, in := range poly.Inner {
			rings = append(rings, parseKMLCoords(in.LinearRing.Coordinates))
		}
		s := opts.newShape(ShapePolygon, kindOfRings(rings))
		for _, ring := range rings {
			if err := addCoords(s, s.NumParts(), ring); err != nil {
				return err
			}
		}
		s.Properties = props
		l.Add(s)
	}
	for _, m := range g.Multi {
		if err := addKMLGeometry(l, m, props, opts); err != nil {
			return err
		}
	}
	return nil
}

// parseKMLCoords splits whitespace separated "lon,lat[,alt]" tuples. Bad tuples are skipped.
func parseKMLCoords(s string) [][]float64 {
	var out [][]float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		c := make([]float64, 0, 3)
		for _, v := range vals[:min(len(vals), 3)] {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				c = nil
				break
			}
			c = append(c, f)
		}
		if len(c) >= 2 {
			out = append(out, c)
		}
	}
	return out
}
