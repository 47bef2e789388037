package geom

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"geoshape/internal/logger"
)

// LoadCSV reads a CSV with latitude/longitude columns and returns one point shape per row.
// Column detection (case-insensitive): lat|latitude|y and lon|lng|long|longitude|x,
// optionally z|elev|elevation|alt|altitude and m|measure. Every column becomes a property.
func LoadCSV(path string, opts Options) (*Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "csv %s", path)
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	header := recs[0]
	idxLat, idxLon, idxZ, idxM := -1, -1, -1, -1
	first := func(idx *int, i int) {
		if *idx == -1 {
			*idx = i
		}
	}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			first(&idxLat, i)
		case "lon", "lng", "long", "longitude", "x":
			first(&idxLon, i)
		case "z", "elev", "elevation", "alt", "altitude":
			first(&idxZ, i)
		case "m", "measure":
			first(&idxM, i)
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, errors.New("csv: latitude/longitude columns not found")
	}
	vkind := VertexXY
	if idxZ >= 0 {
		vkind = VertexXYZ
	}
	if idxM >= 0 {
		vkind = VertexXYZM
	}
	num := func(row []string, i int) (float64, bool) {
		if i < 0 || i >= len(row) {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		return v, err == nil
	}

	l := &Layer{Columns: header}
	skipped := 0
	for _, row := range recs[1:] {
		lon, ok1 := num(row, idxLon)
		lat, ok2 := num(row, idxLat)
		if !ok1 || !ok2 {
			skipped++
			continue
		}
		z, _ := num(row, idxZ)
		m, _ := num(row, idxM)
		s := opts.newShape(ShapePoint, vkind)
		if err := s.AddPointZM(lon, lat, z, m, 0); err != nil {
			return nil, err
		}
		props := make(map[string]any, len(header))
		for i, h := range header {
			if i < len(row) {
				props[h] = row[i]
			}
		}
		s.Properties = props
		l.Add(s)
	}
	if len(l.Shapes) == 0 {
		return nil, errors.New("csv: no valid points parsed")
	}
	logger.L.Debug("loaded csv", zap.String("path", path), zap.Int("points", l.PointCount()), zap.Int("skipped", skipped))
	return l, nil
}
