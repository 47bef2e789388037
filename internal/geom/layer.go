package geom

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Layer is the set of shapes loaded from one source, ready for rendering.
type Layer struct {
	Shapes []*Shape
	// Columns keeps attribute names in source order when the source has one.
	Columns []string
}

// Add appends a shape that has at least one point; empty shapes are dropped.
func (l *Layer) Add(s *Shape) {
	if s == nil || s.PointCount() == 0 {
		return
	}
	l.Shapes = append(l.Shapes, s)
}

func (l *Layer) Extent() BBox {
	ext := EmptyBBox()
	for _, s := range l.Shapes {
		ext = ext.Union(s.Extent())
	}
	return ext
}

// Counts returns the number of point, line and polygon shapes.
func (l *Layer) Counts() (points, lines, polygons int) {
	for _, s := range l.Shapes {
		switch s.Kind() {
		case ShapePoint:
			points++
		case ShapeLine:
			lines++
		case ShapePolygon:
			polygons++
		}
	}
	return points, lines, polygons
}

// PointCount sums the point tally of every shape.
func (l *Layer) PointCount() int {
	n := 0
	for _, s := range l.Shapes {
		n += s.PointCount()
	}
	return n
}

// VertexKind is the richest vertex kind among the shapes.
func (l *Layer) VertexKind() VertexKind {
	k := VertexXY
	for _, s := range l.Shapes {
		if s.VertexKind() > k {
			k = s.VertexKind()
		}
	}
	return k
}

// ZRange merges the elevation range of every shape.
func (l *Layer) ZRange() Range {
	var r Range
	for _, s := range l.Shapes {
		r.Merge(s.ZRange())
	}
	return r
}

// MRange merges the measure range of every shape.
func (l *Layer) MRange() Range {
	var r Range
	for _, s := range l.Shapes {
		r.Merge(s.MRange())
	}
	return r
}

// Attributes returns the union of property keys and one row of values per shape.
func (l *Layer) Attributes() ([]string, [][]string) {
	order := append([]string(nil), l.Columns...)
	seen := map[string]bool{}
	for _, k := range order {
		seen[k] = true
	}
	var extra []string
	for _, s := range l.Shapes {
		for k := range s.Properties {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	// map iteration order is random; keep the table stable
	sort.Strings(extra)
	order = append(order, extra...)
	if len(order) == 0 {
		return nil, nil
	}
	rows := make([][]string, 0, len(l.Shapes))
	for _, s := range l.Shapes {
		vals := make([]string, 0, len(order))
		for _, k := range order {
			vals = append(vals, formatValue(s.Properties[k]))
		}
		rows = append(rows, vals)
	}
	return order, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
