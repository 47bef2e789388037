package geom

import (
	"fmt"
	"math"
)

// VertexKind is the declared shape of a point record.
type VertexKind int

const (
	VertexXY VertexKind = iota
	VertexXYZ
	VertexXYZM
)

// HasZ reports whether records of this kind carry an elevation.
func (k VertexKind) HasZ() bool { return k >= VertexXYZ }

// HasM reports whether records of this kind carry a measure.
func (k VertexKind) HasM() bool { return k == VertexXYZM }

func (k VertexKind) String() string {
	switch k {
	case VertexXY:
		return "xy"
	case VertexXYZ:
		return "xyz"
	case VertexXYZM:
		return "xyzm"
	}
	return fmt.Sprintf("VertexKind(%d)", int(k))
}

// ParseVertexKind accepts the names produced by VertexKind.String.
func ParseVertexKind(s string) (VertexKind, error) {
	switch s {
	case "", "xy":
		return VertexXY, nil
	case "xyz":
		return VertexXYZ, nil
	case "xyzm":
		return VertexXYZM, nil
	}
	return VertexXY, fmt.Errorf("unknown vertex kind %q", s)
}

// ShapeKind tells renderers how to interpret the parts of a shape.
type ShapeKind int

const (
	ShapePoint ShapeKind = iota
	ShapeLine
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapePoint:
		return "point"
	case ShapeLine:
		return "line"
	case ShapePolygon:
		return "polygon"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// Owner is the aggregate a VertexPart reports to. The part never owns it.
type Owner interface {
	// AdjustPointTally adds delta to the owner's running point total.
	AdjustPointTally(delta int)
	// NotifyInvalidated marks the owner's cached statistics stale.
	NotifyInvalidated()
	// VertexKind tells the part which optional channels it must carry.
	VertexKind() VertexKind
}

type Point struct {
	X float64
	Y float64
}

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// EmptyBBox returns an inverted box meaning "no extent".
func EmptyBBox() BBox {
	return BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

// IsEmpty reports min > max on either axis. Callers must not do arithmetic on an empty box.
func (b BBox) IsEmpty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

// Union returns the smallest box covering b and o; empty boxes are ignored.
func (b BBox) Union(o BBox) BBox {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Range accumulates min/max/count of a scalar channel.
// The zero value is an empty range.
type Range struct {
	Min float64
	Max float64
	N   int
}

func (r *Range) Add(v float64) {
	if r.N == 0 {
		r.Min, r.Max = v, v
	} else {
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	r.N++
}

// Merge folds o into r.
func (r *Range) Merge(o Range) {
	if o.N == 0 {
		return
	}
	if r.N == 0 {
		*r = o
		return
	}
	r.Min = math.Min(r.Min, o.Min)
	r.Max = math.Max(r.Max, o.Max)
	r.N += o.N
}

func (r Range) IsEmpty() bool { return r.N == 0 }
