package geom

import "github.com/pkg/errors"

// Shape is a multi-part geometry and the Owner of its parts. It keeps the running
// point tally across parts and caches the aggregate extent.
type Shape struct {
	kind  ShapeKind
	vkind VertexKind
	parts []*VertexPart
	limit int

	tally  int
	dirty  bool
	extent BBox
	zRange Range
	mRange Range

	// Properties holds the feature attributes the shape was loaded with.
	Properties map[string]any
}

func NewShape(kind ShapeKind, vkind VertexKind) *Shape {
	return &Shape{
		kind:   kind,
		vkind:  vkind,
		limit:  DefaultPointLimit,
		dirty:  true,
		extent: EmptyBBox(),
	}
}

func (s *Shape) Kind() ShapeKind        { return s.kind }
func (s *Shape) VertexKind() VertexKind { return s.vkind }
func (s *Shape) PointCount() int        { return s.tally }
func (s *Shape) NumParts() int          { return len(s.parts) }
func (s *Shape) IsDirty() bool          { return s.dirty }

// Parts returns the parts in order. The slice must not be modified.
func (s *Shape) Parts() []*VertexPart { return s.parts }

func (s *Shape) AdjustPointTally(delta int) { s.tally += delta }
func (s *Shape) NotifyInvalidated()         { s.dirty = true }

// SetPointLimit bounds the capacity of every current and future part.
func (s *Shape) SetPointLimit(n int) {
	s.limit = n
	for _, p := range s.parts {
		p.SetPointLimit(n)
	}
}

// Part returns part i, or nil when i is out of range.
func (s *Shape) Part(i int) *VertexPart {
	if i < 0 || i >= len(s.parts) {
		return nil
	}
	return s.parts[i]
}

// AddPart appends an empty part.
func (s *Shape) AddPart() *VertexPart {
	p := NewVertexPart(s)
	p.SetPointLimit(s.limit)
	s.parts = append(s.parts, p)
	s.dirty = true
	return p
}

// DelPart destroys part i and removes it from the shape.
func (s *Shape) DelPart(i int) error {
	if i < 0 || i >= len(s.parts) {
		return errors.Wrapf(ErrIndexOutOfRange, "part %d of %d", i, len(s.parts))
	}
	s.parts[i].Destroy()
	s.parts = append(s.parts[:i], s.parts[i+1:]...)
	s.dirty = true
	return nil
}

// part returns part i, adding a new part when i == NumParts.
func (s *Shape) part(i int) (*VertexPart, error) {
	if i == len(s.parts) {
		return s.AddPart(), nil
	}
	if p := s.Part(i); p != nil {
		return p, nil
	}
	return nil, errors.Wrapf(ErrIndexOutOfRange, "part %d of %d", i, len(s.parts))
}

// AddPoint appends (x, y) to part; part == NumParts starts a new part.
func (s *Shape) AddPoint(x, y float64, part int) error {
	p, err := s.part(part)
	if err != nil {
		return err
	}
	return p.AddPoint(x, y)
}

func (s *Shape) AddPointZ(x, y, z float64, part int) error {
	p, err := s.part(part)
	if err != nil {
		return err
	}
	return p.AddPointZ(x, y, z)
}

func (s *Shape) AddPointZM(x, y, z, m float64, part int) error {
	p, err := s.part(part)
	if err != nil {
		return err
	}
	return p.AddPointZM(x, y, z, m)
}

// Revert reverses the vertex order of every part.
func (s *Shape) Revert() {
	for _, p := range s.parts {
		p.RevertPoints()
	}
}

// Destroy releases every part. The tally drops back to zero.
func (s *Shape) Destroy() {
	for _, p := range s.parts {
		p.Destroy()
	}
	s.parts = nil
	s.dirty = true
}

func (s *Shape) Extent() BBox {
	s.update()
	return s.extent
}

func (s *Shape) ZRange() Range {
	s.update()
	return s.zRange
}

func (s *Shape) MRange() Range {
	s.update()
	return s.mRange
}

func (s *Shape) update() {
	if !s.dirty {
		return
	}
	ext := EmptyBBox()
	var z, m Range
	for _, p := range s.parts {
		ext = ext.Union(p.Extent())
		z.Merge(p.ZRange())
		m.Merge(p.MRange())
	}
	s.extent, s.zRange, s.mRange = ext, z, m
	s.dirty = false
}

// Length sums the planar length of every part.
func (s *Shape) Length() float64 {
	var l float64
	for _, p := range s.parts {
		l += p.Length()
	}
	return l
}

// GeodesicLength sums the great-circle length of every part in metres.
func (s *Shape) GeodesicLength() float64 {
	var l float64
	for _, p := range s.parts {
		l += p.GeodesicLength()
	}
	return l
}
