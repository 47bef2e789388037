package geom

import "github.com/pkg/errors"

// VertexPart is one contiguous ring, line segment or point cluster of a shape.
//
// Coordinates live in a buffer that grows in steps (see GrowthStep). Elevation and
// measure are optional parallel buffers: they are created at growth time when the
// owner's VertexKind asks for them and are then kept in lockstep with the coordinates.
// Bounding statistics are cached and recomputed only after a mutation.
//
// A VertexPart is not safe for concurrent use.
type VertexPart struct {
	owner Owner
	limit int

	xy []Point
	z  []float64
	m  []float64

	dirty  bool
	extent BBox
	zRange Range
	mRange Range
}

// NewVertexPart returns an empty part reporting to owner. owner may be nil.
func NewVertexPart(owner Owner) *VertexPart {
	return &VertexPart{
		owner:  owner,
		limit:  DefaultPointLimit,
		dirty:  true,
		extent: EmptyBBox(),
	}
}

// Owner returns the aggregate the part reports to, possibly nil.
func (p *VertexPart) Owner() Owner { return p.owner }

// Count returns the number of active points.
func (p *VertexPart) Count() int { return len(p.xy) }

// Capacity returns the number of allocated slots.
func (p *VertexPart) Capacity() int { return cap(p.xy) }

// HasZ reports whether the part carries elevations.
func (p *VertexPart) HasZ() bool { return p.z != nil }

// HasM reports whether the part carries measures.
func (p *VertexPart) HasM() bool { return p.m != nil }

// IsDirty reports whether the cached extent and ranges are stale.
func (p *VertexPart) IsDirty() bool { return p.dirty }

// SetPointLimit bounds the capacity the part may allocate. Requests beyond it fail
// with ErrAllocation.
func (p *VertexPart) SetPointLimit(n int) {
	if n < 0 {
		n = 0
	}
	p.limit = n
}

func (p *VertexPart) kind() VertexKind {
	if p.owner == nil {
		return VertexXY
	}
	return p.owner.VertexKind()
}

func (p *VertexPart) adjustTally(delta int) {
	if delta != 0 && p.owner != nil {
		p.owner.AdjustPointTally(delta)
	}
}

// Invalidate marks the cached statistics stale and tells the owner.
func (p *VertexPart) Invalidate() {
	p.dirty = true
	if p.owner != nil {
		p.owner.NotifyInvalidated()
	}
}

// Reserve makes room for n points. It never shrinks below Count and does not
// change it.
func (p *VertexPart) Reserve(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrAllocation, "negative point count %d", n)
	}
	if n <= len(p.xy) {
		return nil
	}
	return p.allocate(n)
}

// allocate sizes every buffer to CapacityFor(n). New buffers are built before any
// field is touched, so a failure leaves the part as it was.
func (p *VertexPart) allocate(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrAllocation, "negative point count %d", n)
	}
	capacity := CapacityFor(n)
	kind := p.kind()
	needZ := p.z != nil || kind.HasZ()
	needM := p.m != nil || kind.HasM()
	if capacity == cap(p.xy) && needZ == (p.z != nil) && needM == (p.m != nil) {
		return nil
	}
	if capacity > p.limit {
		return errors.Wrapf(ErrAllocation, "%d slots exceed the part limit of %d", capacity, p.limit)
	}
	if _, ok := mulOverflowSafe(capacity, slotSize); !ok {
		return errors.Wrapf(ErrAllocation, "%d slots overflow the buffer size", capacity)
	}

	count := len(p.xy)
	xy := growBuffer(p.xy, count, capacity)
	var z, m []float64
	if needZ {
		z = growBuffer(p.z, count, capacity)
	}
	if needM {
		m = growBuffer(p.m, count, capacity)
	}
	p.xy, p.z, p.m = xy, z, m
	return nil
}

// Assign replaces the contents of p with a copy of src. Cached statistics and the
// dirty flag are copied as they are, not recomputed.
func (p *VertexPart) Assign(src *VertexPart) error {
	if src == p {
		return nil
	}
	n := len(src.xy)
	delta := n - len(p.xy)
	// sized for src exactly; the old contents are overwritten below
	if err := p.allocate(n); err != nil {
		return err
	}

	p.xy = p.xy[:n]
	copy(p.xy, src.xy)
	if p.z != nil {
		p.z = p.z[:n]
		if src.z != nil {
			copy(p.z, src.z)
		} else {
			clear(p.z)
		}
	}
	if p.m != nil {
		p.m = p.m[:n]
		if src.m != nil {
			copy(p.m, src.m)
		} else {
			clear(p.m)
		}
	}

	p.extent = src.extent
	p.zRange = src.zRange
	p.mRange = src.mRange
	p.dirty = src.dirty

	p.adjustTally(delta)
	if p.owner != nil {
		p.owner.NotifyInvalidated()
	}
	return nil
}

// InsertPoint inserts (x, y) before index i; i == Count appends. Elevation and
// measure of the new vertex, when carried, are zero.
func (p *VertexPart) InsertPoint(x, y float64, i int) error {
	return p.insert(i, Point{X: x, Y: y}, 0, 0)
}

// InsertPointZ inserts (x, y, z) before index i.
func (p *VertexPart) InsertPointZ(x, y, z float64, i int) error {
	return p.insert(i, Point{X: x, Y: y}, z, 0)
}

// InsertPointZM inserts (x, y, z, m) before index i.
func (p *VertexPart) InsertPointZM(x, y, z, m float64, i int) error {
	return p.insert(i, Point{X: x, Y: y}, z, m)
}

// AddPoint appends (x, y).
func (p *VertexPart) AddPoint(x, y float64) error {
	return p.insert(len(p.xy), Point{X: x, Y: y}, 0, 0)
}

// AddPointZ appends (x, y, z).
func (p *VertexPart) AddPointZ(x, y, z float64) error {
	return p.insert(len(p.xy), Point{X: x, Y: y}, z, 0)
}

// AddPointZM appends (x, y, z, m).
func (p *VertexPart) AddPointZM(x, y, z, m float64) error {
	return p.insert(len(p.xy), Point{X: x, Y: y}, z, m)
}

func (p *VertexPart) insert(i int, pt Point, z, m float64) error {
	n := len(p.xy)
	if i < 0 || i > n {
		return errors.Wrapf(ErrIndexOutOfRange, "insert at %d into %d points", i, n)
	}
	if err := p.Reserve(n + 1); err != nil {
		return err
	}

	p.xy = p.xy[:n+1]
	copy(p.xy[i+1:], p.xy[i:n])
	p.xy[i] = pt
	if p.z != nil {
		p.z = p.z[:n+1]
		copy(p.z[i+1:], p.z[i:n])
		p.z[i] = z
	}
	if p.m != nil {
		p.m = p.m[:n+1]
		copy(p.m[i+1:], p.m[i:n])
		p.m[i] = m
	}

	p.adjustTally(1)
	p.Invalidate()
	return nil
}

// SetPoint overwrites the coordinates of vertex i.
func (p *VertexPart) SetPoint(x, y float64, i int) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	p.xy[i] = Point{X: x, Y: y}
	p.Invalidate()
	return nil
}

// SetPointZ overwrites vertex i; z is dropped when the part carries no elevation.
func (p *VertexPart) SetPointZ(x, y, z float64, i int) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	p.xy[i] = Point{X: x, Y: y}
	if p.z != nil {
		p.z[i] = z
	}
	p.Invalidate()
	return nil
}

// SetPointZM overwrites vertex i; absent channels are skipped.
func (p *VertexPart) SetPointZM(x, y, z, m float64, i int) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	p.xy[i] = Point{X: x, Y: y}
	if p.z != nil {
		p.z[i] = z
	}
	if p.m != nil {
		p.m[i] = m
	}
	p.Invalidate()
	return nil
}

// SetZ overwrites the elevation of vertex i.
func (p *VertexPart) SetZ(i int, z float64) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	if p.z == nil {
		return errors.Wrap(ErrNoChannel, "elevation")
	}
	p.z[i] = z
	p.Invalidate()
	return nil
}

// SetM overwrites the measure of vertex i.
func (p *VertexPart) SetM(i int, m float64) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	if p.m == nil {
		return errors.Wrap(ErrNoChannel, "measure")
	}
	p.m[i] = m
	p.Invalidate()
	return nil
}

func (p *VertexPart) checkIndex(i int) error {
	if i < 0 || i >= len(p.xy) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d of %d points", i, len(p.xy))
	}
	return nil
}

// Point returns vertex i, or the zero Point when i is out of range.
func (p *VertexPart) Point(i int) Point {
	if i < 0 || i >= len(p.xy) {
		return Point{}
	}
	return p.xy[i]
}

// Z returns the elevation of vertex i, zero when absent.
func (p *VertexPart) Z(i int) float64 {
	if p.z == nil || i < 0 || i >= len(p.z) {
		return 0
	}
	return p.z[i]
}

// M returns the measure of vertex i, zero when absent.
func (p *VertexPart) M(i int) float64 {
	if p.m == nil || i < 0 || i >= len(p.m) {
		return 0
	}
	return p.m[i]
}

// Points returns a copy of the coordinates.
func (p *VertexPart) Points() []Point {
	out := make([]Point, len(p.xy))
	copy(out, p.xy)
	return out
}

// DeletePoint removes vertex i and shrinks the buffers by the growth policy.
func (p *VertexPart) DeletePoint(i int) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	n := len(p.xy) - 1
	p.adjustTally(-1)

	copy(p.xy[i:], p.xy[i+1:])
	p.xy = p.xy[:n]
	if p.z != nil {
		copy(p.z[i:], p.z[i+1:])
		p.z = p.z[:n]
	}
	if p.m != nil {
		copy(p.m[i:], p.m[i+1:])
		p.m = p.m[:n]
	}

	// a failed shrink leaves the larger buffers, which still hold every point
	_ = p.allocate(n)

	p.Invalidate()
	return nil
}

// AddPoints appends every vertex of src, in reverse order unless ascending.
// Each vertex is appended on its own; on failure the vertices already added stay.
func (p *VertexPart) AddPoints(src *VertexPart, ascending bool) error {
	n := len(src.xy)
	for k := 0; k < n; k++ {
		i := k
		if !ascending {
			i = n - 1 - k
		}
		if err := p.insert(len(p.xy), src.xy[i], src.Z(i), src.M(i)); err != nil {
			return err
		}
	}
	return nil
}

// RevertPoints reverses the vertex order in place.
func (p *VertexPart) RevertPoints() {
	for a, b := 0, len(p.xy)-1; a < b; a, b = a+1, b-1 {
		p.xy[a], p.xy[b] = p.xy[b], p.xy[a]
		if p.z != nil {
			p.z[a], p.z[b] = p.z[b], p.z[a]
		}
		if p.m != nil {
			p.m[a], p.m[b] = p.m[b], p.m[a]
		}
	}
	p.Invalidate()
}

// Extent returns the bounding box of the part. An empty part yields an empty box.
func (p *VertexPart) Extent() BBox {
	p.update()
	return p.extent
}

// ZRange returns min/max elevation; empty when the part carries none.
func (p *VertexPart) ZRange() Range {
	p.update()
	return p.zRange
}

// MRange returns min/max measure; empty when the part carries none.
func (p *VertexPart) MRange() Range {
	p.update()
	return p.mRange
}

func (p *VertexPart) update() {
	if !p.dirty {
		return
	}
	var x, y, z, m Range
	for i, pt := range p.xy {
		x.Add(pt.X)
		y.Add(pt.Y)
		if p.z != nil {
			z.Add(p.z[i])
		}
		if p.m != nil {
			m.Add(p.m[i])
		}
	}
	if x.IsEmpty() {
		p.extent = EmptyBBox()
	} else {
		p.extent = BBox{MinX: x.Min, MinY: y.Min, MaxX: x.Max, MaxY: y.Max}
	}
	p.zRange, p.mRange = z, m
	p.dirty = false
}

// Destroy removes the part's points from the owner's tally and releases every
// buffer. Calling it again is harmless.
func (p *VertexPart) Destroy() {
	p.adjustTally(-len(p.xy))
	p.xy, p.z, p.m = nil, nil, nil
	p.Invalidate()
}
