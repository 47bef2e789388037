package geom

// Options tunes how loaders build shapes.
type Options struct {
	// PointLimit bounds the capacity of every part; zero means DefaultPointLimit.
	PointLimit int
	// Kind is the minimum vertex kind of loaded shapes. Sources that carry richer
	// vertices keep them.
	Kind VertexKind
}

func (o Options) newShape(kind ShapeKind, vkind VertexKind) *Shape {
	if o.Kind > vkind {
		vkind = o.Kind
	}
	s := NewShape(kind, vkind)
	if o.PointLimit > 0 {
		s.SetPointLimit(o.PointLimit)
	}
	return s
}
