package geom

import "github.com/pkg/errors"

var (
	// ErrAllocation is returned when a capacity request cannot be satisfied.
	ErrAllocation = errors.New("geom: allocation failed")
	// ErrIndexOutOfRange is returned for a point or part index outside the valid bound.
	ErrIndexOutOfRange = errors.New("geom: index out of range")
	// ErrNoGeometry is returned by loaders that found nothing to draw.
	ErrNoGeometry = errors.New("geom: no geometries found")
	// ErrUnsupported is returned for geometry types the loaders do not handle.
	ErrUnsupported = errors.New("geom: unsupported geometry")
)

// ErrNoChannel is returned when writing elevation or measure to a part that does not carry it.
var ErrNoChannel = errors.New("geom: vertex channel not present")
