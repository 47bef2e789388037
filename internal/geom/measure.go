package geom

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadius is the mean earth radius in metres used by GeodesicLength.
const EarthRadius = 6371008.8

// IsClosed reports whether the first and last vertex coincide within eps.
func (p *VertexPart) IsClosed(eps float64) bool {
	n := len(p.xy)
	if n < 2 {
		return false
	}
	a, b := p.xy[0], p.xy[n-1]
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// Length is the planar length of the vertex chain.
func (p *VertexPart) Length() float64 {
	var l float64
	for i := 1; i < len(p.xy); i++ {
		l += math.Hypot(p.xy[i].X-p.xy[i-1].X, p.xy[i].Y-p.xy[i-1].Y)
	}
	return l
}

// Area is the signed planar area of the part read as a ring, closing it implicitly.
// Counter-clockwise rings are positive.
func (p *VertexPart) Area() float64 {
	n := len(p.xy)
	if n < 3 {
		return 0
	}
	var a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += p.xy[i].X*p.xy[j].Y - p.xy[j].X*p.xy[i].Y
	}
	return a / 2
}

// Centroid returns the area centroid of the ring, or the vertex mean when the
// ring has no area. ok is false for an empty part.
func (p *VertexPart) Centroid() (c Point, ok bool) {
	n := len(p.xy)
	if n == 0 {
		return Point{}, false
	}
	if area := p.Area(); area != 0 {
		var cx, cy float64
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			f := p.xy[i].X*p.xy[j].Y - p.xy[j].X*p.xy[i].Y
			cx += (p.xy[i].X + p.xy[j].X) * f
			cy += (p.xy[i].Y + p.xy[j].Y) * f
		}
		return Point{X: cx / (6 * area), Y: cy / (6 * area)}, true
	}
	for _, pt := range p.xy {
		c.X += pt.X
		c.Y += pt.Y
	}
	return Point{X: c.X / float64(n), Y: c.Y / float64(n)}, true
}

// GeodesicLength reads X as longitude and Y as latitude in degrees and returns the
// great-circle length of the chain in metres.
func (p *VertexPart) GeodesicLength() float64 {
	if len(p.xy) < 2 {
		return 0
	}
	var l float64
	prev := s2.LatLngFromDegrees(p.xy[0].Y, p.xy[0].X)
	for _, pt := range p.xy[1:] {
		cur := s2.LatLngFromDegrees(pt.Y, pt.X)
		l += prev.Distance(cur).Radians() * EarthRadius
		prev = cur
	}
	return l
}
