package tui

import (
	"sort"
	"strings"

	"geoshape/internal/geom"
)

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !m.canProject() {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	lat := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return lon, lat, true
}

// canProject is false for an empty or flat bbox.
func (m Model) canProject() bool {
	return !m.bbox.IsEmpty() && m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY
}

// projectPart maps every vertex of a part onto the braille microgrid.
func (m Model) projectPart(p *geom.VertexPart, w, h int) [][2]int {
	out := make([][2]int, 0, p.Count())
	for i := 0; i < p.Count(); i++ {
		pt := p.Point(i)
		mx, my, ok := m.screenXYMicro(pt.X, pt.Y, w, h)
		if !ok {
			continue
		}
		out = append(out, [2]int{mx, my})
	}
	return out
}

func (m Model) renderAsciiMap(w, h int) string {
	// Plain background (no grid)
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		lines[y] = strings.Repeat(" ", w)
	}
	// High-resolution braille buffer for crisp lines/edges
	br := newBrailleBuf(w, h)

	for _, s := range m.layer.Shapes {
		switch s.Kind() {
		case geom.ShapePolygon:
			if !m.showPolys {
				continue
			}
			var rings [][][2]int
			for _, p := range s.Parts() {
				if r := m.projectPart(p, w, h); len(r) >= 3 {
					rings = append(rings, r)
				}
			}
			fillEvenOdd(br, rings, h*4)
			for _, r := range rings {
				br.drawChain(r, true)
			}
		case geom.ShapeLine:
			if !m.showLines {
				continue
			}
			for _, p := range s.Parts() {
				br.drawChain(m.projectPart(p, w, h), false)
			}
		case geom.ShapePoint:
			if !m.showPoints || !m.canProject() {
				continue
			}
			for _, p := range s.Parts() {
				for _, c := range m.projectPart(p, w, h) {
					br.setPixel(c[0], c[1])
				}
			}
		}
	}

	// Composite braille overlay onto base lines
	braLines := br.toLines()
	for y := 0; y < h && y < len(braLines); y++ {
		base := []rune(lines[y])
		over := []rune(braLines[y])
		for x := 0; x < len(base) && x < len(over); x++ {
			if over[x] != ' ' {
				base[x] = over[x]
			}
		}
		lines[y] = string(base)
	}

	// Hover highlight: draw a circle at the hovered vertex cell
	if m.hovering && m.hoverVertex.ok {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				circle := hoverStyle.Render("◯")
				// rebuild line with ANSI sequence at position cx
				lines[cy] = string(r[:cx]) + circle + string(r[cx+1:])
			}
		}
	}
	return strings.Join(lines, "\n")
}

// fillEvenOdd fills rings on the microgrid by scanline; holes stay empty.
func fillEvenOdd(br *brailleBuf, rings [][][2]int, hMic int) {
	if len(rings) == 0 {
		return
	}
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for _, ring := range rings {
			for i := 0; i < len(ring); i++ {
				a := ring[i]
				b := ring[(i+1)%len(ring)]
				if a[1] == b[1] { // horizontal edge: skip
					continue
				}
				y0, y1 := a[1], b[1]
				x0, x1 := a[0], b[0]
				if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
					t := float64(yMic-y0) / float64(y1-y0)
					xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
				}
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				br.setPixel(xMic, yMic)
			}
		}
	}
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if !m.canProject() {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps lon/lat to current screen integer coordinates considering zoom and pan.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	if !m.canProject() {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// nearestVertex finds the vertex whose projection is closest to the screen point
// (sx, sy); project selects cell or microgrid coordinates.
func (m Model) nearestVertex(sx, sy int, project func(lon, lat float64) (int, int, bool)) (vertexRef, [2]int) {
	best := 1<<31 - 1
	var ref vertexRef
	var at [2]int
	for si, s := range m.layer.Shapes {
		for pi, p := range s.Parts() {
			for i := 0; i < p.Count(); i++ {
				pt := p.Point(i)
				x, y, ok := project(pt.X, pt.Y)
				if !ok {
					continue
				}
				dx, dy := x-sx, y-sy
				if d := dx*dx + dy*dy; d < best {
					best = d
					ref = vertexRef{shape: si, part: pi, index: i, ok: true}
					at = [2]int{x, y}
				}
			}
		}
	}
	return ref, at
}

// inspectNearest finds the vertex closest to the viewport center.
func (m Model) inspectNearest() vertexRef {
	_, _, w, h := m.layout()
	ref, _ := m.nearestVertex(w/2, h/2, func(lon, lat float64) (int, int, bool) {
		return m.screenXY(lon, lat, w, h)
	})
	return ref
}
