package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"geoshape/internal/geom"
	"geoshape/internal/logger"
)

// historyLimit bounds the undo stack.
const historyLimit = 32

// partSnapshot is a detached copy of one part, restored with Assign.
type partSnapshot struct {
	shape, part int
	saved       *geom.VertexPart
}

// vertexPart resolves ref against the current layer, nil when stale.
func (m Model) vertexPart(ref vertexRef) *geom.VertexPart {
	if !ref.ok || ref.shape < 0 || ref.shape >= len(m.layer.Shapes) {
		return nil
	}
	p := m.layer.Shapes[ref.shape].Part(ref.part)
	if p == nil || ref.index < 0 || ref.index >= p.Count() {
		return nil
	}
	return p
}

// snapshot copies part ref.part of shape ref.shape onto the undo stack. The copy
// hangs off a scratch shape of the same vertex kind so Z and M survive.
func (m *Model) snapshot(ref vertexRef) error {
	s := m.layer.Shapes[ref.shape]
	saved := geom.NewShape(s.Kind(), s.VertexKind()).AddPart()
	if err := saved.Assign(s.Part(ref.part)); err != nil {
		return err
	}
	m.history = append(m.history, partSnapshot{shape: ref.shape, part: ref.part, saved: saved})
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
	return nil
}

// deleteVertex removes the referenced vertex. Parts and shapes left empty are dropped.
func (m *Model) deleteVertex(ref vertexRef) {
	p := m.vertexPart(ref)
	if p == nil {
		m.status = "no vertex selected"
		return
	}
	s := m.layer.Shapes[ref.shape]
	keepsPart := p.Count() > 1
	if keepsPart {
		if err := m.snapshot(ref); err != nil {
			m.status = "delete: " + err.Error()
			return
		}
	}
	if err := p.DeletePoint(ref.index); err != nil {
		if keepsPart {
			m.history = m.history[:len(m.history)-1]
		}
		m.status = "delete: " + err.Error()
		return
	}
	if !keepsPart {
		// part and shape indexes shift, so older snapshots no longer apply
		m.history = nil
		_ = s.DelPart(ref.part)
		if s.PointCount() == 0 {
			s.Destroy()
			m.layer.Shapes = append(m.layer.Shapes[:ref.shape], m.layer.Shapes[ref.shape+1:]...)
		}
	}
	m.hoverVertex = vertexRef{}
	logger.L.Debug("vertex deleted", zap.Int("shape", ref.shape), zap.Int("part", ref.part), zap.Int("index", ref.index))
	m.status = fmt.Sprintf("deleted vertex %d of part %d  %s", ref.index, ref.part, countsLine(m.layer))
}

// insertVertex adds a vertex at the hovered position right after ref. The new
// vertex takes the elevation and measure of ref.
func (m *Model) insertVertex(ref vertexRef) {
	p := m.vertexPart(ref)
	if p == nil || !m.hoverHasGeo {
		m.status = "no vertex selected"
		return
	}
	if err := m.snapshot(ref); err != nil {
		m.status = "insert: " + err.Error()
		return
	}
	at := ref.index + 1
	if err := p.InsertPointZM(m.hoverLon, m.hoverLat, p.Z(ref.index), p.M(ref.index), at); err != nil {
		m.history = m.history[:len(m.history)-1]
		logger.L.Warn("vertex insert failed", zap.Error(err))
		m.status = "insert: " + err.Error()
		return
	}
	m.hoverVertex = vertexRef{}
	logger.L.Debug("vertex inserted", zap.Int("shape", ref.shape), zap.Int("part", ref.part), zap.Int("index", at))
	m.status = fmt.Sprintf("inserted vertex %d into part %d  %s", at, ref.part, countsLine(m.layer))
}

// undo restores the part saved before the latest edit.
func (m *Model) undo() {
	if len(m.history) == 0 {
		m.status = "nothing to undo"
		return
	}
	snap := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	if snap.shape >= len(m.layer.Shapes) {
		m.status = "nothing to undo"
		return
	}
	p := m.layer.Shapes[snap.shape].Part(snap.part)
	if p == nil {
		m.status = "nothing to undo"
		return
	}
	if err := p.Assign(snap.saved); err != nil {
		m.status = "undo: " + err.Error()
		return
	}
	m.hoverVertex = vertexRef{}
	m.status = fmt.Sprintf("restored part %d  %s", snap.part, countsLine(m.layer))
}

// revertAll reverses the vertex order of every part in the layer.
func (m *Model) revertAll() {
	parts := 0
	for _, s := range m.layer.Shapes {
		s.Revert()
		parts += s.NumParts()
	}
	// snapshots predate the reversal
	m.history = nil
	m.hoverVertex = vertexRef{}
	logger.L.Debug("layer reverted", zap.Int("parts", parts))
	m.status = fmt.Sprintf("reverted %d parts", parts)
}

// inspectText describes the shape holding ref and the vertex itself.
func (m Model) inspectText(ref vertexRef) string {
	s := m.layer.Shapes[ref.shape]
	p := s.Part(ref.part)
	pt := p.Point(ref.index)
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<unsaved>"
	}
	ext := s.Extent()
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("path: %s", m.selPath),
		fmt.Sprintf("shape: %d/%d %s (%s)", ref.shape+1, len(m.layer.Shapes), s.Kind(), s.VertexKind()),
		fmt.Sprintf("parts: %d  points: %s", s.NumParts(), humanize.Comma(int64(s.PointCount()))),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", ext.MinX, ext.MinY, ext.MaxX, ext.MaxY),
	}
	if r := s.ZRange(); !r.IsEmpty() {
		meta = append(meta, fmt.Sprintf("z: %g .. %g", r.Min, r.Max))
	}
	if r := s.MRange(); !r.IsEmpty() {
		meta = append(meta, fmt.Sprintf("m: %g .. %g", r.Min, r.Max))
	}
	switch s.Kind() {
	case geom.ShapeLine:
		meta = append(meta, "length: "+humanize.SIWithDigits(s.GeodesicLength(), 2, "m"))
	case geom.ShapePolygon:
		meta = append(meta, fmt.Sprintf("ring %d: area=%.6g closed=%v", ref.part, p.Area(), p.IsClosed(0)))
	}
	vertex := fmt.Sprintf("nearest: lon=%.6f lat=%.6f", pt.X, pt.Y)
	if p.HasZ() {
		vertex += fmt.Sprintf(" z=%g", p.Z(ref.index))
	}
	if p.HasM() {
		vertex += fmt.Sprintf(" m=%g", p.M(ref.index))
	}
	meta = append(meta, vertex, "crs: unknown")
	return strings.Join(meta, "\n")
}
