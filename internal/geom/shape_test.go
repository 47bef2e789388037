package geom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeTallyAcrossParts(t *testing.T) {
	s := NewShape(ShapeLine, VertexXY)
	require.NoError(t, s.AddPoint(0, 0, 0))
	require.NoError(t, s.AddPoint(1, 1, 0))
	require.NoError(t, s.AddPoint(5, 5, 1), "part == NumParts starts a new part")
	require.NoError(t, s.AddPoint(6, 6, 1))
	require.NoError(t, s.AddPoint(7, 7, 1))

	assert.Equal(t, 2, s.NumParts())
	assert.Equal(t, 5, s.PointCount())

	err := s.AddPoint(9, 9, 5)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Equal(t, 2, s.NumParts())

	require.NoError(t, s.Part(1).DeletePoint(0))
	assert.Equal(t, 4, s.PointCount())

	require.NoError(t, s.DelPart(0))
	assert.Equal(t, 1, s.NumParts())
	assert.Equal(t, 2, s.PointCount())
	assert.True(t, errors.Is(s.DelPart(3), ErrIndexOutOfRange))

	s.Destroy()
	assert.Equal(t, 0, s.PointCount())
	assert.Equal(t, 0, s.NumParts())
	assert.True(t, s.Extent().IsEmpty())
}

func TestShapeExtentFollowsPartEdits(t *testing.T) {
	s := NewShape(ShapePolygon, VertexXYZ)
	require.NoError(t, s.AddPointZ(0, 0, 1, 0))
	require.NoError(t, s.AddPointZ(2, 2, 3, 0))
	require.NoError(t, s.AddPointZ(-1, 4, 2, 1))

	assert.Equal(t, BBox{MinX: -1, MinY: 0, MaxX: 2, MaxY: 4}, s.Extent())
	assert.Equal(t, Range{Min: 1, Max: 3, N: 3}, s.ZRange())
	assert.True(t, s.MRange().IsEmpty())
	assert.False(t, s.IsDirty())

	require.NoError(t, s.Part(1).SetPointZ(10, -5, 8, 0))
	assert.True(t, s.IsDirty(), "a part edit invalidates the shape")
	assert.Equal(t, BBox{MinX: 0, MinY: -5, MaxX: 10, MaxY: 2}, s.Extent())
	assert.Equal(t, Range{Min: 1, Max: 8, N: 3}, s.ZRange())
}

func TestShapeRevert(t *testing.T) {
	s := NewShape(ShapeLine, VertexXY)
	for i := 0; i < 4; i++ {
		require.NoError(t, s.AddPoint(float64(i), 0, 0))
	}
	require.NoError(t, s.AddPoint(10, 0, 1))
	require.NoError(t, s.AddPoint(11, 0, 1))

	s.Revert()
	assert.Equal(t, []Point{{3, 0}, {2, 0}, {1, 0}, {0, 0}}, s.Part(0).Points())
	assert.Equal(t, []Point{{11, 0}, {10, 0}}, s.Part(1).Points())
}

func TestShapePointLimit(t *testing.T) {
	s := NewShape(ShapeLine, VertexXY)
	require.NoError(t, s.AddPoint(0, 0, 0))
	s.SetPointLimit(2)
	require.NoError(t, s.AddPoint(1, 0, 0))
	err := s.AddPoint(2, 0, 0)
	assert.True(t, errors.Is(err, ErrAllocation))
	assert.Equal(t, 2, s.PointCount())

	p := s.AddPart()
	require.NoError(t, p.AddPoint(0, 0))
	require.NoError(t, p.AddPoint(1, 1))
	assert.True(t, errors.Is(p.AddPoint(2, 2), ErrAllocation), "new parts inherit the limit")
}

func TestShapeLength(t *testing.T) {
	s := NewShape(ShapeLine, VertexXY)
	require.NoError(t, s.AddPoint(0, 0, 0))
	require.NoError(t, s.AddPoint(3, 4, 0))
	require.NoError(t, s.AddPoint(0, 0, 1))
	require.NoError(t, s.AddPoint(0, 1, 1))
	assert.InDelta(t, 6.0, s.Length(), 1e-12)

	g := NewShape(ShapeLine, VertexXY)
	require.NoError(t, g.AddPoint(0, 0, 0))
	require.NoError(t, g.AddPoint(1, 0, 0))
	assert.InDelta(t, 111195.08, g.GeodesicLength(), 1)
}
