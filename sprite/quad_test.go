package sprite_test

import (
	"testing"

	"github.com/plus3/capypet/sprite"
	"github.com/stretchr/testify/assert"
)

func TestInstanceSyncCornerOrder(t *testing.T) {
	rect := sprite.FrameRect(1, 5, false)
	inst := sprite.NewInstance(1, 1, rect)

	assert.Equal(t, [2]float32{rect.U1, rect.V1}, inst.UV[sprite.TopRight])
	assert.Equal(t, [2]float32{rect.U1, rect.V0}, inst.UV[sprite.BottomRight])
	assert.Equal(t, [2]float32{rect.U0, rect.V0}, inst.UV[sprite.BottomLeft])
	assert.Equal(t, [2]float32{rect.U0, rect.V1}, inst.UV[sprite.TopLeft])
	assert.Equal(t, uint64(1), inst.Revision)

	inst.Sync(rect.Mirror())
	assert.Equal(t, uint64(2), inst.Revision)
	assert.Equal(t, rect.U0, inst.UV[sprite.TopRight][0])
}

func TestInstanceVertices(t *testing.T) {
	inst := sprite.NewInstance(2, 1, sprite.FrameRect(0, 1, false))
	inst.X, inst.Y = 3, 0.5

	identity := func(x, y float64) (float32, float32) { return float32(x), float32(y) }
	v := inst.Vertices(identity)

	assert.Equal(t, sprite.Vertex{X: 4, Y: 1, U: 1, V: 1}, v[sprite.TopRight])
	assert.Equal(t, sprite.Vertex{X: 2, Y: 0, U: 0, V: 0}, v[sprite.BottomLeft])
}

func TestQuadIndices(t *testing.T) {
	assert.Equal(t, [6]uint16{0, 1, 3, 1, 2, 3}, sprite.Quad.Indices)
}

func TestClipNames(t *testing.T) {
	for c := sprite.Clip(0); c < sprite.NumClips; c++ {
		parsed, err := sprite.ParseClip(c.String())
		assert.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	_, err := sprite.ParseClip("dance")
	assert.Error(t, err)
	assert.Equal(t, "Clip(9)", sprite.Clip(9).String())
}
