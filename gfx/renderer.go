// Package gfx draws the pet scene with Ebiten.
package gfx

import (
	_ "embed"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/capypet/scene"
	"github.com/plus3/capypet/sprite"
)

var _ scene.Renderer = (*Renderer)(nil)

//go:embed sprite.kage
var spriteShader []byte

// Renderer implements scene.Renderer on an Ebiten screen image. Every pet
// is one DrawTrianglesShader call over the shared quad index buffer.
type Renderer struct {
	sheets   Sheets
	shader   *ebiten.Shader
	target   *ebiten.Image
	bound    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
	uniforms map[string]any

	// DrawCalls counts draws since the last SetTarget.
	DrawCalls int
}

// NewRenderer compiles the sprite shader.
func NewRenderer(sheets Sheets) (*Renderer, error) {
	shader, err := ebiten.NewShader(spriteShader)
	if err != nil {
		return nil, fmt.Errorf("compile sprite shader: %w", err)
	}

	return &Renderer{
		sheets:   sheets,
		shader:   shader,
		vertices: make([]ebiten.Vertex, len(sprite.Quad.Corners)),
		indices:  sprite.Quad.Indices[:],
		uniforms: map[string]any{scene.TintUniform: []float32{1, 1, 1, 1}},
	}, nil
}

// SetTarget selects the image the following draws land on.
func (r *Renderer) SetTarget(target *ebiten.Image) {
	r.target = target
	r.DrawCalls = 0
}

func (r *Renderer) BindTexture(clip sprite.Clip) {
	r.bound = nil
	if clip >= 0 && clip < sprite.NumClips {
		r.bound = r.sheets[clip].Image
	}
}

func (r *Renderer) UploadQuadVertices(vertices []sprite.Vertex) {
	var w, h int
	if r.bound != nil {
		w, h = r.bound.Bounds().Dx(), r.bound.Bounds().Dy()
	}
	r.vertices = toEbitenVertices(r.vertices[:0], vertices, float32(w), float32(h))
}

func (r *Renderer) DrawIndexed(count int) {
	if r.target == nil || r.bound == nil || count <= 0 {
		return
	}
	count = min(count, len(r.indices))

	opts := &ebiten.DrawTrianglesShaderOptions{Uniforms: r.uniforms}
	opts.Images[0] = r.bound
	r.target.DrawTrianglesShader(r.vertices, r.indices[:count], r.shader, opts)
	r.DrawCalls++
}

func (r *Renderer) SetShaderUniform(name string, value any) {
	r.uniforms[name] = uniformValue(value)
}

// toEbitenVertices converts quad vertices to Ebiten's layout. Texture
// coordinates have V pointing up, Ebiten source pixels have y pointing
// down, so V is flipped against the sheet height.
func toEbitenVertices(dst []ebiten.Vertex, src []sprite.Vertex, sheetW, sheetH float32) []ebiten.Vertex {
	for _, v := range src {
		dst = append(dst, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   v.U * sheetW,
			SrcY:   (1 - v.V) * sheetH,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}
	return dst
}

// uniformValue converts fixed-size arrays, which Kage vectors are commonly
// passed as, into the slices Ebiten accepts.
func uniformValue(value any) any {
	switch v := value.(type) {
	case [2]float32:
		return v[:]
	case [3]float32:
		return v[:]
	case [4]float32:
		return v[:]
	case float64:
		return float32(v)
	default:
		return value
	}
}
