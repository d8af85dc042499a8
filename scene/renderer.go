package scene

import "github.com/plus3/capypet/sprite"

// Renderer is the graphics layer pets are drawn through. Calls arrive in
// the order BindTexture, SetShaderUniform, UploadQuadVertices, DrawIndexed
// for each pet.
type Renderer interface {
	// BindTexture selects the sprite sheet of clip for the next draw.
	BindTexture(clip sprite.Clip)
	// UploadQuadVertices replaces the vertex data of the shared quad.
	UploadQuadVertices(vertices []sprite.Vertex)
	// DrawIndexed draws count indices of the shared quad index buffer.
	DrawIndexed(count int)
	SetShaderUniform(name string, value any)
}

// TintUniform is the shader uniform a pet's tint is bound to.
const TintUniform = "Tint"
