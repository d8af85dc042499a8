package sprite

// Vertex is one corner of a quad as handed to the graphics layer: a
// position and a texture coordinate.
type Vertex struct {
	X, Y float32
	U, V float32
}

// Corner positions of the unit quad, in the order the index buffer expects.
const (
	TopRight = iota
	BottomRight
	BottomLeft
	TopLeft
)

// QuadMesh is geometry shared by every sprite: four corners around the
// origin and the two triangles covering them.
type QuadMesh struct {
	Corners [4][2]float32
	Indices [6]uint16
}

// Quad is the single mesh all sprite instances are drawn with.
var Quad = QuadMesh{
	Corners: [4][2]float32{
		TopRight:    {0.5, 0.5},
		BottomRight: {0.5, -0.5},
		BottomLeft:  {-0.5, -0.5},
		TopLeft:     {-0.5, 0.5},
	},
	Indices: [6]uint16{0, 1, 3, 1, 2, 3},
}

// Instance is the per-entity state drawn with the shared Quad: the current
// texture coordinates of each corner plus the world transform.
type Instance struct {
	UV       [4][2]float32
	X, Y     float64
	Width    float64
	Height   float64
	Revision uint64
}

// NewInstance returns an instance of the given world size showing rect.
func NewInstance(width, height float64, rect Rect) Instance {
	inst := Instance{Width: width, Height: height}
	inst.Sync(rect)
	return inst
}

// Sync rewrites the corner texture coordinates from rect. Every call bumps
// Revision, which is the signal that the uploaded vertices are stale.
func (i *Instance) Sync(rect Rect) {
	i.UV[TopRight] = [2]float32{rect.U1, rect.V1}
	i.UV[BottomRight] = [2]float32{rect.U1, rect.V0}
	i.UV[BottomLeft] = [2]float32{rect.U0, rect.V0}
	i.UV[TopLeft] = [2]float32{rect.U0, rect.V1}
	i.Revision++
}

// Vertices returns the instance's quad in world space. project maps a world
// point to the graphics layer's coordinate space.
func (i *Instance) Vertices(project func(x, y float64) (float32, float32)) [4]Vertex {
	var out [4]Vertex
	for c, corner := range Quad.Corners {
		wx := i.X + float64(corner[0])*i.Width
		wy := i.Y + float64(corner[1])*i.Height
		x, y := project(wx, wy)
		out[c] = Vertex{X: x, Y: y, U: i.UV[c][0], V: i.UV[c][1]}
	}
	return out
}
