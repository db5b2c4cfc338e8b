package box2d

/// A line segment. Edges on their own are two-sided; the optional ghost
/// vertices M_vertex0 and M_vertex3 describe the neighbouring segments so the
/// edge colliders can suppress contacts against internal vertices.
type B2EdgeShape struct {
	B2Shape

	/// These are the edge vertices
	M_vertex1, M_vertex2 B2Vec2

	/// Optional adjacent vertices. These are used for smooth collision.
	M_vertex0, M_vertex3       B2Vec2
	M_hasVertex0, M_hasVertex3 bool
}

func MakeB2EdgeShape() B2EdgeShape {
	return B2EdgeShape{
		B2Shape: B2Shape{
			M_type:   B2Shape_Type.E_edge,
			M_radius: B2_polygonRadius,
		},
	}
}

/// Edge from v1 to v2 without neighbours.
func NewB2EdgeShape(v1, v2 B2Vec2) *B2EdgeShape {
	res := MakeB2EdgeShape()
	res.Set(v1, v2)
	return &res
}

/// Set this as an isolated edge. Ghost vertices are cleared.
func (edge *B2EdgeShape) Set(v1 B2Vec2, v2 B2Vec2) {
	edge.M_vertex1 = v1
	edge.M_vertex2 = v2
	edge.M_hasVertex0 = false
	edge.M_hasVertex3 = false
}

/// Attach the vertex preceding M_vertex1.
func (edge *B2EdgeShape) SetPrevVertex(v0 B2Vec2) {
	edge.M_vertex0 = v0
	edge.M_hasVertex0 = true
}

/// Attach the vertex following M_vertex2.
func (edge *B2EdgeShape) SetNextVertex(v3 B2Vec2) {
	edge.M_vertex3 = v3
	edge.M_hasVertex3 = true
}

func (edge B2EdgeShape) Clone() B2ShapeInterface {
	clone := edge
	return &clone
}

func (edge B2EdgeShape) GetChildCount() int {
	return 1
}

func (edge B2EdgeShape) TestPoint(xf B2Transform, p B2Vec2) bool {
	return false
}

func (edge B2EdgeShape) ComputeMass(massData *B2MassData, density float64) {
	massData.Mass = 0.0
	massData.Center = B2Vec2MulScalar(0.5, B2Vec2Add(edge.M_vertex1, edge.M_vertex2))
	massData.I = 0.0
}

func (edge B2EdgeShape) Dump() {
	B2Log("    b2EdgeShape shape;\n")
	B2Log("    shape.m_radius = %.15e;\n", edge.M_radius)
	B2Log("    shape.m_vertex0.Set(%.15e, %.15e);\n", edge.M_vertex0.X, edge.M_vertex0.Y)
	B2Log("    shape.m_vertex1.Set(%.15e, %.15e);\n", edge.M_vertex1.X, edge.M_vertex1.Y)
	B2Log("    shape.m_vertex2.Set(%.15e, %.15e);\n", edge.M_vertex2.X, edge.M_vertex2.Y)
	B2Log("    shape.m_vertex3.Set(%.15e, %.15e);\n", edge.M_vertex3.X, edge.M_vertex3.Y)
	B2Log("    shape.m_hasVertex0 = bool(%d);\n", boolToInt(edge.M_hasVertex0))
	B2Log("    shape.m_hasVertex3 = bool(%d);\n", boolToInt(edge.M_hasVertex3))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
