package box2d

/// A chain shape is a free form sequence of line segments with two-sided
/// collision. Each segment is exposed as a child edge whose ghost vertices
/// come from its neighbours, so bodies slide across the joints between
/// segments without catching on them. Self-intersecting chains are not
/// supported.
type B2ChainShape struct {
	B2Shape

	M_vertices []B2Vec2

	M_prevVertex    B2Vec2
	M_nextVertex    B2Vec2
	M_hasPrevVertex bool
	M_hasNextVertex bool
}

func MakeB2ChainShape() B2ChainShape {
	return B2ChainShape{
		B2Shape: B2Shape{
			M_type:   B2Shape_Type.E_chain,
			M_radius: B2_polygonRadius,
		},
	}
}

func checkChainSpacing(vertices []B2Vec2) {
	for i := 1; i < len(vertices); i++ {
		B2Assert(
			B2Vec2DistanceSquared(vertices[i-1], vertices[i]) > B2_linearSlop*B2_linearSlop,
			"chain vertices are too close together",
		)
	}
}

/// CreateLoop builds a closed chain. The first vertex is repeated at the end
/// and both ends get their wrap-around neighbours as ghosts.
func (chain *B2ChainShape) CreateLoop(vertices []B2Vec2) {
	B2Assert(chain.M_vertices == nil, "chain already created")
	B2Assert(len(vertices) >= 3, "loop needs at least 3 vertices")
	checkChainSpacing(vertices)

	chain.M_vertices = make([]B2Vec2, 0, len(vertices)+1)
	chain.M_vertices = append(chain.M_vertices, vertices...)
	chain.M_vertices = append(chain.M_vertices, vertices[0])

	count := len(chain.M_vertices)
	chain.M_prevVertex = chain.M_vertices[count-2]
	chain.M_nextVertex = chain.M_vertices[1]
	chain.M_hasPrevVertex = true
	chain.M_hasNextVertex = true
}

/// CreateChain builds an open chain with no ghosts at its ends.
func (chain *B2ChainShape) CreateChain(vertices []B2Vec2) {
	B2Assert(chain.M_vertices == nil, "chain already created")
	B2Assert(len(vertices) >= 2, "chain needs at least 2 vertices")
	checkChainSpacing(vertices)

	chain.M_vertices = append([]B2Vec2(nil), vertices...)
	chain.M_hasPrevVertex = false
	chain.M_hasNextVertex = false
	chain.M_prevVertex.SetZero()
	chain.M_nextVertex.SetZero()
}

/// Establish connectivity to a vertex that precedes the first vertex.
func (chain *B2ChainShape) SetPrevVertex(prevVertex B2Vec2) {
	chain.M_prevVertex = prevVertex
	chain.M_hasPrevVertex = true
}

/// Establish connectivity to a vertex that follows the last vertex.
func (chain *B2ChainShape) SetNextVertex(nextVertex B2Vec2) {
	chain.M_nextVertex = nextVertex
	chain.M_hasNextVertex = true
}

func (chain B2ChainShape) Clone() B2ShapeInterface {
	clone := chain
	clone.M_vertices = append([]B2Vec2(nil), chain.M_vertices...)
	return &clone
}

/// One child per segment.
func (chain B2ChainShape) GetChildCount() int {
	return len(chain.M_vertices) - 1
}

/// GetChildEdge fills edge with segment index and its ghost neighbours.
func (chain B2ChainShape) GetChildEdge(edge *B2EdgeShape, index int) {
	count := len(chain.M_vertices)
	B2Assert(0 <= index && index < count-1, "chain child index out of range")

	edge.M_type = B2Shape_Type.E_edge
	edge.M_radius = chain.M_radius

	edge.M_vertex1 = chain.M_vertices[index]
	edge.M_vertex2 = chain.M_vertices[index+1]

	if index > 0 {
		edge.M_vertex0 = chain.M_vertices[index-1]
		edge.M_hasVertex0 = true
	} else {
		edge.M_vertex0 = chain.M_prevVertex
		edge.M_hasVertex0 = chain.M_hasPrevVertex
	}

	if index < count-2 {
		edge.M_vertex3 = chain.M_vertices[index+2]
		edge.M_hasVertex3 = true
	} else {
		edge.M_vertex3 = chain.M_nextVertex
		edge.M_hasVertex3 = chain.M_hasNextVertex
	}
}

func (chain B2ChainShape) TestPoint(xf B2Transform, p B2Vec2) bool {
	return false
}

/// Chains have no area.
func (chain B2ChainShape) ComputeMass(massData *B2MassData, density float64) {
	massData.Mass = 0.0
	massData.Center.SetZero()
	massData.I = 0.0
}

func (chain B2ChainShape) Dump() {
	B2Log("    b2ChainShape shape;\n")
	dumpVertices("vs", chain.M_vertices)
	B2Log("    shape.CreateChain(vs, %d);\n", len(chain.M_vertices))
	B2Log("    shape.m_prevVertex.Set(%.15e, %.15e);\n", chain.M_prevVertex.X, chain.M_prevVertex.Y)
	B2Log("    shape.m_nextVertex.Set(%.15e, %.15e);\n", chain.M_nextVertex.X, chain.M_nextVertex.Y)
	B2Log("    shape.m_hasPrevVertex = bool(%d);\n", boolToInt(chain.M_hasPrevVertex))
	B2Log("    shape.m_hasNextVertex = bool(%d);\n", boolToInt(chain.M_hasNextVertex))
}
