package box2d

/// Result of looking up a shape pair in B2ShapePairOrder.
var B2ShapePair = struct {
	E_unsupported uint8
	E_primary     uint8 ///< collide as given
	E_swapped     uint8 ///< collide with A and B exchanged
}{
	E_unsupported: 0,
	E_primary:     1,
	E_swapped:     2,
}

// Primary orderings: the first shape owns the reference frame of the
// manifold. Edges and chains never collide with each other.
func isPrimaryPair(typeA, typeB uint8) bool {
	switch typeA {
	case B2Shape_Type.E_circle:
		return typeB == B2Shape_Type.E_circle
	case B2Shape_Type.E_polygon, B2Shape_Type.E_edge, B2Shape_Type.E_chain:
		return typeB == B2Shape_Type.E_circle || typeB == B2Shape_Type.E_polygon
	}
	return false
}

/// B2ShapePairOrder tells whether shapes of the given types can be
/// collided, and in which order.
func B2ShapePairOrder(typeA, typeB uint8) uint8 {
	if isPrimaryPair(typeA, typeB) {
		return B2ShapePair.E_primary
	}
	if isPrimaryPair(typeB, typeA) {
		return B2ShapePair.E_swapped
	}
	return B2ShapePair.E_unsupported
}

// childEdge resolves the convex child of a shape. Only chains have more
// than one child; the result is a stack copy carrying the ghost vertices.
func childEdge(chain *B2ChainShape, index int) *B2EdgeShape {
	edge := MakeB2EdgeShape()
	chain.GetChildEdge(&edge, index)
	return &edge
}

/// B2CollideShapes computes the manifold for child indexA of shapeA against
/// child indexB of shapeB. It returns false, leaving an empty manifold, when
/// the pair is not a primary ordering (see B2ShapePairOrder).
func B2CollideShapes(manifold *B2Manifold, shapeA B2ShapeInterface, indexA int, xfA B2Transform, shapeB B2ShapeInterface, indexB int, xfB B2Transform) bool {
	manifold.PointCount = 0

	if chain, ok := shapeA.(*B2ChainShape); ok {
		shapeA = childEdge(chain, indexA)
	}

	switch a := shapeA.(type) {
	case *B2CircleShape:
		if b, ok := shapeB.(*B2CircleShape); ok {
			B2CollideCircles(manifold, a, xfA, b, xfB)
			return true
		}

	case *B2PolygonShape:
		switch b := shapeB.(type) {
		case *B2CircleShape:
			B2CollidePolygonAndCircle(manifold, a, xfA, b, xfB)
			return true
		case *B2PolygonShape:
			B2CollidePolygons(manifold, a, xfA, b, xfB)
			return true
		}

	case *B2EdgeShape:
		switch b := shapeB.(type) {
		case *B2CircleShape:
			B2CollideEdgeAndCircle(manifold, a, xfA, b, xfB)
			return true
		case *B2PolygonShape:
			B2CollideEdgeAndPolygon(manifold, a, xfA, b, xfB)
			return true
		}
	}

	return false
}
