package box2d

import (
	"math"
)

/// B2CollideEdgeAndCircle computes the manifold of an edge against a circle.
/// The circle center is classified against the Voronoi regions of the edge:
/// behind vertex1, behind vertex2, or over the face. A vertex region that
/// belongs to a ghost neighbour produces no contact, the neighbouring edge
/// owns it.
func B2CollideEdgeAndCircle(manifold *B2Manifold, edgeA *B2EdgeShape, xfA B2Transform, circleB *B2CircleShape, xfB B2Transform) {
	manifold.PointCount = 0

	// Circle center in the frame of the edge.
	Q := B2TransformVec2MulT(xfA, B2TransformVec2Mul(xfB, circleB.M_p))

	A := edgeA.M_vertex1
	B := edgeA.M_vertex2
	e := B2Vec2Sub(B, A)

	// Barycentric coordinates of Q along the edge.
	u := B2Vec2Dot(e, B2Vec2Sub(B, Q))
	v := B2Vec2Dot(e, B2Vec2Sub(Q, A))

	radius := edgeA.M_radius + circleB.M_radius
	id := B2ContactID{
		IndexB: 0,
		TypeB:  B2ContactFeature_Type.E_vertex,
	}

	// Region A
	if v <= 0.0 {
		if B2Vec2DistanceSquared(Q, A) > radius*radius {
			return
		}

		// Inside the face region of the previous edge.
		if edgeA.M_hasVertex0 {
			e0 := B2Vec2Sub(A, edgeA.M_vertex0)
			if B2Vec2Dot(e0, B2Vec2Sub(A, Q)) > 0.0 {
				return
			}
		}

		id.IndexA = 0
		id.TypeA = B2ContactFeature_Type.E_vertex
		setSinglePoint(manifold, B2Manifold_Type.E_circles, B2Vec2_zero, A, circleB.M_p)
		manifold.Points[0].Id = id
		return
	}

	// Region B
	if u <= 0.0 {
		if B2Vec2DistanceSquared(Q, B) > radius*radius {
			return
		}

		// Inside the face region of the next edge.
		if edgeA.M_hasVertex3 {
			e3 := B2Vec2Sub(edgeA.M_vertex3, B)
			if B2Vec2Dot(e3, B2Vec2Sub(Q, B)) > 0.0 {
				return
			}
		}

		id.IndexA = 1
		id.TypeA = B2ContactFeature_Type.E_vertex
		setSinglePoint(manifold, B2Manifold_Type.E_circles, B2Vec2_zero, B, circleB.M_p)
		manifold.Points[0].Id = id
		return
	}

	// Region AB
	den := B2Vec2Dot(e, e)
	B2Assert(den > 0.0, "zero length edge")
	P := B2Vec2MulScalar(1.0/den, B2Vec2Add(B2Vec2MulScalar(u, A), B2Vec2MulScalar(v, B)))
	if B2Vec2DistanceSquared(Q, P) > radius*radius {
		return
	}

	// Face normal on the side of the circle.
	n := MakeB2Vec2(-e.Y, e.X)
	if B2Vec2Dot(n, B2Vec2Sub(Q, A)) < 0.0 {
		n = n.OperatorNegate()
	}
	n.Normalize()

	id.IndexA = 0
	id.TypeA = B2ContactFeature_Type.E_face
	setSinglePoint(manifold, B2Manifold_Type.E_faceA, n, A, circleB.M_p)
	manifold.Points[0].Id = id
}

/// Origin of a candidate separating axis in the edge/polygon test.
var B2EPAxis_Type = struct {
	E_unknown uint8
	E_edgeA   uint8
	E_edgeB   uint8
}{
	E_unknown: 0,
	E_edgeA:   1,
	E_edgeB:   2,
}

/// A candidate separating axis.
type B2EPAxis struct {
	Type       uint8
	Index      int
	Separation float64
}

/// Polygon B expressed in the frame of the edge.
type B2TempPolygon struct {
	Vertices [B2_maxPolygonVertices]B2Vec2
	Normals  [B2_maxPolygonVertices]B2Vec2
	Count    int
}

/// Reference face used for clipping: the segment V1-V2 with its normal
/// and the two side planes bounding it.
type B2ReferenceFace struct {
	I1, I2 int

	V1, V2 B2Vec2

	Normal B2Vec2

	SideNormal1 B2Vec2
	SideOffset1 float64

	SideNormal2 B2Vec2
	SideOffset2 float64
}

/// B2EPCollider collides an edge with a polygon while honouring the edge's
/// ghost neighbours. Contacts whose normal would point out of the admissible
/// range [M_lowerLimit, M_upperLimit] are rejected so a polygon sliding over
/// a chain never catches on an internal vertex.
type B2EPCollider struct {
	M_polygonB B2TempPolygon

	M_xf                            B2Transform
	M_centroidB                     B2Vec2
	M_v0, M_v1, M_v2, M_v3          B2Vec2
	M_normal0, M_normal1, M_normal2 B2Vec2
	M_normal                        B2Vec2
	M_lowerLimit, M_upperLimit      B2Vec2
	M_radius                        float64
	M_front                         bool
}

// classify decides whether polygon B is in front of or behind the edge and
// the range of normals the contact may use. convex1 and convex2 describe
// the corners at vertex1 and vertex2; offsets are the signed distances of
// B's centroid to the three edge lines.
func (collider *B2EPCollider) classify(hasVertex0, hasVertex3, convex1, convex2 bool, offset0, offset1, offset2 float64) {
	n0 := collider.M_normal0
	n1 := collider.M_normal1
	n2 := collider.M_normal2

	var front bool
	var lowerFront, upperFront, lowerBack, upperBack B2Vec2

	switch {
	case hasVertex0 && hasVertex3:
		switch {
		case convex1 && convex2:
			front = offset0 >= 0.0 || offset1 >= 0.0 || offset2 >= 0.0
			lowerFront, upperFront = n0, n2
			lowerBack, upperBack = n1.OperatorNegate(), n1.OperatorNegate()
		case convex1:
			front = offset0 >= 0.0 || (offset1 >= 0.0 && offset2 >= 0.0)
			lowerFront, upperFront = n0, n1
			lowerBack, upperBack = n2.OperatorNegate(), n1.OperatorNegate()
		case convex2:
			front = offset2 >= 0.0 || (offset0 >= 0.0 && offset1 >= 0.0)
			lowerFront, upperFront = n1, n2
			lowerBack, upperBack = n1.OperatorNegate(), n0.OperatorNegate()
		default:
			front = offset0 >= 0.0 && offset1 >= 0.0 && offset2 >= 0.0
			lowerFront, upperFront = n1, n1
			lowerBack, upperBack = n2.OperatorNegate(), n0.OperatorNegate()
		}

	case hasVertex0:
		if convex1 {
			front = offset0 >= 0.0 || offset1 >= 0.0
			lowerFront, upperFront = n0, n1.OperatorNegate()
			lowerBack, upperBack = n1, n1.OperatorNegate()
		} else {
			front = offset0 >= 0.0 && offset1 >= 0.0
			lowerFront, upperFront = n1, n1.OperatorNegate()
			lowerBack, upperBack = n1, n0.OperatorNegate()
		}

	case hasVertex3:
		if convex2 {
			front = offset1 >= 0.0 || offset2 >= 0.0
			lowerFront, upperFront = n1.OperatorNegate(), n2
			lowerBack, upperBack = n1.OperatorNegate(), n1
		} else {
			front = offset1 >= 0.0 && offset2 >= 0.0
			lowerFront, upperFront = n1.OperatorNegate(), n1
			lowerBack, upperBack = n2.OperatorNegate(), n1
		}

	default:
		front = offset1 >= 0.0
		lowerFront, upperFront = n1.OperatorNegate(), n1.OperatorNegate()
		lowerBack, upperBack = n1, n1
	}

	collider.M_front = front
	if front {
		collider.M_normal = n1
		collider.M_lowerLimit, collider.M_upperLimit = lowerFront, upperFront
	} else {
		collider.M_normal = n1.OperatorNegate()
		collider.M_lowerLimit, collider.M_upperLimit = lowerBack, upperBack
	}
}

/// Collide runs the edge/polygon test:
///  1. classify the corners at v1 and v2 as convex or concave
///  2. decide front or back from B's centroid and set the normal range
///  3. test the edge axis, then every polygon axis inside the range
///  4. return on any separating axis
///  5. pick the primary axis with hysteresis and clip.
func (collider *B2EPCollider) Collide(manifold *B2Manifold, edgeA *B2EdgeShape, xfA B2Transform, polygonB *B2PolygonShape, xfB B2Transform) {
	manifold.PointCount = 0

	collider.M_xf = B2TransformMulT(xfA, xfB)
	collider.M_centroidB = B2TransformVec2Mul(collider.M_xf, polygonB.M_centroid)

	collider.M_v0 = edgeA.M_vertex0
	collider.M_v1 = edgeA.M_vertex1
	collider.M_v2 = edgeA.M_vertex2
	collider.M_v3 = edgeA.M_vertex3

	hasVertex0 := edgeA.M_hasVertex0
	hasVertex3 := edgeA.M_hasVertex3

	edge1 := B2Vec2Sub(collider.M_v2, collider.M_v1)
	edge1.Normalize()
	collider.M_normal1.Set(edge1.Y, -edge1.X)
	offset1 := B2Vec2Dot(collider.M_normal1, B2Vec2Sub(collider.M_centroidB, collider.M_v1))

	offset0, offset2 := 0.0, 0.0
	convex1, convex2 := false, false

	if hasVertex0 {
		edge0 := B2Vec2Sub(collider.M_v1, collider.M_v0)
		edge0.Normalize()
		collider.M_normal0.Set(edge0.Y, -edge0.X)
		convex1 = B2Vec2Cross(edge0, edge1) >= 0.0
		offset0 = B2Vec2Dot(collider.M_normal0, B2Vec2Sub(collider.M_centroidB, collider.M_v0))
	}

	if hasVertex3 {
		edge2 := B2Vec2Sub(collider.M_v3, collider.M_v2)
		edge2.Normalize()
		collider.M_normal2.Set(edge2.Y, -edge2.X)
		convex2 = B2Vec2Cross(edge1, edge2) > 0.0
		offset2 = B2Vec2Dot(collider.M_normal2, B2Vec2Sub(collider.M_centroidB, collider.M_v2))
	}

	collider.classify(hasVertex0, hasVertex3, convex1, convex2, offset0, offset1, offset2)

	collider.M_polygonB.Count = polygonB.M_count
	for i := 0; i < polygonB.M_count; i++ {
		collider.M_polygonB.Vertices[i] = B2TransformVec2Mul(collider.M_xf, polygonB.M_vertices[i])
		collider.M_polygonB.Normals[i] = B2RotVec2Mul(collider.M_xf.Q, polygonB.M_normals[i])
	}

	collider.M_radius = polygonB.M_radius + edgeA.M_radius

	edgeAxis := collider.ComputeEdgeSeparation()
	if edgeAxis.Type == B2EPAxis_Type.E_unknown || edgeAxis.Separation > collider.M_radius {
		return
	}

	polygonAxis := collider.ComputePolygonSeparation()
	if polygonAxis.Type != B2EPAxis_Type.E_unknown && polygonAxis.Separation > collider.M_radius {
		return
	}

	// Hysteresis keeps the primary axis stable between frames.
	primaryAxis := edgeAxis
	if polygonAxis.Type != B2EPAxis_Type.E_unknown &&
		polygonAxis.Separation > b2_edgeRelativeTol*edgeAxis.Separation+b2_edgeAbsoluteTol {
		primaryAxis = polygonAxis
	}

	var ie [2]B2ClipVertex
	var rf B2ReferenceFace

	if primaryAxis.Type == B2EPAxis_Type.E_edgeA {
		manifold.Type = B2Manifold_Type.E_faceA

		// Polygon face most anti-parallel to the edge normal.
		bestIndex := 0
		bestValue := B2Vec2Dot(collider.M_normal, collider.M_polygonB.Normals[0])
		for i := 1; i < collider.M_polygonB.Count; i++ {
			if value := B2Vec2Dot(collider.M_normal, collider.M_polygonB.Normals[i]); value < bestValue {
				bestValue = value
				bestIndex = i
			}
		}

		for k, i := range [2]int{bestIndex, (bestIndex + 1) % collider.M_polygonB.Count} {
			ie[k] = B2ClipVertex{
				V: collider.M_polygonB.Vertices[i],
				Id: B2ContactID{
					IndexA: 0,
					IndexB: uint8(i),
					TypeA:  B2ContactFeature_Type.E_face,
					TypeB:  B2ContactFeature_Type.E_vertex,
				},
			}
		}

		if collider.M_front {
			rf.I1, rf.I2 = 0, 1
			rf.V1, rf.V2 = collider.M_v1, collider.M_v2
			rf.Normal = collider.M_normal1
		} else {
			rf.I1, rf.I2 = 1, 0
			rf.V1, rf.V2 = collider.M_v2, collider.M_v1
			rf.Normal = collider.M_normal1.OperatorNegate()
		}
	} else {
		manifold.Type = B2Manifold_Type.E_faceB

		for k, v := range [2]B2Vec2{collider.M_v1, collider.M_v2} {
			ie[k] = B2ClipVertex{
				V: v,
				Id: B2ContactID{
					IndexA: 0,
					IndexB: uint8(primaryAxis.Index),
					TypeA:  B2ContactFeature_Type.E_vertex,
					TypeB:  B2ContactFeature_Type.E_face,
				},
			}
		}

		rf.I1 = primaryAxis.Index
		rf.I2 = (rf.I1 + 1) % collider.M_polygonB.Count
		rf.V1 = collider.M_polygonB.Vertices[rf.I1]
		rf.V2 = collider.M_polygonB.Vertices[rf.I2]
		rf.Normal = collider.M_polygonB.Normals[rf.I1]
	}

	rf.SideNormal1.Set(rf.Normal.Y, -rf.Normal.X)
	rf.SideNormal2 = rf.SideNormal1.OperatorNegate()
	rf.SideOffset1 = B2Vec2Dot(rf.SideNormal1, rf.V1)
	rf.SideOffset2 = B2Vec2Dot(rf.SideNormal2, rf.V2)

	var clipPoints1, clipPoints2 [2]B2ClipVertex
	if B2ClipSegmentToLine(&clipPoints1, ie, rf.SideNormal1, rf.SideOffset1, rf.I1) < B2_maxManifoldPoints {
		return
	}
	if B2ClipSegmentToLine(&clipPoints2, clipPoints1, rf.SideNormal2, rf.SideOffset2, rf.I2) < B2_maxManifoldPoints {
		return
	}

	if primaryAxis.Type == B2EPAxis_Type.E_edgeA {
		manifold.LocalNormal = rf.Normal
		manifold.LocalPoint = rf.V1
	} else {
		manifold.LocalNormal = polygonB.M_normals[rf.I1]
		manifold.LocalPoint = polygonB.M_vertices[rf.I1]
	}

	pointCount := 0
	for _, cv := range clipPoints2 {
		if B2Vec2Dot(rf.Normal, B2Vec2Sub(cv.V, rf.V1)) > collider.M_radius {
			continue
		}

		cp := &manifold.Points[pointCount]
		if primaryAxis.Type == B2EPAxis_Type.E_edgeA {
			cp.LocalPoint = B2TransformVec2MulT(collider.M_xf, cv.V)
			cp.Id = cv.Id
		} else {
			// Edge points are already in the frame of A.
			cp.LocalPoint = cv.V
			cp.Id = cv.Id.Swapped()
		}
		pointCount++
	}

	manifold.PointCount = pointCount
}

/// Separation of polygon B along the oriented edge normal.
func (collider *B2EPCollider) ComputeEdgeSeparation() B2EPAxis {
	axis := B2EPAxis{
		Type:       B2EPAxis_Type.E_edgeA,
		Separation: B2_maxFloat,
	}
	if !collider.M_front {
		axis.Index = 1
	}

	for i := 0; i < collider.M_polygonB.Count; i++ {
		s := B2Vec2Dot(collider.M_normal, B2Vec2Sub(collider.M_polygonB.Vertices[i], collider.M_v1))
		if s < axis.Separation {
			axis.Separation = s
		}
	}

	return axis
}

/// Best polygon face axis. Faces whose normal falls outside the admissible
/// range by more than B2_angularSlop are skipped; a face that separates
/// beyond the skins is returned immediately.
func (collider *B2EPCollider) ComputePolygonSeparation() B2EPAxis {
	axis := B2EPAxis{
		Type:       B2EPAxis_Type.E_unknown,
		Index:      -1,
		Separation: -B2_maxFloat,
	}

	perp := MakeB2Vec2(-collider.M_normal.Y, collider.M_normal.X)

	for i := 0; i < collider.M_polygonB.Count; i++ {
		n := collider.M_polygonB.Normals[i].OperatorNegate()
		vi := collider.M_polygonB.Vertices[i]

		s := math.Min(
			B2Vec2Dot(n, B2Vec2Sub(vi, collider.M_v1)),
			B2Vec2Dot(n, B2Vec2Sub(vi, collider.M_v2)),
		)

		if s > collider.M_radius {
			return B2EPAxis{Type: B2EPAxis_Type.E_edgeB, Index: i, Separation: s}
		}

		limit := collider.M_lowerLimit
		if B2Vec2Dot(n, perp) >= 0.0 {
			limit = collider.M_upperLimit
		}
		if B2Vec2Dot(B2Vec2Sub(n, limit), collider.M_normal) < -B2_angularSlop {
			continue
		}

		if s > axis.Separation {
			axis = B2EPAxis{Type: B2EPAxis_Type.E_edgeB, Index: i, Separation: s}
		}
	}

	return axis
}

/// Compute the manifold of an edge (with optional ghost vertices) against
/// a polygon.
func B2CollideEdgeAndPolygon(manifold *B2Manifold, edgeA *B2EdgeShape, xfA B2Transform, polygonB *B2PolygonShape, xfB B2Transform) {
	var collider B2EPCollider
	collider.Collide(manifold, edgeA, xfA, polygonB, xfB)
}
