package box2d

/// B2FindMaxSeparation returns the edge of poly1 whose normal separates the
/// two polygons the most, and that separation. Ties keep the lowest index.
func B2FindMaxSeparation(poly1 *B2PolygonShape, xf1 B2Transform, poly2 *B2PolygonShape, xf2 B2Transform) (int, float64) {
	// Work in the frame of poly2.
	xf := B2TransformMulT(xf2, xf1)

	bestIndex := 0
	maxSeparation := -B2_maxFloat
	for i := 0; i < poly1.M_count; i++ {
		n := B2RotVec2Mul(xf.Q, poly1.M_normals[i])
		v1 := B2TransformVec2Mul(xf, poly1.M_vertices[i])

		// Deepest vertex of poly2 along -n.
		si := B2_maxFloat
		for j := 0; j < poly2.M_count; j++ {
			if sij := B2Vec2Dot(n, B2Vec2Sub(poly2.M_vertices[j], v1)); sij < si {
				si = sij
			}
		}

		if si > maxSeparation {
			maxSeparation = si
			bestIndex = i
		}
	}

	return bestIndex, maxSeparation
}

/// B2FindIncidentEdge returns, in world space, the edge of poly2 most
/// anti-parallel to reference edge edge1 of poly1. The clip vertices are
/// tagged face edge1 against vertex i of poly2.
func B2FindIncidentEdge(poly1 *B2PolygonShape, xf1 B2Transform, edge1 int, poly2 *B2PolygonShape, xf2 B2Transform) [2]B2ClipVertex {
	B2Assert(0 <= edge1 && edge1 < poly1.M_count, "reference edge out of range")

	// Reference normal in the frame of poly2.
	normal1 := B2RotVec2MulT(xf2.Q, B2RotVec2Mul(xf1.Q, poly1.M_normals[edge1]))

	index := 0
	minDot := B2_maxFloat
	for i := 0; i < poly2.M_count; i++ {
		if dot := B2Vec2Dot(normal1, poly2.M_normals[i]); dot < minDot {
			minDot = dot
			index = i
		}
	}

	var c [2]B2ClipVertex
	for k, i := range [2]int{index, (index + 1) % poly2.M_count} {
		c[k] = B2ClipVertex{
			V: B2TransformVec2Mul(xf2, poly2.M_vertices[i]),
			Id: B2ContactID{
				IndexA: uint8(edge1),
				IndexB: uint8(i),
				TypeA:  B2ContactFeature_Type.E_face,
				TypeB:  B2ContactFeature_Type.E_vertex,
			},
		}
	}
	return c
}

/// B2CollidePolygons computes the manifold of two convex polygons:
///  1. the best separating face on A, then on B; any positive gap beyond
///     the skins means no contact
///  2. the reference face is A's unless B's beats it by
///     b2_referenceFaceTolerance
///  3. the incident edge of the other polygon is clipped against the two
///     side planes of the reference face
///  4. clipped points within the skin distance of the face are kept.
/// When B provides the reference face the manifold is E_faceB and the IDs
/// are swapped so IndexA/TypeA always describe shape A.
func B2CollidePolygons(manifold *B2Manifold, polyA *B2PolygonShape, xfA B2Transform, polyB *B2PolygonShape, xfB B2Transform) {
	manifold.PointCount = 0
	totalRadius := polyA.M_radius + polyB.M_radius

	edgeA, separationA := B2FindMaxSeparation(polyA, xfA, polyB, xfB)
	if separationA > totalRadius {
		return
	}

	edgeB, separationB := B2FindMaxSeparation(polyB, xfB, polyA, xfA)
	if separationB > totalRadius {
		return
	}

	poly1, poly2 := polyA, polyB // reference, incident
	xf1, xf2 := xfA, xfB
	edge1 := edgeA
	flip := false
	manifold.Type = B2Manifold_Type.E_faceA

	if separationB > separationA+b2_referenceFaceTolerance {
		poly1, poly2 = polyB, polyA
		xf1, xf2 = xfB, xfA
		edge1 = edgeB
		flip = true
		manifold.Type = B2Manifold_Type.E_faceB
	}

	incidentEdge := B2FindIncidentEdge(poly1, xf1, edge1, poly2, xf2)

	iv1 := edge1
	iv2 := (edge1 + 1) % poly1.M_count
	v11 := poly1.M_vertices[iv1]
	v12 := poly1.M_vertices[iv2]

	localTangent := B2Vec2Sub(v12, v11)
	localTangent.Normalize()
	localNormal := B2Vec2CrossVectorScalar(localTangent, 1.0)
	planePoint := B2Vec2MulScalar(0.5, B2Vec2Add(v11, v12))

	tangent := B2RotVec2Mul(xf1.Q, localTangent)
	normal := B2Vec2CrossVectorScalar(tangent, 1.0)

	v11 = B2TransformVec2Mul(xf1, v11)
	v12 = B2TransformVec2Mul(xf1, v12)

	frontOffset := B2Vec2Dot(normal, v11)

	// Side planes, pushed out by the skins.
	sideOffset1 := -B2Vec2Dot(tangent, v11) + totalRadius
	sideOffset2 := B2Vec2Dot(tangent, v12) + totalRadius

	var clipPoints1, clipPoints2 [2]B2ClipVertex
	if B2ClipSegmentToLine(&clipPoints1, incidentEdge, tangent.OperatorNegate(), sideOffset1, iv1) < 2 {
		return
	}
	if B2ClipSegmentToLine(&clipPoints2, clipPoints1, tangent, sideOffset2, iv2) < 2 {
		return
	}

	manifold.LocalNormal = localNormal
	manifold.LocalPoint = planePoint

	pointCount := 0
	for _, cv := range clipPoints2 {
		if B2Vec2Dot(normal, cv.V)-frontOffset > totalRadius {
			continue
		}

		id := cv.Id
		if flip {
			id = id.Swapped()
		}
		manifold.Points[pointCount] = B2ManifoldPoint{
			LocalPoint: B2TransformVec2MulT(xf2, cv.V),
			Id:         id,
		}
		pointCount++
	}

	manifold.PointCount = pointCount
}
