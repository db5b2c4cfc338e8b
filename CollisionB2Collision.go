package box2d

import "fmt"

/// Kind of geometric feature a contact point was generated from.
var B2ContactFeature_Type = struct {
	E_vertex uint8
	E_face   uint8
}{
	E_vertex: 0,
	E_face:   1,
}

/// B2ContactID names the pair of features that produced a manifold point:
/// an index and a feature type on each shape. Two points from successive
/// frames are the same physical contact exactly when their IDs are equal,
/// which is what warm starting and the point-state diff rely on.
type B2ContactID struct {
	IndexA uint8 ///< Feature index on shapeA
	IndexB uint8 ///< Feature index on shapeB
	TypeA  uint8 ///< The feature type on shapeA
	TypeB  uint8 ///< The feature type on shapeB
}

/// Key packs the four fields into one word, for logging and hashing.
func (id B2ContactID) Key() uint32 {
	return uint32(id.IndexA) |
		uint32(id.IndexB)<<8 |
		uint32(id.TypeA)<<16 |
		uint32(id.TypeB)<<24
}

func (id *B2ContactID) SetKey(key uint32) {
	id.IndexA = uint8(key & 0xFF)
	id.IndexB = uint8((key >> 8) & 0xFF)
	id.TypeA = uint8((key >> 16) & 0xFF)
	id.TypeB = uint8((key >> 24) & 0xFF)
}

/// Swapped exchanges the roles of the two shapes. Used when the reference
/// face was taken from shape B.
func (id B2ContactID) Swapped() B2ContactID {
	return B2ContactID{
		IndexA: id.IndexB,
		IndexB: id.IndexA,
		TypeA:  id.TypeB,
		TypeB:  id.TypeA,
	}
}

func (id B2ContactID) String() string {
	kind := func(t uint8) string {
		if t == B2ContactFeature_Type.E_face {
			return "f"
		}
		return "v"
	}
	return fmt.Sprintf("%s%d/%s%d", kind(id.TypeA), id.IndexA, kind(id.TypeB), id.IndexB)
}

/// A manifold point is a contact point belonging to a contact manifold.
/// The local point usage depends on the manifold type:
/// -E_circles: the local center of circleB
/// -E_faceA: the local center of circleB or the clip point of polygonB
/// -E_faceB: the clip point of polygonA
/// Accumulated impulses are not stored here; they live on the B2Contact
/// that owns the manifold.
type B2ManifoldPoint struct {
	LocalPoint B2Vec2      ///< usage depends on manifold type
	Id         B2ContactID ///< uniquely identifies a contact point between two shapes
}

var B2Manifold_Type = struct {
	E_circles uint8
	E_faceA   uint8
	E_faceB   uint8
}{
	E_circles: 0,
	E_faceA:   1,
	E_faceB:   2,
}

/// A manifold for two touching convex shapes, expressed in the local frames
/// so it stays valid while the bodies move a little.
/// -E_circles: LocalPoint is the center of circle A, LocalNormal unused.
/// -E_faceA: LocalPoint is the center of the reference face on A and
/// LocalNormal its normal; the points are in the frame of B.
/// -E_faceB: the same with the roles of A and B exchanged.
type B2Manifold struct {
	Points      [B2_maxManifoldPoints]B2ManifoldPoint ///< the points of contact
	LocalNormal B2Vec2                                ///< not use for Type::e_points
	LocalPoint  B2Vec2                                ///< usage depends on manifold type
	Type        uint8
	PointCount  int ///< the number of manifold points
}

/// FindPoint returns the index of the point carrying id, or -1.
func (m B2Manifold) FindPoint(id B2ContactID) int {
	for i := 0; i < m.PointCount; i++ {
		if m.Points[i].Id == id {
			return i
		}
	}
	return -1
}

func (m B2Manifold) Dump() {
	B2Log("manifold type=%d count=%d normal=(%.6f, %.6f) point=(%.6f, %.6f)\n",
		m.Type, m.PointCount, m.LocalNormal.X, m.LocalNormal.Y, m.LocalPoint.X, m.LocalPoint.Y)
	for i := 0; i < m.PointCount; i++ {
		p := m.Points[i]
		B2Log("  [%d] id=%s local=(%.6f, %.6f)\n", i, p.Id, p.LocalPoint.X, p.LocalPoint.Y)
	}
}

/// World space view of a manifold.
type B2WorldManifold struct {
	Normal      B2Vec2                        ///< world vector pointing from A to B
	Points      [B2_maxManifoldPoints]B2Vec2  ///< world contact point (point of intersection)
	Separations [B2_maxManifoldPoints]float64 ///< a negative value indicates overlap, in meters
}

/// Initialize evaluates the manifold at the given transforms. Each world
/// point lies midway between the two shape surfaces and the separations are
/// measured along the normal, negative when overlapping.
func (wm *B2WorldManifold) Initialize(manifold *B2Manifold, xfA B2Transform, radiusA float64, xfB B2Transform, radiusB float64) {
	if manifold.PointCount == 0 {
		return
	}

	switch manifold.Type {
	case B2Manifold_Type.E_circles:
		pointA := B2TransformVec2Mul(xfA, manifold.LocalPoint)
		pointB := B2TransformVec2Mul(xfB, manifold.Points[0].LocalPoint)

		// Concentric circles have no preferred direction.
		wm.Normal.Set(1.0, 0.0)
		if B2Vec2DistanceSquared(pointA, pointB) > B2_epsilon*B2_epsilon {
			wm.Normal = B2Vec2Sub(pointB, pointA)
			wm.Normal.Normalize()
		}

		cA := B2Vec2Add(pointA, B2Vec2MulScalar(radiusA, wm.Normal))
		cB := B2Vec2Sub(pointB, B2Vec2MulScalar(radiusB, wm.Normal))
		wm.Points[0] = B2Vec2MulScalar(0.5, B2Vec2Add(cA, cB))
		wm.Separations[0] = B2Vec2Dot(B2Vec2Sub(cB, cA), wm.Normal)

	case B2Manifold_Type.E_faceA:
		wm.Normal = B2RotVec2Mul(xfA.Q, manifold.LocalNormal)
		planePoint := B2TransformVec2Mul(xfA, manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := B2TransformVec2Mul(xfB, manifold.Points[i].LocalPoint)
			depth := radiusA - B2Vec2Dot(B2Vec2Sub(clipPoint, planePoint), wm.Normal)
			cA := B2Vec2Add(clipPoint, B2Vec2MulScalar(depth, wm.Normal))
			cB := B2Vec2Sub(clipPoint, B2Vec2MulScalar(radiusB, wm.Normal))
			wm.Points[i] = B2Vec2MulScalar(0.5, B2Vec2Add(cA, cB))
			wm.Separations[i] = B2Vec2Dot(B2Vec2Sub(cB, cA), wm.Normal)
		}

	case B2Manifold_Type.E_faceB:
		wm.Normal = B2RotVec2Mul(xfB.Q, manifold.LocalNormal)
		planePoint := B2TransformVec2Mul(xfB, manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := B2TransformVec2Mul(xfA, manifold.Points[i].LocalPoint)
			depth := radiusB - B2Vec2Dot(B2Vec2Sub(clipPoint, planePoint), wm.Normal)
			cB := B2Vec2Add(clipPoint, B2Vec2MulScalar(depth, wm.Normal))
			cA := B2Vec2Sub(clipPoint, B2Vec2MulScalar(radiusA, wm.Normal))
			wm.Points[i] = B2Vec2MulScalar(0.5, B2Vec2Add(cA, cB))
			wm.Separations[i] = B2Vec2Dot(B2Vec2Sub(cA, cB), wm.Normal)
		}

		// The reference normal belongs to B; report it from A to B.
		wm.Normal = wm.Normal.OperatorNegate()
	}
}

/// This is used for determining the state of contact points.
var B2PointState = struct {
	B2_nullState    uint8 ///< point does not exist
	B2_addState     uint8 ///< point was added in the update
	B2_persistState uint8 ///< point persisted across the update
	B2_removeState  uint8 ///< point was removed in the update
}{
	B2_nullState:    0,
	B2_addState:     1,
	B2_persistState: 2,
	B2_removeState:  3,
}

/// B2GetPointStates compares two manifolds of the same shape pair by contact
/// ID. state1 describes the old points (persist or remove), state2 the new
/// ones (persist or add). Unused slots are B2_nullState.
func B2GetPointStates(manifold1, manifold2 B2Manifold) (state1, state2 [B2_maxManifoldPoints]uint8) {
	for i := 0; i < manifold1.PointCount; i++ {
		state1[i] = B2PointState.B2_removeState
		if manifold2.FindPoint(manifold1.Points[i].Id) >= 0 {
			state1[i] = B2PointState.B2_persistState
		}
	}

	for i := 0; i < manifold2.PointCount; i++ {
		state2[i] = B2PointState.B2_addState
		if manifold1.FindPoint(manifold2.Points[i].Id) >= 0 {
			state2[i] = B2PointState.B2_persistState
		}
	}

	return state1, state2
}

/// Used for computing contact manifolds.
type B2ClipVertex struct {
	V  B2Vec2
	Id B2ContactID
}

/// B2ClipSegmentToLine keeps the part of segment vIn on the non-positive side
/// of the line dot(normal, x) = offset. A point created by cutting the segment
/// is tagged as vertex vertexIndexA of shape A against the incident face.
/// Returns the number of points written to vOut (0, 1 or 2).
func B2ClipSegmentToLine(vOut *[2]B2ClipVertex, vIn [2]B2ClipVertex, normal B2Vec2, offset float64, vertexIndexA int) int {
	numOut := 0

	distance0 := B2Vec2Dot(normal, vIn[0].V) - offset
	distance1 := B2Vec2Dot(normal, vIn[1].V) - offset

	if distance0 <= 0.0 {
		vOut[numOut] = vIn[0]
		numOut++
	}
	if distance1 <= 0.0 {
		vOut[numOut] = vIn[1]
		numOut++
	}

	if distance0*distance1 < 0.0 {
		interp := distance0 / (distance0 - distance1)
		vOut[numOut] = B2ClipVertex{
			V: B2Vec2Add(vIn[0].V, B2Vec2MulScalar(interp, B2Vec2Sub(vIn[1].V, vIn[0].V))),
			Id: B2ContactID{
				IndexA: uint8(vertexIndexA),
				IndexB: vIn[0].Id.IndexB,
				TypeA:  B2ContactFeature_Type.E_vertex,
				TypeB:  B2ContactFeature_Type.E_face,
			},
		}
		numOut++
	}

	return numOut
}
