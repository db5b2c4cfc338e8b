package box2d

/// A solid convex polygon. Vertices are stored counter-clockwise and every
/// edge i (from vertex i to vertex i+1) carries its outward unit normal.
/// The polygon has a skin of B2_polygonRadius.
type B2PolygonShape struct {
	B2Shape

	M_centroid B2Vec2
	M_vertices [B2_maxPolygonVertices]B2Vec2
	M_normals  [B2_maxPolygonVertices]B2Vec2
	M_count    int
}

func MakeB2PolygonShape() B2PolygonShape {
	return B2PolygonShape{
		B2Shape: B2Shape{
			M_type:   B2Shape_Type.E_polygon,
			M_radius: B2_polygonRadius,
		},
	}
}

/// Axis-aligned box with half-widths hx, hy centered on the origin.
func NewB2PolygonShapeBox(hx, hy float64) *B2PolygonShape {
	res := MakeB2PolygonShape()
	res.SetAsBox(hx, hy)
	return &res
}

func (poly B2PolygonShape) Clone() B2ShapeInterface {
	clone := poly
	return &clone
}

func (poly B2PolygonShape) GetChildCount() int {
	return 1
}

func (poly B2PolygonShape) GetVertexCount() int {
	return poly.M_count
}

func (poly B2PolygonShape) GetVertex(index int) B2Vec2 {
	B2Assert(0 <= index && index < poly.M_count, "polygon vertex index out of range")
	return poly.M_vertices[index]
}

/// Build vertices to represent an axis-aligned box centered on the local origin.
func (poly *B2PolygonShape) SetAsBox(hx float64, hy float64) {
	poly.M_count = 4
	poly.M_vertices[0].Set(-hx, -hy)
	poly.M_vertices[1].Set(hx, -hy)
	poly.M_vertices[2].Set(hx, hy)
	poly.M_vertices[3].Set(-hx, hy)
	poly.M_normals[0].Set(0.0, -1.0)
	poly.M_normals[1].Set(1.0, 0.0)
	poly.M_normals[2].Set(0.0, 1.0)
	poly.M_normals[3].Set(-1.0, 0.0)
	poly.M_centroid.SetZero()
}

/// Build vertices to represent an oriented box.
func (poly *B2PolygonShape) SetAsBoxFromCenterAndAngle(hx float64, hy float64, center B2Vec2, angle float64) {
	poly.SetAsBox(hx, hy)
	xf := MakeB2TransformFromAngle(center, angle)

	for i := 0; i < poly.M_count; i++ {
		poly.M_vertices[i] = B2TransformVec2Mul(xf, poly.M_vertices[i])
		poly.M_normals[i] = B2RotVec2Mul(xf.Q, poly.M_normals[i])
	}
	poly.M_centroid = center
}

/// Area weighted centroid of a simple polygon.
func ComputeCentroid(vs []B2Vec2) B2Vec2 {
	B2Assert(len(vs) >= 3, "centroid needs at least 3 vertices")

	// Triangles are fanned from the vertex average, which keeps rounding
	// error low for polygons far from the origin.
	ref := B2Vec2_zero
	for _, v := range vs {
		ref.OperatorPlusInplace(v)
	}
	ref.OperatorScalarMulInplace(1.0 / float64(len(vs)))

	c := B2Vec2_zero
	area := 0.0
	for i := range vs {
		p2 := vs[i]
		p3 := vs[(i+1)%len(vs)]

		a := 0.5 * B2Vec2Cross(B2Vec2Sub(p2, ref), B2Vec2Sub(p3, ref))
		area += a
		c.OperatorPlusInplace(B2Vec2MulScalar(a/3.0, B2Vec2Add(B2Vec2Add(ref, p2), p3)))
	}

	B2Assert(area > B2_epsilon, "degenerate polygon")
	c.OperatorScalarMulInplace(1.0 / area)
	return c
}

/// Set builds the convex hull of the given points. Points closer than half
/// the linear slop are welded. The hull must keep at least 3 vertices and
/// at most B2_maxPolygonVertices points are read.
func (poly *B2PolygonShape) Set(vertices []B2Vec2) {
	B2Assert(3 <= len(vertices), "polygon needs at least 3 vertices")

	n := len(vertices)
	if n > B2_maxPolygonVertices {
		n = B2_maxPolygonVertices
	}

	const weldDistSq = (0.5 * B2_linearSlop) * (0.5 * B2_linearSlop)
	ps := make([]B2Vec2, 0, n)
	for _, v := range vertices[:n] {
		unique := true
		for _, p := range ps {
			if B2Vec2DistanceSquared(v, p) < weldDistSq {
				unique = false
				break
			}
		}
		if unique {
			ps = append(ps, v)
		}
	}
	B2Assert(len(ps) >= 3, "polygon is degenerate after welding")

	hull := giftWrap(ps)
	B2Assert(len(hull) >= 3, "polygon hull is degenerate")

	poly.M_count = len(hull)
	for i, h := range hull {
		poly.M_vertices[i] = ps[h]
	}

	for i := 0; i < poly.M_count; i++ {
		edge := B2Vec2Sub(poly.M_vertices[(i+1)%poly.M_count], poly.M_vertices[i])
		B2Assert(edge.LengthSquared() > B2_epsilon*B2_epsilon, "zero length polygon edge")
		poly.M_normals[i] = B2Vec2CrossVectorScalar(edge, 1.0)
		poly.M_normals[i].Normalize()
	}

	poly.M_centroid = ComputeCentroid(poly.M_vertices[:poly.M_count])
}

// giftWrap returns the indices of the convex hull of ps in counter-clockwise
// order, starting from the right-most (then lowest) point. Collinear points
// are dropped in favour of the farthest one.
func giftWrap(ps []B2Vec2) []int {
	i0 := 0
	for i := 1; i < len(ps); i++ {
		if ps[i].X > ps[i0].X || (ps[i].X == ps[i0].X && ps[i].Y < ps[i0].Y) {
			i0 = i
		}
	}

	hull := make([]int, 0, B2_maxPolygonVertices)
	ih := i0
	for {
		B2Assert(len(hull) < B2_maxPolygonVertices, "too many hull vertices")
		hull = append(hull, ih)

		ie := 0
		for j := 1; j < len(ps); j++ {
			if ie == ih {
				ie = j
				continue
			}

			r := B2Vec2Sub(ps[ie], ps[ih])
			v := B2Vec2Sub(ps[j], ps[ih])
			c := B2Vec2Cross(r, v)
			if c < 0.0 || (c == 0.0 && v.LengthSquared() > r.LengthSquared()) {
				ie = j
			}
		}

		ih = ie
		if ie == i0 {
			return hull
		}
	}
}

func (poly B2PolygonShape) TestPoint(xf B2Transform, p B2Vec2) bool {
	pLocal := B2TransformVec2MulT(xf, p)

	for i := 0; i < poly.M_count; i++ {
		if B2Vec2Dot(poly.M_normals[i], B2Vec2Sub(pLocal, poly.M_vertices[i])) > 0.0 {
			return false
		}
	}
	return true
}

/// ComputeMass integrates the polygon as a fan of triangles around the
/// vertex average s. For a triangle (s, s+e1, s+e2) with D = cross(e1, e2):
///  area = D/2, centroid = s + (e1+e2)/3,
///  I_s  = D/12 * (e1.x^2 + e1.x*e2.x + e2.x^2 + e1.y^2 + e1.y*e2.y + e2.y^2)
func (poly B2PolygonShape) ComputeMass(massData *B2MassData, density float64) {
	B2Assert(poly.M_count >= 3, "polygon needs at least 3 vertices")

	s := B2Vec2_zero
	for i := 0; i < poly.M_count; i++ {
		s.OperatorPlusInplace(poly.M_vertices[i])
	}
	s.OperatorScalarMulInplace(1.0 / float64(poly.M_count))

	center := B2Vec2_zero
	area := 0.0
	I := 0.0

	for i := 0; i < poly.M_count; i++ {
		e1 := B2Vec2Sub(poly.M_vertices[i], s)
		e2 := B2Vec2Sub(poly.M_vertices[(i+1)%poly.M_count], s)

		D := B2Vec2Cross(e1, e2)
		triangleArea := 0.5 * D
		area += triangleArea
		center.OperatorPlusInplace(B2Vec2MulScalar(triangleArea/3.0, B2Vec2Add(e1, e2)))

		intx2 := e1.X*e1.X + e2.X*e1.X + e2.X*e2.X
		inty2 := e1.Y*e1.Y + e2.Y*e1.Y + e2.Y*e2.Y
		I += (0.25 / 3.0 * D) * (intx2 + inty2)
	}

	B2Assert(area > B2_epsilon, "degenerate polygon")
	massData.Mass = density * area

	center.OperatorScalarMulInplace(1.0 / area)
	massData.Center = B2Vec2Add(center, s)

	// Shift the inertia from s to the center of mass, then to the origin.
	massData.I = density*I + massData.Mass*(B2Vec2Dot(massData.Center, massData.Center)-B2Vec2Dot(center, center))
}

/// Validate reports whether the polygon is convex and counter-clockwise.
func (poly B2PolygonShape) Validate() bool {
	for i := 0; i < poly.M_count; i++ {
		p := poly.M_vertices[i]
		e := B2Vec2Sub(poly.M_vertices[(i+1)%poly.M_count], p)

		for j := 0; j < poly.M_count; j++ {
			if j == i || j == (i+1)%poly.M_count {
				continue
			}
			if B2Vec2Cross(e, B2Vec2Sub(poly.M_vertices[j], p)) < 0.0 {
				return false
			}
		}
	}
	return true
}

func (poly B2PolygonShape) Dump() {
	B2Log("    b2PolygonShape shape;\n")
	dumpVertices("vs", poly.M_vertices[:poly.M_count])
	B2Log("    shape.Set(vs, %d);\n", poly.M_count)
}
