package box2d

/// A solid circle centered on M_p.
type B2CircleShape struct {
	B2Shape

	/// Position
	M_p B2Vec2
}

func MakeB2CircleShape() B2CircleShape {
	return B2CircleShape{
		B2Shape: B2Shape{M_type: B2Shape_Type.E_circle},
	}
}

/// Circle of the given radius centered on the local point p.
func NewB2CircleShape(radius float64, p B2Vec2) *B2CircleShape {
	res := MakeB2CircleShape()
	res.M_radius = radius
	res.M_p = p
	return &res
}

func (shape B2CircleShape) Clone() B2ShapeInterface {
	clone := shape
	return &clone
}

func (shape B2CircleShape) GetChildCount() int {
	return 1
}

func (shape B2CircleShape) TestPoint(transform B2Transform, p B2Vec2) bool {
	center := B2TransformVec2Mul(transform, shape.M_p)
	return B2Vec2DistanceSquared(p, center) <= shape.M_radius*shape.M_radius
}

func (shape B2CircleShape) ComputeMass(massData *B2MassData, density float64) {
	rr := shape.M_radius * shape.M_radius
	massData.Mass = density * B2_pi * rr
	massData.Center = shape.M_p

	// inertia about the local origin
	massData.I = massData.Mass * (0.5*rr + B2Vec2Dot(shape.M_p, shape.M_p))
}

func (shape B2CircleShape) Dump() {
	B2Log("    b2CircleShape shape;\n")
	B2Log("    shape.m_radius = %.15e;\n", shape.M_radius)
	B2Log("    shape.m_p.Set(%.15e, %.15e);\n", shape.M_p.X, shape.M_p.Y)
}
