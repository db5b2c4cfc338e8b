package box2d

/// B2MassData holds the mass properties computed for a shape.
type B2MassData struct {
	/// The mass of the shape, usually in kilograms.
	Mass float64

	/// The position of the shape's centroid relative to the shape's origin.
	Center B2Vec2

	/// The rotational inertia of the shape about the local origin.
	I float64
}

/// Shape variants understood by the narrow phase.
var B2Shape_Type = struct {
	E_circle    uint8
	E_edge      uint8
	E_polygon   uint8
	E_chain     uint8
	E_typeCount uint8
}{
	E_circle:    0,
	E_edge:      1,
	E_polygon:   2,
	E_chain:     3,
	E_typeCount: 4,
}

/// B2ShapeInterface is implemented by the concrete shapes. Collision routines
/// switch on GetType to reach the concrete value.
type B2ShapeInterface interface {
	/// Deep copy of the concrete shape.
	Clone() B2ShapeInterface

	GetType() uint8

	/// Skin radius. Polygons and edges use B2_polygonRadius.
	GetRadius() float64

	/// Number of child primitives (edges for a chain, 1 otherwise).
	GetChildCount() int

	/// Test a world point for containment. Only convex shapes contain points.
	TestPoint(xf B2Transform, p B2Vec2) bool

	/// Mass properties about the local origin for the given density.
	ComputeMass(massData *B2MassData, density float64)

	/// Log the shape as a construction snippet.
	Dump()
}

type B2Shape struct {
	M_type uint8

	/// Radius of a shape. For polygonal shapes this must be B2_polygonRadius.
	M_radius float64
}

func (shape B2Shape) GetType() uint8 {
	return shape.M_type
}

func (shape B2Shape) GetRadius() float64 {
	return shape.M_radius
}

func (shape *B2Shape) SetRadius(r float64) {
	shape.M_radius = r
}

func dumpVertices(name string, vs []B2Vec2) {
	B2Log("    b2Vec2 %s[%d];\n", name, len(vs))
	for i, v := range vs {
		B2Log("    %s[%d].Set(%.15e, %.15e);\n", name, i, v.X, v.Y)
	}
}
