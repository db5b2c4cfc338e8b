package box2d

/// The body type.
/// static: zero mass, zero velocity, may be manually moved
/// kinematic: zero mass, non-zero velocity set by user, moved by solver
/// dynamic: positive mass, non-zero velocity determined by forces, moved by solver
var B2BodyType = struct {
	B2_staticBody    uint8
	B2_kinematicBody uint8
	B2_dynamicBody   uint8
}{
	B2_staticBody:    0,
	B2_kinematicBody: 1,
	B2_dynamicBody:   2,
}

/// A body definition holds all the data needed to construct a rigid body.
type B2BodyDef struct {
	/// The body type: static, kinematic, or dynamic.
	Type uint8

	/// The world position of the body origin.
	Position B2Vec2

	/// The world angle of the body in radians.
	Angle float64

	/// The linear velocity of the body's origin in world co-ordinates.
	LinearVelocity B2Vec2

	/// The angular velocity of the body.
	AngularVelocity float64

	/// Velocity damping, in 1/time.
	LinearDamping  float64
	AngularDamping float64

	/// Should this body be prevented from rotating?
	FixedRotation bool

	/// Use this to store application specific body data.
	UserData interface{}

	/// Scale the gravity applied to this body.
	GravityScale float64
}

/// This constructor sets the body definition default values.
func MakeB2BodyDef() B2BodyDef {
	return B2BodyDef{
		Type:         B2BodyType.B2_staticBody,
		GravityScale: 1.0,
	}
}

var B2Body_Flags = struct {
	E_awakeFlag         uint32
	E_fixedRotationFlag uint32
}{
	E_awakeFlag:         0x0002,
	E_fixedRotationFlag: 0x0010,
}

// attachedShape is a shape carried by a body together with its density.
type attachedShape struct {
	shape   B2ShapeInterface
	density float64
}

/// B2Body is the rigid body seen by the joint solver: a frame, a center of
/// mass, velocities and mass properties. Collision and joint bookkeeping is
/// left to whoever owns the bodies.
type B2Body struct {
	M_type  uint8
	M_flags uint32

	/// Index into B2SolverData arrays while an island is being solved.
	M_islandIndex int

	M_xf    B2Transform // the body origin transform
	M_sweep B2Sweep     // center of mass and angle

	M_linearVelocity  B2Vec2
	M_angularVelocity float64

	M_force  B2Vec2
	M_torque float64

	M_shapes []attachedShape

	M_mass, M_invMass float64

	// Rotational inertia about the center of mass.
	M_I, M_invI float64

	M_linearDamping  float64
	M_angularDamping float64
	M_gravityScale   float64

	M_userData interface{}
}

func NewB2Body(bd *B2BodyDef) *B2Body {
	B2Assert(bd.Position.IsValid(), "invalid body position")
	B2Assert(bd.LinearVelocity.IsValid(), "invalid body velocity")
	B2Assert(B2IsValid(bd.Angle) && B2IsValid(bd.AngularVelocity), "invalid body angle")

	body := &B2Body{
		M_type:           bd.Type,
		M_flags:          B2Body_Flags.E_awakeFlag,
		M_linearDamping:  bd.LinearDamping,
		M_angularDamping: bd.AngularDamping,
		M_gravityScale:   bd.GravityScale,
		M_userData:       bd.UserData,
		M_xf:             MakeB2TransformFromAngle(bd.Position, bd.Angle),
	}

	if bd.FixedRotation {
		body.M_flags |= B2Body_Flags.E_fixedRotationFlag
	}

	body.M_sweep.C0 = body.M_xf.P
	body.M_sweep.C = body.M_xf.P
	body.M_sweep.A0 = bd.Angle
	body.M_sweep.A = bd.Angle

	if body.M_type == B2BodyType.B2_dynamicBody {
		body.M_mass = 1.0
		body.M_invMass = 1.0
	}
	if body.M_type != B2BodyType.B2_staticBody {
		body.M_linearVelocity = bd.LinearVelocity
		body.M_angularVelocity = bd.AngularVelocity
	}

	return body
}

func (body B2Body) GetType() uint8 {
	return body.M_type
}

func (body B2Body) GetTransform() B2Transform {
	return body.M_xf
}

/// World position of the body origin.
func (body B2Body) GetPosition() B2Vec2 {
	return body.M_xf.P
}

func (body B2Body) GetAngle() float64 {
	return body.M_sweep.A
}

func (body B2Body) GetWorldCenter() B2Vec2 {
	return body.M_sweep.C
}

func (body B2Body) GetLocalCenter() B2Vec2 {
	return body.M_sweep.LocalCenter
}

func (body *B2Body) SetLinearVelocity(v B2Vec2) {
	if body.M_type == B2BodyType.B2_staticBody {
		return
	}
	if B2Vec2Dot(v, v) > 0.0 {
		body.SetAwake(true)
	}
	body.M_linearVelocity = v
}

func (body B2Body) GetLinearVelocity() B2Vec2 {
	return body.M_linearVelocity
}

func (body *B2Body) SetAngularVelocity(w float64) {
	if body.M_type == B2BodyType.B2_staticBody {
		return
	}
	if w*w > 0.0 {
		body.SetAwake(true)
	}
	body.M_angularVelocity = w
}

func (body B2Body) GetAngularVelocity() float64 {
	return body.M_angularVelocity
}

func (body B2Body) GetMass() float64 {
	return body.M_mass
}

/// Rotational inertia about the body origin.
func (body B2Body) GetInertia() float64 {
	return body.M_I + body.M_mass*B2Vec2Dot(body.M_sweep.LocalCenter, body.M_sweep.LocalCenter)
}

func (body B2Body) GetWorldPoint(localPoint B2Vec2) B2Vec2 {
	return B2TransformVec2Mul(body.M_xf, localPoint)
}

func (body B2Body) GetWorldVector(localVector B2Vec2) B2Vec2 {
	return B2RotVec2Mul(body.M_xf.Q, localVector)
}

func (body B2Body) GetLocalPoint(worldPoint B2Vec2) B2Vec2 {
	return B2TransformVec2MulT(body.M_xf, worldPoint)
}

func (body B2Body) GetLocalVector(worldVector B2Vec2) B2Vec2 {
	return B2RotVec2MulT(body.M_xf.Q, worldVector)
}

/// Velocity of a world point attached to this body.
func (body B2Body) GetLinearVelocityFromWorldPoint(worldPoint B2Vec2) B2Vec2 {
	return B2Vec2Add(
		body.M_linearVelocity,
		B2Vec2CrossScalarVector(body.M_angularVelocity, B2Vec2Sub(worldPoint, body.M_sweep.C)),
	)
}

func (body *B2Body) SetAwake(flag bool) {
	if flag {
		body.M_flags |= B2Body_Flags.E_awakeFlag
		return
	}

	body.M_flags &= ^B2Body_Flags.E_awakeFlag
	body.M_linearVelocity.SetZero()
	body.M_angularVelocity = 0.0
	body.M_force.SetZero()
	body.M_torque = 0.0
}

func (body B2Body) IsAwake() bool {
	return body.M_flags&B2Body_Flags.E_awakeFlag == B2Body_Flags.E_awakeFlag
}

func (body B2Body) IsFixedRotation() bool {
	return body.M_flags&B2Body_Flags.E_fixedRotationFlag == B2Body_Flags.E_fixedRotationFlag
}

func (body *B2Body) SetUserData(data interface{}) {
	body.M_userData = data
}

func (body B2Body) GetUserData() interface{} {
	return body.M_userData
}

func (body B2Body) GetIslandIndex() int {
	return body.M_islandIndex
}

/// Apply a force at a world point. Only dynamic bodies react.
func (body *B2Body) ApplyForce(force B2Vec2, point B2Vec2, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody {
		return
	}
	if wake && !body.IsAwake() {
		body.SetAwake(true)
	}
	if body.IsAwake() {
		body.M_force.OperatorPlusInplace(force)
		body.M_torque += B2Vec2Cross(B2Vec2Sub(point, body.M_sweep.C), force)
	}
}

func (body *B2Body) ApplyForceToCenter(force B2Vec2, wake bool) {
	body.ApplyForce(force, body.M_sweep.C, wake)
}

/// Apply an impulse at a world point, changing the velocity immediately.
func (body *B2Body) ApplyLinearImpulse(impulse B2Vec2, point B2Vec2, wake bool) {
	if body.M_type != B2BodyType.B2_dynamicBody {
		return
	}
	if wake && !body.IsAwake() {
		body.SetAwake(true)
	}
	if body.IsAwake() {
		body.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(body.M_invMass, impulse))
		body.M_angularVelocity += body.M_invI * B2Vec2Cross(B2Vec2Sub(point, body.M_sweep.C), impulse)
	}
}

/// Rebuild the origin transform from the sweep.
func (body *B2Body) SynchronizeTransform() {
	body.M_xf.Q.Set(body.M_sweep.A)
	body.M_xf.P = B2Vec2Sub(body.M_sweep.C, B2RotVec2Mul(body.M_xf.Q, body.M_sweep.LocalCenter))
}

/// Attach a shape for mass computation and recompute the mass.
func (body *B2Body) AttachShape(shape B2ShapeInterface, density float64) {
	body.M_shapes = append(body.M_shapes, attachedShape{shape: shape, density: density})
	body.ResetMassData()
}

/// ResetMassData derives the mass from the attached shapes. A dynamic body
/// without mass gets a mass of one.
func (body *B2Body) ResetMassData() {
	body.M_mass, body.M_invMass = 0.0, 0.0
	body.M_I, body.M_invI = 0.0, 0.0
	body.M_sweep.LocalCenter.SetZero()

	if body.M_type != B2BodyType.B2_dynamicBody {
		body.M_sweep.C0 = body.M_xf.P
		body.M_sweep.C = body.M_xf.P
		body.M_sweep.A0 = body.M_sweep.A
		return
	}

	var total B2MassData
	for _, a := range body.M_shapes {
		if a.density == 0.0 {
			continue
		}
		var md B2MassData
		a.shape.ComputeMass(&md, a.density)
		total.Mass += md.Mass
		total.Center.OperatorPlusInplace(B2Vec2MulScalar(md.Mass, md.Center))
		total.I += md.I
	}
	if total.Mass > 0.0 {
		total.Center.OperatorScalarMulInplace(1.0 / total.Mass)
	}

	body.SetMassData(&total)
}

/// SetMassData overrides the mass properties. I is about the body origin.
/// Non-dynamic bodies ignore it.
func (body *B2Body) SetMassData(massData *B2MassData) {
	if body.M_type != B2BodyType.B2_dynamicBody {
		return
	}

	body.M_mass = massData.Mass
	if body.M_mass <= 0.0 {
		body.M_mass = 1.0
	}
	body.M_invMass = 1.0 / body.M_mass

	body.M_I, body.M_invI = 0.0, 0.0
	if massData.I > 0.0 && !body.IsFixedRotation() {
		body.M_I = massData.I - body.M_mass*B2Vec2Dot(massData.Center, massData.Center)
		B2Assert(body.M_I > 0.0, "rotational inertia must be positive")
		body.M_invI = 1.0 / body.M_I
	}

	// Move the center of mass and keep the velocity of the origin.
	oldCenter := body.M_sweep.C
	body.M_sweep.LocalCenter = massData.Center
	body.M_sweep.C = B2TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.C0 = body.M_sweep.C

	body.M_linearVelocity.OperatorPlusInplace(
		B2Vec2CrossScalarVector(body.M_angularVelocity, B2Vec2Sub(body.M_sweep.C, oldCenter)),
	)
}

/// Teleport the body origin.
func (body *B2Body) SetTransform(position B2Vec2, angle float64) {
	body.M_xf.Set(position, angle)

	body.M_sweep.C = B2TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.A = angle
	body.M_sweep.C0 = body.M_sweep.C
	body.M_sweep.A0 = angle
}

func (body *B2Body) Dump() {
	B2Log("{\n")
	B2Log("  b2BodyDef bd;\n")
	B2Log("  bd.type = b2BodyType(%d);\n", body.M_type)
	B2Log("  bd.position.Set(%.15e, %.15e);\n", body.M_xf.P.X, body.M_xf.P.Y)
	B2Log("  bd.angle = %.15e;\n", body.M_sweep.A)
	B2Log("  bd.linearVelocity.Set(%.15e, %.15e);\n", body.M_linearVelocity.X, body.M_linearVelocity.Y)
	B2Log("  bd.angularVelocity = %.15e;\n", body.M_angularVelocity)
	B2Log("  bd.linearDamping = %.15e;\n", body.M_linearDamping)
	B2Log("  bd.angularDamping = %.15e;\n", body.M_angularDamping)
	B2Log("  bd.fixedRotation = bool(%d);\n", boolToInt(body.IsFixedRotation()))
	B2Log("  bd.gravityScale = %.15e;\n", body.M_gravityScale)
	B2Log("  bodies[%d] = m_world->CreateBody(&bd);\n", body.M_islandIndex)
	for _, a := range body.M_shapes {
		B2Log("  {\n")
		a.shape.Dump()
		B2Log("    bodies[%d]->CreateFixture(&shape, %.15e);\n", body.M_islandIndex, a.density)
		B2Log("  }\n")
	}
	B2Log("}\n")
}

/// SetIslandIndex places the body in the solver arrays of an external step.
func (body *B2Body) SetIslandIndex(index int) {
	body.M_islandIndex = index
}
