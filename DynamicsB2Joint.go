package box2d

var B2JointType = struct {
	E_unknownJoint        uint8
	E_revoluteJoint       uint8
	E_prismaticJoint      uint8
	E_distanceJoint       uint8
	E_gearJoint           uint8
	E_constantVolumeJoint uint8
}{
	E_unknownJoint:        1,
	E_revoluteJoint:       2,
	E_prismaticJoint:      3,
	E_distanceJoint:       4,
	E_gearJoint:           7,
	E_constantVolumeJoint: 13,
}

/// State of a joint limit, recomputed every InitVelocityConstraints.
var B2LimitState = struct {
	E_inactiveLimit uint8
	E_atLowerLimit  uint8
	E_atUpperLimit  uint8
	E_equalLimits   uint8
}{
	E_inactiveLimit: 1,
	E_atLowerLimit:  2,
	E_atUpperLimit:  3,
	E_equalLimits:   4,
}

/// Joint definitions are used to construct joints.
type B2JointDef struct {
	/// The joint type is set automatically for concrete joint types.
	Type uint8

	/// Use this to attach application specific data to your joints.
	UserData interface{}

	/// The first attached body.
	BodyA *B2Body

	/// The second attached body.
	BodyB *B2Body

	/// Set this flag to true if the attached bodies should collide.
	CollideConnected bool
}

/// Implemented by every *Def through the embedded B2JointDef.
type B2JointDefInterface interface {
	GetType() uint8
	GetUserData() interface{}
	GetBodyA() *B2Body
	GetBodyB() *B2Body
	IsCollideConnected() bool
}

func (def B2JointDef) GetType() uint8 {
	return def.Type
}

func (def B2JointDef) GetUserData() interface{} {
	return def.UserData
}

func (def B2JointDef) GetBodyA() *B2Body {
	return def.BodyA
}

func (def B2JointDef) GetBodyB() *B2Body {
	return def.BodyB
}

func (def B2JointDef) IsCollideConnected() bool {
	return def.CollideConnected
}

func MakeB2JointDef(jointType uint8) B2JointDef {
	return B2JointDef{Type: jointType}
}

/// B2JointInterface is the three-phase contract every joint honours during
/// an island solve:
///  1. InitVelocityConstraints caches anchors and effective masses and
///     applies the warm-start impulse scaled by the step's DtRatio
///  2. SolveVelocityConstraints is called once per velocity iteration and
///     clamps the accumulated impulses
///  3. SolvePositionConstraints is called once per position iteration and
///     reports whether the positional error is within tolerance.
/// The solver stops position iterations early once every joint reports
/// convergence.
type B2JointInterface interface {
	/// Log a construction snippet for this joint.
	Dump()

	GetType() uint8

	GetBodyA() *B2Body
	GetBodyB() *B2Body

	/// Every body the joint touches, in solver order.
	GetBodies() []*B2Body

	GetIndex() int
	SetIndex(index int)

	GetUserData() interface{}
	SetUserData(data interface{})

	IsCollideConnected() bool

	/// World anchor points on body A and body B.
	GetAnchorA() B2Vec2
	GetAnchorB() B2Vec2

	/// Reaction force on body B at the anchor, in Newtons.
	GetReactionForce(inv_dt float64) B2Vec2

	/// Reaction torque on body B, in N*m.
	GetReactionTorque(inv_dt float64) float64

	InitVelocityConstraints(data B2SolverData)
	SolveVelocityConstraints(data B2SolverData)
	SolvePositionConstraints(data B2SolverData) bool
}

/// The base joint. Concrete joints embed it.
type B2Joint struct {
	M_type             uint8
	M_bodyA            *B2Body
	M_bodyB            *B2Body
	M_index            int
	M_collideConnected bool
	M_userData         interface{}
}

func MakeB2Joint(def B2JointDefInterface) B2Joint {
	B2Assert(def.GetBodyA() != nil && def.GetBodyB() != nil, "joint needs two bodies")
	B2Assert(def.GetBodyA() != def.GetBodyB(), "joint cannot connect a body to itself")

	return B2Joint{
		M_type:             def.GetType(),
		M_bodyA:            def.GetBodyA(),
		M_bodyB:            def.GetBodyB(),
		M_collideConnected: def.IsCollideConnected(),
		M_userData:         def.GetUserData(),
	}
}

func (j B2Joint) GetType() uint8 {
	return j.M_type
}

func (j B2Joint) GetBodyA() *B2Body {
	return j.M_bodyA
}

func (j B2Joint) GetBodyB() *B2Body {
	return j.M_bodyB
}

func (j B2Joint) GetBodies() []*B2Body {
	return []*B2Body{j.M_bodyA, j.M_bodyB}
}

func (j B2Joint) GetUserData() interface{} {
	return j.M_userData
}

func (j *B2Joint) SetUserData(data interface{}) {
	j.M_userData = data
}

func (j B2Joint) IsCollideConnected() bool {
	return j.M_collideConnected
}

func (j B2Joint) GetIndex() int {
	return j.M_index
}

func (j *B2Joint) SetIndex(index int) {
	j.M_index = index
}

/// B2JointCreate builds the concrete joint described by def. The concrete
/// type of def must match def.Type.
func B2JointCreate(def B2JointDefInterface) B2JointInterface {
	switch d := def.(type) {
	case *B2PrismaticJointDef:
		B2Assert(d.Type == B2JointType.E_prismaticJoint, "joint type mismatch")
		return MakeB2PrismaticJoint(d)
	case *B2RevoluteJointDef:
		B2Assert(d.Type == B2JointType.E_revoluteJoint, "joint type mismatch")
		return MakeB2RevoluteJoint(d)
	case *B2DistanceJointDef:
		B2Assert(d.Type == B2JointType.E_distanceJoint, "joint type mismatch")
		return MakeB2DistanceJoint(d)
	case *B2GearJointDef:
		B2Assert(d.Type == B2JointType.E_gearJoint, "joint type mismatch")
		return MakeB2GearJoint(d)
	case *B2ConstantVolumeJointDef:
		B2Assert(d.Type == B2JointType.E_constantVolumeJoint, "joint type mismatch")
		return MakeB2ConstantVolumeJoint(d)
	}

	B2Assert(false, "unsupported joint definition")
	return nil
}

func dumpJointHeader(kind string, j B2Joint) {
	B2Log("  b2%sJointDef jd;\n", kind)
	B2Log("  jd.bodyA = bodies[%d];\n", j.M_bodyA.M_islandIndex)
	B2Log("  jd.bodyB = bodies[%d];\n", j.M_bodyB.M_islandIndex)
	B2Log("  jd.collideConnected = bool(%d);\n", boolToInt(j.M_collideConnected))
}

func dumpJointFooter(j B2Joint) {
	B2Log("  joints[%d] = m_world->CreateJoint(&jd);\n", j.M_index)
}

// b2JointBodyPair caches the solver view of a joint's two bodies between
// InitVelocityConstraints and the solve phases.
type b2JointBodyPair struct {
	M_indexA       int
	M_indexB       int
	M_localCenterA B2Vec2
	M_localCenterB B2Vec2
	M_invMassA     float64
	M_invMassB     float64
	M_invIA        float64
	M_invIB        float64
}

func (p *b2JointBodyPair) cache(bA, bB *B2Body) {
	p.M_indexA = bA.M_islandIndex
	p.M_indexB = bB.M_islandIndex
	p.M_localCenterA = bA.M_sweep.LocalCenter
	p.M_localCenterB = bB.M_sweep.LocalCenter
	p.M_invMassA = bA.M_invMass
	p.M_invMassB = bB.M_invMass
	p.M_invIA = bA.M_invI
	p.M_invIB = bB.M_invI
}

// applyVelocity applies linear impulse P with angular impulses LA, LB:
// A receives -P and B receives +P.
func (p b2JointBodyPair) applyVelocity(vA, vB *B2Velocity, P B2Vec2, LA, LB float64) {
	vA.V.OperatorMinusInplace(B2Vec2MulScalar(p.M_invMassA, P))
	vA.W -= p.M_invIA * LA
	vB.V.OperatorPlusInplace(B2Vec2MulScalar(p.M_invMassB, P))
	vB.W += p.M_invIB * LB
}

// applyPosition is the position-level twin of applyVelocity.
func (p b2JointBodyPair) applyPosition(pA, pB *B2Position, P B2Vec2, LA, LB float64) {
	pA.C.OperatorMinusInplace(B2Vec2MulScalar(p.M_invMassA, P))
	pA.A -= p.M_invIA * LA
	pB.C.OperatorPlusInplace(B2Vec2MulScalar(p.M_invMassB, P))
	pB.A += p.M_invIB * LB
}
