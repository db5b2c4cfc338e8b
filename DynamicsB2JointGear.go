package box2d

import (
	"math"
)

/// Gear joint definition. Both joints must be revolute or prismatic joints
/// whose bodyA is usually fixed.
type B2GearJointDef struct {
	B2JointDef

	/// The first revolute/prismatic joint attached to the gear joint.
	Joint1 B2JointInterface

	/// The second revolute/prismatic joint attached to the gear joint.
	Joint2 B2JointInterface

	/// The gear ratio.
	Ratio float64
}

func MakeB2GearJointDef() B2GearJointDef {
	return B2GearJointDef{
		B2JointDef: MakeB2JointDef(B2JointType.E_gearJoint),
		Ratio:      1.0,
	}
}

/// Initialize sets both joints and the ratio. The gear bodies are the
/// bodyB of each joint.
func (def *B2GearJointDef) Initialize(joint1, joint2 B2JointInterface, ratio float64) {
	def.Joint1 = joint1
	def.Joint2 = joint2
	def.BodyA = joint1.GetBodyB()
	def.BodyB = joint2.GetBodyB()
	def.Ratio = ratio
}

// b2GearHalf is one side of a gear: the moving body of a revolute or
// prismatic joint together with that joint's ground body.
type b2GearHalf struct {
	M_type   uint8
	M_body   *B2Body
	M_ground *B2Body

	M_localAnchor       B2Vec2
	M_localAnchorGround B2Vec2
	M_localAxisGround   B2Vec2
	M_referenceAngle    float64

	// Solver temp
	M_index, M_groundIndex int
	M_lc, M_lcGround       B2Vec2
	M_m, M_mGround         float64
	M_i, M_iGround         float64
}

// b2GearRow is one side's share of the gear Jacobian and effective mass.
type b2GearRow struct {
	Jv       B2Vec2
	Jw       float64
	JwGround float64
	Mass     float64
}

func makeB2GearHalf(joint B2JointInterface) b2GearHalf {
	half := b2GearHalf{
		M_type:   joint.GetType(),
		M_body:   joint.GetBodyB(),
		M_ground: joint.GetBodyA(),
	}

	switch j := joint.(type) {
	case *B2RevoluteJoint:
		half.M_localAnchorGround = j.M_localAnchorA
		half.M_localAnchor = j.M_localAnchorB
		half.M_referenceAngle = j.M_referenceAngle
	case *B2PrismaticJoint:
		half.M_localAnchorGround = j.M_localAnchorA
		half.M_localAnchor = j.M_localAnchorB
		half.M_referenceAngle = j.M_referenceAngle
		half.M_localAxisGround = j.M_localXAxisA
	default:
		B2Assert(false, "gear joints need revolute or prismatic joints")
	}

	half.cache()
	return half
}

func (h *b2GearHalf) cache() {
	h.M_index = h.M_body.M_islandIndex
	h.M_groundIndex = h.M_ground.M_islandIndex
	h.M_lc = h.M_body.M_sweep.LocalCenter
	h.M_lcGround = h.M_ground.M_sweep.LocalCenter
	h.M_m = h.M_body.M_invMass
	h.M_mGround = h.M_ground.M_invMass
	h.M_i = h.M_body.M_invI
	h.M_iGround = h.M_ground.M_invI
}

// row returns the Jacobian row scaled by ratio and the joint coordinate
// (angle or translation) for the given positions.
func (h b2GearHalf) row(p, pg B2Position, ratio float64) (b2GearRow, float64) {
	if h.M_type == B2JointType.E_revoluteJoint {
		return b2GearRow{
			Jw:       ratio,
			JwGround: ratio,
			Mass:     ratio * ratio * (h.M_i + h.M_iGround),
		}, p.A - pg.A - h.M_referenceAngle
	}

	q := MakeB2RotFromAngle(p.A)
	qg := MakeB2RotFromAngle(pg.A)

	u := B2RotVec2Mul(qg, h.M_localAxisGround)
	rG := B2RotVec2Mul(qg, B2Vec2Sub(h.M_localAnchorGround, h.M_lcGround))
	r := B2RotVec2Mul(q, B2Vec2Sub(h.M_localAnchor, h.M_lc))

	row := b2GearRow{
		Jv:       B2Vec2MulScalar(ratio, u),
		Jw:       ratio * B2Vec2Cross(r, u),
		JwGround: ratio * B2Vec2Cross(rG, u),
	}
	row.Mass = ratio*ratio*(h.M_mGround+h.M_m) + h.M_iGround*row.JwGround*row.JwGround + h.M_i*row.Jw*row.Jw

	pG := B2Vec2Sub(h.M_localAnchorGround, h.M_lcGround)
	pB := B2RotVec2MulT(qg, B2Vec2Add(r, B2Vec2Sub(p.C, pg.C)))
	return row, B2Vec2Dot(B2Vec2Sub(pB, pG), h.M_localAxisGround)
}

func (h b2GearHalf) positions(data B2SolverData) (B2Position, B2Position) {
	return data.Positions[h.M_index], data.Positions[h.M_groundIndex]
}

func (h b2GearHalf) cdot(data B2SolverData, row b2GearRow) float64 {
	v, vg := data.Velocities[h.M_index], data.Velocities[h.M_groundIndex]
	return B2Vec2Dot(row.Jv, B2Vec2Sub(v.V, vg.V)) + row.Jw*v.W - row.JwGround*vg.W
}

// applyVelocity writes through the slice so a body shared by both halves
// sees both updates.
func (h b2GearHalf) applyVelocity(data B2SolverData, row b2GearRow, impulse float64) {
	v := &data.Velocities[h.M_index]
	v.V.OperatorPlusInplace(B2Vec2MulScalar(h.M_m*impulse, row.Jv))
	v.W += h.M_i * impulse * row.Jw

	vg := &data.Velocities[h.M_groundIndex]
	vg.V.OperatorMinusInplace(B2Vec2MulScalar(h.M_mGround*impulse, row.Jv))
	vg.W -= h.M_iGround * impulse * row.JwGround
}

func (h b2GearHalf) applyPosition(data B2SolverData, row b2GearRow, impulse float64) {
	p := &data.Positions[h.M_index]
	p.C.OperatorPlusInplace(B2Vec2MulScalar(h.M_m*impulse, row.Jv))
	p.A += h.M_i * impulse * row.Jw

	pg := &data.Positions[h.M_groundIndex]
	pg.C.OperatorMinusInplace(B2Vec2MulScalar(h.M_mGround*impulse, row.Jv))
	pg.A -= h.M_iGround * impulse * row.JwGround
}

/// A gear joint connects two joints so that
///  coordinate1 + ratio * coordinate2 = constant
/// where each coordinate is a revolute angle or a prismatic translation.
/// Body A and body B are the moving bodies of the two joints; body C and
/// body D are their grounds.
///
///  J = [ug cross(r, ug)] for a prismatic side
///  J = [0 1] for a revolute side
type B2GearJoint struct {
	B2Joint

	M_joint1 B2JointInterface
	M_joint2 B2JointInterface

	M_sideA b2GearHalf
	M_sideB b2GearHalf

	M_constant float64
	M_ratio    float64
	M_impulse  float64

	// Solver temp
	M_rowA b2GearRow
	M_rowB b2GearRow
	M_mass float64
}

func MakeB2GearJoint(def *B2GearJointDef) *B2GearJoint {
	B2Assert(def.Joint1 != nil && def.Joint2 != nil, "gear joint needs two joints")

	res := &B2GearJoint{
		B2Joint:  MakeB2Joint(def),
		M_joint1: def.Joint1,
		M_joint2: def.Joint2,
		M_sideA:  makeB2GearHalf(def.Joint1),
		M_sideB:  makeB2GearHalf(def.Joint2),
		M_ratio:  def.Ratio,
	}

	// The gear drives the moving bodies of the two joints.
	res.M_bodyA = res.M_sideA.M_body
	res.M_bodyB = res.M_sideB.M_body

	_, coordinateA := res.M_sideA.row(sweepPosition(res.M_sideA.M_body), sweepPosition(res.M_sideA.M_ground), 1.0)
	_, coordinateB := res.M_sideB.row(sweepPosition(res.M_sideB.M_body), sweepPosition(res.M_sideB.M_ground), 1.0)
	res.M_constant = coordinateA + res.M_ratio*coordinateB

	return res
}

func sweepPosition(body *B2Body) B2Position {
	return B2Position{C: body.M_sweep.C, A: body.M_sweep.A}
}

/// Bodies in solver order: A, B, C, D.
func (joint B2GearJoint) GetBodies() []*B2Body {
	return []*B2Body{joint.M_bodyA, joint.M_bodyB, joint.M_sideA.M_ground, joint.M_sideB.M_ground}
}

func (joint B2GearJoint) GetBodyC() *B2Body {
	return joint.M_sideA.M_ground
}

func (joint B2GearJoint) GetBodyD() *B2Body {
	return joint.M_sideB.M_ground
}

// rows evaluates both Jacobian rows and the combined position error.
func (joint B2GearJoint) rows(data B2SolverData) (b2GearRow, b2GearRow, float64) {
	pA, pC := joint.M_sideA.positions(data)
	pB, pD := joint.M_sideB.positions(data)

	rowA, coordinateA := joint.M_sideA.row(pA, pC, 1.0)
	rowB, coordinateB := joint.M_sideB.row(pB, pD, joint.M_ratio)
	return rowA, rowB, coordinateA + joint.M_ratio*coordinateB - joint.M_constant
}

func (joint *B2GearJoint) InitVelocityConstraints(data B2SolverData) {
	joint.M_sideA.cache()
	joint.M_sideB.cache()

	joint.M_rowA, joint.M_rowB, _ = joint.rows(data)

	joint.M_mass = joint.M_rowA.Mass + joint.M_rowB.Mass
	if joint.M_mass > 0.0 {
		joint.M_mass = 1.0 / joint.M_mass
	}

	if data.Step.WarmStarting {
		joint.M_impulse *= data.Step.DtRatio
		joint.M_sideA.applyVelocity(data, joint.M_rowA, joint.M_impulse)
		joint.M_sideB.applyVelocity(data, joint.M_rowB, joint.M_impulse)
	} else {
		joint.M_impulse = 0.0
	}
}

func (joint *B2GearJoint) SolveVelocityConstraints(data B2SolverData) {
	Cdot := joint.M_sideA.cdot(data, joint.M_rowA) + joint.M_sideB.cdot(data, joint.M_rowB)

	impulse := -joint.M_mass * Cdot
	joint.M_impulse += impulse

	joint.M_sideA.applyVelocity(data, joint.M_rowA, impulse)
	joint.M_sideB.applyVelocity(data, joint.M_rowB, impulse)
}

/// SolvePositionConstraints reports convergence once the gear error is
/// below B2_linearSlop.
func (joint *B2GearJoint) SolvePositionConstraints(data B2SolverData) bool {
	rowA, rowB, C := joint.rows(data)

	mass := rowA.Mass + rowB.Mass
	impulse := 0.0
	if mass > 0.0 {
		impulse = -C / mass
	}

	joint.M_sideA.applyPosition(data, rowA, impulse)
	joint.M_sideB.applyPosition(data, rowB, impulse)

	return math.Abs(C) < B2_linearSlop
}

func (joint B2GearJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_sideA.M_localAnchor)
}

func (joint B2GearJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_sideB.M_localAnchor)
}

func (joint B2GearJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(inv_dt*joint.M_impulse, joint.M_rowA.Jv)
}

func (joint B2GearJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_impulse * joint.M_rowA.Jw
}

func (joint B2GearJoint) GetJoint1() B2JointInterface {
	return joint.M_joint1
}

func (joint B2GearJoint) GetJoint2() B2JointInterface {
	return joint.M_joint2
}

func (joint *B2GearJoint) SetRatio(ratio float64) {
	B2Assert(B2IsValid(ratio), "invalid gear ratio")
	joint.M_ratio = ratio
}

func (joint B2GearJoint) GetRatio() float64 {
	return joint.M_ratio
}

/// Current gear error; zero when the constraint is satisfied.
func (joint B2GearJoint) GetError() float64 {
	_, coordinateA := joint.M_sideA.row(sweepPosition(joint.M_sideA.M_body), sweepPosition(joint.M_sideA.M_ground), 1.0)
	_, coordinateB := joint.M_sideB.row(sweepPosition(joint.M_sideB.M_body), sweepPosition(joint.M_sideB.M_ground), 1.0)
	return coordinateA + joint.M_ratio*coordinateB - joint.M_constant
}

func (joint *B2GearJoint) Dump() {
	dumpJointHeader("Gear", joint.B2Joint)
	B2Log("  jd.joint1 = joints[%d];\n", joint.M_joint1.GetIndex())
	B2Log("  jd.joint2 = joints[%d];\n", joint.M_joint2.GetIndex())
	B2Log("  jd.ratio = %.15e;\n", joint.M_ratio)
	dumpJointFooter(joint.B2Joint)
}
