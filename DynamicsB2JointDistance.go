package box2d

import (
	"math"
)

/// Distance joint definition. Anchors are body-local; the rest length must
/// stay well above B2_linearSlop or the joint direction degenerates.
type B2DistanceJointDef struct {
	B2JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The natural length between the anchor points.
	Length float64

	/// The mass-spring-damper frequency in Hertz. 0 means rigid.
	FrequencyHz float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64
}

func MakeB2DistanceJointDef() B2DistanceJointDef {
	return B2DistanceJointDef{
		B2JointDef: MakeB2JointDef(B2JointType.E_distanceJoint),
		Length:     1.0,
	}
}

/// Initialize the bodies, anchors, and length using world anchors.
func (def *B2DistanceJointDef) Initialize(bA *B2Body, bB *B2Body, anchorA B2Vec2, anchorB B2Vec2) {
	def.BodyA = bA
	def.BodyB = bB
	def.LocalAnchorA = bA.GetLocalPoint(anchorA)
	def.LocalAnchorB = bB.GetLocalPoint(anchorB)
	def.Length = B2Vec2Distance(anchorA, anchorB)
}

/// A distance joint keeps two anchor points at a fixed distance, rigidly
/// or as a soft spring.
///
///  C = norm(pB - pA) - L
///  u = (pB - pA) / norm(pB - pA)
///  J = [-u -cross(rA, u) u cross(rB, u)]
type B2DistanceJoint struct {
	B2Joint
	b2JointBodyPair

	M_localAnchorA B2Vec2
	M_localAnchorB B2Vec2
	M_length       float64
	M_frequencyHz  float64
	M_dampingRatio float64
	M_impulse      float64

	// Solver temp
	M_u     B2Vec2
	M_rA    B2Vec2
	M_rB    B2Vec2
	M_mass  float64
	M_gamma float64
	M_bias  float64
}

func MakeB2DistanceJoint(def *B2DistanceJointDef) *B2DistanceJoint {
	return &B2DistanceJoint{
		B2Joint:        MakeB2Joint(def),
		M_localAnchorA: def.LocalAnchorA,
		M_localAnchorB: def.LocalAnchorB,
		M_length:       def.Length,
		M_frequencyHz:  def.FrequencyHz,
		M_dampingRatio: def.DampingRatio,
	}
}

// b2SoftConstraint turns a spring frequency and damping ratio into the
// gamma softness and bias of an implicit spring over one step h.
// C is the position error and mass the rigid effective mass.
func b2SoftConstraint(mass, C, frequencyHz, dampingRatio, h float64) (gamma, bias float64) {
	omega := 2.0 * B2_pi * frequencyHz
	d := 2.0 * mass * dampingRatio * omega
	k := mass * omega * omega

	gamma = h * (d + h*k)
	if gamma != 0.0 {
		gamma = 1.0 / gamma
	}
	return gamma, C * h * k * gamma
}

func (joint *B2DistanceJoint) InitVelocityConstraints(data B2SolverData) {
	joint.cache(joint.M_bodyA, joint.M_bodyB)

	posA, posB := data.Positions[joint.M_indexA], data.Positions[joint.M_indexB]
	velA, velB := data.Velocities[joint.M_indexA], data.Velocities[joint.M_indexB]

	joint.M_rA = B2RotVec2Mul(MakeB2RotFromAngle(posA.A), B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	joint.M_rB = B2RotVec2Mul(MakeB2RotFromAngle(posB.A), B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))
	joint.M_u = B2Vec2Sub(B2Vec2Add(posB.C, joint.M_rB), B2Vec2Add(posA.C, joint.M_rA))

	// Coincident anchors leave the direction undefined.
	length := joint.M_u.Length()
	if length > B2_linearSlop {
		joint.M_u.OperatorScalarMulInplace(1.0 / length)
	} else {
		joint.M_u.SetZero()
	}

	crAu := B2Vec2Cross(joint.M_rA, joint.M_u)
	crBu := B2Vec2Cross(joint.M_rB, joint.M_u)
	invMass := joint.M_invMassA + joint.M_invIA*crAu*crAu + joint.M_invMassB + joint.M_invIB*crBu*crBu

	joint.M_mass = 0.0
	if invMass != 0.0 {
		joint.M_mass = 1.0 / invMass
	}

	joint.M_gamma = 0.0
	joint.M_bias = 0.0
	if joint.M_frequencyHz > 0.0 {
		joint.M_gamma, joint.M_bias = b2SoftConstraint(joint.M_mass, length-joint.M_length, joint.M_frequencyHz, joint.M_dampingRatio, data.Step.Dt)

		invMass += joint.M_gamma
		joint.M_mass = 0.0
		if invMass != 0.0 {
			joint.M_mass = 1.0 / invMass
		}
	}

	if data.Step.WarmStarting {
		joint.M_impulse *= data.Step.DtRatio

		P := B2Vec2MulScalar(joint.M_impulse, joint.M_u)
		joint.applyVelocity(&velA, &velB, P, B2Vec2Cross(joint.M_rA, P), B2Vec2Cross(joint.M_rB, P))
	} else {
		joint.M_impulse = 0.0
	}

	data.Velocities[joint.M_indexA] = velA
	data.Velocities[joint.M_indexB] = velB
}

func (joint *B2DistanceJoint) SolveVelocityConstraints(data B2SolverData) {
	velA, velB := data.Velocities[joint.M_indexA], data.Velocities[joint.M_indexB]

	vpA := B2Vec2Add(velA.V, B2Vec2CrossScalarVector(velA.W, joint.M_rA))
	vpB := B2Vec2Add(velB.V, B2Vec2CrossScalarVector(velB.W, joint.M_rB))
	Cdot := B2Vec2Dot(joint.M_u, B2Vec2Sub(vpB, vpA))

	impulse := -joint.M_mass * (Cdot + joint.M_bias + joint.M_gamma*joint.M_impulse)
	joint.M_impulse += impulse

	P := B2Vec2MulScalar(impulse, joint.M_u)
	joint.applyVelocity(&velA, &velB, P, B2Vec2Cross(joint.M_rA, P), B2Vec2Cross(joint.M_rB, P))

	data.Velocities[joint.M_indexA] = velA
	data.Velocities[joint.M_indexB] = velB
}

/// A soft joint has no position phase and always reports convergence.
func (joint *B2DistanceJoint) SolvePositionConstraints(data B2SolverData) bool {
	if joint.M_frequencyHz > 0.0 {
		return true
	}

	posA, posB := data.Positions[joint.M_indexA], data.Positions[joint.M_indexB]

	rA := B2RotVec2Mul(MakeB2RotFromAngle(posA.A), B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	rB := B2RotVec2Mul(MakeB2RotFromAngle(posB.A), B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))
	u := B2Vec2Sub(B2Vec2Add(posB.C, rB), B2Vec2Add(posA.C, rA))

	length := u.Normalize()
	C := B2FloatClamp(length-joint.M_length, -B2_maxLinearCorrection, B2_maxLinearCorrection)

	P := B2Vec2MulScalar(-joint.M_mass*C, u)
	joint.applyPosition(&posA, &posB, P, B2Vec2Cross(rA, P), B2Vec2Cross(rB, P))

	data.Positions[joint.M_indexA] = posA
	data.Positions[joint.M_indexB] = posB

	return math.Abs(C) < B2_linearSlop
}

func (joint B2DistanceJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchorA)
}

func (joint B2DistanceJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
}

func (joint B2DistanceJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(inv_dt*joint.M_impulse, joint.M_u)
}

func (joint B2DistanceJoint) GetReactionTorque(inv_dt float64) float64 {
	return 0.0
}

func (joint B2DistanceJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchorA
}

func (joint B2DistanceJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchorB
}

func (joint *B2DistanceJoint) SetLength(length float64) {
	joint.M_length = length
}

func (joint B2DistanceJoint) GetLength() float64 {
	return joint.M_length
}

func (joint *B2DistanceJoint) SetFrequency(hz float64) {
	joint.M_frequencyHz = hz
}

func (joint B2DistanceJoint) GetFrequency() float64 {
	return joint.M_frequencyHz
}

func (joint *B2DistanceJoint) SetDampingRatio(ratio float64) {
	joint.M_dampingRatio = ratio
}

func (joint B2DistanceJoint) GetDampingRatio() float64 {
	return joint.M_dampingRatio
}

func (joint *B2DistanceJoint) Dump() {
	dumpJointHeader("Distance", joint.B2Joint)
	B2Log("  jd.localAnchorA.Set(%.15e, %.15e);\n", joint.M_localAnchorA.X, joint.M_localAnchorA.Y)
	B2Log("  jd.localAnchorB.Set(%.15e, %.15e);\n", joint.M_localAnchorB.X, joint.M_localAnchorB.Y)
	B2Log("  jd.length = %.15e;\n", joint.M_length)
	B2Log("  jd.frequencyHz = %.15e;\n", joint.M_frequencyHz)
	B2Log("  jd.dampingRatio = %.15e;\n", joint.M_dampingRatio)
	dumpJointFooter(joint.B2Joint)
}
