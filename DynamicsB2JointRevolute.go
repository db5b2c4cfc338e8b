package box2d

import (
	"math"
)

/// Revolute joint definition. The anchors are stored in body-local
/// coordinates, measured from the body origin rather than the center of
/// mass, so the joint survives later mass changes.
type B2RevoluteJointDef struct {
	B2JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The bodyB angle minus bodyA angle in the reference state (radians).
	ReferenceAngle float64

	EnableLimit bool

	/// Angle limits, radians.
	LowerAngle float64
	UpperAngle float64

	EnableMotor bool

	/// The desired motor speed, radians per second.
	MotorSpeed float64

	/// The maximum motor torque, usually in N-m.
	MaxMotorTorque float64
}

func MakeB2RevoluteJointDef() B2RevoluteJointDef {
	return B2RevoluteJointDef{
		B2JointDef: MakeB2JointDef(B2JointType.E_revoluteJoint),
	}
}

/// Initialize the bodies, anchors, and reference angle using a world anchor
/// point.
func (def *B2RevoluteJointDef) Initialize(bA *B2Body, bB *B2Body, anchor B2Vec2) {
	def.BodyA = bA
	def.BodyB = bB
	def.LocalAnchorA = bA.GetLocalPoint(anchor)
	def.LocalAnchorB = bB.GetLocalPoint(anchor)
	def.ReferenceAngle = bB.GetAngle() - bA.GetAngle()
}

/// A revolute joint pins two bodies together at a shared point and leaves
/// the relative rotation free, optionally limited and motorized.
///
///  point:  C = pB - pA, J = [-I -rA_skew I rB_skew]
///  motor:  Cdot = wB - wA, J = [0 0 -1 0 0 1]
type B2RevoluteJoint struct {
	B2Joint
	b2JointBodyPair

	M_localAnchorA   B2Vec2
	M_localAnchorB   B2Vec2
	M_referenceAngle float64
	M_impulse        B2Vec3
	M_motorImpulse   float64
	M_enableMotor    bool
	M_maxMotorTorque float64
	M_motorSpeed     float64
	M_enableLimit    bool
	M_lowerAngle     float64
	M_upperAngle     float64
	M_limitState     uint8

	// Solver temp
	M_rA        B2Vec2
	M_rB        B2Vec2
	M_mass      B2Mat33 // effective mass for point-to-point and limit
	M_motorMass float64 // effective mass for motor/limit angular constraint
}

func MakeB2RevoluteJoint(def *B2RevoluteJointDef) *B2RevoluteJoint {
	B2Assert(def.LowerAngle <= def.UpperAngle, "lower angle above upper")
	return &B2RevoluteJoint{
		B2Joint:          MakeB2Joint(def),
		M_localAnchorA:   def.LocalAnchorA,
		M_localAnchorB:   def.LocalAnchorB,
		M_referenceAngle: def.ReferenceAngle,
		M_lowerAngle:     def.LowerAngle,
		M_upperAngle:     def.UpperAngle,
		M_maxMotorTorque: def.MaxMotorTorque,
		M_motorSpeed:     def.MotorSpeed,
		M_enableLimit:    def.EnableLimit,
		M_enableMotor:    def.EnableMotor,
		M_limitState:     B2LimitState.E_inactiveLimit,
	}
}

// pointMass is the 2x2 effective mass of the point-to-point constraint.
func (joint B2RevoluteJoint) pointMass(rA, rB B2Vec2) B2Mat22 {
	mA, mB := joint.M_invMassA, joint.M_invMassB
	iA, iB := joint.M_invIA, joint.M_invIB

	k12 := -iA*rA.X*rA.Y - iB*rB.X*rB.Y
	return MakeB2Mat22FromScalars(
		mA+mB+iA*rA.Y*rA.Y+iB*rB.Y*rB.Y, k12,
		k12, mA+mB+iA*rA.X*rA.X+iB*rB.X*rB.X,
	)
}

func (joint *B2RevoluteJoint) InitVelocityConstraints(data B2SolverData) {
	joint.cache(joint.M_bodyA, joint.M_bodyB)

	aA := data.Positions[joint.M_indexA].A
	aB := data.Positions[joint.M_indexB].A
	velA, velB := data.Velocities[joint.M_indexA], data.Velocities[joint.M_indexB]

	qA := MakeB2RotFromAngle(aA)
	qB := MakeB2RotFromAngle(aB)

	joint.M_rA = B2RotVec2Mul(qA, B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	joint.M_rB = B2RotVec2Mul(qB, B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))

	iA, iB := joint.M_invIA, joint.M_invIB
	fixedRotation := iA+iB == 0.0

	K := joint.pointMass(joint.M_rA, joint.M_rB)
	k13 := -joint.M_rA.Y*iA - joint.M_rB.Y*iB
	k23 := joint.M_rA.X*iA + joint.M_rB.X*iB
	joint.M_mass = MakeB2Mat33FromColumns(
		MakeB2Vec3(K.Ex.X, K.Ex.Y, k13),
		MakeB2Vec3(K.Ey.X, K.Ey.Y, k23),
		MakeB2Vec3(k13, k23, iA+iB),
	)

	joint.M_motorMass = iA + iB
	if joint.M_motorMass > 0.0 {
		joint.M_motorMass = 1.0 / joint.M_motorMass
	}

	if !joint.M_enableMotor || fixedRotation {
		joint.M_motorImpulse = 0.0
	}

	next := B2LimitState.E_inactiveLimit
	if joint.M_enableLimit && !fixedRotation {
		jointAngle := aB - aA - joint.M_referenceAngle
		switch {
		case math.Abs(joint.M_upperAngle-joint.M_lowerAngle) < 2.0*B2_angularSlop:
			next = B2LimitState.E_equalLimits
		case jointAngle <= joint.M_lowerAngle:
			next = B2LimitState.E_atLowerLimit
		case jointAngle >= joint.M_upperAngle:
			next = B2LimitState.E_atUpperLimit
		default:
			joint.M_impulse.Z = 0.0
		}
		if next != joint.M_limitState && next != B2LimitState.E_equalLimits {
			joint.M_impulse.Z = 0.0
		}
	}
	joint.M_limitState = next

	if data.Step.WarmStarting {
		joint.M_impulse.OperatorScalarMulInplace(data.Step.DtRatio)
		joint.M_motorImpulse *= data.Step.DtRatio

		P := MakeB2Vec2(joint.M_impulse.X, joint.M_impulse.Y)
		axial := joint.M_motorImpulse + joint.M_impulse.Z
		joint.applyVelocity(&velA, &velB, P, B2Vec2Cross(joint.M_rA, P)+axial, B2Vec2Cross(joint.M_rB, P)+axial)
	} else {
		joint.M_impulse.SetZero()
		joint.M_motorImpulse = 0.0
	}

	data.Velocities[joint.M_indexA] = velA
	data.Velocities[joint.M_indexB] = velB
}

func (joint *B2RevoluteJoint) SolveVelocityConstraints(data B2SolverData) {
	velA, velB := data.Velocities[joint.M_indexA], data.Velocities[joint.M_indexB]

	fixedRotation := joint.M_invIA+joint.M_invIB == 0.0

	if joint.M_enableMotor && joint.M_limitState != B2LimitState.E_equalLimits && !fixedRotation {
		impulse := -joint.M_motorMass * (velB.W - velA.W - joint.M_motorSpeed)
		oldImpulse := joint.M_motorImpulse
		maxImpulse := data.Step.Dt * joint.M_maxMotorTorque
		joint.M_motorImpulse = B2FloatClamp(joint.M_motorImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.M_motorImpulse - oldImpulse

		joint.applyVelocity(&velA, &velB, B2Vec2_zero, impulse, impulse)
	}

	Cdot1 := B2Vec2Sub(
		B2Vec2Add(velB.V, B2Vec2CrossScalarVector(velB.W, joint.M_rB)),
		B2Vec2Add(velA.V, B2Vec2CrossScalarVector(velA.W, joint.M_rA)),
	)

	if joint.M_enableLimit && joint.M_limitState != B2LimitState.E_inactiveLimit && !fixedRotation {
		Cdot := MakeB2Vec3(Cdot1.X, Cdot1.Y, velB.W-velA.W)
		impulse := joint.M_mass.Solve33(Cdot).OperatorNegate()

		// A limit impulse that would pull instead of push is dropped and
		// the point constraint re-solved without it.
		newImpulse := joint.M_impulse.Z + impulse.Z
		if (joint.M_limitState == B2LimitState.E_atLowerLimit && newImpulse < 0.0) ||
			(joint.M_limitState == B2LimitState.E_atUpperLimit && newImpulse > 0.0) {
			rhs := B2Vec2Add(Cdot1.OperatorNegate(), B2Vec2MulScalar(joint.M_impulse.Z, MakeB2Vec2(joint.M_mass.Ez.X, joint.M_mass.Ez.Y)))
			reduced := joint.M_mass.Solve22(rhs)
			impulse = MakeB2Vec3(reduced.X, reduced.Y, -joint.M_impulse.Z)
			joint.M_impulse.X += reduced.X
			joint.M_impulse.Y += reduced.Y
			joint.M_impulse.Z = 0.0
		} else {
			joint.M_impulse.OperatorPlusInplace(impulse)
		}

		P := MakeB2Vec2(impulse.X, impulse.Y)
		joint.applyVelocity(&velA, &velB, P, B2Vec2Cross(joint.M_rA, P)+impulse.Z, B2Vec2Cross(joint.M_rB, P)+impulse.Z)
	} else {
		impulse := joint.M_mass.Solve22(Cdot1.OperatorNegate())
		joint.M_impulse.X += impulse.X
		joint.M_impulse.Y += impulse.Y

		joint.applyVelocity(&velA, &velB, impulse, B2Vec2Cross(joint.M_rA, impulse), B2Vec2Cross(joint.M_rB, impulse))
	}

	data.Velocities[joint.M_indexA] = velA
	data.Velocities[joint.M_indexB] = velB
}

func (joint *B2RevoluteJoint) SolvePositionConstraints(data B2SolverData) bool {
	posA, posB := data.Positions[joint.M_indexA], data.Positions[joint.M_indexB]

	angularError := 0.0
	fixedRotation := joint.M_invIA+joint.M_invIB == 0.0

	if joint.M_enableLimit && joint.M_limitState != B2LimitState.E_inactiveLimit && !fixedRotation {
		angle := posB.A - posA.A - joint.M_referenceAngle
		C := 0.0

		switch joint.M_limitState {
		case B2LimitState.E_equalLimits:
			C = B2FloatClamp(angle-joint.M_lowerAngle, -B2_maxAngularCorrection, B2_maxAngularCorrection)
			angularError = math.Abs(C)
		case B2LimitState.E_atLowerLimit:
			C = angle - joint.M_lowerAngle
			angularError = -C
			C = B2FloatClamp(C+B2_angularSlop, -B2_maxAngularCorrection, 0.0)
		case B2LimitState.E_atUpperLimit:
			C = angle - joint.M_upperAngle
			angularError = C
			C = B2FloatClamp(C-B2_angularSlop, 0.0, B2_maxAngularCorrection)
		}

		limitImpulse := -joint.M_motorMass * C
		joint.applyPosition(&posA, &posB, B2Vec2_zero, limitImpulse, limitImpulse)
	}

	qA := MakeB2RotFromAngle(posA.A)
	qB := MakeB2RotFromAngle(posB.A)
	rA := B2RotVec2Mul(qA, B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	rB := B2RotVec2Mul(qB, B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))

	C := B2Vec2Sub(B2Vec2Add(posB.C, rB), B2Vec2Add(posA.C, rA))
	positionError := C.Length()

	impulse := joint.pointMass(rA, rB).Solve(C).OperatorNegate()
	joint.applyPosition(&posA, &posB, impulse, B2Vec2Cross(rA, impulse), B2Vec2Cross(rB, impulse))

	data.Positions[joint.M_indexA] = posA
	data.Positions[joint.M_indexB] = posB

	return positionError <= B2_linearSlop && angularError <= B2_angularSlop
}

func (joint B2RevoluteJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchorA)
}

func (joint B2RevoluteJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
}

func (joint B2RevoluteJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(inv_dt, MakeB2Vec2(joint.M_impulse.X, joint.M_impulse.Y))
}

func (joint B2RevoluteJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_impulse.Z
}

func (joint B2RevoluteJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchorA
}

func (joint B2RevoluteJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchorB
}

func (joint B2RevoluteJoint) GetReferenceAngle() float64 {
	return joint.M_referenceAngle
}

/// Current joint angle in radians.
func (joint B2RevoluteJoint) GetJointAngle() float64 {
	return joint.M_bodyB.M_sweep.A - joint.M_bodyA.M_sweep.A - joint.M_referenceAngle
}

/// Current joint angle speed in radians per second.
func (joint B2RevoluteJoint) GetJointSpeed() float64 {
	return joint.M_bodyB.M_angularVelocity - joint.M_bodyA.M_angularVelocity
}

func (joint B2RevoluteJoint) IsMotorEnabled() bool {
	return joint.M_enableMotor
}

func (joint *B2RevoluteJoint) EnableMotor(flag bool) {
	if flag != joint.M_enableMotor {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_enableMotor = flag
	}
}

func (joint B2RevoluteJoint) GetMotorTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_motorImpulse
}

func (joint B2RevoluteJoint) GetMotorSpeed() float64 {
	return joint.M_motorSpeed
}

func (joint *B2RevoluteJoint) SetMotorSpeed(speed float64) {
	if speed != joint.M_motorSpeed {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_motorSpeed = speed
	}
}

func (joint B2RevoluteJoint) GetMaxMotorTorque() float64 {
	return joint.M_maxMotorTorque
}

func (joint *B2RevoluteJoint) SetMaxMotorTorque(torque float64) {
	if torque != joint.M_maxMotorTorque {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_maxMotorTorque = torque
	}
}

func (joint B2RevoluteJoint) IsLimitEnabled() bool {
	return joint.M_enableLimit
}

func (joint *B2RevoluteJoint) EnableLimit(flag bool) {
	if flag != joint.M_enableLimit {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_enableLimit = flag
		joint.M_impulse.Z = 0.0
	}
}

func (joint B2RevoluteJoint) GetLowerLimit() float64 {
	return joint.M_lowerAngle
}

func (joint B2RevoluteJoint) GetUpperLimit() float64 {
	return joint.M_upperAngle
}

func (joint *B2RevoluteJoint) SetLimits(lower float64, upper float64) {
	B2Assert(lower <= upper, "lower angle above upper")
	if lower != joint.M_lowerAngle || upper != joint.M_upperAngle {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_impulse.Z = 0.0
		joint.M_lowerAngle = lower
		joint.M_upperAngle = upper
	}
}

func (joint *B2RevoluteJoint) Dump() {
	dumpJointHeader("Revolute", joint.B2Joint)
	B2Log("  jd.localAnchorA.Set(%.15e, %.15e);\n", joint.M_localAnchorA.X, joint.M_localAnchorA.Y)
	B2Log("  jd.localAnchorB.Set(%.15e, %.15e);\n", joint.M_localAnchorB.X, joint.M_localAnchorB.Y)
	B2Log("  jd.referenceAngle = %.15e;\n", joint.M_referenceAngle)
	B2Log("  jd.enableLimit = bool(%d);\n", boolToInt(joint.M_enableLimit))
	B2Log("  jd.lowerAngle = %.15e;\n", joint.M_lowerAngle)
	B2Log("  jd.upperAngle = %.15e;\n", joint.M_upperAngle)
	B2Log("  jd.enableMotor = bool(%d);\n", boolToInt(joint.M_enableMotor))
	B2Log("  jd.motorSpeed = %.15e;\n", joint.M_motorSpeed)
	B2Log("  jd.maxMotorTorque = %.15e;\n", joint.M_maxMotorTorque)
	dumpJointFooter(joint.B2Joint)
}
