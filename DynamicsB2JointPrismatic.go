package box2d

import (
	"math"
)

/// Prismatic joint definition. The line of motion is given by an anchor
/// point and an axis, both stored in body-local coordinates so the initial
/// configuration may violate the constraint slightly. The joint translation
/// is zero when the two local anchors coincide in world space.
type B2PrismaticJointDef struct {
	B2JointDef

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The local translation unit axis in bodyA.
	LocalAxisA B2Vec2

	/// The constrained angle between the bodies: bodyB_angle - bodyA_angle.
	ReferenceAngle float64

	/// Enable/disable the joint limit.
	EnableLimit bool

	/// The translation limits, usually in meters.
	LowerTranslation float64
	UpperTranslation float64

	/// Enable/disable the joint motor.
	EnableMotor bool

	/// The maximum motor force, usually in N.
	MaxMotorForce float64

	/// The desired motor speed, usually in meters per second.
	MotorSpeed float64
}

func MakeB2PrismaticJointDef() B2PrismaticJointDef {
	res := B2PrismaticJointDef{
		B2JointDef: MakeB2JointDef(B2JointType.E_prismaticJoint),
	}
	res.LocalAxisA.Set(1.0, 0.0)
	return res
}

/// Initialize the bodies, anchors, axis, and reference angle using the world
/// anchor and unit world axis.
func (def *B2PrismaticJointDef) Initialize(bA *B2Body, bB *B2Body, anchor B2Vec2, axis B2Vec2) {
	def.BodyA = bA
	def.BodyB = bB
	def.LocalAnchorA = bA.GetLocalPoint(anchor)
	def.LocalAnchorB = bB.GetLocalPoint(anchor)
	def.LocalAxisA = bA.GetLocalVector(axis)
	def.ReferenceAngle = bB.GetAngle() - bA.GetAngle()
}

/// A prismatic joint allows translation of body B along an axis fixed in
/// body A and prevents relative rotation. An optional limit bounds the
/// translation and an optional motor drives it.
///
/// The perpendicular and angular constraints form a 2x2 block; when the
/// limit is active its axial row joins them in a 3x3 block so the limit
/// stays stiff even for badly conditioned mass ratios.
///
///  J = [-perp^T -s1 perp^T s2]   point on line
///      [ 0      -1  0      1 ]   angle
///      [-axis^T -a1 axis^T a2]   limit / motor
///
/// with s1 = cross(d + rA, perp), s2 = cross(rB, perp) and a1, a2 likewise
/// for the axis.
type B2PrismaticJoint struct {
	B2Joint
	b2JointBodyPair

	M_localAnchorA     B2Vec2
	M_localAnchorB     B2Vec2
	M_localXAxisA      B2Vec2
	M_localYAxisA      B2Vec2
	M_referenceAngle   float64
	M_impulse          B2Vec3
	M_motorImpulse     float64
	M_lowerTranslation float64
	M_upperTranslation float64
	M_maxMotorForce    float64
	M_motorSpeed       float64
	M_enableLimit      bool
	M_enableMotor      bool
	M_limitState       uint8

	// Solver temp
	M_axis, M_perp B2Vec2
	M_s1, M_s2     float64
	M_a1, M_a2     float64
	M_K            B2Mat33
	M_motorMass    float64
}

func MakeB2PrismaticJoint(def *B2PrismaticJointDef) *B2PrismaticJoint {
	joint := &B2PrismaticJoint{
		B2Joint:            MakeB2Joint(def),
		M_localAnchorA:     def.LocalAnchorA,
		M_localAnchorB:     def.LocalAnchorB,
		M_localXAxisA:      def.LocalAxisA,
		M_referenceAngle:   def.ReferenceAngle,
		M_lowerTranslation: def.LowerTranslation,
		M_upperTranslation: def.UpperTranslation,
		M_maxMotorForce:    def.MaxMotorForce,
		M_motorSpeed:       def.MotorSpeed,
		M_enableLimit:      def.EnableLimit,
		M_enableMotor:      def.EnableMotor,
		M_limitState:       B2LimitState.E_inactiveLimit,
	}
	B2Assert(joint.M_lowerTranslation <= joint.M_upperTranslation, "lower translation above upper")

	joint.M_localXAxisA.Normalize()
	joint.M_localYAxisA = B2Vec2CrossScalarVector(1.0, joint.M_localXAxisA)
	return joint
}

// prismaticMass assembles the symmetric 3x3 effective mass. k22 falls back
// to 1 when neither body can rotate so the matrix stays invertible.
func prismaticMass(mA, mB, iA, iB, s1, s2, a1, a2 float64) B2Mat33 {
	k11 := mA + mB + iA*s1*s1 + iB*s2*s2
	k12 := iA*s1 + iB*s2
	k13 := iA*s1*a1 + iB*s2*a2
	k22 := iA + iB
	if k22 == 0.0 {
		k22 = 1.0
	}
	k23 := iA*a1 + iB*a2
	k33 := mA + mB + iA*a1*a1 + iB*a2*a2

	return MakeB2Mat33FromColumns(
		MakeB2Vec3(k11, k12, k13),
		MakeB2Vec3(k12, k22, k23),
		MakeB2Vec3(k13, k23, k33),
	)
}

// equalLimits reports whether the limits are too close to be told apart.
func (joint B2PrismaticJoint) equalLimits() bool {
	return math.Abs(joint.M_upperTranslation-joint.M_lowerTranslation) < 2.0*B2_linearSlop
}

// updateLimitState moves the limit state machine for the current
// translation. Entering a new state discards the accumulated limit impulse.
func (joint *B2PrismaticJoint) updateLimitState(translation float64) {
	next := B2LimitState.E_inactiveLimit
	if joint.M_enableLimit {
		switch {
		case joint.equalLimits():
			next = B2LimitState.E_equalLimits
		case translation <= joint.M_lowerTranslation:
			next = B2LimitState.E_atLowerLimit
		case translation >= joint.M_upperTranslation:
			next = B2LimitState.E_atUpperLimit
		}
	}

	switch next {
	case B2LimitState.E_inactiveLimit:
		joint.M_impulse.Z = 0.0
	case B2LimitState.E_atLowerLimit, B2LimitState.E_atUpperLimit:
		if joint.M_limitState != next {
			joint.M_impulse.Z = 0.0
		}
	}
	joint.M_limitState = next
}

func (joint *B2PrismaticJoint) InitVelocityConstraints(data B2SolverData) {
	joint.cache(joint.M_bodyA, joint.M_bodyB)

	posA, posB := data.Positions[joint.M_indexA], data.Positions[joint.M_indexB]
	velA, velB := data.Velocities[joint.M_indexA], data.Velocities[joint.M_indexB]

	qA := MakeB2RotFromAngle(posA.A)
	qB := MakeB2RotFromAngle(posB.A)

	rA := B2RotVec2Mul(qA, B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	rB := B2RotVec2Mul(qB, B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))
	d := B2Vec2Sub(B2Vec2Add(B2Vec2Sub(posB.C, posA.C), rB), rA)

	mA, mB := joint.M_invMassA, joint.M_invMassB
	iA, iB := joint.M_invIA, joint.M_invIB

	joint.M_axis = B2RotVec2Mul(qA, joint.M_localXAxisA)
	joint.M_a1 = B2Vec2Cross(B2Vec2Add(d, rA), joint.M_axis)
	joint.M_a2 = B2Vec2Cross(rB, joint.M_axis)

	joint.M_motorMass = mA + mB + iA*joint.M_a1*joint.M_a1 + iB*joint.M_a2*joint.M_a2
	if joint.M_motorMass > 0.0 {
		joint.M_motorMass = 1.0 / joint.M_motorMass
	}

	joint.M_perp = B2RotVec2Mul(qA, joint.M_localYAxisA)
	joint.M_s1 = B2Vec2Cross(B2Vec2Add(d, rA), joint.M_perp)
	joint.M_s2 = B2Vec2Cross(rB, joint.M_perp)

	joint.M_K = prismaticMass(mA, mB, iA, iB, joint.M_s1, joint.M_s2, joint.M_a1, joint.M_a2)

	joint.updateLimitState(B2Vec2Dot(joint.M_axis, d))

	if !joint.M_enableMotor {
		joint.M_motorImpulse = 0.0
	}

	if data.Step.WarmStarting {
		// Impulses were accumulated over the previous step length.
		joint.M_impulse.OperatorScalarMulInplace(data.Step.DtRatio)
		joint.M_motorImpulse *= data.Step.DtRatio

		axial := joint.M_motorImpulse + joint.M_impulse.Z
		P := B2Vec2Add(B2Vec2MulScalar(joint.M_impulse.X, joint.M_perp), B2Vec2MulScalar(axial, joint.M_axis))
		LA := joint.M_impulse.X*joint.M_s1 + joint.M_impulse.Y + axial*joint.M_a1
		LB := joint.M_impulse.X*joint.M_s2 + joint.M_impulse.Y + axial*joint.M_a2

		joint.applyVelocity(&velA, &velB, P, LA, LB)
	} else {
		joint.M_impulse.SetZero()
		joint.M_motorImpulse = 0.0
	}

	data.Velocities[joint.M_indexA] = velA
	data.Velocities[joint.M_indexB] = velB
}

func (joint *B2PrismaticJoint) SolveVelocityConstraints(data B2SolverData) {
	velA, velB := data.Velocities[joint.M_indexA], data.Velocities[joint.M_indexB]

	axialSpeed := func() float64 {
		return B2Vec2Dot(joint.M_axis, B2Vec2Sub(velB.V, velA.V)) + joint.M_a2*velB.W - joint.M_a1*velA.W
	}

	if joint.M_enableMotor && joint.M_limitState != B2LimitState.E_equalLimits {
		impulse := joint.M_motorMass * (joint.M_motorSpeed - axialSpeed())
		oldImpulse := joint.M_motorImpulse
		maxImpulse := data.Step.Dt * joint.M_maxMotorForce
		joint.M_motorImpulse = B2FloatClamp(joint.M_motorImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.M_motorImpulse - oldImpulse

		joint.applyVelocity(&velA, &velB, B2Vec2MulScalar(impulse, joint.M_axis), impulse*joint.M_a1, impulse*joint.M_a2)
	}

	Cdot1 := MakeB2Vec2(
		B2Vec2Dot(joint.M_perp, B2Vec2Sub(velB.V, velA.V))+joint.M_s2*velB.W-joint.M_s1*velA.W,
		velB.W-velA.W,
	)

	if joint.M_enableLimit && joint.M_limitState != B2LimitState.E_inactiveLimit {
		Cdot := MakeB2Vec3(Cdot1.X, Cdot1.Y, axialSpeed())

		f1 := joint.M_impulse
		joint.M_impulse.OperatorPlusInplace(joint.M_K.Solve33(Cdot.OperatorNegate()))

		switch joint.M_limitState {
		case B2LimitState.E_atLowerLimit:
			joint.M_impulse.Z = math.Max(joint.M_impulse.Z, 0.0)
		case B2LimitState.E_atUpperLimit:
			joint.M_impulse.Z = math.Min(joint.M_impulse.Z, 0.0)
		}

		// Re-solve the 2x2 block for the clamped limit impulse:
		// f2(1:2) = invK(1:2,1:2) * (-Cdot(1:2) - K(1:2,3) * (f2(3) - f1(3))) + f1(1:2)
		b := B2Vec2Sub(
			Cdot1.OperatorNegate(),
			B2Vec2MulScalar(joint.M_impulse.Z-f1.Z, MakeB2Vec2(joint.M_K.Ez.X, joint.M_K.Ez.Y)),
		)
		f2r := B2Vec2Add(joint.M_K.Solve22(b), MakeB2Vec2(f1.X, f1.Y))
		joint.M_impulse.X = f2r.X
		joint.M_impulse.Y = f2r.Y

		df := B2Vec3Sub(joint.M_impulse, f1)
		P := B2Vec2Add(B2Vec2MulScalar(df.X, joint.M_perp), B2Vec2MulScalar(df.Z, joint.M_axis))
		LA := df.X*joint.M_s1 + df.Y + df.Z*joint.M_a1
		LB := df.X*joint.M_s2 + df.Y + df.Z*joint.M_a2
		joint.applyVelocity(&velA, &velB, P, LA, LB)
	} else {
		df := joint.M_K.Solve22(Cdot1.OperatorNegate())
		joint.M_impulse.X += df.X
		joint.M_impulse.Y += df.Y

		P := B2Vec2MulScalar(df.X, joint.M_perp)
		joint.applyVelocity(&velA, &velB, P, df.X*joint.M_s1+df.Y, df.X*joint.M_s2+df.Y)
	}

	data.Velocities[joint.M_indexA] = velA
	data.Velocities[joint.M_indexB] = velB
}

/// SolvePositionConstraints removes drift with pseudo impulses built from
/// fresh Jacobians. The limit is re-evaluated from the current translation
/// rather than taken from the velocity phase, with corrections clamped to
/// B2_maxLinearCorrection and a slop left at the limits.
func (joint *B2PrismaticJoint) SolvePositionConstraints(data B2SolverData) bool {
	posA, posB := data.Positions[joint.M_indexA], data.Positions[joint.M_indexB]

	qA := MakeB2RotFromAngle(posA.A)
	qB := MakeB2RotFromAngle(posB.A)

	mA, mB := joint.M_invMassA, joint.M_invMassB
	iA, iB := joint.M_invIA, joint.M_invIB

	rA := B2RotVec2Mul(qA, B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	rB := B2RotVec2Mul(qB, B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))
	d := B2Vec2Sub(B2Vec2Sub(B2Vec2Add(posB.C, rB), posA.C), rA)

	axis := B2RotVec2Mul(qA, joint.M_localXAxisA)
	a1 := B2Vec2Cross(B2Vec2Add(d, rA), axis)
	a2 := B2Vec2Cross(rB, axis)
	perp := B2RotVec2Mul(qA, joint.M_localYAxisA)
	s1 := B2Vec2Cross(B2Vec2Add(d, rA), perp)
	s2 := B2Vec2Cross(rB, perp)

	C1 := MakeB2Vec2(B2Vec2Dot(perp, d), posB.A-posA.A-joint.M_referenceAngle)

	linearError := math.Abs(C1.X)
	angularError := math.Abs(C1.Y)

	active := false
	C2 := 0.0
	if joint.M_enableLimit {
		translation := B2Vec2Dot(axis, d)
		switch {
		case joint.equalLimits():
			C2 = B2FloatClamp(translation, -B2_maxLinearCorrection, B2_maxLinearCorrection)
			linearError = math.Max(linearError, math.Abs(translation))
			active = true
		case translation <= joint.M_lowerTranslation:
			C2 = B2FloatClamp(translation-joint.M_lowerTranslation+B2_linearSlop, -B2_maxLinearCorrection, 0.0)
			linearError = math.Max(linearError, joint.M_lowerTranslation-translation)
			active = true
		case translation >= joint.M_upperTranslation:
			C2 = B2FloatClamp(translation-joint.M_upperTranslation-B2_linearSlop, 0.0, B2_maxLinearCorrection)
			linearError = math.Max(linearError, translation-joint.M_upperTranslation)
			active = true
		}
	}

	K := prismaticMass(mA, mB, iA, iB, s1, s2, a1, a2)

	var impulse B2Vec3
	if active {
		impulse = K.Solve33(MakeB2Vec3(-C1.X, -C1.Y, -C2))
	} else {
		impulse1 := K.Solve22(C1.OperatorNegate())
		impulse = MakeB2Vec3(impulse1.X, impulse1.Y, 0.0)
	}

	P := B2Vec2Add(B2Vec2MulScalar(impulse.X, perp), B2Vec2MulScalar(impulse.Z, axis))
	LA := impulse.X*s1 + impulse.Y + impulse.Z*a1
	LB := impulse.X*s2 + impulse.Y + impulse.Z*a2
	joint.applyPosition(&posA, &posB, P, LA, LB)

	data.Positions[joint.M_indexA] = posA
	data.Positions[joint.M_indexB] = posB

	return linearError <= B2_linearSlop && angularError <= B2_angularSlop
}

func (joint B2PrismaticJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchorA)
}

func (joint B2PrismaticJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
}

func (joint B2PrismaticJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	axial := joint.M_motorImpulse + joint.M_impulse.Z
	return B2Vec2MulScalar(inv_dt, B2Vec2Add(
		B2Vec2MulScalar(joint.M_impulse.X, joint.M_perp),
		B2Vec2MulScalar(axial, joint.M_axis),
	))
}

func (joint B2PrismaticJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_impulse.Y
}

func (joint B2PrismaticJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchorA
}

func (joint B2PrismaticJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchorB
}

func (joint B2PrismaticJoint) GetLocalAxisA() B2Vec2 {
	return joint.M_localXAxisA
}

func (joint B2PrismaticJoint) GetReferenceAngle() float64 {
	return joint.M_referenceAngle
}

func (joint B2PrismaticJoint) GetLimitState() uint8 {
	return joint.M_limitState
}

/// Current translation of the anchor of B along the axis, from the body
/// transforms.
func (joint B2PrismaticJoint) GetJointTranslation() float64 {
	pA := joint.M_bodyA.GetWorldPoint(joint.M_localAnchorA)
	pB := joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
	axis := joint.M_bodyA.GetWorldVector(joint.M_localXAxisA)
	return B2Vec2Dot(B2Vec2Sub(pB, pA), axis)
}

/// Rate of change of GetJointTranslation.
func (joint B2PrismaticJoint) GetJointSpeed() float64 {
	bA := joint.M_bodyA
	bB := joint.M_bodyB

	rA := B2RotVec2Mul(bA.M_xf.Q, B2Vec2Sub(joint.M_localAnchorA, bA.M_sweep.LocalCenter))
	rB := B2RotVec2Mul(bB.M_xf.Q, B2Vec2Sub(joint.M_localAnchorB, bB.M_sweep.LocalCenter))
	d := B2Vec2Sub(B2Vec2Add(bB.M_sweep.C, rB), B2Vec2Add(bA.M_sweep.C, rA))
	axis := B2RotVec2Mul(bA.M_xf.Q, joint.M_localXAxisA)

	wA := bA.M_angularVelocity
	vRel := B2Vec2Sub(
		B2Vec2Add(bB.M_linearVelocity, B2Vec2CrossScalarVector(bB.M_angularVelocity, rB)),
		B2Vec2Add(bA.M_linearVelocity, B2Vec2CrossScalarVector(wA, rA)),
	)
	return B2Vec2Dot(d, B2Vec2CrossScalarVector(wA, axis)) + B2Vec2Dot(axis, vRel)
}

func (joint B2PrismaticJoint) IsLimitEnabled() bool {
	return joint.M_enableLimit
}

func (joint *B2PrismaticJoint) EnableLimit(flag bool) {
	if flag != joint.M_enableLimit {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_enableLimit = flag
		joint.M_impulse.Z = 0.0
	}
}

func (joint B2PrismaticJoint) GetLowerLimit() float64 {
	return joint.M_lowerTranslation
}

func (joint B2PrismaticJoint) GetUpperLimit() float64 {
	return joint.M_upperTranslation
}

func (joint *B2PrismaticJoint) SetLimits(lower float64, upper float64) {
	B2Assert(lower <= upper, "lower translation above upper")
	if lower != joint.M_lowerTranslation || upper != joint.M_upperTranslation {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_lowerTranslation = lower
		joint.M_upperTranslation = upper
		joint.M_impulse.Z = 0.0
	}
}

func (joint B2PrismaticJoint) IsMotorEnabled() bool {
	return joint.M_enableMotor
}

func (joint *B2PrismaticJoint) EnableMotor(flag bool) {
	if flag != joint.M_enableMotor {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_enableMotor = flag
	}
}

func (joint B2PrismaticJoint) GetMotorSpeed() float64 {
	return joint.M_motorSpeed
}

func (joint *B2PrismaticJoint) SetMotorSpeed(speed float64) {
	if speed != joint.M_motorSpeed {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_motorSpeed = speed
	}
}

func (joint B2PrismaticJoint) GetMaxMotorForce() float64 {
	return joint.M_maxMotorForce
}

func (joint *B2PrismaticJoint) SetMaxMotorForce(force float64) {
	if force != joint.M_maxMotorForce {
		joint.M_bodyA.SetAwake(true)
		joint.M_bodyB.SetAwake(true)
		joint.M_maxMotorForce = force
	}
}

func (joint B2PrismaticJoint) GetMotorForce(inv_dt float64) float64 {
	return inv_dt * joint.M_motorImpulse
}

func (joint *B2PrismaticJoint) Dump() {
	dumpJointHeader("Prismatic", joint.B2Joint)
	B2Log("  jd.localAnchorA.Set(%.15e, %.15e);\n", joint.M_localAnchorA.X, joint.M_localAnchorA.Y)
	B2Log("  jd.localAnchorB.Set(%.15e, %.15e);\n", joint.M_localAnchorB.X, joint.M_localAnchorB.Y)
	B2Log("  jd.localAxisA.Set(%.15e, %.15e);\n", joint.M_localXAxisA.X, joint.M_localXAxisA.Y)
	B2Log("  jd.referenceAngle = %.15e;\n", joint.M_referenceAngle)
	B2Log("  jd.enableLimit = bool(%d);\n", boolToInt(joint.M_enableLimit))
	B2Log("  jd.lowerTranslation = %.15e;\n", joint.M_lowerTranslation)
	B2Log("  jd.upperTranslation = %.15e;\n", joint.M_upperTranslation)
	B2Log("  jd.enableMotor = bool(%d);\n", boolToInt(joint.M_enableMotor))
	B2Log("  jd.motorSpeed = %.15e;\n", joint.M_motorSpeed)
	B2Log("  jd.maxMotorForce = %.15e;\n", joint.M_maxMotorForce)
	dumpJointFooter(joint.B2Joint)
}
