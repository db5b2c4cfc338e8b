package box2d

/// Constant volume joint definition. Bodies are listed in ring order and
/// their centers should wind counter-clockwise.
type B2ConstantVolumeJointDef struct {
	B2JointDef

	Bodies []*B2Body

	/// When positive, soft distance joints with this frequency and damping
	/// hold the ring edges near their initial lengths.
	FrequencyHz  float64
	DampingRatio float64
}

func MakeB2ConstantVolumeJointDef() B2ConstantVolumeJointDef {
	return B2ConstantVolumeJointDef{
		B2JointDef: MakeB2JointDef(B2JointType.E_constantVolumeJoint),
	}
}

/// AddBody appends a body to the ring. The first two bodies also become
/// BodyA and BodyB.
func (def *B2ConstantVolumeJointDef) AddBody(body *B2Body) {
	def.Bodies = append(def.Bodies, body)
	switch len(def.Bodies) {
	case 1:
		def.BodyA = body
	case 2:
		def.BodyB = body
	}
}

/// A constant volume joint keeps the area enclosed by a ring of bodies at a
/// target value. The velocity phase applies one scalar impulse along the
/// ring's outward normals; the position phase pushes every vertex along its
/// bisected edge normals by the area deficit over the perimeter.
type B2ConstantVolumeJoint struct {
	B2Joint

	M_bodies        []*B2Body
	M_targetLengths []float64
	M_targetVolume  float64
	M_impulse       float64

	M_distanceJoints []*B2DistanceJoint

	// Solver temp
	M_normals []B2Vec2
	M_d       []B2Vec2
}

func MakeB2ConstantVolumeJoint(def *B2ConstantVolumeJointDef) *B2ConstantVolumeJoint {
	B2Assert(len(def.Bodies) >= 3, "constant volume joint needs at least 3 bodies")

	n := len(def.Bodies)
	joint := &B2ConstantVolumeJoint{
		B2Joint:         MakeB2Joint(def),
		M_bodies:        append([]*B2Body(nil), def.Bodies...),
		M_targetLengths: make([]float64, n),
		M_normals:       make([]B2Vec2, n),
		M_d:             make([]B2Vec2, n),
	}

	for i, body := range joint.M_bodies {
		next := joint.M_bodies[(i+1)%n]
		joint.M_targetLengths[i] = B2Vec2Distance(body.GetWorldCenter(), next.GetWorldCenter())
	}
	joint.M_targetVolume = joint.GetBodyArea()

	if def.FrequencyHz > 0.0 {
		joint.M_distanceJoints = make([]*B2DistanceJoint, n)
		for i, body := range joint.M_bodies {
			next := joint.M_bodies[(i+1)%n]

			djd := MakeB2DistanceJointDef()
			djd.Initialize(body, next, body.GetWorldCenter(), next.GetWorldCenter())
			djd.FrequencyHz = def.FrequencyHz
			djd.DampingRatio = def.DampingRatio
			djd.CollideConnected = def.CollideConnected
			joint.M_distanceJoints[i] = MakeB2DistanceJoint(&djd)
		}
	}

	return joint
}

/// Inflate scales the target area by factor.
func (joint *B2ConstantVolumeJoint) Inflate(factor float64) {
	joint.M_targetVolume *= factor
}

func (joint B2ConstantVolumeJoint) GetTargetVolume() float64 {
	return joint.M_targetVolume
}

func (joint B2ConstantVolumeJoint) GetBodies() []*B2Body {
	return joint.M_bodies
}

/// The edge springs built when the definition had a positive frequency,
/// nil otherwise. They are solved together with the area constraint.
func (joint B2ConstantVolumeJoint) GetDistanceJoints() []*B2DistanceJoint {
	return joint.M_distanceJoints
}

// polygonArea is the signed shoelace area of the ring.
func polygonArea(n int, center func(i int) B2Vec2) float64 {
	area := 0.0
	for i := 0; i < n; i++ {
		c, cNext := center(i), center((i+1)%n)
		area += c.X*cNext.Y - cNext.X*c.Y
	}
	return 0.5 * area
}

/// Signed area enclosed by the body centers.
func (joint B2ConstantVolumeJoint) GetBodyArea() float64 {
	return polygonArea(len(joint.M_bodies), func(i int) B2Vec2 {
		return joint.M_bodies[i].M_sweep.C
	})
}

func (joint B2ConstantVolumeJoint) solverArea(positions []B2Position) float64 {
	return polygonArea(len(joint.M_bodies), func(i int) B2Vec2 {
		return positions[joint.M_bodies[i].M_islandIndex].C
	})
}

// constrainEdges pushes the ring out (or in) by the area deficit. It reports
// true once no vertex needed a correction above B2_linearSlop.
func (joint *B2ConstantVolumeJoint) constrainEdges(positions []B2Position) bool {
	n := len(joint.M_bodies)

	perimeter := 0.0
	for i := 0; i < n; i++ {
		c := positions[joint.M_bodies[i].M_islandIndex].C
		cNext := positions[joint.M_bodies[(i+1)%n].M_islandIndex].C
		dx := cNext.X - c.X
		dy := cNext.Y - c.Y

		dist := MakeB2Vec2(dx, dy).Length()
		if dist < B2_epsilon {
			dist = 1.0
		}
		joint.M_normals[i] = MakeB2Vec2(dy/dist, -dx/dist)
		perimeter += dist
	}

	toExtrude := (joint.M_targetVolume - joint.solverArea(positions)) / perimeter

	done := true
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		delta := B2Vec2MulScalar(toExtrude, B2Vec2Add(joint.M_normals[i], joint.M_normals[next]))

		normSqrd := delta.LengthSquared()
		if normSqrd > B2_maxLinearCorrection*B2_maxLinearCorrection {
			delta.OperatorScalarMulInplace(B2_maxLinearCorrection / delta.Length())
		}
		if normSqrd > B2_linearSlop*B2_linearSlop {
			done = false
		}

		// The shared vertex of edges i and next is body next.
		body := joint.M_bodies[next]
		if body.M_invMass > 0.0 {
			positions[body.M_islandIndex].C.OperatorPlusInplace(delta)
		}
	}

	return done
}

// ringChords fills M_d with c[next] - c[prev]. Half of it, turned by -90
// degrees, is the area gradient at each vertex.
func (joint *B2ConstantVolumeJoint) ringChords(positions []B2Position) {
	n := len(joint.M_bodies)
	for i := 0; i < n; i++ {
		prev := joint.M_bodies[(i+n-1)%n]
		next := joint.M_bodies[(i+1)%n]
		joint.M_d[i] = B2Vec2Sub(positions[next.M_islandIndex].C, positions[prev.M_islandIndex].C)
	}
}

func (joint *B2ConstantVolumeJoint) applyImpulse(velocities []B2Velocity, impulse float64) {
	for i, body := range joint.M_bodies {
		d := joint.M_d[i]
		v := &velocities[body.M_islandIndex].V
		v.X += body.M_invMass * d.Y * 0.5 * impulse
		v.Y += body.M_invMass * -d.X * 0.5 * impulse
	}
}

func (joint *B2ConstantVolumeJoint) InitVelocityConstraints(data B2SolverData) {
	joint.ringChords(data.Positions)

	if data.Step.WarmStarting {
		joint.M_impulse *= data.Step.DtRatio
		joint.applyImpulse(data.Velocities, joint.M_impulse)
	} else {
		joint.M_impulse = 0.0
	}

	for _, dj := range joint.M_distanceJoints {
		dj.InitVelocityConstraints(data)
	}
}

func (joint *B2ConstantVolumeJoint) SolveVelocityConstraints(data B2SolverData) {
	joint.ringChords(data.Positions)

	crossMassSum := 0.0
	dotMassSum := 0.0
	for i, body := range joint.M_bodies {
		dotMassSum += joint.M_d[i].LengthSquared() * body.M_invMass
		crossMassSum += B2Vec2Cross(data.Velocities[body.M_islandIndex].V, joint.M_d[i])
	}

	// Only static bodies, or a collapsed ring: nothing to push against.
	if dotMassSum > 0.0 {
		lambda := -2.0 * crossMassSum / dotMassSum
		joint.M_impulse += lambda
		joint.applyImpulse(data.Velocities, lambda)
	}

	for _, dj := range joint.M_distanceJoints {
		dj.SolveVelocityConstraints(data)
	}
}

func (joint *B2ConstantVolumeJoint) SolvePositionConstraints(data B2SolverData) bool {
	done := joint.constrainEdges(data.Positions)
	for _, dj := range joint.M_distanceJoints {
		dj.SolvePositionConstraints(data)
	}
	return done
}

func (joint B2ConstantVolumeJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldCenter()
}

func (joint B2ConstantVolumeJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldCenter()
}

/// The area impulse has no single application point.
func (joint B2ConstantVolumeJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2_zero
}

func (joint B2ConstantVolumeJoint) GetReactionTorque(inv_dt float64) float64 {
	return 0.0
}

func (joint *B2ConstantVolumeJoint) Dump() {
	dumpJointHeader("ConstantVolume", joint.B2Joint)
	for _, body := range joint.M_bodies {
		B2Log("  jd.addBody(bodies[%d]);\n", body.M_islandIndex)
	}
	if len(joint.M_distanceJoints) > 0 {
		B2Log("  jd.frequencyHz = %.15e;\n", joint.M_distanceJoints[0].M_frequencyHz)
		B2Log("  jd.dampingRatio = %.15e;\n", joint.M_distanceJoints[0].M_dampingRatio)
	}
	B2Log("  jd.targetVolume = %.15e;\n", joint.M_targetVolume)
	dumpJointFooter(joint.B2Joint)
}
