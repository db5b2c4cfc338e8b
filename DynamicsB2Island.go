package box2d

import (
	"math"
)

/// B2Island is the joint half of a world step: a set of bodies and the
/// joints connecting them, solved together. Contacts are solved by the
/// owner of the island outside of it.
type B2Island struct {
	M_bodies []*B2Body
	M_joints []B2JointInterface

	M_positions  []B2Position
	M_velocities []B2Velocity

	M_bodyCapacity  int
	M_jointCapacity int
}

/*
Position correction

Joints use full non-linear Gauss-Seidel (NGS) in the position phase: the
Jacobians, position error and effective mass are recomputed for every joint
each iteration and positions are updated right after each joint. The velocity
phase is never biased by position error, so position correction does not feed
momentum into the system. Iterations end early once every joint reports an
error under the slop.
*/

func MakeB2Island(bodyCapacity int, jointCapacity int) B2Island {
	return B2Island{
		M_bodies:        make([]*B2Body, 0, bodyCapacity),
		M_joints:        make([]B2JointInterface, 0, jointCapacity),
		M_positions:     make([]B2Position, 0, bodyCapacity),
		M_velocities:    make([]B2Velocity, 0, bodyCapacity),
		M_bodyCapacity:  bodyCapacity,
		M_jointCapacity: jointCapacity,
	}
}

func (island *B2Island) Clear() {
	island.M_bodies = island.M_bodies[:0]
	island.M_joints = island.M_joints[:0]
}

/// AddBody gives body the next island index.
func (island *B2Island) AddBody(body *B2Body) {
	B2Assert(len(island.M_bodies) < island.M_bodyCapacity, "island body capacity exceeded")
	body.M_islandIndex = len(island.M_bodies)
	island.M_bodies = append(island.M_bodies, body)
}

/// AddJoint adds a joint whose bodies must already be in the island.
func (island *B2Island) AddJoint(joint B2JointInterface) {
	B2Assert(len(island.M_joints) < island.M_jointCapacity, "island joint capacity exceeded")
	for _, body := range joint.GetBodies() {
		i := body.M_islandIndex
		B2Assert(i >= 0 && i < len(island.M_bodies) && island.M_bodies[i] == body, "joint body is not in the island")
	}
	island.M_joints = append(island.M_joints, joint)
}

func (island B2Island) GetBodyCount() int {
	return len(island.M_bodies)
}

func (island B2Island) GetJointCount() int {
	return len(island.M_joints)
}

/// Solve advances the island by one step: integrate velocities, solve the
/// joint velocity constraints, integrate positions, then run the position
/// iterations. It reports whether every joint converged before the
/// iteration cap.
func (island *B2Island) Solve(step B2TimeStep, gravity B2Vec2) bool {
	h := step.Dt
	n := len(island.M_bodies)

	island.M_positions = island.M_positions[:0]
	island.M_velocities = island.M_velocities[:0]

	// Integrate velocities.
	for _, b := range island.M_bodies {
		v := b.M_linearVelocity
		w := b.M_angularVelocity

		b.M_sweep.C0 = b.M_sweep.C
		b.M_sweep.A0 = b.M_sweep.A

		if b.M_type == B2BodyType.B2_dynamicBody {
			v.OperatorPlusInplace(B2Vec2MulScalar(h, B2Vec2Add(
				B2Vec2MulScalar(b.M_gravityScale, gravity),
				B2Vec2MulScalar(b.M_invMass, b.M_force),
			)))
			w += h * b.M_invI * b.M_torque

			// Pade approximation of exp(-damping * h), stable for large h.
			v.OperatorScalarMulInplace(1.0 / (1.0 + h*b.M_linearDamping))
			w *= 1.0 / (1.0 + h*b.M_angularDamping)
		}

		island.M_positions = append(island.M_positions, B2Position{C: b.M_sweep.C, A: b.M_sweep.A})
		island.M_velocities = append(island.M_velocities, B2Velocity{V: v, W: w})
	}

	solverData := B2SolverData{
		Step:       step,
		Positions:  island.M_positions,
		Velocities: island.M_velocities,
	}

	for _, joint := range island.M_joints {
		joint.InitVelocityConstraints(solverData)
	}

	for i := 0; i < step.VelocityIterations; i++ {
		for _, joint := range island.M_joints {
			joint.SolveVelocityConstraints(solverData)
		}
	}

	// Integrate positions.
	for i := 0; i < n; i++ {
		v := island.M_velocities[i].V
		w := island.M_velocities[i].W

		translation := B2Vec2MulScalar(h, v)
		if B2Vec2Dot(translation, translation) > B2_maxTranslationSquared {
			v.OperatorScalarMulInplace(B2_maxTranslation / translation.Length())
		}

		rotation := h * w
		if rotation*rotation > B2_maxRotationSquared {
			w *= B2_maxRotation / math.Abs(rotation)
		}

		island.M_positions[i].C.OperatorPlusInplace(B2Vec2MulScalar(h, v))
		island.M_positions[i].A += h * w
		island.M_velocities[i] = B2Velocity{V: v, W: w}
	}

	positionSolved := false
	for i := 0; i < step.PositionIterations; i++ {
		jointsOkay := true
		for _, joint := range island.M_joints {
			jointOkay := joint.SolvePositionConstraints(solverData)
			jointsOkay = jointsOkay && jointOkay
		}

		if jointsOkay {
			positionSolved = true
			break
		}
	}

	for i, body := range island.M_bodies {
		body.M_sweep.C = island.M_positions[i].C
		body.M_sweep.A = island.M_positions[i].A
		body.M_linearVelocity = island.M_velocities[i].V
		body.M_angularVelocity = island.M_velocities[i].W
		body.SynchronizeTransform()
	}

	return positionSolved
}
