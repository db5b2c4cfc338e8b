package box2d

/// Per-step solver configuration.
type B2TimeStep struct {
	Dt                 float64 // time step
	Inv_dt             float64 // inverse time step (0 if dt == 0).
	DtRatio            float64 // dt * inv_dt0
	VelocityIterations int
	PositionIterations int
	WarmStarting       bool
}

/// MakeB2TimeStep fills a step for dt with the usual 8/3 iterations and
/// warm starting on. previousInvDt is the inverse of the last step's dt,
/// 0 on the first step.
func MakeB2TimeStep(dt, previousInvDt float64) B2TimeStep {
	step := B2TimeStep{
		Dt:                 dt,
		VelocityIterations: 8,
		PositionIterations: 3,
		WarmStarting:       true,
	}
	if dt > 0.0 {
		step.Inv_dt = 1.0 / dt
	}
	step.DtRatio = previousInvDt * dt
	return step
}

/// Solver copy of a body's center of mass and angle.
type B2Position struct {
	C B2Vec2
	A float64
}

/// Solver copy of a body's velocity.
type B2Velocity struct {
	V B2Vec2
	W float64
}

/// B2SolverData is shared by every joint of an island during a step.
/// Positions and Velocities are indexed by body island index.
type B2SolverData struct {
	Step       B2TimeStep
	Positions  []B2Position
	Velocities []B2Velocity
}
