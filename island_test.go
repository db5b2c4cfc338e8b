package box2d_test

import (
	"math"
	"testing"

	"github.com/jboxport/box2d"
)

func TestIslandPendulumKeepsLength(t *testing.T) {
	ground := newBody(box2d.B2BodyType.B2_staticBody, 0, 0)
	bob := newBody(box2d.B2BodyType.B2_dynamicBody, 2, 0)

	jd := box2d.MakeB2DistanceJointDef()
	jd.Initialize(ground, bob, ground.GetPosition(), bob.GetPosition())
	joint := box2d.B2JointCreate(&jd)

	island := box2d.MakeB2Island(2, 1)
	island.AddBody(ground)
	island.AddBody(bob)
	island.AddJoint(joint)

	if island.GetBodyCount() != 2 || island.GetJointCount() != 1 {
		t.Fatalf("island holds %d bodies and %d joints", island.GetBodyCount(), island.GetJointCount())
	}

	gravity := box2d.MakeB2Vec2(0, -10)
	lowest := 0.0
	invDt := 0.0
	for i := 0; i < 120; i++ {
		step := box2d.MakeB2TimeStep(1.0/60.0, invDt)
		solved := island.Solve(step, gravity)
		if i == 0 && !solved {
			t.Error("first step did not converge")
		}
		invDt = step.Inv_dt

		if length := bob.GetPosition().Length(); math.Abs(length-2.0) > 0.01 {
			t.Fatalf("step %d: length = %v, want 2", i, length)
		}
		lowest = math.Min(lowest, bob.GetPosition().Y)
	}

	if ground.GetPosition() != box2d.B2Vec2_zero {
		t.Errorf("ground moved to %v", ground.GetPosition())
	}
	if lowest > -1.9 {
		t.Errorf("bob never passed under the pivot, lowest y = %v", lowest)
	}
}

func TestIslandFreeFall(t *testing.T) {
	body := newBody(box2d.B2BodyType.B2_dynamicBody, 0, 10)

	island := box2d.MakeB2Island(1, 0)
	island.AddBody(body)

	step := box2d.MakeB2TimeStep(0.1, 0.0)
	if !island.Solve(step, box2d.MakeB2Vec2(0, -10)) {
		t.Error("island without joints should report convergence")
	}

	if v := body.GetLinearVelocity(); math.Abs(v.Y+1.0) > 1e-12 {
		t.Errorf("velocity = %v, want (0, -1)", v)
	}
	if p := body.GetPosition(); math.Abs(p.Y-9.9) > 1e-12 {
		t.Errorf("position = %v, want (0, 9.9)", p)
	}
}

func TestIslandClampsTranslation(t *testing.T) {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.LinearVelocity = box2d.MakeB2Vec2(1000, 0)
	body := box2d.NewB2Body(&bd)

	island := box2d.MakeB2Island(1, 0)
	island.AddBody(body)
	island.Solve(box2d.MakeB2TimeStep(1.0/60.0, 0.0), box2d.B2Vec2_zero)

	if x := body.GetPosition().X; math.Abs(x-box2d.B2_maxTranslation) > 1e-9 {
		t.Errorf("moved %v in one step, want %v", x, box2d.B2_maxTranslation)
	}
}

func TestIslandCapacity(t *testing.T) {
	a := newBody(box2d.B2BodyType.B2_staticBody, 0, 0)
	b := newBody(box2d.B2BodyType.B2_dynamicBody, 1, 0)

	island := box2d.MakeB2Island(1, 1)
	island.AddBody(a)
	expectPanic(t, "AddBody over capacity", func() { island.AddBody(b) })

	jd := box2d.MakeB2DistanceJointDef()
	jd.Initialize(a, b, a.GetPosition(), b.GetPosition())
	expectPanic(t, "AddJoint with a foreign body", func() { island.AddJoint(box2d.B2JointCreate(&jd)) })

	island.Clear()
	if island.GetBodyCount() != 0 || island.GetJointCount() != 0 {
		t.Errorf("Clear left %d bodies and %d joints", island.GetBodyCount(), island.GetJointCount())
	}
}
