package box2d_test

import (
	"math"
	"testing"

	"github.com/jboxport/box2d"
)

func newBody(bodyType uint8, x, y float64) *box2d.B2Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = bodyType
	bd.Position = box2d.MakeB2Vec2(x, y)
	return box2d.NewB2Body(&bd)
}

// solverData lays the bodies out in the order given, the way an island
// would before a step.
func solverData(dt float64, bodies ...*box2d.B2Body) box2d.B2SolverData {
	data := box2d.B2SolverData{Step: box2d.MakeB2TimeStep(dt, 0.0)}
	for i, b := range bodies {
		b.SetIslandIndex(i)
		data.Positions = append(data.Positions, box2d.B2Position{C: b.GetWorldCenter(), A: b.GetAngle()})
		data.Velocities = append(data.Velocities, box2d.B2Velocity{V: b.GetLinearVelocity(), W: b.GetAngularVelocity()})
	}
	return data
}

func expectPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	f()
}

func TestPrismaticJointLimit(t *testing.T) {
	ground := newBody(box2d.B2BodyType.B2_staticBody, 0, 0)
	body := newBody(box2d.B2BodyType.B2_dynamicBody, 1.1, 0)

	jd := box2d.MakeB2PrismaticJointDef()
	jd.BodyA = ground
	jd.BodyB = body
	jd.EnableLimit = true
	jd.LowerTranslation = -1.0
	jd.UpperTranslation = 1.0
	joint := box2d.MakeB2PrismaticJoint(&jd)

	data := solverData(1.0/60.0, ground, body)
	joint.InitVelocityConstraints(data)

	if joint.GetLimitState() != box2d.B2LimitState.E_atUpperLimit {
		t.Fatalf("limit state = %d, want upper", joint.GetLimitState())
	}

	converged := false
	for i := 0; i < 20 && !converged; i++ {
		converged = joint.SolvePositionConstraints(data)
	}
	if !converged {
		t.Fatal("position iterations did not converge")
	}

	translation := data.Positions[1].C.X - data.Positions[0].C.X
	if math.Abs(translation-1.0) > box2d.B2_linearSlop+1e-9 {
		t.Errorf("translation = %v, want 1 within slop", translation)
	}
	if data.Positions[0].C != box2d.B2Vec2_zero {
		t.Errorf("static ground moved to %v", data.Positions[0].C)
	}
	if math.Abs(data.Positions[1].C.Y) > 1e-9 || math.Abs(data.Positions[1].A) > 1e-9 {
		t.Errorf("body left the axis: %+v", data.Positions[1])
	}
}

func TestPrismaticJointMotor(t *testing.T) {
	ground := newBody(box2d.B2BodyType.B2_staticBody, 0, 0)
	body := newBody(box2d.B2BodyType.B2_dynamicBody, 0.5, 0)

	jd := box2d.MakeB2PrismaticJointDef()
	jd.Initialize(ground, body, box2d.MakeB2Vec2(0.5, 0), box2d.MakeB2Vec2(1, 0))
	jd.EnableMotor = true
	jd.MotorSpeed = 1.0
	jd.MaxMotorForce = 1000.0
	joint := box2d.MakeB2PrismaticJoint(&jd)

	data := solverData(1.0/60.0, ground, body)
	joint.InitVelocityConstraints(data)
	joint.SolveVelocityConstraints(data)

	if v := data.Velocities[1].V; math.Abs(v.X-1.0) > 1e-12 || math.Abs(v.Y) > 1e-12 {
		t.Errorf("velocity = %v, want (1, 0)", v)
	}
	if f := joint.GetMotorForce(60.0); math.Abs(f-60.0) > 1e-9 {
		t.Errorf("motor force = %v, want 60", f)
	}
}

func TestPrismaticJointRejectsInvertedLimits(t *testing.T) {
	ground := newBody(box2d.B2BodyType.B2_staticBody, 0, 0)
	body := newBody(box2d.B2BodyType.B2_dynamicBody, 0, 0)

	jd := box2d.MakeB2PrismaticJointDef()
	jd.BodyA = ground
	jd.BodyB = body
	jd.LowerTranslation = 1.0
	jd.UpperTranslation = -1.0

	expectPanic(t, "MakeB2PrismaticJoint", func() { box2d.MakeB2PrismaticJoint(&jd) })
}

func TestRevoluteJointMotor(t *testing.T) {
	ground := newBody(box2d.B2BodyType.B2_staticBody, 0, 0)
	wheel := newBody(box2d.B2BodyType.B2_dynamicBody, 1, 2)
	wheel.AttachShape(box2d.NewB2CircleShape(0.5, box2d.B2Vec2_zero), 1.0)

	jd := box2d.MakeB2RevoluteJointDef()
	jd.Initialize(ground, wheel, wheel.GetWorldCenter())
	jd.EnableMotor = true
	jd.MotorSpeed = 2.0
	jd.MaxMotorTorque = 100.0
	joint := box2d.MakeB2RevoluteJoint(&jd)

	data := solverData(1.0/60.0, ground, wheel)
	joint.InitVelocityConstraints(data)
	joint.SolveVelocityConstraints(data)

	if w := data.Velocities[1].W; math.Abs(w-2.0) > 1e-12 {
		t.Errorf("angular velocity = %v, want 2", w)
	}
	if v := data.Velocities[1].V; v.Length() > 1e-12 {
		t.Errorf("pinned center moves at %v", v)
	}
}

func TestRevoluteJointLimit(t *testing.T) {
	ground := newBody(box2d.B2BodyType.B2_staticBody, 0, 0)
	bar := newBody(box2d.B2BodyType.B2_dynamicBody, 0, 0)
	bar.AttachShape(box2d.NewB2PolygonShapeBox(1.0, 0.1), 1.0)
	bar.SetTransform(box2d.MakeB2Vec2(0, 0), 0.3)

	jd := box2d.MakeB2RevoluteJointDef()
	jd.BodyA = ground
	jd.BodyB = bar
	jd.EnableLimit = true
	jd.LowerAngle = -0.25
	jd.UpperAngle = 0.25
	joint := box2d.MakeB2RevoluteJoint(&jd)

	data := solverData(1.0/60.0, ground, bar)
	joint.InitVelocityConstraints(data)

	if joint.SolvePositionConstraints(data) {
		t.Error("first position iteration should report the limit violation")
	}
	for i := 0; i < 10; i++ {
		joint.SolvePositionConstraints(data)
	}
	if angle := data.Positions[1].A; angle > 0.25+box2d.B2_angularSlop+1e-9 {
		t.Errorf("angle = %v, want at most 0.25 within slop", angle)
	}
}

func TestGearJointCouplesRotationAndTranslation(t *testing.T) {
	ground := newBody(box2d.B2BodyType.B2_staticBody, 0, 0)

	wheel := newBody(box2d.B2BodyType.B2_dynamicBody, 0, 0)
	wheel.AttachShape(box2d.NewB2CircleShape(0.5, box2d.B2Vec2_zero), 1.0)

	rack := newBody(box2d.B2BodyType.B2_dynamicBody, 3, 0)

	rjd := box2d.MakeB2RevoluteJointDef()
	rjd.Initialize(ground, wheel, wheel.GetWorldCenter())
	revolute := box2d.B2JointCreate(&rjd)

	pjd := box2d.MakeB2PrismaticJointDef()
	pjd.Initialize(ground, rack, rack.GetWorldCenter(), box2d.MakeB2Vec2(1, 0))
	prismatic := box2d.B2JointCreate(&pjd).(*box2d.B2PrismaticJoint)

	gjd := box2d.MakeB2GearJointDef()
	gjd.Initialize(revolute, prismatic, 2.0)
	gear := box2d.MakeB2GearJoint(&gjd)

	if n := len(gear.GetBodies()); n != 4 {
		t.Fatalf("gear touches %d bodies, want 4", n)
	}
	if gear.GetBodyA() != wheel || gear.GetBodyB() != rack || gear.GetBodyC() != ground {
		t.Fatal("gear bodies are not the moving bodies of its joints")
	}

	wheel.SetAngularVelocity(1.0)

	island := box2d.MakeB2Island(3, 3)
	island.AddBody(ground)
	island.AddBody(wheel)
	island.AddBody(rack)
	island.AddJoint(revolute)
	island.AddJoint(prismatic)
	island.AddJoint(gear)

	invDt := 0.0
	for i := 0; i < 60; i++ {
		step := box2d.MakeB2TimeStep(1.0/60.0, invDt)
		island.Solve(step, box2d.B2Vec2_zero)
		invDt = step.Inv_dt
	}

	if translation := prismatic.GetJointTranslation(); translation >= 0.0 {
		t.Errorf("rack translation = %v, want negative", translation)
	}
	if e := gear.GetError(); math.Abs(e) > 0.01 {
		t.Errorf("gear error = %v", e)
	}
	if w := wheel.GetAngularVelocity(); w <= 0.0 || w >= 1.0 {
		t.Errorf("wheel speed = %v, want slowed but still positive", w)
	}
}

func TestGearJointRejectsOtherJoints(t *testing.T) {
	ground := newBody(box2d.B2BodyType.B2_staticBody, 0, 0)
	a := newBody(box2d.B2BodyType.B2_dynamicBody, 1, 0)
	b := newBody(box2d.B2BodyType.B2_dynamicBody, 2, 0)

	djd := box2d.MakeB2DistanceJointDef()
	djd.Initialize(ground, a, ground.GetPosition(), a.GetPosition())
	distance := box2d.MakeB2DistanceJoint(&djd)

	rjd := box2d.MakeB2RevoluteJointDef()
	rjd.Initialize(ground, b, b.GetPosition())
	revolute := box2d.MakeB2RevoluteJoint(&rjd)

	gjd := box2d.MakeB2GearJointDef()
	gjd.Initialize(distance, revolute, 1.0)

	expectPanic(t, "MakeB2GearJoint", func() { box2d.MakeB2GearJoint(&gjd) })
}

func triangleRing(bodyType uint8) (*box2d.B2ConstantVolumeJointDef, []*box2d.B2Body) {
	jd := box2d.MakeB2ConstantVolumeJointDef()
	var bodies []*box2d.B2Body
	for _, p := range []box2d.B2Vec2{
		box2d.MakeB2Vec2(0, 0),
		box2d.MakeB2Vec2(2, 0),
		box2d.MakeB2Vec2(1, math.Sqrt(3)),
	} {
		b := newBody(bodyType, p.X, p.Y)
		jd.AddBody(b)
		bodies = append(bodies, b)
	}
	return &jd, bodies
}

func ringArea(data box2d.B2SolverData) float64 {
	n := len(data.Positions)
	area := 0.0
	for i := 0; i < n; i++ {
		c, next := data.Positions[i].C, data.Positions[(i+1)%n].C
		area += box2d.B2Vec2Cross(c, next)
	}
	return 0.5 * area
}

func TestConstantVolumeJointInflate(t *testing.T) {
	jd, bodies := triangleRing(box2d.B2BodyType.B2_dynamicBody)
	joint := box2d.MakeB2ConstantVolumeJoint(jd)

	if math.Abs(joint.GetTargetVolume()-math.Sqrt(3)) > 1e-12 {
		t.Fatalf("target volume = %v, want sqrt(3)", joint.GetTargetVolume())
	}

	joint.Inflate(1.5)
	want := 1.5 * math.Sqrt(3)

	data := solverData(1.0/60.0, bodies...)
	joint.InitVelocityConstraints(data)

	converged := false
	for i := 0; i < 50 && !converged; i++ {
		converged = joint.SolvePositionConstraints(data)
	}
	if !converged {
		t.Fatal("position iterations did not converge")
	}
	if area := ringArea(data); math.Abs(area-want) > 0.05 {
		t.Errorf("area = %v, want %v", area, want)
	}
}

func TestConstantVolumeJointVelocityKeepsArea(t *testing.T) {
	jd, bodies := triangleRing(box2d.B2BodyType.B2_dynamicBody)
	joint := box2d.MakeB2ConstantVolumeJoint(jd)

	bodies[0].SetLinearVelocity(box2d.MakeB2Vec2(-1, -0.5))
	bodies[1].SetLinearVelocity(box2d.MakeB2Vec2(0.3, 0.2))
	bodies[2].SetLinearVelocity(box2d.MakeB2Vec2(0.1, 2))

	data := solverData(1.0/60.0, bodies...)
	joint.InitVelocityConstraints(data)
	joint.SolveVelocityConstraints(data)

	rate := 0.0
	n := len(bodies)
	for i := 0; i < n; i++ {
		d := box2d.B2Vec2Sub(data.Positions[(i+1)%n].C, data.Positions[(i+n-1)%n].C)
		rate += box2d.B2Vec2Cross(data.Velocities[i].V, d)
	}
	if math.Abs(0.5*rate) > 1e-9 {
		t.Errorf("area rate = %v, want 0", 0.5*rate)
	}
}

func TestConstantVolumeJointStaticRing(t *testing.T) {
	jd, bodies := triangleRing(box2d.B2BodyType.B2_staticBody)
	joint := box2d.MakeB2ConstantVolumeJoint(jd)
	joint.Inflate(2.0)

	data := solverData(1.0/60.0, bodies...)
	joint.InitVelocityConstraints(data)
	joint.SolveVelocityConstraints(data)
	joint.SolvePositionConstraints(data)

	for i, b := range bodies {
		if data.Positions[i].C != b.GetWorldCenter() {
			t.Errorf("static body %d moved to %v", i, data.Positions[i].C)
		}
		if data.Velocities[i].V != box2d.B2Vec2_zero {
			t.Errorf("static body %d got velocity %v", i, data.Velocities[i].V)
		}
	}
}

func TestConstantVolumeJointSprings(t *testing.T) {
	jd, bodies := triangleRing(box2d.B2BodyType.B2_dynamicBody)
	jd.FrequencyHz = 10.0
	jd.DampingRatio = 1.0
	joint := box2d.MakeB2ConstantVolumeJoint(jd)

	if n := len(joint.GetDistanceJoints()); n != 3 {
		t.Fatalf("distance joints = %d, want 3", n)
	}
	if n := len(joint.GetBodies()); n != 3 {
		t.Fatalf("bodies = %d, want 3", n)
	}
	if joint.GetBodyA() != bodies[0] || joint.GetBodyB() != bodies[1] {
		t.Error("first two ring bodies should be body A and body B")
	}
}

func TestConstantVolumeJointNeedsThreeBodies(t *testing.T) {
	jd := box2d.MakeB2ConstantVolumeJointDef()
	jd.AddBody(newBody(box2d.B2BodyType.B2_dynamicBody, 0, 0))
	jd.AddBody(newBody(box2d.B2BodyType.B2_dynamicBody, 1, 0))

	expectPanic(t, "MakeB2ConstantVolumeJoint", func() { box2d.MakeB2ConstantVolumeJoint(&jd) })
}

func TestJointCreate(t *testing.T) {
	a := newBody(box2d.B2BodyType.B2_staticBody, 0, 0)
	b := newBody(box2d.B2BodyType.B2_dynamicBody, 1, 0)

	prismatic := box2d.MakeB2PrismaticJointDef()
	prismatic.BodyA, prismatic.BodyB = a, b
	revolute := box2d.MakeB2RevoluteJointDef()
	revolute.BodyA, revolute.BodyB = a, b
	distance := box2d.MakeB2DistanceJointDef()
	distance.BodyA, distance.BodyB = a, b

	tests := []struct {
		name string
		def  box2d.B2JointDefInterface
		want uint8
	}{
		{"prismatic", &prismatic, box2d.B2JointType.E_prismaticJoint},
		{"revolute", &revolute, box2d.B2JointType.E_revoluteJoint},
		{"distance", &distance, box2d.B2JointType.E_distanceJoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			joint := box2d.B2JointCreate(tt.def)
			if joint.GetType() != tt.want {
				t.Errorf("type = %d, want %d", joint.GetType(), tt.want)
			}
			if joint.GetBodyA() != a || joint.GetBodyB() != b {
				t.Error("bodies not carried over from the definition")
			}
		})
	}

	same := box2d.MakeB2DistanceJointDef()
	same.BodyA, same.BodyB = b, b
	expectPanic(t, "joint on a single body", func() { box2d.B2JointCreate(&same) })
}
