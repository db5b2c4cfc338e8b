package box2d_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/jboxport/box2d"
	"github.com/pmezard/go-difflib/difflib"
)

func captureLog(f func()) string {
	var buf bytes.Buffer
	box2d.B2LogWriter = &buf
	defer func() { box2d.B2LogWriter = os.Stdout }()

	f()
	return buf.String()
}

func compareDump(t *testing.T, expected, current string) {
	t.Helper()

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(current),
		FromFile: "Expected",
		ToFile:   "Current",
		Context:  0,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)

	if text != "" {
		t.Fatalf("dump differs from the expected snippet:\n%s", text)
	}
}

const expectedPrismaticDump = `  b2PrismaticJointDef jd;
  jd.bodyA = bodies[0];
  jd.bodyB = bodies[1];
  jd.collideConnected = bool(0);
  jd.localAnchorA.Set(1.000000000000000e+00, 0.000000000000000e+00);
  jd.localAnchorB.Set(0.000000000000000e+00, 0.000000000000000e+00);
  jd.localAxisA.Set(1.000000000000000e+00, 0.000000000000000e+00);
  jd.referenceAngle = 0.000000000000000e+00;
  jd.enableLimit = bool(1);
  jd.lowerTranslation = -1.000000000000000e+00;
  jd.upperTranslation = 2.500000000000000e+00;
  jd.enableMotor = bool(0);
  jd.motorSpeed = 0.000000000000000e+00;
  jd.maxMotorForce = 0.000000000000000e+00;
  joints[0] = m_world->CreateJoint(&jd);
`

const expectedGearDump = `  b2GearJointDef jd;
  jd.bodyA = bodies[1];
  jd.bodyB = bodies[2];
  jd.collideConnected = bool(0);
  jd.joint1 = joints[0];
  jd.joint2 = joints[1];
  jd.ratio = -5.000000000000000e-01;
  joints[2] = m_world->CreateJoint(&jd);
`

func TestJointDump(t *testing.T) {
	ground := newBody(box2d.B2BodyType.B2_staticBody, 0, 0)
	slider := newBody(box2d.B2BodyType.B2_dynamicBody, 1, 0)
	wheel := newBody(box2d.B2BodyType.B2_dynamicBody, 0, 3)

	island := box2d.MakeB2Island(3, 3)
	island.AddBody(ground)
	island.AddBody(slider)
	island.AddBody(wheel)

	pjd := box2d.MakeB2PrismaticJointDef()
	pjd.Initialize(ground, slider, box2d.MakeB2Vec2(1, 0), box2d.MakeB2Vec2(1, 0))
	pjd.EnableLimit = true
	pjd.LowerTranslation = -1.0
	pjd.UpperTranslation = 2.5
	prismatic := box2d.MakeB2PrismaticJoint(&pjd)
	prismatic.SetIndex(0)

	rjd := box2d.MakeB2RevoluteJointDef()
	rjd.Initialize(ground, wheel, wheel.GetPosition())
	revolute := box2d.MakeB2RevoluteJoint(&rjd)
	revolute.SetIndex(1)

	gjd := box2d.MakeB2GearJointDef()
	gjd.Initialize(prismatic, revolute, -0.5)
	gear := box2d.MakeB2GearJoint(&gjd)
	gear.SetIndex(2)

	compareDump(t, expectedPrismaticDump, captureLog(prismatic.Dump))
	compareDump(t, expectedGearDump, captureLog(gear.Dump))
}

func TestManifoldDump(t *testing.T) {
	circleA := box2d.NewB2CircleShape(1.0, box2d.B2Vec2_zero)
	circleB := box2d.NewB2CircleShape(1.0, box2d.B2Vec2_zero)

	var m box2d.B2Manifold
	box2d.B2CollideCircles(&m, circleA, xf(0, 0, 0), circleB, xf(1.5, 0, 0))

	expected := "manifold type=0 count=1 normal=(0.000000, 0.000000) point=(0.000000, 0.000000)\n" +
		"  [0] id=v0/v0 local=(0.000000, 0.000000)\n"
	compareDump(t, expected, captureLog(m.Dump))
}
