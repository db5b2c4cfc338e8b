package box2d_test

import (
	"testing"

	"github.com/jboxport/box2d"
)

type recordingListener struct {
	events   []string
	impulses []box2d.B2ContactImpulse
}

func (l *recordingListener) BeginContact(contact *box2d.B2Contact) {
	l.events = append(l.events, "begin")
}

func (l *recordingListener) EndContact(contact *box2d.B2Contact) {
	l.events = append(l.events, "end")
}

func (l *recordingListener) PreSolve(contact *box2d.B2Contact, oldManifold box2d.B2Manifold) {
	l.events = append(l.events, "presolve")
}

func (l *recordingListener) PostSolve(contact *box2d.B2Contact, impulse *box2d.B2ContactImpulse) {
	l.events = append(l.events, "postsolve")
	l.impulses = append(l.impulses, *impulse)
}

func equalEvents(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestContactLifecycle(t *testing.T) {
	circleA := box2d.NewB2CircleShape(1.0, box2d.B2Vec2_zero)
	circleB := box2d.NewB2CircleShape(1.0, box2d.B2Vec2_zero)
	contact := box2d.NewB2Contact(circleA, 0, circleB, 0)
	listener := &recordingListener{}

	contact.Update(xf(0, 0, 0), xf(1.5, 0, 0), listener)
	if !contact.IsTouching() {
		t.Fatal("circles 1.5 apart should touch")
	}
	if want := []string{"begin", "presolve"}; !equalEvents(listener.events, want) {
		t.Fatalf("events = %v, want %v", listener.events, want)
	}

	normal, tangent := contact.GetImpulses(0)
	if normal != 0 || tangent != 0 {
		t.Errorf("new point impulses = %v/%v, want 0/0", normal, tangent)
	}

	contact.SetImpulses(0, 1.5, 0.25)
	contact.Update(xf(0, 0, 0), xf(1.4, 0, 0), listener)

	normal, tangent = contact.GetImpulses(0)
	if normal != 1.5 || tangent != 0.25 {
		t.Errorf("carried impulses = %v/%v, want 1.5/0.25", normal, tangent)
	}

	listener.events = nil
	contact.ReportImpulses(listener)
	if len(listener.impulses) != 1 {
		t.Fatalf("PostSolve calls = %d, want 1", len(listener.impulses))
	}
	if got := listener.impulses[0]; got.Count != 1 || got.NormalImpulses[0] != 1.5 || got.TangentImpulses[0] != 0.25 {
		t.Errorf("reported impulse = %+v", got)
	}

	listener.events = nil
	contact.Update(xf(0, 0, 0), xf(3, 0, 0), listener)
	if contact.IsTouching() {
		t.Error("circles 3 apart should not touch")
	}
	if want := []string{"end"}; !equalEvents(listener.events, want) {
		t.Errorf("events = %v, want %v", listener.events, want)
	}

	listener.events = nil
	contact.ReportImpulses(listener)
	if len(listener.events) != 0 {
		t.Errorf("separated contact reported %v", listener.events)
	}
}

func TestContactDropsImpulsesOfReplacedPoints(t *testing.T) {
	ground := box2d.NewB2PolygonShapeBox(1.0, 1.0)
	box := box2d.NewB2PolygonShapeBox(0.5, 0.5)
	contact := box2d.NewB2Contact(ground, 0, box, 0)

	contact.Update(xf(0, 0, 0), xf(0, 1.4, 0.01), nil)
	if contact.GetManifold().PointCount != 2 {
		t.Fatalf("PointCount = %d, want 2", contact.GetManifold().PointCount)
	}
	contact.SetImpulses(0, 2.0, 0.0)
	contact.SetImpulses(1, 3.0, 0.0)
	before := *contact.GetManifold()

	contact.Update(xf(0, 0, 0), xf(0, 1.4, 0.5*box2d.B2_pi+0.01), nil)
	after := *contact.GetManifold()

	for i := 0; i < after.PointCount; i++ {
		normal, _ := contact.GetImpulses(i)
		j := before.FindPoint(after.Points[i].Id)
		switch {
		case j < 0 && normal != 0:
			t.Errorf("new point %d kept impulse %v", i, normal)
		case j == 0 && normal != 2.0:
			t.Errorf("point %d impulse = %v, want 2", i, normal)
		case j == 1 && normal != 3.0:
			t.Errorf("point %d impulse = %v, want 3", i, normal)
		}
	}
}

func TestContactOrdersShapes(t *testing.T) {
	box := box2d.NewB2PolygonShapeBox(0.5, 0.5)
	edge := box2d.NewB2EdgeShape(box2d.MakeB2Vec2(-1, 0), box2d.MakeB2Vec2(1, 0))

	contact := box2d.NewB2Contact(box, 0, edge, 0)
	if contact.GetShapeA().GetType() != box2d.B2Shape_Type.E_edge {
		t.Errorf("shape A type = %d, want edge", contact.GetShapeA().GetType())
	}

	contact.Update(xf(0, 0, 0), xf(0, 0.45, 0), nil)
	if !contact.IsTouching() {
		t.Fatal("box resting on edge should touch")
	}

	var wm box2d.B2WorldManifold
	contact.GetWorldManifold(&wm, xf(0, 0, 0), xf(0, 0.45, 0))
	if wm.Normal.Y < 0.999 {
		t.Errorf("normal = %v, want (0, 1) from edge to box", wm.Normal)
	}
}

func TestContactRejectsEdgePairs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("edge/edge contact did not panic")
		}
	}()

	edge := box2d.NewB2EdgeShape(box2d.MakeB2Vec2(-1, 0), box2d.MakeB2Vec2(1, 0))
	box2d.NewB2Contact(edge, 0, edge, 0)
}
