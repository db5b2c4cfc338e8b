package box2d_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jboxport/box2d"
)

func xf(x, y, angle float64) box2d.B2Transform {
	return box2d.MakeB2TransformFromAngle(box2d.MakeB2Vec2(x, y), angle)
}

func worldManifold(m *box2d.B2Manifold, shapeA box2d.B2ShapeInterface, xfA box2d.B2Transform, shapeB box2d.B2ShapeInterface, xfB box2d.B2Transform) box2d.B2WorldManifold {
	var wm box2d.B2WorldManifold
	wm.Initialize(m, xfA, shapeA.GetRadius(), xfB, shapeB.GetRadius())
	return wm
}

func TestCollideCircles(t *testing.T) {
	circleA := box2d.NewB2CircleShape(1.0, box2d.B2Vec2_zero)
	circleB := box2d.NewB2CircleShape(1.0, box2d.B2Vec2_zero)

	var m box2d.B2Manifold
	box2d.B2CollideCircles(&m, circleA, xf(0, 0, 0), circleB, xf(1.5, 0, 0))

	if m.PointCount != 1 {
		t.Fatalf("PointCount = %d, want 1", m.PointCount)
	}
	if m.Type != box2d.B2Manifold_Type.E_circles {
		t.Fatalf("Type = %d, want circles", m.Type)
	}

	wm := worldManifold(&m, circleA, xf(0, 0, 0), circleB, xf(1.5, 0, 0))
	if math.Abs(wm.Separations[0]+0.5) > 1e-12 {
		t.Errorf("separation = %v, want -0.5", wm.Separations[0])
	}
	if math.Abs(wm.Normal.X-1.0) > 1e-12 || math.Abs(wm.Normal.Y) > 1e-12 {
		t.Errorf("normal = %v, want (1, 0)", wm.Normal)
	}
	if math.Abs(wm.Points[0].X-0.75) > 1e-12 {
		t.Errorf("point = %v, want x = 0.75", wm.Points[0])
	}

	box2d.B2CollideCircles(&m, circleA, xf(0, 0, 0), circleB, xf(3, 0, 0))
	if m.PointCount != 0 {
		t.Errorf("PointCount = %d for circles 3 apart, want 0", m.PointCount)
	}
}

func TestCollidePolygonAndCircle(t *testing.T) {
	box := box2d.NewB2PolygonShapeBox(1.0, 1.0)
	circle := box2d.NewB2CircleShape(0.5, box2d.B2Vec2_zero)

	tests := []struct {
		name   string
		pos    box2d.B2Vec2
		points int
		normal box2d.B2Vec2
	}{
		{"face", box2d.MakeB2Vec2(0, 1.4), 1, box2d.MakeB2Vec2(0, 1)},
		{"corner", box2d.MakeB2Vec2(1.3, 1.3), 1, box2d.MakeB2Vec2(math.Sqrt2/2, math.Sqrt2/2)},
		{"center inside", box2d.MakeB2Vec2(0.1, 0.8), 1, box2d.MakeB2Vec2(0, 1)},
		{"apart", box2d.MakeB2Vec2(0, 2.0), 0, box2d.B2Vec2_zero},
		{"corner apart", box2d.MakeB2Vec2(1.4, 1.4), 0, box2d.B2Vec2_zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m box2d.B2Manifold
			xfB := xf(tt.pos.X, tt.pos.Y, 0)
			box2d.B2CollidePolygonAndCircle(&m, box, xf(0, 0, 0), circle, xfB)

			if m.PointCount != tt.points {
				t.Fatalf("PointCount = %d, want %d", m.PointCount, tt.points)
			}
			if tt.points == 0 {
				return
			}

			wm := worldManifold(&m, box, xf(0, 0, 0), circle, xfB)
			if box2d.B2Vec2Distance(wm.Normal, tt.normal) > 1e-9 {
				t.Errorf("normal = %v, want %v", wm.Normal, tt.normal)
			}
		})
	}
}

func TestCollidePolygonsDeterministic(t *testing.T) {
	polyA := box2d.NewB2PolygonShapeBox(1.0, 0.5)
	polyB := box2d.NewB2PolygonShapeBox(0.5, 0.5)
	xfA := xf(0.1, -0.2, 0.3)
	xfB := xf(0.6, 0.7, -0.4)

	var m1, m2 box2d.B2Manifold
	box2d.B2CollidePolygons(&m1, polyA, xfA, polyB, xfB)
	box2d.B2CollidePolygons(&m2, polyA, xfA, polyB, xfB)

	if m1.PointCount == 0 {
		t.Fatal("expected overlapping boxes to touch")
	}
	if m1 != m2 {
		t.Errorf("manifolds differ:\n%+v\n%+v", m1, m2)
	}
}

func TestCollidePolygonsIDStability(t *testing.T) {
	ground := box2d.NewB2PolygonShapeBox(1.0, 1.0)
	box := box2d.NewB2PolygonShapeBox(0.5, 0.5)

	var previous box2d.B2Manifold
	box2d.B2CollidePolygons(&previous, ground, xf(0, 0, 0), box, xf(0, 1.4, 0))
	if previous.PointCount != 2 {
		t.Fatalf("PointCount = %d, want 2", previous.PointCount)
	}

	for _, angle := range []float64{0.005, 0.01, 0.015, 0.02} {
		var current box2d.B2Manifold
		box2d.B2CollidePolygons(&current, ground, xf(0, 0, 0), box, xf(0, 1.4, angle))
		if current.PointCount != 2 {
			t.Fatalf("angle %v: PointCount = %d, want 2", angle, current.PointCount)
		}

		state1, state2 := box2d.B2GetPointStates(previous, current)
		for i := 0; i < 2; i++ {
			if state1[i] != box2d.B2PointState.B2_persistState || state2[i] != box2d.B2PointState.B2_persistState {
				t.Errorf("angle %v: point %d states = %d/%d, want persist", angle, i, state1[i], state2[i])
			}
		}
		previous = current
	}
}

func TestCollidePolygonsIncidentEdgeChange(t *testing.T) {
	ground := box2d.NewB2PolygonShapeBox(1.0, 1.0)
	box := box2d.NewB2PolygonShapeBox(0.5, 0.5)

	var before, after box2d.B2Manifold
	box2d.B2CollidePolygons(&before, ground, xf(0, 0, 0), box, xf(0, 1.4, 0.01))
	box2d.B2CollidePolygons(&after, ground, xf(0, 0, 0), box, xf(0, 1.4, 0.5*box2d.B2_pi+0.01))

	if before.PointCount != 2 || after.PointCount != 2 {
		t.Fatalf("PointCount = %d/%d, want 2/2", before.PointCount, after.PointCount)
	}

	state1, state2 := box2d.B2GetPointStates(before, after)

	removed, added := false, false
	for i := 0; i < 2; i++ {
		removed = removed || state1[i] == box2d.B2PointState.B2_removeState
		added = added || state2[i] == box2d.B2PointState.B2_addState
	}
	if !removed || !added {
		t.Errorf("states = %v/%v, want a removed and an added point", state1, state2)
	}
}

func randomPolygon(r *rand.Rand) *box2d.B2PolygonShape {
	count := 3 + r.Intn(box2d.B2_maxPolygonVertices-2)
	vs := make([]box2d.B2Vec2, count)
	for i := range vs {
		angle := 2.0 * box2d.B2_pi * (float64(i) + 0.3*r.Float64()) / float64(count)
		radius := 0.5 + r.Float64()
		vs[i] = box2d.MakeB2Vec2(radius*math.Cos(angle), radius*math.Sin(angle))
	}

	poly := box2d.MakeB2PolygonShape()
	poly.Set(vs)
	return &poly
}

func TestCollidePolygonsPointBound(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	touching := 0
	for i := 0; i < 500; i++ {
		polyA := randomPolygon(r)
		polyB := randomPolygon(r)
		xfA := xf(r.Float64()-0.5, r.Float64()-0.5, 2*box2d.B2_pi*r.Float64())
		xfB := xf(2*r.Float64()-1, 2*r.Float64()-1, 2*box2d.B2_pi*r.Float64())

		var m box2d.B2Manifold
		box2d.B2CollidePolygons(&m, polyA, xfA, polyB, xfB)
		if m.PointCount < 0 || m.PointCount > box2d.B2_maxManifoldPoints {
			t.Fatalf("case %d: PointCount = %d", i, m.PointCount)
		}
		if m.PointCount > 0 {
			touching++
		}
	}

	if touching == 0 {
		t.Error("no random pair touched")
	}
}

func TestCollidePolygonsSymmetry(t *testing.T) {
	big := box2d.NewB2PolygonShapeBox(1.0, 1.0)
	small := box2d.NewB2PolygonShapeBox(0.5, 0.5)
	xfBig := xf(0, 0, 0)
	xfSmall := xf(0.2, 1.4, 0)

	var mAB, mBA box2d.B2Manifold
	box2d.B2CollidePolygons(&mAB, big, xfBig, small, xfSmall)
	box2d.B2CollidePolygons(&mBA, small, xfSmall, big, xfBig)

	if mAB.PointCount != 2 || mBA.PointCount != 2 {
		t.Fatalf("PointCount = %d/%d, want 2/2", mAB.PointCount, mBA.PointCount)
	}

	wmAB := worldManifold(&mAB, big, xfBig, small, xfSmall)
	wmBA := worldManifold(&mBA, small, xfSmall, big, xfBig)

	if box2d.B2Vec2Distance(wmAB.Normal, wmBA.Normal.OperatorNegate()) > 1e-9 {
		t.Errorf("normals %v and %v are not opposite", wmAB.Normal, wmBA.Normal)
	}
	for i := 0; i < 2; i++ {
		if math.Abs(wmAB.Separations[i]-wmBA.Separations[i]) > 1e-9 {
			t.Errorf("separation %d: %v vs %v", i, wmAB.Separations[i], wmBA.Separations[i])
		}
	}
}

func TestCollideEdgeAndCircleGhost(t *testing.T) {
	circle := box2d.NewB2CircleShape(0.6, box2d.B2Vec2_zero)
	xfCircle := xf(-0.1, 0.5, 0)

	edge := box2d.NewB2EdgeShape(box2d.MakeB2Vec2(0, 0), box2d.MakeB2Vec2(1, 0))

	var m box2d.B2Manifold
	box2d.B2CollideEdgeAndCircle(&m, edge, xf(0, 0, 0), circle, xfCircle)
	if m.PointCount != 1 {
		t.Fatalf("lone edge: PointCount = %d, want 1", m.PointCount)
	}
	if id := m.Points[0].Id; id.TypeA != box2d.B2ContactFeature_Type.E_vertex || id.IndexA != 0 {
		t.Errorf("lone edge: id = %v, want vertex 0", id)
	}

	// The previous segment owns the region left of vertex1.
	edge.SetPrevVertex(box2d.MakeB2Vec2(-1, 0))
	box2d.B2CollideEdgeAndCircle(&m, edge, xf(0, 0, 0), circle, xfCircle)
	if m.PointCount != 0 {
		t.Errorf("ghosted edge: PointCount = %d, want 0", m.PointCount)
	}

	box2d.B2CollideEdgeAndCircle(&m, edge, xf(0, 0, 0), circle, xf(0.5, 0.5, 0))
	if m.PointCount != 1 || m.Type != box2d.B2Manifold_Type.E_faceA {
		t.Errorf("face region: PointCount = %d type = %d, want 1 faceA", m.PointCount, m.Type)
	}
}

func TestCollideEdgeAndPolygon(t *testing.T) {
	edge := box2d.NewB2EdgeShape(box2d.MakeB2Vec2(-2, 0), box2d.MakeB2Vec2(2, 0))
	box := box2d.NewB2PolygonShapeBox(0.5, 0.5)
	xfBox := xf(0.3, 0.45, 0)

	var m box2d.B2Manifold
	box2d.B2CollideEdgeAndPolygon(&m, edge, xf(0, 0, 0), box, xfBox)
	if m.PointCount != 2 {
		t.Fatalf("PointCount = %d, want 2", m.PointCount)
	}

	wm := worldManifold(&m, edge, xf(0, 0, 0), box, xfBox)
	if math.Abs(wm.Normal.Y-1.0) > 1e-9 {
		t.Errorf("normal = %v, want (0, 1)", wm.Normal)
	}
	for i := 0; i < 2; i++ {
		if math.Abs(wm.Separations[i]-(-0.05-2*box2d.B2_polygonRadius)) > 1e-9 {
			t.Errorf("separation %d = %v", i, wm.Separations[i])
		}
	}

	box2d.B2CollideEdgeAndPolygon(&m, edge, xf(0, 0, 0), box, xf(0.3, 1.0, 0))
	if m.PointCount != 0 {
		t.Errorf("PointCount = %d for a box above the edge, want 0", m.PointCount)
	}
}

func TestChainGhostVerticesKeepNormalUp(t *testing.T) {
	chain := box2d.MakeB2ChainShape()
	chain.CreateChain([]box2d.B2Vec2{
		box2d.MakeB2Vec2(-4, 0),
		box2d.MakeB2Vec2(-2, 0),
		box2d.MakeB2Vec2(0, 0),
		box2d.MakeB2Vec2(2, 0),
		box2d.MakeB2Vec2(4, 0),
	})

	// Box sunk into the ground, its right side just past the internal
	// vertex at the origin.
	box := box2d.NewB2PolygonShapeBox(0.5, 0.5)
	xfBox := xf(-0.45, 0.4, 0)

	touching := 0
	for i := 0; i < chain.GetChildCount(); i++ {
		var m box2d.B2Manifold
		if !box2d.B2CollideShapes(&m, &chain, i, xf(0, 0, 0), box, 0, xfBox) {
			t.Fatalf("child %d: chain/polygon is not a primary pair", i)
		}
		if m.PointCount == 0 {
			continue
		}
		touching++

		wm := worldManifold(&m, &chain, xf(0, 0, 0), box, xfBox)
		if wm.Normal.Y < 1.0-1e-9 {
			t.Errorf("child %d: normal = %v, want (0, 1)", i, wm.Normal)
		}
	}

	if touching == 0 {
		t.Error("box does not touch the chain")
	}
}

func TestCollideShapesDispatch(t *testing.T) {
	circle := box2d.NewB2CircleShape(0.5, box2d.B2Vec2_zero)
	box := box2d.NewB2PolygonShapeBox(0.5, 0.5)
	edge := box2d.NewB2EdgeShape(box2d.MakeB2Vec2(-1, 0), box2d.MakeB2Vec2(1, 0))

	tests := []struct {
		name    string
		a, b    box2d.B2ShapeInterface
		order   uint8
		primary bool
	}{
		{"circle circle", circle, circle, box2d.B2ShapePair.E_primary, true},
		{"polygon circle", box, circle, box2d.B2ShapePair.E_primary, true},
		{"circle polygon", circle, box, box2d.B2ShapePair.E_swapped, false},
		{"edge polygon", edge, box, box2d.B2ShapePair.E_primary, true},
		{"polygon edge", box, edge, box2d.B2ShapePair.E_swapped, false},
		{"edge edge", edge, edge, box2d.B2ShapePair.E_unsupported, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if order := box2d.B2ShapePairOrder(tt.a.GetType(), tt.b.GetType()); order != tt.order {
				t.Errorf("B2ShapePairOrder = %d, want %d", order, tt.order)
			}

			var m box2d.B2Manifold
			ok := box2d.B2CollideShapes(&m, tt.a, 0, xf(0, 0, 0), tt.b, 0, xf(0, 0.3, 0))
			if ok != tt.primary {
				t.Errorf("B2CollideShapes = %v, want %v", ok, tt.primary)
			}
			if !ok && m.PointCount != 0 {
				t.Errorf("unsupported order left %d points", m.PointCount)
			}
		})
	}
}

func TestClipSegmentToLine(t *testing.T) {
	vIn := [2]box2d.B2ClipVertex{
		{V: box2d.MakeB2Vec2(-1, 0), Id: box2d.B2ContactID{IndexB: 4}},
		{V: box2d.MakeB2Vec2(1, 0), Id: box2d.B2ContactID{IndexB: 5}},
	}

	var vOut [2]box2d.B2ClipVertex
	n := box2d.B2ClipSegmentToLine(&vOut, vIn, box2d.MakeB2Vec2(1, 0), 0.5, 3)
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
	if vOut[0].V != vIn[0].V || vOut[0].Id != vIn[0].Id {
		t.Errorf("kept point = %+v, want %+v", vOut[0], vIn[0])
	}

	want := box2d.B2ContactID{
		IndexA: 3,
		IndexB: 4,
		TypeA:  box2d.B2ContactFeature_Type.E_vertex,
		TypeB:  box2d.B2ContactFeature_Type.E_face,
	}
	if math.Abs(vOut[1].V.X-0.5) > 1e-12 || vOut[1].Id != want {
		t.Errorf("clipped point = %+v, want x = 0.5 id %v", vOut[1], want)
	}

	if n := box2d.B2ClipSegmentToLine(&vOut, vIn, box2d.MakeB2Vec2(1, 0), -2, 3); n != 0 {
		t.Errorf("count = %d for a segment fully outside, want 0", n)
	}
}

func TestGetPointStates(t *testing.T) {
	x := box2d.B2ContactID{IndexA: 1, TypeA: box2d.B2ContactFeature_Type.E_face}
	y := box2d.B2ContactID{IndexA: 1, IndexB: 1, TypeA: box2d.B2ContactFeature_Type.E_face}
	z := box2d.B2ContactID{IndexA: 2, IndexB: 3}

	var m1, m2 box2d.B2Manifold
	m1.PointCount = 2
	m1.Points[0].Id = x
	m1.Points[1].Id = y
	m2.PointCount = 2
	m2.Points[0].Id = x
	m2.Points[1].Id = z

	state1, state2 := box2d.B2GetPointStates(m1, m2)

	ps := box2d.B2PointState
	if state1 != [2]uint8{ps.B2_persistState, ps.B2_removeState} {
		t.Errorf("state1 = %v", state1)
	}
	if state2 != [2]uint8{ps.B2_persistState, ps.B2_addState} {
		t.Errorf("state2 = %v", state2)
	}
}

func TestContactIDKey(t *testing.T) {
	id := box2d.B2ContactID{IndexA: 1, IndexB: 2, TypeA: 1, TypeB: 0}

	var back box2d.B2ContactID
	back.SetKey(id.Key())
	if back != id {
		t.Errorf("SetKey(Key()) = %v, want %v", back, id)
	}

	if got := id.Swapped(); got.IndexA != 2 || got.TypeB != 1 || got.Swapped() != id {
		t.Errorf("Swapped = %v", got)
	}
	if id.String() != "f1/v2" {
		t.Errorf("String = %q, want f1/v2", id.String())
	}
}
