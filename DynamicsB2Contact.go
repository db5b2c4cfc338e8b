package box2d

import (
	"math"
)

/// Friction mixing law. The idea is to allow either shape to drive the friction to zero.
/// For example, anything slides on ice.
func B2MixFriction(friction1, friction2 float64) float64 {
	return math.Sqrt(friction1 * friction2)
}

/// Restitution mixing law. The idea is allow for anything to bounce off an inelastic surface.
/// For example, a superball bounces on anything.
func B2MixRestitution(restitution1, restitution2 float64) float64 {
	return math.Max(restitution1, restitution2)
}

var B2Contact_Flag = struct {
	// Set when the shapes are touching.
	E_touchingFlag uint32

	// This contact can be disabled (by user)
	E_enabledFlag uint32
}{
	E_touchingFlag: 0x0002,
	E_enabledFlag:  0x0004,
}

/// Contact impulses for reporting. These match up one-to-one with the
/// contact points of the manifold.
type B2ContactImpulse struct {
	NormalImpulses  [B2_maxManifoldPoints]float64
	TangentImpulses [B2_maxManifoldPoints]float64
	Count           int
}

/// Receives touch transitions from B2Contact.Update and impulse reports
/// from the external contact solver. A nil listener is allowed everywhere.
type B2ContactListenerInterface interface {
	/// Called when the two shapes begin to touch.
	BeginContact(contact *B2Contact)

	/// Called when the two shapes cease to touch.
	EndContact(contact *B2Contact)

	/// Called after every update that leaves the shapes touching, before the
	/// contact goes to the solver. oldManifold is the manifold of the
	/// previous update.
	PreSolve(contact *B2Contact, oldManifold B2Manifold)

	/// Called by ReportImpulses once the solver has written its impulses.
	PostSolve(contact *B2Contact, impulse *B2ContactImpulse)
}

/// B2Contact tracks one pair of shape children across frames. It owns the
/// manifold and the accumulated impulses of its points; on every update the
/// impulses follow their contact ID so the solver can warm start.
type B2Contact struct {
	M_flags uint32

	M_shapeA   B2ShapeInterface
	M_shapeB   B2ShapeInterface
	M_indexA   int
	M_indexB   int
	M_manifold B2Manifold

	M_normalImpulses  [B2_maxManifoldPoints]float64
	M_tangentImpulses [B2_maxManifoldPoints]float64

	M_friction     float64
	M_restitution  float64
	M_tangentSpeed float64

	M_userData interface{}
}

/// MakeB2Contact pairs child indexA of shapeA with child indexB of shapeB.
/// The shapes are exchanged when needed so that A is the primary shape of
/// the pair; GetShapeA tells which one ended up first.
func MakeB2Contact(shapeA B2ShapeInterface, indexA int, shapeB B2ShapeInterface, indexB int) B2Contact {
	order := B2ShapePairOrder(shapeA.GetType(), shapeB.GetType())
	B2Assert(order != B2ShapePair.E_unsupported, "shape pair cannot collide")

	if order == B2ShapePair.E_swapped {
		shapeA, shapeB = shapeB, shapeA
		indexA, indexB = indexB, indexA
	}

	return B2Contact{
		M_flags:       B2Contact_Flag.E_enabledFlag,
		M_shapeA:      shapeA,
		M_shapeB:      shapeB,
		M_indexA:      indexA,
		M_indexB:      indexB,
		M_friction:    0.2,
		M_restitution: 0.0,
	}
}

func NewB2Contact(shapeA B2ShapeInterface, indexA int, shapeB B2ShapeInterface, indexB int) *B2Contact {
	res := MakeB2Contact(shapeA, indexA, shapeB, indexB)
	return &res
}

func (contact B2Contact) GetShapeA() B2ShapeInterface {
	return contact.M_shapeA
}

func (contact B2Contact) GetShapeB() B2ShapeInterface {
	return contact.M_shapeB
}

func (contact B2Contact) GetChildIndexA() int {
	return contact.M_indexA
}

func (contact B2Contact) GetChildIndexB() int {
	return contact.M_indexB
}

func (contact *B2Contact) GetManifold() *B2Manifold {
	return &contact.M_manifold
}

/// World manifold for the given shape transforms.
func (contact B2Contact) GetWorldManifold(worldManifold *B2WorldManifold, xfA, xfB B2Transform) {
	worldManifold.Initialize(&contact.M_manifold, xfA, contact.M_shapeA.GetRadius(), xfB, contact.M_shapeB.GetRadius())
}

/// Disable the contact for the current update. Update re-enables it.
func (contact *B2Contact) SetEnabled(flag bool) {
	if flag {
		contact.M_flags |= B2Contact_Flag.E_enabledFlag
	} else {
		contact.M_flags &= ^B2Contact_Flag.E_enabledFlag
	}
}

func (contact B2Contact) IsEnabled() bool {
	return contact.M_flags&B2Contact_Flag.E_enabledFlag == B2Contact_Flag.E_enabledFlag
}

func (contact B2Contact) IsTouching() bool {
	return contact.M_flags&B2Contact_Flag.E_touchingFlag == B2Contact_Flag.E_touchingFlag
}

func (contact B2Contact) GetFriction() float64 {
	return contact.M_friction
}

func (contact *B2Contact) SetFriction(friction float64) {
	contact.M_friction = friction
}

func (contact B2Contact) GetRestitution() float64 {
	return contact.M_restitution
}

func (contact *B2Contact) SetRestitution(restitution float64) {
	contact.M_restitution = restitution
}

func (contact B2Contact) GetTangentSpeed() float64 {
	return contact.M_tangentSpeed
}

func (contact *B2Contact) SetTangentSpeed(speed float64) {
	contact.M_tangentSpeed = speed
}

func (contact B2Contact) GetUserData() interface{} {
	return contact.M_userData
}

func (contact *B2Contact) SetUserData(data interface{}) {
	contact.M_userData = data
}

/// Accumulated impulses of manifold point i.
func (contact B2Contact) GetImpulses(i int) (normal, tangent float64) {
	B2Assert(0 <= i && i < contact.M_manifold.PointCount, "manifold point out of range")
	return contact.M_normalImpulses[i], contact.M_tangentImpulses[i]
}

/// Store the impulses computed by the contact solver for manifold point i.
func (contact *B2Contact) SetImpulses(i int, normal, tangent float64) {
	B2Assert(0 <= i && i < contact.M_manifold.PointCount, "manifold point out of range")
	contact.M_normalImpulses[i] = normal
	contact.M_tangentImpulses[i] = tangent
}

/// Update re-collides the pair at the given transforms. Impulses of points
/// whose ID survived are carried over, new points start from zero. The
/// listener sees BeginContact / EndContact on touch transitions and
/// PreSolve whenever the shapes touch after the update.
func (contact *B2Contact) Update(xfA, xfB B2Transform, listener B2ContactListenerInterface) {
	oldManifold := contact.M_manifold
	oldNormal := contact.M_normalImpulses
	oldTangent := contact.M_tangentImpulses

	contact.M_flags |= B2Contact_Flag.E_enabledFlag
	wasTouching := contact.IsTouching()

	B2CollideShapes(&contact.M_manifold, contact.M_shapeA, contact.M_indexA, xfA, contact.M_shapeB, contact.M_indexB, xfB)
	touching := contact.M_manifold.PointCount > 0

	contact.M_normalImpulses = [B2_maxManifoldPoints]float64{}
	contact.M_tangentImpulses = [B2_maxManifoldPoints]float64{}
	for i := 0; i < contact.M_manifold.PointCount; i++ {
		if j := oldManifold.FindPoint(contact.M_manifold.Points[i].Id); j >= 0 {
			contact.M_normalImpulses[i] = oldNormal[j]
			contact.M_tangentImpulses[i] = oldTangent[j]
		}
	}

	if touching {
		contact.M_flags |= B2Contact_Flag.E_touchingFlag
	} else {
		contact.M_flags &= ^B2Contact_Flag.E_touchingFlag
	}

	if listener == nil {
		return
	}

	if !wasTouching && touching {
		listener.BeginContact(contact)
	}
	if wasTouching && !touching {
		listener.EndContact(contact)
	}
	if touching {
		listener.PreSolve(contact, oldManifold)
	}
}

/// ReportImpulses hands the stored impulses to listener.PostSolve.
func (contact *B2Contact) ReportImpulses(listener B2ContactListenerInterface) {
	if listener == nil || !contact.IsTouching() {
		return
	}

	impulse := B2ContactImpulse{
		NormalImpulses:  contact.M_normalImpulses,
		TangentImpulses: contact.M_tangentImpulses,
		Count:           contact.M_manifold.PointCount,
	}
	listener.PostSolve(contact, &impulse)
}
