package box2d

import (
	"fmt"
	"io"
	"math"
	"os"
)

// B2Assert panics when a caller breaks a precondition of the package
// (bad feature index, malformed polygon, joint on a single body...).
func B2Assert(a bool, msg ...string) {
	if !a {
		if len(msg) > 0 {
			panic("B2Assert: " + msg[0])
		}
		panic("B2Assert")
	}
}

/// Destination of B2Log and of every Dump method.
var B2LogWriter io.Writer = os.Stdout

/// Logging function used by the dump helpers.
func B2Log(format string, args ...interface{}) {
	fmt.Fprintf(B2LogWriter, format, args...)
}

const B2_maxFloat = math.MaxFloat64
const B2_epsilon = math.SmallestNonzeroFloat64
const B2_pi = math.Pi

/// @file
/// Global tuning constants based on meters-kilograms-seconds (MKS) units.
///

// Collision

/// The maximum number of contact points between two convex shapes. Do
/// not change this value.
const B2_maxManifoldPoints = 2

/// The maximum number of vertices on a convex polygon.
const B2_maxPolygonVertices = 8

/// A small length used as a collision and constraint tolerance. Usually it is
/// chosen to be numerically significant, but visually insignificant.
const B2_linearSlop = 0.005

/// A small angle used as a collision and constraint tolerance. Usually it is
/// chosen to be numerically significant, but visually insignificant.
const B2_angularSlop = (2.0 / 180.0 * B2_pi)

/// The radius of the polygon/edge shape skin. This should not be modified.
const B2_polygonRadius = (2.0 * B2_linearSlop)

// Dynamics

/// The maximum linear position correction used when solving constraints. This helps to
/// prevent overshoot.
const B2_maxLinearCorrection = 0.2

/// The maximum angular position correction used when solving constraints. This helps to
/// prevent overshoot.
const B2_maxAngularCorrection = (8.0 / 180.0 * B2_pi)

/// The maximum linear translation of a body per step.
const B2_maxTranslation = 2.0
const B2_maxTranslationSquared = (B2_maxTranslation * B2_maxTranslation)

/// The maximum rotation of a body per step.
const B2_maxRotation = (0.5 * B2_pi)
const B2_maxRotationSquared = (B2_maxRotation * B2_maxRotation)

/// This scale factor controls how fast overlap is resolved.
const B2_baumgarte = 0.2

// Polygon-polygon reference face tolerance. Face B is only chosen when it
// beats face A by more than this amount.
const b2_referenceFaceTolerance = 0.1 * B2_linearSlop

// Edge-polygon axis hysteresis.
const b2_edgeRelativeTol = 0.98
const b2_edgeAbsoluteTol = 0.001
