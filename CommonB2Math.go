package box2d

import (
	"fmt"
	"math"
)

/// Reports whether x is a finite number.
func B2IsValid(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

///////////////////////////////////////////////////////////////////////////////
/// B2Vec2 is a 2D column vector. All vector helpers take and return values.
///////////////////////////////////////////////////////////////////////////////
type B2Vec2 struct {
	X, Y float64
}

func MakeB2Vec2(x, y float64) B2Vec2 {
	return B2Vec2{X: x, Y: y}
}

/// Useful constant
var B2Vec2_zero = MakeB2Vec2(0, 0)

func (v *B2Vec2) SetZero() {
	v.X, v.Y = 0, 0
}

func (v *B2Vec2) Set(x, y float64) {
	v.X, v.Y = x, y
}

func (v B2Vec2) OperatorNegate() B2Vec2 {
	return B2Vec2{-v.X, -v.Y}
}

func (v *B2Vec2) OperatorPlusInplace(o B2Vec2) {
	v.X += o.X
	v.Y += o.Y
}

func (v *B2Vec2) OperatorMinusInplace(o B2Vec2) {
	v.X -= o.X
	v.Y -= o.Y
}

func (v *B2Vec2) OperatorScalarMulInplace(s float64) {
	v.X *= s
	v.Y *= s
}

func (v B2Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v B2Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

/// Normalize scales v to unit length and returns its previous length.
/// A vector shorter than B2_epsilon is left untouched and 0 is returned.
func (v *B2Vec2) Normalize() float64 {
	length := v.Length()
	if length < B2_epsilon {
		return 0.0
	}

	inv := 1.0 / length
	v.X *= inv
	v.Y *= inv
	return length
}

func (v B2Vec2) IsValid() bool {
	return B2IsValid(v.X) && B2IsValid(v.Y)
}

/// Skew returns the vector s such that dot(s, o) == cross(v, o).
func (v B2Vec2) Skew() B2Vec2 {
	return B2Vec2{-v.Y, v.X}
}

func (v B2Vec2) String() string {
	return fmt.Sprintf("(%.15e, %.15e)", v.X, v.Y)
}

func B2Vec2Dot(a, b B2Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

/// 2D cross product, a scalar.
func B2Vec2Cross(a, b B2Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

/// Cross of a vector with a scalar: (s*a.y, -s*a.x).
func B2Vec2CrossVectorScalar(a B2Vec2, s float64) B2Vec2 {
	return B2Vec2{s * a.Y, -s * a.X}
}

/// Cross of a scalar with a vector: (-s*a.y, s*a.x).
func B2Vec2CrossScalarVector(s float64, a B2Vec2) B2Vec2 {
	return B2Vec2{-s * a.Y, s * a.X}
}

func B2Vec2Add(a, b B2Vec2) B2Vec2 {
	return B2Vec2{a.X + b.X, a.Y + b.Y}
}

func B2Vec2Sub(a, b B2Vec2) B2Vec2 {
	return B2Vec2{a.X - b.X, a.Y - b.Y}
}

func B2Vec2MulScalar(s float64, a B2Vec2) B2Vec2 {
	return B2Vec2{s * a.X, s * a.Y}
}

func B2Vec2Distance(a, b B2Vec2) float64 {
	return B2Vec2Sub(a, b).Length()
}

func B2Vec2DistanceSquared(a, b B2Vec2) float64 {
	return B2Vec2Sub(a, b).LengthSquared()
}

func B2Vec2Abs(a B2Vec2) B2Vec2 {
	return B2Vec2{math.Abs(a.X), math.Abs(a.Y)}
}

func B2Vec2Min(a, b B2Vec2) B2Vec2 {
	return B2Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
}

func B2Vec2Max(a, b B2Vec2) B2Vec2 {
	return B2Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
}

/// Clamp a to [low, high]. Infinite bounds are ignored.
func B2FloatClamp(a, low, high float64) float64 {
	if B2IsValid(high) {
		a = math.Min(a, high)
	}
	if B2IsValid(low) {
		a = math.Max(a, low)
	}
	return a
}

///////////////////////////////////////////////////////////////////////////////
/// B2Vec3 is used by the 3x3 block solvers.
///////////////////////////////////////////////////////////////////////////////
type B2Vec3 struct {
	X, Y, Z float64
}

func MakeB2Vec3(x, y, z float64) B2Vec3 {
	return B2Vec3{X: x, Y: y, Z: z}
}

func (v *B2Vec3) SetZero() {
	v.X, v.Y, v.Z = 0, 0, 0
}

func (v B2Vec3) OperatorNegate() B2Vec3 {
	return B2Vec3{-v.X, -v.Y, -v.Z}
}

func (v *B2Vec3) OperatorPlusInplace(o B2Vec3) {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
}

func (v *B2Vec3) OperatorScalarMulInplace(s float64) {
	v.X *= s
	v.Y *= s
	v.Z *= s
}

func B2Vec3MulScalar(s float64, a B2Vec3) B2Vec3 {
	return B2Vec3{s * a.X, s * a.Y, s * a.Z}
}

func B2Vec3Add(a, b B2Vec3) B2Vec3 {
	return B2Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func B2Vec3Sub(a, b B2Vec3) B2Vec3 {
	return B2Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func B2Vec3Dot(a, b B2Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func B2Vec3Cross(a, b B2Vec3) B2Vec3 {
	return B2Vec3{a.Y*b.Z - a.Z*b.Y, a.Z*b.X - a.X*b.Z, a.X*b.Y - a.Y*b.X}
}

///////////////////////////////////////////////////////////////////////////////
/// B2Mat22 is a 2-by-2 matrix stored by columns.
///////////////////////////////////////////////////////////////////////////////
type B2Mat22 struct {
	Ex, Ey B2Vec2
}

func MakeB2Mat22FromColumns(c1, c2 B2Vec2) B2Mat22 {
	return B2Mat22{Ex: c1, Ey: c2}
}

func MakeB2Mat22FromScalars(a11, a12, a21, a22 float64) B2Mat22 {
	return B2Mat22{Ex: B2Vec2{a11, a21}, Ey: B2Vec2{a12, a22}}
}

func (m *B2Mat22) SetZero() {
	m.Ex.SetZero()
	m.Ey.SetZero()
}

// Returns 1/det, or 0 when the matrix is singular.
func invDet(det float64) float64 {
	if det != 0.0 {
		return 1.0 / det
	}
	return 0.0
}

/// GetInverse returns the zero matrix when m is singular.
func (m B2Mat22) GetInverse() B2Mat22 {
	a, b, c, d := m.Ex.X, m.Ey.X, m.Ex.Y, m.Ey.Y
	det := invDet(a*d - b*c)
	return MakeB2Mat22FromScalars(det*d, -det*b, -det*c, det*a)
}

/// Solve m * x = b. A singular matrix yields the zero vector.
func (m B2Mat22) Solve(b B2Vec2) B2Vec2 {
	a11, a12, a21, a22 := m.Ex.X, m.Ey.X, m.Ex.Y, m.Ey.Y
	det := invDet(a11*a22 - a12*a21)
	return B2Vec2{det * (a22*b.X - a12*b.Y), det * (a11*b.Y - a21*b.X)}
}

func B2Vec2Mat22Mul(A B2Mat22, v B2Vec2) B2Vec2 {
	return B2Vec2{A.Ex.X*v.X + A.Ey.X*v.Y, A.Ex.Y*v.X + A.Ey.Y*v.Y}
}

///////////////////////////////////////////////////////////////////////////////
/// B2Mat33 is a 3-by-3 matrix stored by columns.
///////////////////////////////////////////////////////////////////////////////
type B2Mat33 struct {
	Ex, Ey, Ez B2Vec3
}

func MakeB2Mat33FromColumns(c1, c2, c3 B2Vec3) B2Mat33 {
	return B2Mat33{Ex: c1, Ey: c2, Ez: c3}
}

func (m *B2Mat33) SetZero() {
	m.Ex.SetZero()
	m.Ey.SetZero()
	m.Ez.SetZero()
}

/// Solve m * x = b using Cramer's rule. A singular matrix yields zero.
func (m B2Mat33) Solve33(b B2Vec3) B2Vec3 {
	det := invDet(B2Vec3Dot(m.Ex, B2Vec3Cross(m.Ey, m.Ez)))
	return B2Vec3{
		X: det * B2Vec3Dot(b, B2Vec3Cross(m.Ey, m.Ez)),
		Y: det * B2Vec3Dot(m.Ex, B2Vec3Cross(b, m.Ez)),
		Z: det * B2Vec3Dot(m.Ex, B2Vec3Cross(m.Ey, b)),
	}
}

/// Solve the upper-left 2x2 block of m against b.
func (m B2Mat33) Solve22(b B2Vec2) B2Vec2 {
	a11, a12, a21, a22 := m.Ex.X, m.Ey.X, m.Ex.Y, m.Ey.Y
	det := invDet(a11*a22 - a12*a21)
	return B2Vec2{det * (a22*b.X - a12*b.Y), det * (a11*b.Y - a21*b.X)}
}

/// GetInverse22 writes the inverse of the upper-left 2x2 block into M,
/// zeroing the third row and column.
func (m B2Mat33) GetInverse22(M *B2Mat33) {
	a, b, c, d := m.Ex.X, m.Ey.X, m.Ex.Y, m.Ey.Y
	det := invDet(a*d - b*c)

	*M = B2Mat33{
		Ex: B2Vec3{det * d, -det * c, 0},
		Ey: B2Vec3{-det * b, det * a, 0},
	}
}

/// GetSymInverse33 writes the inverse of the symmetric matrix m into M.
/// M is zero when m is singular.
func (m B2Mat33) GetSymInverse33(M *B2Mat33) {
	det := invDet(B2Vec3Dot(m.Ex, B2Vec3Cross(m.Ey, m.Ez)))

	a11, a12, a13 := m.Ex.X, m.Ey.X, m.Ez.X
	a22, a23 := m.Ey.Y, m.Ez.Y
	a33 := m.Ez.Z

	M.Ex.X = det * (a22*a33 - a23*a23)
	M.Ex.Y = det * (a13*a23 - a12*a33)
	M.Ex.Z = det * (a12*a23 - a13*a22)

	M.Ey.X = M.Ex.Y
	M.Ey.Y = det * (a11*a33 - a13*a13)
	M.Ey.Z = det * (a13*a12 - a11*a23)

	M.Ez.X = M.Ex.Z
	M.Ez.Y = M.Ey.Z
	M.Ez.Z = det * (a11*a22 - a12*a12)
}

func B2Vec3Mat33Mul(A B2Mat33, v B2Vec3) B2Vec3 {
	return B2Vec3Add(
		B2Vec3Add(B2Vec3MulScalar(v.X, A.Ex), B2Vec3MulScalar(v.Y, A.Ey)),
		B2Vec3MulScalar(v.Z, A.Ez),
	)
}

/// Multiply the upper-left 2x2 block of A by v.
func B2Vec2Mul22(A B2Mat33, v B2Vec2) B2Vec2 {
	return B2Vec2{A.Ex.X*v.X + A.Ey.X*v.Y, A.Ex.Y*v.X + A.Ey.Y*v.Y}
}

///////////////////////////////////////////////////////////////////////////////
/// B2Rot stores a rotation as its sine and cosine.
///////////////////////////////////////////////////////////////////////////////
type B2Rot struct {
	S, C float64
}

func MakeB2Rot() B2Rot {
	return B2Rot{S: 0, C: 1}
}

func MakeB2RotFromAngle(angle float64) B2Rot {
	return B2Rot{S: math.Sin(angle), C: math.Cos(angle)}
}

func (r *B2Rot) Set(angle float64) {
	r.S, r.C = math.Sin(angle), math.Cos(angle)
}

func (r *B2Rot) SetIdentity() {
	r.S, r.C = 0, 1
}

func (r B2Rot) GetAngle() float64 {
	return math.Atan2(r.S, r.C)
}

func (r B2Rot) GetXAxis() B2Vec2 {
	return B2Vec2{r.C, r.S}
}

func (r B2Rot) GetYAxis() B2Vec2 {
	return B2Vec2{-r.S, r.C}
}

/// q * r
func B2RotMul(q, r B2Rot) B2Rot {
	return B2Rot{S: q.S*r.C + q.C*r.S, C: q.C*r.C - q.S*r.S}
}

/// transpose(q) * r
func B2RotMulT(q, r B2Rot) B2Rot {
	return B2Rot{S: q.C*r.S - q.S*r.C, C: q.C*r.C + q.S*r.S}
}

func B2RotVec2Mul(q B2Rot, v B2Vec2) B2Vec2 {
	return B2Vec2{q.C*v.X - q.S*v.Y, q.S*v.X + q.C*v.Y}
}

func B2RotVec2MulT(q B2Rot, v B2Vec2) B2Vec2 {
	return B2Vec2{q.C*v.X + q.S*v.Y, -q.S*v.X + q.C*v.Y}
}

///////////////////////////////////////////////////////////////////////////////
/// B2Transform is a rigid frame: translation P then rotation Q.
///////////////////////////////////////////////////////////////////////////////
type B2Transform struct {
	P B2Vec2
	Q B2Rot
}

/// MakeB2Transform returns the identity transform.
func MakeB2Transform() B2Transform {
	return B2Transform{Q: MakeB2Rot()}
}

func MakeB2TransformByPositionAndRotation(position B2Vec2, rotation B2Rot) B2Transform {
	return B2Transform{P: position, Q: rotation}
}

/// Shorthand for a transform built from a position and an angle.
func MakeB2TransformFromAngle(position B2Vec2, angle float64) B2Transform {
	return B2Transform{P: position, Q: MakeB2RotFromAngle(angle)}
}

func (t *B2Transform) SetIdentity() {
	t.P.SetZero()
	t.Q.SetIdentity()
}

func (t *B2Transform) Set(position B2Vec2, angle float64) {
	t.P = position
	t.Q.Set(angle)
}

func B2TransformVec2Mul(T B2Transform, v B2Vec2) B2Vec2 {
	return B2Vec2{
		(T.Q.C*v.X - T.Q.S*v.Y) + T.P.X,
		(T.Q.S*v.X + T.Q.C*v.Y) + T.P.Y,
	}
}

func B2TransformVec2MulT(T B2Transform, v B2Vec2) B2Vec2 {
	px := v.X - T.P.X
	py := v.Y - T.P.Y
	return B2Vec2{T.Q.C*px + T.Q.S*py, -T.Q.S*px + T.Q.C*py}
}

func B2TransformMul(A, B B2Transform) B2Transform {
	return B2Transform{
		P: B2Vec2Add(B2RotVec2Mul(A.Q, B.P), A.P),
		Q: B2RotMul(A.Q, B.Q),
	}
}

/// transpose(A) * B, i.e. B expressed in the frame of A.
func B2TransformMulT(A, B B2Transform) B2Transform {
	return B2Transform{
		P: B2RotVec2MulT(A.Q, B2Vec2Sub(B.P, A.P)),
		Q: B2RotMulT(A.Q, B.Q),
	}
}

///////////////////////////////////////////////////////////////////////////////
/// B2Sweep tracks a body's center of mass and angle. Shapes are attached to
/// the body origin, which is offset from the center by LocalCenter.
///////////////////////////////////////////////////////////////////////////////
type B2Sweep struct {
	LocalCenter B2Vec2  ///< local center of mass position
	C0, C       B2Vec2  ///< center world positions
	A0, A       float64 ///< world angles
}

/// GetTransform interpolates the body origin transform at fraction beta of
/// the step.
func (sweep B2Sweep) GetTransform(xf *B2Transform, beta float64) {
	xf.P = B2Vec2Add(
		B2Vec2MulScalar(1.0-beta, sweep.C0),
		B2Vec2MulScalar(beta, sweep.C),
	)
	xf.Q.Set((1.0-beta)*sweep.A0 + beta*sweep.A)
	xf.P.OperatorMinusInplace(B2RotVec2Mul(xf.Q, sweep.LocalCenter))
}

/// Normalize keeps A0 in [0, 2pi) and shifts A by the same amount.
func (sweep *B2Sweep) Normalize() {
	twoPi := 2.0 * B2_pi
	d := twoPi * math.Floor(sweep.A0/twoPi)
	sweep.A0 -= d
	sweep.A -= d
}
