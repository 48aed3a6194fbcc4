package mathutil

import "github.com/chewxy/math32"

// Quat represents a quaternion (x, y, z, w).
type Quat [4]float32

func QuatIdentity() Quat { return Quat{0, 0, 0, 1} }

// QuatAxisAngle returns the rotation of rad radians around axis.
func QuatAxisAngle(rad float32, axis Vec3) Quat {
	a := axis.Normalize()
	s, c := math32.Sincos(rad * 0.5)
	return Quat{a[0] * s, a[1] * s, a[2] * s, c}
}

// EulerToQuat converts Euler angles (radians) to a quaternion. The result
// rotates around X first, then Y, then Z.
func EulerToQuat(rx, ry, rz float32) Quat {
	sx, cx := math32.Sincos(rx * 0.5)
	sy, cy := math32.Sincos(ry * 0.5)
	sz, cz := math32.Sincos(rz * 0.5)

	return Quat{
		sx*cy*cz - cx*sy*sz, // x
		cx*sy*cz + sx*cy*sz, // y
		cx*cy*sz - sx*sy*cz, // z
		cx*cy*cz + sx*sy*sz, // w
	}
}

// Mul returns the Hamilton product q × o (apply o, then q).
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		q[3]*o[0] + q[0]*o[3] + q[1]*o[2] - q[2]*o[1],
		q[3]*o[1] - q[0]*o[2] + q[1]*o[3] + q[2]*o[0],
		q[3]*o[2] + q[0]*o[1] - q[1]*o[0] + q[2]*o[3],
		q[3]*o[3] - q[0]*o[0] - q[1]*o[1] - q[2]*o[2],
	}
}

func (q Quat) Normalize() Quat {
	l := math32.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// Mat4 converts a unit quaternion to a column-major rotation matrix.
func (q Quat) Mat4() Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}
