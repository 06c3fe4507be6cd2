package geom

import "gonum.org/v1/gonum/spatial/r3"

// Affine is a 3×4 affine transform: a 3×3 linear part (rotation,
// scale, shear) stored row-major plus a translation column.
type Affine struct {
	m [9]float64
	t r3.Vec
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{m: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// Translate returns a pure translation by v.
func Translate(v r3.Vec) Affine {
	a := Identity()
	a.t = v
	return a
}

// Scale returns a per-axis scaling about the origin.
func Scale(v r3.Vec) Affine {
	return Affine{m: [9]float64{v.X, 0, 0, 0, v.Y, 0, 0, 0, v.Z}}
}

// Rotate returns a rotation about the given axis by theta radians,
// using gonum's quaternion rotation.
func Rotate(theta float64, axis r3.Vec) Affine {
	rot := r3.NewRotation(theta, axis)
	x := rot.Rotate(r3.Vec{X: 1})
	y := rot.Rotate(r3.Vec{Y: 1})
	z := rot.Rotate(r3.Vec{Z: 1})
	// Columns of the linear part are the rotated basis vectors.
	return Affine{m: [9]float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	}}
}

// Mul composes transforms: (a.Mul(b)).MulPosition(p) applies b first.
func (a Affine) Mul(b Affine) Affine {
	var c Affine
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += a.m[3*i+k] * b.m[3*k+j]
			}
			c.m[3*i+j] = s
		}
	}
	c.t = r3.Add(a.mulLinear(b.t), a.t)
	return c
}

func (a Affine) mulLinear(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: a.m[0]*v.X + a.m[1]*v.Y + a.m[2]*v.Z,
		Y: a.m[3]*v.X + a.m[4]*v.Y + a.m[5]*v.Z,
		Z: a.m[6]*v.X + a.m[7]*v.Y + a.m[8]*v.Z,
	}
}

// MulPosition applies the transform to a point.
func (a Affine) MulPosition(v r3.Vec) r3.Vec {
	return r3.Add(a.mulLinear(v), a.t)
}

// Det returns the determinant of the linear part. A negative
// determinant means the transform mirrors and reverses face winding.
func (a Affine) Det() float64 {
	m := a.m
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}
