package globeengine

import (
	"math"
)

// IsValidLatitude reports whether v is a finite latitude in [-90, 90].
func IsValidLatitude(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) <= 90
}

// IsValidLongitude reports whether v is a finite longitude in [-180, 180].
func IsValidLongitude(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) <= 180
}

// Vec3 is a position on (or above) the unit sphere.
type Vec3 struct {
	X, Y, Z float64
}

// LatLngToVec3 maps degrees to the unit sphere. Longitude 0 faces the
// viewer at zero rotation; +Y is north.
func LatLngToVec3(lat, lng float64) Vec3 {
	phi := lat * math.Pi / 180
	theta := lng * math.Pi / 180
	return Vec3{
		X: math.Cos(phi) * math.Sin(theta),
		Y: math.Sin(phi),
		Z: math.Cos(phi) * math.Cos(theta),
	}
}

func (v Vec3) dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Slerp interpolates along the great circle between two unit vectors.
func Slerp(a, b Vec3, t float64) Vec3 {
	d := a.dot(b)
	if d > 1 {
		d = 1
	}
	if d < -1 {
		d = -1
	}
	omega := math.Acos(d)
	if omega < 1e-9 {
		// Endpoints coincide; linear blend is exact enough.
		return a.scale(1 - t).add(b.scale(t))
	}
	so := math.Sin(omega)
	return a.scale(math.Sin((1-t)*omega) / so).add(b.scale(math.Sin(t*omega) / so))
}

// ArcPosition returns the point at progress t along the arc between two
// coordinates, lifted above the sphere by a sin bulge scaled with alt.
func ArcPosition(startLat, startLng, endLat, endLng, alt, t float64) Vec3 {
	p := Slerp(LatLngToVec3(startLat, startLng), LatLngToVec3(endLat, endLng), t)
	return p.scale(1 + alt*math.Sin(t*math.Pi))
}

// Projector turns sphere positions into screen coordinates: rotation about
// the polar axis, a fixed viewing tilt, then orthographic projection.
type Projector struct {
	width, height int
	radius        float64
	rotation      float64
	tilt          float64
}

func NewProjector(width, height int, radius float64) *Projector {
	return &Projector{
		width:  width,
		height: height,
		radius: radius,
		tilt:   18 * math.Pi / 180,
	}
}

func (p *Projector) Radius() float64 { return p.radius }

// SetRotation sets the globe spin angle in radians.
func (p *Projector) SetRotation(rad float64) {
	p.rotation = rad
}

// Project maps a sphere position to screen space. depth > 0 means the
// position is on the viewer-facing hemisphere.
func (p *Projector) Project(v Vec3) (x, y, depth float64) {
	sinR, cosR := math.Sincos(p.rotation)
	rx := v.X*cosR + v.Z*sinR
	rz := -v.X*sinR + v.Z*cosR

	sinT, cosT := math.Sincos(p.tilt)
	ry := v.Y*cosT - rz*sinT
	rz = v.Y*sinT + rz*cosT

	x = float64(p.width)/2 + p.radius*rx
	y = float64(p.height)/2 - p.radius*ry
	return x, y, rz
}

// ProjectLatLng projects a geographic coordinate on the sphere surface.
// visible is false for the far hemisphere.
func (p *Projector) ProjectLatLng(lat, lng float64) (x, y float64, visible bool) {
	x, y, depth := p.Project(LatLngToVec3(lat, lng))
	return x, y, depth > 0
}
