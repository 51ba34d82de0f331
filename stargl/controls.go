package stargl

import "github.com/chewxy/math32"

// OrbitController orbits a camera around Target with inertial rotation.
//
// Yaw is measured from +X toward +Z, Pitch from the XZ plane toward +Y. Rotate
// queues an angular delta that Update spends gradually when Damping is set, so
// a drag keeps coasting after release. It does not depend on any input system.
type OrbitController struct {
	Target Vec3
	Yaw    Scalar
	Pitch  Scalar
	Radius Scalar

	MinRadius Scalar
	MaxRadius Scalar

	// Damping is the fraction of the pending delta applied per 1/60 s. 0 disables inertia.
	Damping Scalar

	pendingYaw   Scalar
	pendingPitch Scalar
}

const maxPitch = math32.Pi/2 - 0.001

// NewOrbitFrom returns a controller whose orbit passes through pos.
func NewOrbitFrom(pos, target Vec3) *OrbitController {
	d := pos.Sub(target)
	r := Len(d)
	c := &OrbitController{Target: target, Radius: r}
	if r == 0 {
		return c
	}
	c.Yaw = math32.Atan2(d.Z, d.X)
	c.Pitch = math32.Asin(Clamp(d.Y/r, -1, 1))
	return c
}

// Rotate queues a yaw/pitch delta in radians.
func (c *OrbitController) Rotate(deltaYaw, deltaPitch Scalar) {
	c.pendingYaw += deltaYaw
	c.pendingPitch += deltaPitch
}

// Zoom multiplies the orbit radius by scale, honoring the radius limits.
func (c *OrbitController) Zoom(scale Scalar) {
	if scale <= 0 {
		return
	}
	c.Radius = c.clampRadius(c.Radius * scale)
}

// Pending returns the rotation not yet applied.
func (c *OrbitController) Pending() (yaw, pitch Scalar) { return c.pendingYaw, c.pendingPitch }

// Update spends queued rotation for a frame of dt seconds.
func (c *OrbitController) Update(dt Scalar) {
	if dt <= 0 {
		dt = 1.0 / 60
	}
	f := Scalar(1)
	if c.Damping > 0 && c.Damping < 1 {
		f = 1 - math32.Pow(1-c.Damping, dt*60)
	}

	dy := c.pendingYaw * f
	dp := c.pendingPitch * f
	c.Yaw += dy
	c.Pitch = Clamp(c.Pitch+dp, -maxPitch, maxPitch)
	c.pendingYaw -= dy
	c.pendingPitch -= dp

	const eps = 1e-6
	if math32.Abs(c.pendingYaw) < eps {
		c.pendingYaw = 0
	}
	if math32.Abs(c.pendingPitch) < eps {
		c.pendingPitch = 0
	}
}

// Position returns the eye position with extraYaw added to the orbit angle.
func (c *OrbitController) Position(extraYaw Scalar) Vec3 {
	r := c.clampRadius(c.Radius)
	sy, cy := math32.Sincos(c.Yaw + extraYaw)
	sp, cp := math32.Sincos(c.Pitch)
	return c.Target.Add(V3(r*cp*cy, r*sp, r*cp*sy))
}

// Apply places cam on the orbit and aims it at Target.
func (c *OrbitController) Apply(cam *Camera, extraYaw Scalar) {
	if cam == nil {
		return
	}
	cam.Position = c.Position(extraYaw)
	cam.LookAt(c.Target)
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

func (c *OrbitController) clampRadius(r Scalar) Scalar {
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}
	return r
}
