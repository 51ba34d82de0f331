package stargl

// Blending selects how a point is composited onto the target.
type Blending uint8

const (
	BlendNormal Blending = iota
	BlendAdditive
)

// Camera describes a perspective viewing transform.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad Scalar
	Aspect  Scalar // 0 means "use the target aspect"

	Near Scalar
	Far  Scalar
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the projection matrix. fallbackAspect is used when Aspect is unset.
func (c Camera) Projection(fallbackAspect Scalar) Mat4 {
	aspect := c.Aspect
	if aspect == 0 {
		aspect = fallbackAspect
	}
	fov := c.FOVYRad
	if fov == 0 {
		fov = 1
	}
	return Mat4Perspective(fov, aspect, c.Near, c.Far)
}

// LookAt aims the camera at p.
func (c *Camera) LookAt(p Vec3) { c.Target = p }

// PointCloud is a renderable set of unconnected points.
//
// Positions (and Colors when VertexColors is set) are flat xyz / rgb slices of
// equal length. The cloud owns them until Dispose.
type PointCloud struct {
	Positions []float32
	Colors    []float32

	Size            Scalar
	SizeAttenuation bool
	Blending        Blending
	VertexColors    bool
	Color           Color

	disposed bool
}

// Len returns the number of points.
func (p *PointCloud) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Positions) / 3
}

// Dispose releases the point buffers. A disposed cloud renders nothing.
func (p *PointCloud) Dispose() {
	if p == nil {
		return
	}
	p.Positions = nil
	p.Colors = nil
	p.disposed = true
}

// Disposed reports whether Dispose was called.
func (p *PointCloud) Disposed() bool { return p != nil && p.disposed }

// Scene is an ordered collection of point clouds. Clouds render in insertion order.
type Scene struct {
	Camera Camera

	clouds []*PointCloud
}

// NewScene returns an empty scene with a default camera.
func NewScene() *Scene {
	return &Scene{
		Camera: Camera{
			Position: V3(0, 0, 3),
			Target:   V3(0, 0, 0),
			Up:       V3(0, 1, 0),
			FOVYRad:  Deg2Rad(75),
			Near:     0.1,
			Far:      100,
		},
	}
}

// Add attaches a cloud. Adding a cloud already attached is a no-op.
func (s *Scene) Add(p *PointCloud) {
	if s == nil || p == nil || s.Contains(p) {
		return
	}
	s.clouds = append(s.clouds, p)
}

// Remove detaches a cloud. It reports whether the cloud was attached.
func (s *Scene) Remove(p *PointCloud) bool {
	if s == nil || p == nil {
		return false
	}
	for i, c := range s.clouds {
		if c != p {
			continue
		}
		copy(s.clouds[i:], s.clouds[i+1:])
		s.clouds[len(s.clouds)-1] = nil
		s.clouds = s.clouds[:len(s.clouds)-1]
		return true
	}
	return false
}

// Contains reports whether p is attached.
func (s *Scene) Contains(p *PointCloud) bool {
	if s == nil {
		return false
	}
	for _, c := range s.clouds {
		if c == p {
			return true
		}
	}
	return false
}

// Len returns the number of attached clouds.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.clouds)
}

// InsertAt attaches p at index i, clamped to the current length.
func (s *Scene) InsertAt(i int, p *PointCloud) {
	if s == nil || p == nil || s.Contains(p) {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(s.clouds) {
		i = len(s.clouds)
	}
	s.clouds = append(s.clouds, nil)
	copy(s.clouds[i+1:], s.clouds[i:])
	s.clouds[i] = p
}

// IndexOf returns the render position of p, or -1.
func (s *Scene) IndexOf(p *PointCloud) int {
	if s == nil {
		return -1
	}
	for i, c := range s.clouds {
		if c == p {
			return i
		}
	}
	return -1
}

func (s *Scene) eachCloud(fn func(p *PointCloud)) {
	for _, c := range s.clouds {
		fn(c)
	}
}
