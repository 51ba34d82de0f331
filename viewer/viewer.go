// Package viewer owns the galaxy scene: the two point clouds, the camera and
// its orbit, and the rebuild of either cloud when parameters change.
package viewer

import (
	"log/slog"
	"math"
	"time"

	"galaxyview/generator"
	"galaxyview/stargl"
)

const (
	// OrbitRate is the automatic camera orbit speed in radians per second.
	OrbitRate = 0.05
	// MaxPixelRatio caps the device pixel ratio used for the drawing buffer.
	MaxPixelRatio = 2

	dampingFactor = 0.05
	zoomStep      = 0.95
	fovDegrees    = 75
	nearPlane     = 0.1
	farPlane      = 100
)

// InitialCamera is the camera position the orbit radius and angles derive from.
var InitialCamera = stargl.V3(3, 3, 3)

// Options configures a Viewer.
type Options struct {
	Logger    *slog.Logger
	Source    generator.Source
	Galaxy    generator.Parameters
	StarField generator.StarFieldParameters
}

// Viewer is the scene/render component.
type Viewer struct {
	log *slog.Logger
	rnd generator.Source

	scene    *stargl.Scene
	renderer *stargl.Renderer
	orbit    *stargl.OrbitController

	galaxy *stargl.PointCloud
	stars  *stargl.PointCloud

	width, height int
	pixelRatio    float64
}

// Stats summarizes what is attached to the scene.
type Stats struct {
	Clouds       int
	GalaxyPoints int
	StarPoints   int
	Drawn        int
}

// New builds the scene and generates both clouds.
func New(opts Options) *Viewer {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	rnd := opts.Source
	if rnd == nil {
		rnd = generator.NewSource(0)
	}

	scene := stargl.NewScene()
	scene.Camera.Position = InitialCamera
	scene.Camera.FOVYRad = stargl.Deg2Rad(fovDegrees)
	scene.Camera.Near = nearPlane
	scene.Camera.Far = farPlane

	orbit := stargl.NewOrbitFrom(InitialCamera, stargl.Vec3{})
	orbit.Damping = dampingFactor
	orbit.MinRadius = 0.5
	orbit.MaxRadius = farPlane / 2

	v := &Viewer{
		log:        log.With("component", "viewer"),
		rnd:        rnd,
		scene:      scene,
		renderer:   stargl.NewRenderer(),
		orbit:      orbit,
		pixelRatio: 1,
	}
	v.RegenerateStarField(opts.StarField)
	v.RegenerateGalaxy(opts.Galaxy)
	return v
}

// RegenerateGalaxy disposes the current galaxy cloud and attaches a new one built from p.
func (v *Viewer) RegenerateGalaxy(p generator.Parameters) *stargl.PointCloud {
	start := time.Now()
	idx := v.detach(v.galaxy)
	v.galaxy = nil

	buf := generator.Galaxy(p, v.rnd)
	cloud := &stargl.PointCloud{
		Positions:       buf.Positions,
		Colors:          buf.Colors,
		Size:            stargl.Scalar(p.Size),
		SizeAttenuation: true,
		Blending:        stargl.BlendAdditive,
		VertexColors:    true,
	}
	if idx < 0 {
		idx = v.scene.Len()
	}
	v.scene.InsertAt(idx, cloud)
	v.galaxy = cloud

	v.log.Debug("galaxy rebuilt",
		"count", p.Count,
		"branches", p.Branches,
		"radius", p.Radius,
		"spin", p.Spin,
		"took", time.Since(start),
	)
	return cloud
}

// RegenerateStarField disposes the current star cloud and attaches a new one built from p.
func (v *Viewer) RegenerateStarField(p generator.StarFieldParameters) *stargl.PointCloud {
	start := time.Now()
	idx := v.detach(v.stars)
	v.stars = nil

	buf := generator.StarField(p, v.rnd)
	r, g, b := p.Color.RGB255()
	cloud := &stargl.PointCloud{
		Positions:       buf.Positions,
		Size:            stargl.Scalar(p.Size),
		SizeAttenuation: true,
		Blending:        stargl.BlendNormal,
		Color:           stargl.RGB(r, g, b),
	}
	if idx < 0 {
		idx = 0
	}
	v.scene.InsertAt(idx, cloud)
	v.stars = cloud

	v.log.Debug("star field rebuilt", "count", p.Count, "range", p.Range, "took", time.Since(start))
	return cloud
}

func (v *Viewer) detach(old *stargl.PointCloud) int {
	if old == nil {
		return -1
	}
	idx := v.scene.IndexOf(old)
	v.scene.Remove(old)
	old.Dispose()
	return idx
}

// Frame advances the camera: a constant-rate orbit driven by elapsed plus any
// damped user rotation, always aimed at the origin.
func (v *Viewer) Frame(elapsed, dt time.Duration) {
	v.orbit.Update(stargl.Scalar(dt.Seconds()))
	v.orbit.Apply(&v.scene.Camera, stargl.Scalar(elapsed.Seconds()*OrbitRate))
}

// Resize updates the camera aspect for a logical viewport of w×h and returns the
// drawing-buffer size for the given device pixel ratio, capped at MaxPixelRatio.
func (v *Viewer) Resize(w, h int, deviceRatio float64) (pw, ph int) {
	if w <= 0 || h <= 0 {
		return v.width, v.height
	}
	ratio := CapPixelRatio(deviceRatio)
	v.pixelRatio = ratio
	v.scene.Camera.Aspect = stargl.Scalar(w) / stargl.Scalar(h)
	v.renderer.PixelRatio = stargl.Scalar(ratio)
	v.width = int(math.Round(float64(w) * ratio))
	v.height = int(math.Round(float64(h) * ratio))
	v.log.Debug("viewport resized", "width", w, "height", h, "pixel_ratio", ratio)
	return v.width, v.height
}

// CapPixelRatio clamps a device pixel ratio to (0, MaxPixelRatio]; non-positive input means 1.
func CapPixelRatio(r float64) float64 {
	if !(r > 0) {
		return 1
	}
	return math.Min(r, MaxPixelRatio)
}

// Render draws the scene into t.
func (v *Viewer) Render(t stargl.Target) {
	v.renderer.Render(t, v.scene)
}

// Drag rotates the orbit for a pointer drag of dx, dy pixels.
func (v *Viewer) Drag(dx, dy int) {
	h := v.height
	if h <= 0 {
		h = 1
	}
	k := 2 * math.Pi / float64(h)
	v.orbit.Rotate(stargl.Scalar(float64(dx)*k), stargl.Scalar(float64(dy)*k))
}

// Zoom dollies the camera; positive steps move it closer.
func (v *Viewer) Zoom(steps float64) {
	v.orbit.Zoom(stargl.Scalar(math.Pow(zoomStep, steps)))
}

// Camera returns the current camera.
func (v *Viewer) Camera() stargl.Camera { return v.scene.Camera }

// Orbit exposes the camera controller.
func (v *Viewer) Orbit() *stargl.OrbitController { return v.orbit }

// Galaxy returns the attached galaxy cloud.
func (v *Viewer) Galaxy() *stargl.PointCloud { return v.galaxy }

// StarField returns the attached star cloud.
func (v *Viewer) StarField() *stargl.PointCloud { return v.stars }

// Size returns the drawing-buffer size and pixel ratio set by the last Resize.
func (v *Viewer) Size() (w, h int, ratio float64) { return v.width, v.height, v.pixelRatio }

// Stats reports the attached clouds and the points drawn by the last Render.
func (v *Viewer) Stats() Stats {
	return Stats{
		Clouds:       v.scene.Len(),
		GalaxyPoints: v.galaxy.Len(),
		StarPoints:   v.stars.Len(),
		Drawn:        v.renderer.Drawn,
	}
}
