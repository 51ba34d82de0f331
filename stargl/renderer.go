package stargl

import "github.com/chewxy/math32"

// Renderer splats point clouds into a Target.
//
// Create it once and reuse it.
type Renderer struct {
	ClearColor Color

	// PixelRatio scales point sizes of clouds without size attenuation.
	PixelRatio Scalar

	// Stats of the last Render call.
	Drawn  int
	Culled int
	Clouds int
}

// NewRenderer returns a renderer that clears to black.
func NewRenderer() *Renderer {
	return &Renderer{
		ClearColor: RGB(0, 0, 0),
		PixelRatio: 1,
	}
}

// Render clears the target and draws every attached cloud in scene order.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)
	r.Drawn, r.Culled, r.Clouds = 0, 0, 0

	aspect := Scalar(w) / Scalar(h)
	view := s.Camera.View()
	proj := s.Camera.Projection(aspect)

	s.eachCloud(func(p *PointCloud) {
		if p == nil || p.Disposed() || p.Len() == 0 {
			return
		}
		r.Clouds++
		r.renderCloud(t, w, h, proj, view, p, s.Camera.Near)
	})
}

func (r *Renderer) renderCloud(t Target, w, h int, proj, view Mat4, p *PointCloud, near Scalar) {
	// Attenuated sizes are world units scaled by half the drawing-buffer height.
	scale := Scalar(h) * 0.5
	ratio := r.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}

	n := p.Len()
	useColors := p.VertexColors && len(p.Colors) >= n*3
	base := p.Color
	if base.A == 0 {
		base.A = 0xFF
	}

	for i := 0; i < n; i++ {
		i3 := i * 3
		v := Vec4{X: p.Positions[i3], Y: p.Positions[i3+1], Z: p.Positions[i3+2], W: 1}

		eye := Mat4MulV4(view, v)
		depth := -eye.Z
		if !(depth > near) {
			r.Culled++
			continue
		}

		clip := Mat4MulV4(proj, eye)
		ndc, ok := clipToNDC(clip)
		if !ok || ndc.Z < -1 || ndc.Z > 1 {
			r.Culled++
			continue
		}

		px := p.Size * ratio
		if p.SizeAttenuation {
			px = p.Size * scale / depth
		}

		sx, sy := ndcToScreen(ndc, w, h)
		half := px * 0.5
		if sx+half < 0 || sy+half < 0 || sx-half >= Scalar(w) || sy-half >= Scalar(h) {
			r.Culled++
			continue
		}

		c := base
		if useColors {
			c = RGBFloat(p.Colors[i3], p.Colors[i3+1], p.Colors[i3+2])
		}
		r.splat(t, sx, sy, px, c, p.Blending)
		r.Drawn++
	}
}

// splat draws a square point of side px centered at sx, sy. Points smaller than
// a pixel are drawn as one pixel weighted by their coverage.
func (r *Renderer) splat(t Target, sx, sy, px Scalar, c Color, mode Blending) {
	if px < 1 {
		cov := px * px
		x, y := int(sx), int(sy)
		if mode == BlendAdditive {
			t.AddPixel(x, y, c.MulScalar(cov))
			return
		}
		t.SetPixel(x, y, c.WithAlpha(uint8(Scalar(c.A)*Clamp(cov, 0, 1))))
		return
	}

	side := int(math32.Round(px))
	x0 := int(math32.Floor(sx - Scalar(side)*0.5 + 0.5))
	y0 := int(math32.Floor(sy - Scalar(side)*0.5 + 0.5))
	for y := y0; y < y0+side; y++ {
		for x := x0; x < x0+side; x++ {
			if mode == BlendAdditive {
				t.AddPixel(x, y, c)
			} else {
				t.SetPixel(x, y, c)
			}
		}
	}
}

type ndcPoint struct {
	X, Y, Z Scalar
}

func clipToNDC(p Vec4) (ndcPoint, bool) {
	if p.W <= 0 {
		return ndcPoint{}, false
	}
	invW := 1 / p.W
	return ndcPoint{X: p.X * invW, Y: p.Y * invW, Z: p.Z * invW}, true
}

func ndcToScreen(p ndcPoint, w, h int) (x, y Scalar) {
	x = (p.X*0.5 + 0.5) * Scalar(w)
	y = (1 - (p.Y*0.5 + 0.5)) * Scalar(h)
	return x, y
}
