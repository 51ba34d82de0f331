package stargl

import "testing"

func testScene() *Scene {
	s := NewScene()
	s.Camera.Position = V3(0, 0, 3)
	s.Camera.Target = V3(0, 0, 0)
	return s
}

func TestRenderCenterPoint(t *testing.T) {
	s := testScene()
	s.Add(&PointCloud{
		Positions:       []float32{0, 0, 0},
		Size:            0.1,
		SizeAttenuation: true,
		Color:           RGB(0xFF, 0, 0),
	})

	tgt := NewRGBATarget(100, 100)
	r := NewRenderer()
	r.Render(tgt, s)

	if r.Drawn != 1 || r.Culled != 0 {
		t.Fatalf("drawn=%d culled=%d", r.Drawn, r.Culled)
	}
	if got := tgt.At(50, 50); got != RGB(0xFF, 0, 0) {
		t.Fatalf("center pixel = %+v", got)
	}
	if got := tgt.At(10, 10); got != RGB(0, 0, 0) {
		t.Fatalf("corner pixel = %+v", got)
	}
}

func TestRenderCullsBehindCamera(t *testing.T) {
	s := testScene()
	s.Add(&PointCloud{
		Positions: []float32{0, 0, 5, 100, 0, 0},
		Size:      1,
		Color:     RGB(0xFF, 0xFF, 0xFF),
	})

	tgt := NewRGBATarget(64, 64)
	r := NewRenderer()
	r.Render(tgt, s)
	if r.Drawn != 0 || r.Culled != 2 {
		t.Fatalf("drawn=%d culled=%d", r.Drawn, r.Culled)
	}
}

func TestRenderAdditiveSaturates(t *testing.T) {
	s := testScene()
	s.Add(&PointCloud{
		Positions:    []float32{0, 0, 0, 0, 0, 0},
		Colors:       []float32{0.8, 0.1, 0, 0.8, 0.1, 0},
		Size:         1,
		Blending:     BlendAdditive,
		VertexColors: true,
	})

	tgt := NewRGBATarget(32, 32)
	NewRenderer().Render(tgt, s)
	got := tgt.At(16, 16)
	if got.R != 0xFF {
		t.Fatalf("red = %d, want saturated", got.R)
	}
	if got.G != 52 {
		t.Fatalf("green = %d, want 52", got.G)
	}
}

func TestRenderSkipsDisposedCloud(t *testing.T) {
	s := testScene()
	p := &PointCloud{Positions: []float32{0, 0, 0}, Size: 1, Color: RGB(1, 2, 3)}
	s.Add(p)
	p.Dispose()

	r := NewRenderer()
	r.Render(NewRGBATarget(8, 8), s)
	if r.Clouds != 0 || r.Drawn != 0 {
		t.Fatalf("disposed cloud rendered: clouds=%d drawn=%d", r.Clouds, r.Drawn)
	}
}

func TestSceneInsertRemoveOrder(t *testing.T) {
	s := NewScene()
	a, b, c := &PointCloud{}, &PointCloud{}, &PointCloud{}
	s.Add(a)
	s.Add(b)
	s.Add(a)
	if s.Len() != 2 {
		t.Fatalf("len = %d", s.Len())
	}
	s.Remove(a)
	s.InsertAt(0, c)
	if s.IndexOf(c) != 0 || s.IndexOf(b) != 1 || s.IndexOf(a) != -1 {
		t.Fatalf("order c=%d b=%d a=%d", s.IndexOf(c), s.IndexOf(b), s.IndexOf(a))
	}
	if s.Remove(a) {
		t.Fatalf("removed a twice")
	}
}

func TestTargetBlend(t *testing.T) {
	tgt := NewRGBATarget(2, 2)
	tgt.Clear(RGB(0, 0, 0))
	tgt.SetPixel(0, 0, RGBA(0xFF, 0xFF, 0xFF, 0x80))
	got := tgt.At(0, 0)
	if got.R != 0x80 {
		t.Fatalf("blend R = %#x", got.R)
	}
	tgt.SetPixel(-1, 5, RGB(1, 1, 1))
	tgt.AddPixel(9, 9, RGB(1, 1, 1))
}
