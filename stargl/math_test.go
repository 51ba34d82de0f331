package stargl

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestLookAtMovesTargetOntoAxis(t *testing.T) {
	m := Mat4LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	p := Mat4MulV4(m, Vec4{W: 1})
	if math32.Abs(p.X) > 1e-6 || math32.Abs(p.Y) > 1e-6 || math32.Abs(p.Z+3) > 1e-6 {
		t.Fatalf("origin in eye space = %+v, want (0,0,-3)", p)
	}
}

func TestPerspectiveAspect(t *testing.T) {
	wide := Mat4Perspective(Deg2Rad(90), 2, 0.1, 100)
	square := Mat4Perspective(Deg2Rad(90), 1, 0.1, 100)
	if math32.Abs(wide[0]*2-square[0]) > 1e-6 {
		t.Fatalf("x scale not divided by aspect: %v vs %v", wide[0], square[0])
	}
	if wide[5] != square[5] {
		t.Fatalf("y scale depends on aspect")
	}
}
