package s3dsim

import (
	"testing"

	"github.com/vretrace/s3dsim/vecmath"
)

func TestClipTriangle_WideTallTriangleClipsToQuad(t *testing.T) {
	// A triangle poking out of the left, right and top of the view
	// volume. Plane 0 cuts the right vertex, plane 1 the left (the
	// polygon peaks at 5 vertices there), and the y plane shaves the
	// apex back down to a 4-vertex box.
	v0 := &PostVSVertex{Position: vecmath.Vec4{X: -2, Y: 0, Z: 0.5, W: 1}}
	v1 := &PostVSVertex{Position: vecmath.Vec4{X: 2, Y: 0, Z: 0.5, W: 1}}
	v2 := &PostVSVertex{Position: vecmath.Vec4{X: 0, Y: 3, Z: 0.5, W: 1}}

	out := clipTriangle(v0, v1, v2, 0)
	if len(out) != 4 {
		t.Fatalf("expected 4 output vertices, got %d", len(out))
	}
	for i, v := range out {
		p := v.Position
		if p.X > p.W+1e-4 || p.X < -p.W-1e-4 {
			t.Fatalf("vertex %d: |x|=%v exceeds w=%v", i, p.X, p.W)
		}
		if p.Y > p.W+1e-4 || p.Y < -p.W-1e-4 {
			t.Fatalf("vertex %d: |y|=%v exceeds w=%v", i, p.Y, p.W)
		}
		if p.Z < -1e-4 || p.Z > p.W+1e-4 {
			t.Fatalf("vertex %d: z=%v not in [0,w=%v]", i, p.Z, p.W)
		}
		if p.W < 0.1-1e-4 {
			t.Fatalf("vertex %d: w=%v below epsilon 0.1", i, p.W)
		}
	}
}

func TestClipTriangle_WhollyOutsideYieldsEmpty(t *testing.T) {
	v0 := &PostVSVertex{Position: vecmath.Vec4{X: 10, Y: 0, Z: 0.5, W: 1}}
	v1 := &PostVSVertex{Position: vecmath.Vec4{X: 11, Y: 0, Z: 0.5, W: 1}}
	v2 := &PostVSVertex{Position: vecmath.Vec4{X: 12, Y: 1, Z: 0.5, W: 1}}

	out := clipTriangle(v0, v1, v2, 0)
	if len(out) != 0 {
		t.Fatalf("expected empty polygon, got %d vertices", len(out))
	}
}

func TestClipTriangle_SinglePlaneInInOut(t *testing.T) {
	// Classified (in, in, out) against plane 0 (x <= +w) alone: two
	// vertices inside, one outside produces a 4-vertex output with two
	// intersections on the plane, and linear varyings interpolate
	// exactly.
	v0 := &PostVSVertex{Position: vecmath.Vec4{X: 0, Y: 0, Z: 0, W: 1}}
	v0.Varying[0] = 0
	v1 := &PostVSVertex{Position: vecmath.Vec4{X: 0.5, Y: 0, Z: 0, W: 1}}
	v1.Varying[0] = 1
	v2 := &PostVSVertex{Position: vecmath.Vec4{X: 2, Y: 0, Z: 0, W: 1}}
	v2.Varying[0] = 2

	pl := clipPlanes[0]
	in := []PostVSVertex{*v0, *v1, *v2}
	var out []PostVSVertex
	ref := &in[len(in)-1]
	for j := range in {
		cur := &in[j]
		curIn := insideEdge(cur.Position, pl)
		refIn := insideEdge(ref.Position, pl)
		if curIn {
			if !refIn {
				out = append(out, intersect(pl, cur, ref, 1))
			}
			out = append(out, *cur)
		} else if refIn {
			out = append(out, intersect(pl, cur, ref, 1))
		}
		ref = cur
	}
	if len(out) != 4 {
		t.Fatalf("expected 4-vertex output, got %d", len(out))
	}
	for _, v := range out {
		if v.Position.X > v.Position.W+1e-5 {
			t.Fatalf("output vertex violates plane 0: x=%v w=%v", v.Position.X, v.Position.W)
		}
	}
	// The two intersections land at x=1, where the varying ramps 0->1->2
	// across x 0->0.5->2 put it at 1 and 4/3.
	if d := out[0].Varying[0] - 1; d > 1e-5 || d < -1e-5 {
		t.Fatalf("intersection varying = %v, want 1", out[0].Varying[0])
	}
	if d := out[3].Varying[0] - 4.0/3.0; d > 1e-5 || d < -1e-5 {
		t.Fatalf("intersection varying = %v, want 4/3", out[3].Varying[0])
	}
}
