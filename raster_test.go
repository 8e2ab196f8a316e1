package s3dsim

import (
	"testing"

	"github.com/vretrace/s3dsim/vecmath"
)

func screenVert(x, y int32) *PostVSVertex {
	return &PostVSVertex{ScreenX: x, ScreenY: y, Position: vecmath.Vec4{Z: 0.5, W: 1}}
}

// countingFragments rasterizes a triangle of the three given screen
// vertices and returns how many times the fragment shader fires.
func countingFragments(p *Pipeline, v0, v1, v2 *PostVSVertex) int {
	count := 0
	p.SetFragmentShader(func(uniforms *UniformBlock, varyings []float32, ddx []float32, ddy []float32, outColor *vecmath.Vec3, outDepth *float32) {
		count++
	})
	p.rasterizeTriangle(v0, v1, v2, 0)
	return count
}

func TestRasterizeTriangle_BackFaceRejectsZeroFragments(t *testing.T) {
	// Negative signed area (edge1 at v2) means a back face; with culling
	// on it produces zero fragments.
	p := NewPipeline(16, 16, PixelRGBA8)
	v0 := screenVert(2, 2)
	v1 := screenVert(6, 10)
	v2 := screenVert(10, 2)
	got := countingFragments(p, v0, v1, v2)
	if got != 0 {
		t.Fatalf("expected 0 fragments for a back-facing triangle, got %d", got)
	}
}

func TestRasterizeTriangle_BackFaceDrawsWithCullingOff(t *testing.T) {
	p := NewPipeline(16, 16, PixelRGBA8)
	p.FaceCulling(false)
	v0 := screenVert(2, 2)
	v1 := screenVert(6, 10)
	v2 := screenVert(10, 2)
	got := countingFragments(p, v0, v1, v2)
	if got == 0 {
		t.Fatal("expected a re-wound back-facing triangle to produce fragments with culling off")
	}
}

func TestRasterizeTriangle_FrontFaceProducesFragments(t *testing.T) {
	p := NewPipeline(16, 16, PixelRGBA8)
	v0 := screenVert(2, 2)
	v1 := screenVert(10, 2)
	v2 := screenVert(6, 10)
	got := countingFragments(p, v0, v1, v2)
	if got == 0 {
		t.Fatal("expected a front-facing triangle to produce at least one fragment")
	}
}

func TestRasterizeTriangle_DegenerateColinearProducesZero(t *testing.T) {
	// Three coincident screen points are a geometric no-op, not an error.
	p := NewPipeline(16, 16, PixelRGBA8)
	v0 := screenVert(4, 4)
	v1 := screenVert(4, 4)
	v2 := screenVert(4, 4)
	got := countingFragments(p, v0, v1, v2)
	if got != 0 {
		t.Fatalf("expected 0 fragments for a degenerate triangle, got %d", got)
	}
}

func TestRasterizeTriangle_AdjacentTrianglesBothDraw(t *testing.T) {
	// Splitting a quad into two triangles along a shared diagonal, both
	// halves must still rasterize.
	p := NewPipeline(16, 16, PixelRGBA8)
	p.SetVaryingCount(0)

	a0, a1, a2 := screenVert(0, 0), screenVert(8, 0), screenVert(0, 8)
	b0, b1, b2 := screenVert(8, 0), screenVert(8, 8), screenVert(0, 8)

	aCount := countingFragments(p, a0, a1, a2)
	bCount := countingFragments(p, b0, b1, b2)

	if aCount == 0 || bCount == 0 {
		t.Fatalf("expected both half-triangles to draw fragments, got a=%d b=%d", aCount, bCount)
	}
}

func TestRasterizeTriangle_DepthClearedToOne(t *testing.T) {
	// The depth buffer clears to 1.0 (far) for every texel before any
	// draw.
	p := NewPipeline(4, 4, PixelRGBA8)
	for i := uint32(0); i < 16; i++ {
		if d := p.depthAt(i); d != 1.0 {
			t.Fatalf("texel %d: depth = %v, want 1.0", i, d)
		}
	}
}
