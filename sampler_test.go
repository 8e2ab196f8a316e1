package s3dsim

import (
	"testing"

	"github.com/vretrace/s3dsim/vecmath"
)

func TestTexLookup_DisabledTMUReturnsZero(t *testing.T) {
	p := NewPipeline(4, 4, PixelRGBA8)
	got := p.TexLookup(0, 0.01, vecmath.Vec2{X: 0.5, Y: 0.5})
	if got.X != 0 || got.Y != 0 || got.Z != 0 {
		t.Fatalf("expected zero sample from disabled TMU, got %+v", got)
	}
}

// paintLevels overwrites the red channel of every packed pyramid level of
// texture h with a distinct solid value: levelColor(0) at full resolution
// down to levelColor(levels) at 1x1.
func paintLevels(p *Pipeline, h TexHandle, levelColor func(level uint32) byte) {
	tr := p.catalog.tex(h)
	grid := p.arena.Slice(tr.offset, tr.width*tr.width*4)
	stride := 2 * tr.width
	for level := uint32(0); level <= tr.mipmapLevels; level++ {
		s := uint32(1) << (tr.mipmapLevels - level)
		c := levelColor(level)
		for y := uint32(0); y < s; y++ {
			for x := uint32(0); x < s; x++ {
				grid[y*stride+s+x] = c
				grid[(s+y)*stride+x] = 0
				grid[(s+y)*stride+s+x] = 0
			}
		}
	}
}

func TestTexLookup_LevelSelectionReadsDistinctLevels(t *testing.T) {
	// Paint every pyramid level a distinct red and verify dMax routes the
	// lookup to the expected level, including the two extremes.
	p := NewPipeline(4, 4, PixelRGBA8)
	const side = 256
	h := p.LoadTexture(make([]byte, side*side*3), side, side, 3, 1)
	p.BindTexture(0, h)
	paintLevels(p, h, func(level uint32) byte { return byte(level * 20) })

	cases := []struct {
		dMax  float32
		wantR float32
	}{
		{1e-4, 0},         // finest level
		{0.03, 60 / 255.0}, // dMax*256 = 7.68 -> level 3
		{10, 160 / 255.0},  // clamps to the coarsest level
	}
	for _, c := range cases {
		got := p.TexLookup(0, c.dMax, vecmath.Vec2{X: 0.5, Y: 0.5})
		if d := got.X - c.wantR; d > 1.0/255.0 || d < -1.0/255.0 {
			t.Fatalf("dMax %v: red = %v, want %v", c.dMax, got.X, c.wantR)
		}
		if got.Y != 0 || got.Z != 0 {
			t.Fatalf("dMax %v: green/blue = %v %v, want 0", c.dMax, got.Y, got.Z)
		}
	}
}

func TestTexLookup_SolidColorSurvivesAllLevels(t *testing.T) {
	// A uniform base image mips to the same color at every level, so any
	// dMax samples it back unchanged.
	p := NewPipeline(4, 4, PixelRGBA8)
	const side = 256
	pixels := make([]byte, side*side*3)
	for i := 0; i < side*side; i++ {
		pixels[i*3+0] = 60
	}
	h := p.LoadTexture(pixels, side, side, 3, 1)
	p.BindTexture(0, h)

	got := p.TexLookup(0, 0.05, vecmath.Vec2{X: 0.5, Y: 0.5})
	if got.X < 0.2 || got.X > 0.25 {
		t.Fatalf("expected red channel near 60/255, got %v", got.X)
	}
	if got.Y != 0 || got.Z != 0 {
		t.Fatalf("expected green/blue channels at 0, got %v %v", got.Y, got.Z)
	}
}

func TestTexLookup_WrapsByMirrorAbsFmod(t *testing.T) {
	p := NewPipeline(4, 4, PixelRGBA8)
	pixels := make([]byte, 4*4*3)
	pixels[0], pixels[1], pixels[2] = 100, 0, 0
	h := p.LoadTexture(pixels, 4, 4, 3, 1)
	p.BindTexture(0, h)

	a := p.TexLookup(0, 0.3, vecmath.Vec2{X: 0.01, Y: 0.01})
	b := p.TexLookup(0, 0.3, vecmath.Vec2{X: 1.01, Y: 1.01})
	if d := a.X - b.X; d > 1e-4 || d < -1e-4 {
		t.Fatalf("expected wrapped coordinate to sample alike: %v vs %v", a.X, b.X)
	}
}
