// sampler.go - per-fragment texture sampler: level select, wrap, bilinear

package s3dsim

import (
	"math"

	"github.com/vretrace/s3dsim/vecmath"
)

// tmu is a texture-mapping-unit binding slot; the sampler reads these
// live at fragment time.
type tmu struct {
	enabled      bool
	offset       uint32
	width        uint32
	height       uint32
	mipmapLevels uint32
}

// BindTexture binds texHandle to TMU index unit, or unbinds it if
// texHandle is 0 ("no texture").
func (p *Pipeline) BindTexture(unit int, texHandle TexHandle) {
	if unit < 0 || unit >= TMUCount {
		panic("s3dsim: invalid TMU index")
	}
	if texHandle == 0 {
		p.tmus[unit] = tmu{}
		return
	}
	t := p.catalog.tex(texHandle)
	p.tmus[unit] = tmu{
		enabled:      true,
		offset:       t.offset,
		width:        t.width,
		height:       t.height,
		mipmapLevels: t.mipmapLevels,
	}
}

// texelAt fetches one texel at the given packed-pyramid level for the
// bound TMU. Out-of-range coordinates clamp to the edge of that level
// (side 1<<levelFactor), both axes independently.
//
// The pyramid is stored as a (2*width) x (2*width) plane of single bytes
// (row stride 2*width); see writeMipPyramid in texture.go for the
// addressing.
func (p *Pipeline) texelAt(t *tmu, levelFactor uint32, x, y int32) vecmath.Vec3 {
	side := int32(1) << levelFactor
	if x < 0 {
		x = 0
	}
	if x >= side {
		x = side - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= side {
		y = side - 1
	}

	offset := uint32(1) << levelFactor
	stride := 2 * t.width
	gridBytes := t.width * t.width * 4

	grid := p.arena.Slice(t.offset, gridBytes)

	r := grid[uint32(y)*stride+offset+uint32(x)]
	g := grid[(offset+uint32(y))*stride+uint32(x)]
	b := grid[(offset+uint32(y))*stride+offset+uint32(x)]

	return vecmath.Vec3{
		X: float32(r) / 255.0,
		Y: float32(g) / 255.0,
		Z: float32(b) / 255.0,
	}
}

// TexLookup samples the bound TMU: mip level selection from dMax,
// coordinate wrapping by mirror-by-abs-then-wrap, bilinear blend of four
// taps. Returns zero if the TMU is disabled.
func (p *Pipeline) TexLookup(unit int, dMax float32, uv vecmath.Vec2) vecmath.Vec4 {
	t := &p.tmus[unit]
	if !t.enabled {
		return vecmath.Vec4{}
	}

	d := dMax * float32(t.width)
	var level int32
	if d > 1 {
		level = int32(math.Ceil(math.Log2(float64(d))))
	}
	if level > int32(t.mipmapLevels) {
		level = int32(t.mipmapLevels)
	}
	levelFactor := t.mipmapLevels - uint32(level)

	u := float32(math.Mod(math.Abs(float64(uv.X)), 1.0))
	v := float32(math.Mod(math.Abs(float64(uv.Y)), 1.0))

	texelX := u * float32(t.width>>uint32(level))
	texelY := v * float32(t.height>>uint32(level))
	x := int32(texelX)
	y := int32(texelY)
	fx := texelX - float32(x)
	fy := texelY - float32(y)

	ul := p.texelAt(t, levelFactor, x, y)
	ur := p.texelAt(t, levelFactor, x+1, y)
	ll := p.texelAt(t, levelFactor, x, y+1)
	lr := p.texelAt(t, levelFactor, x+1, y+1)

	top := vecmath.Vec3Lerp(fx, ur, ul)
	bot := vecmath.Vec3Lerp(fx, lr, ll)
	c := vecmath.Vec3Lerp(fy, bot, top)

	return vecmath.Vec4{X: c.X, Y: c.Y, Z: c.Z, W: 0}
}
