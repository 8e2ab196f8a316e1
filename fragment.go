// fragment.go - per-quad perspective-correct interpolation, derivatives,
// depth test, fragment callback, color writeback

package s3dsim

import (
	"math"

	"github.com/vretrace/s3dsim/vecmath"
)

// processFragmentQuad runs the fragment stage for one emitted 2x2 quad.
// w0,w1,w2 are the three edge-function sample arrays in barycentric
// order (w0 = edge2, w1 = edge0, w2 = edge1, per the rasterizer's
// mapping). masks[i] tells which of the four samples actually lie inside
// the triangle; unmasked samples still participate in interpolation and
// derivative computation.
func (p *Pipeline) processFragmentQuad(masks [4]bool, x, y int32, w0, w1, w2 quad, v0, v1, v2 *PostVSVertex, varyingCount int) {
	xx := [4]int32{x, x + 1, x, x + 1}
	yy := [4]int32{y, y, y + 1, y + 1}

	earlyZ := p.depthTest && p.earlyDepthTest
	var fragDepth [4]float32
	earlyAccepted := false
	for i := 0; i < 4; i++ {
		sum := w0[i] + w1[i] + w2[i]
		fragDepth[i] = (v0.Position.Z*float32(w0[i]) + v1.Position.Z*float32(w1[i]) + v2.Position.Z*float32(w2[i])) / float32(sum)
		if earlyZ && masks[i] {
			if p.depthTestAndUpdate(xx[i], yy[i], fragDepth[i]) {
				earlyAccepted = true
			} else {
				masks[i] = false
			}
		}
	}
	if earlyZ && !earlyAccepted {
		return
	}

	var varying [4][MaxVarying - 4]float32
	for i := 0; i < 4; i++ {
		bary := vecmath.Vec3{X: float32(w0[i]), Y: float32(w1[i]), Z: float32(w2[i])}
		var interpWInv float32
		if p.perspectiveCorrect {
			wInv := vecmath.Vec3{X: v0.Position.W, Y: v1.Position.W, Z: v2.Position.W}
			interpWInv = 1.0 / vecmath.Vec3Dot(wInv, bary)
		} else {
			interpWInv = 1.0 / float32(w0[i]+w1[i]+w2[i])
		}
		for j := 0; j < varyingCount; j++ {
			attrOverW := vecmath.Vec3{X: v0.Varying[j], Y: v1.Varying[j], Z: v2.Varying[j]}
			varying[i][j] = vecmath.Vec3Dot(attrOverW, bary) * interpWInv
		}
	}

	groups := varyingCount / 4
	var ddx [2][MaxVarying/4]float32
	var ddy [2][MaxVarying/4]float32
	for i := 0; i < groups; i++ {
		ddx[0][i] = varying[1][i*4] - varying[0][i*4]
		ddx[1][i] = varying[3][i*4] - varying[2][i*4]
		ddy[0][i] = varying[2][i*4+1] - varying[0][i*4+1]
		ddy[1][i] = varying[3][i*4+1] - varying[1][i*4+1]
	}

	var fragColor [4]vecmath.Vec3
	for i := 0; i < 4; i++ {
		if !masks[i] {
			continue
		}
		if p.fs == nil {
			continue
		}
		p.fs(p.uniforms, varying[i][:varyingCount], ddx[i/2][:groups], ddy[i%2][:groups], &fragColor[i], &fragDepth[i])
	}

	if p.depthTest && !p.earlyDepthTest {
		for i := 0; i < 4; i++ {
			if !masks[i] {
				continue
			}
			if !p.depthTestAndUpdate(xx[i], yy[i], fragDepth[i]) {
				masks[i] = false
			}
		}
	}

	for i := 0; i < 4; i++ {
		if !masks[i] {
			continue
		}
		p.writePixel(xx[i], yy[i], fragColor[i])
	}
}

// depthTestAndUpdate compares depth against the current framebuffer's
// depth buffer at (x,y); on accept (less-than) it updates the buffer and
// returns true. Always LESS, no depth masking.
func (p *Pipeline) depthTestAndUpdate(x, y int32, depth float32) bool {
	if x < 0 || y < 0 || x >= int32(p.fbWidth) || y >= int32(p.fbHeight) {
		return false
	}
	idx := uint32(y)*p.fbWidth + uint32(x)
	old := p.depthAt(idx)
	if depth < old {
		p.setDepthAt(idx, depth)
		return true
	}
	return false
}

func (p *Pipeline) depthAt(idx uint32) float32 {
	buf := p.arena.Slice(p.activeFBO().depthOffset, p.fbWidth*p.fbHeight*4)
	bits := uint32(buf[idx*4]) | uint32(buf[idx*4+1])<<8 | uint32(buf[idx*4+2])<<16 | uint32(buf[idx*4+3])<<24
	return math.Float32frombits(bits)
}

func (p *Pipeline) setDepthAt(idx uint32, v float32) {
	buf := p.arena.Slice(p.activeFBO().depthOffset, p.fbWidth*p.fbHeight*4)
	bits := math.Float32bits(v)
	buf[idx*4] = byte(bits)
	buf[idx*4+1] = byte(bits >> 8)
	buf[idx*4+2] = byte(bits >> 16)
	buf[idx*4+3] = byte(bits >> 24)
}

// writePixel clamps color channels to [0,255] after multiplying by 255
// and packs them BGRA into the active framebuffer's color buffer, the
// byte order of the framebuffer contract.
func (p *Pipeline) writePixel(x, y int32, c vecmath.Vec3) {
	if x < 0 || y < 0 || x >= int32(p.fbWidth) || y >= int32(p.fbHeight) {
		return
	}
	fb := p.activeFBO()
	bpp := fb.format.BytesPerPixel()
	idx := uint32(y)*p.fbWidth + uint32(x)
	buf := p.arena.Slice(fb.colorOffset, p.fbWidth*p.fbHeight*bpp)

	r := clamp255(c.X)
	g := clamp255(c.Y)
	b := clamp255(c.Z)

	off := idx * bpp
	switch fb.format {
	case PixelRGB8:
		buf[off+0] = b
		buf[off+1] = g
		buf[off+2] = r
	case PixelRGBA8:
		buf[off+0] = b
		buf[off+1] = g
		buf[off+2] = r
		buf[off+3] = 0xff
	default:
		panic("s3dsim: color writeback only implemented for RGB8/RGBA8 framebuffers")
	}
}

func clamp255(v float32) byte {
	f := v * 255.0
	if f > 255 {
		f = 255
	}
	if f < 0 {
		f = 0
	}
	return byte(int32(f))
}
