// pipeline.go - public API surface: init/deinit, VRAM+catalog wiring,
// clear/render/render_copy, plus debug line-draw helpers

package s3dsim

import (
	"encoding/binary"
	"fmt"
)

// Pipeline is the single process-wide pipeline instance: its VRAM arena,
// catalogs, and TMU bindings. Lifecycle is NewPipeline -> many draws ->
// Deinit; no operation may run concurrently with another.
type Pipeline struct {
	arena    *Arena
	catalog  catalog
	tmus     [TMUCount]tmu
	uniforms *UniformBlock

	vs VertexShader
	fs FragmentShader

	varyingCount uint32

	depthTest          bool
	earlyDepthTest     bool
	faceCulling        bool
	perspectiveCorrect bool

	activeFBOHandle FBOHandle
	fbWidth         uint32
	fbHeight        uint32
}

// NewPipeline allocates the VRAM arena and creates the initial
// framebuffer of the given size and format.
func NewPipeline(width, height uint32, format PixelFormat) *Pipeline {
	p := &Pipeline{
		arena:              NewArena(VRAMSize),
		uniforms:           &UniformBlock{},
		depthTest:          true,
		earlyDepthTest:     true,
		faceCulling:        true,
		perspectiveCorrect: true,
	}
	h := p.CreateFramebuffer(width, height, format)
	p.activeFBOHandle = h
	p.fbWidth = width
	p.fbHeight = height
	p.ClearDepth()
	return p
}

// Deinit releases the pipeline. The bump allocator has no free path, so
// this simply drops references for the garbage collector.
func (p *Pipeline) Deinit() {
	p.arena = nil
}

// CreateFramebuffer allocates a color region sized per format and a
// 32-bit-float depth region, both width*height cells, and appends the
// record.
func (p *Pipeline) CreateFramebuffer(width, height uint32, format PixelFormat) FBOHandle {
	colorSize := width * height * format.BytesPerPixel()
	depthSize := width * height * 4
	colorOff := p.arena.Allocate(colorSize)
	depthOff := p.arena.Allocate(depthSize)
	return p.catalog.addFBO(fboRecord{
		colorOffset: colorOff,
		depthOffset: depthOff,
		width:       width,
		height:      height,
		colorSize:   colorSize,
		format:      format,
	})
}

func (p *Pipeline) activeFBO() fboRecord {
	return p.catalog.fbo(p.activeFBOHandle)
}

// ClearColor zeroes the active framebuffer's color region.
func (p *Pipeline) ClearColor() {
	fb := p.activeFBO()
	buf := p.arena.Slice(fb.colorOffset, fb.colorSize)
	for i := range buf {
		buf[i] = 0
	}
}

// ClearDepth resets the active framebuffer's depth region to 1.0 (far).
func (p *Pipeline) ClearDepth() {
	fb := p.activeFBO()
	n := fb.width * fb.height
	for i := uint32(0); i < n; i++ {
		p.setDepthAt(i, 1.0)
	}
}

// DepthTest enables or disables the depth test pipeline configuration
// flag.
func (p *Pipeline) DepthTest(enabled bool) { p.depthTest = enabled }

// EarlyDepthTest enables or disables early (pre-fragment-shader) depth
// testing.
func (p *Pipeline) EarlyDepthTest(enabled bool) { p.earlyDepthTest = enabled }

// FaceCulling enables or disables back-face culling. With culling off,
// a negative-area triangle is re-wound at setup instead of rejected.
func (p *Pipeline) FaceCulling(enabled bool) { p.faceCulling = enabled }

// PerspectiveCorrect selects between perspective-correct and plain
// affine varying interpolation.
func (p *Pipeline) PerspectiveCorrect(enabled bool) { p.perspectiveCorrect = enabled }

// SetVaryingCount configures how many varying floats each draw's
// shaders read and write, shared by all shaders for that draw.
func (p *Pipeline) SetVaryingCount(n uint32) {
	if n > MaxVarying-4 {
		panic(fmt.Sprintf("s3dsim: varying count %d exceeds MaxVarying-4", n))
	}
	p.varyingCount = n
}

// SetVertexShader and SetFragmentShader install the fixed-ABI callbacks
// used by every subsequent Render call.
func (p *Pipeline) SetVertexShader(vs VertexShader)     { p.vs = vs }
func (p *Pipeline) SetFragmentShader(fs FragmentShader) { p.fs = fs }

// UpdateUniform overwrites the process-wide uniform block wholesale.
// Overrunning UniformSize is a fatal contract violation.
func (p *Pipeline) UpdateUniform(data []byte) {
	if len(data) > UniformSize {
		panic("s3dsim: uniform block overrun")
	}
	for i := range p.uniforms {
		p.uniforms[i] = 0
	}
	copy(p.uniforms[:], data)
}

// LoadVBO copies bytes into VRAM and appends a vertex-buffer record.
func (p *Pipeline) LoadVBO(data []byte) VBOHandle {
	off := p.arena.Allocate(uint32(len(data)))
	p.arena.Write(off, data)
	return p.catalog.addVBO(vboRecord{offset: off, size: uint32(len(data))})
}

// LoadEBO copies bytes (32-bit little-endian indices) into VRAM and
// appends an index-buffer record.
func (p *Pipeline) LoadEBO(data []byte) EBOHandle {
	off := p.arena.Allocate(uint32(len(data)))
	p.arena.Write(off, data)
	return p.catalog.addEBO(eboRecord{offset: off, size: uint32(len(data))})
}

// BindVAO records the (ebo, vbo, attribute layout) tuple and returns its
// index.
func (p *Pipeline) BindVAO(ebo EBOHandle, vbo VBOHandle, attrCount, attrStride uint32) VAOHandle {
	return p.catalog.addVAO(vaoRecord{
		eboID:           ebo,
		vboID:           vbo,
		attributeCount:  attrCount,
		attributeStride: attrStride,
	})
}

// Render resolves vaoHandle, walks its index buffer three indices at a
// time, runs the shader stages, and rasterizes every resulting triangle.
func (p *Pipeline) Render(vaoHandle VAOHandle) {
	p.runVertexStage(vaoHandle)
}

// RenderCopy copies the active framebuffer's color region into dst,
// which must be exactly width*height*bytesPerPixel bytes.
func (p *Pipeline) RenderCopy(dst []byte) {
	fb := p.activeFBO()
	if uint32(len(dst)) != fb.colorSize {
		panic(fmt.Sprintf("s3dsim: render_copy destination size %d does not match framebuffer size %d", len(dst), fb.colorSize))
	}
	copy(dst, p.arena.Slice(fb.colorOffset, fb.colorSize))
}

// Debug draw helpers. These bypass the fragment stage entirely and are
// meant for wireframe overlays and harness output, not the core render
// path; cmd/s3dview's optional wireframe flag uses them.

// DebugHLine draws a horizontal line segment directly into the active
// framebuffer's color buffer, bypassing the fragment stage.
func (p *Pipeline) DebugHLine(x0, y0, x1 int32, color uint32) {
	lo, hi := x0, x1
	if lo > hi {
		lo, hi = hi, lo
	}
	for x := lo; x <= hi; x++ {
		p.debugSetPixel(x, y0, color)
	}
}

// DebugVLine draws a vertical line segment directly into the active
// framebuffer's color buffer.
func (p *Pipeline) DebugVLine(x0, y0, y1 int32, color uint32) {
	lo, hi := y0, y1
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := lo; y <= hi; y++ {
		p.debugSetPixel(x0, y, color)
	}
}

// DebugLine draws an arbitrary line segment with a Bresenham walk.
func (p *Pipeline) DebugLine(x0, y0, x1, y1 int32, color uint32) {
	dx := abs32(x1 - x0)
	dy := -abs32(y1 - y0)
	sx := int32(1)
	if x0 > x1 {
		sx = -1
	}
	sy := int32(1)
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		p.debugSetPixel(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// debugSetPixel writes a raw 0xAARRGGBB color to the active
// framebuffer's RGBA8 color buffer in the same B,G,R,A byte order as the
// fragment stage's writeback.
func (p *Pipeline) debugSetPixel(x, y int32, color uint32) {
	fb := p.activeFBO()
	if x < 0 || y < 0 || x >= int32(fb.width) || y >= int32(fb.height) {
		return
	}
	bpp := fb.format.BytesPerPixel()
	if bpp != 4 {
		return
	}
	idx := (uint32(y)*fb.width + uint32(x)) * bpp
	buf := p.arena.Slice(fb.colorOffset, fb.colorSize)
	a := byte(color >> 24)
	r := byte(color >> 16)
	g := byte(color >> 8)
	b := byte(color)
	buf[idx+0] = b
	buf[idx+1] = g
	buf[idx+2] = r
	buf[idx+3] = a
}

// MapRGB packs three 8-bit channels into the 0xAARRGGBB convention used
// by DebugLine/DebugHLine/DebugVLine, with alpha forced opaque.
func MapRGB(r, g, b byte) uint32 {
	return binary.BigEndian.Uint32([]byte{0xff, r, g, b})
}
