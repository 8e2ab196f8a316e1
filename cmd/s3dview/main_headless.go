//go:build headless

// main_headless.go - CI/headless build: renders one frame without ever
// importing ebiten.

package main

import (
	"fmt"
	"math"

	"github.com/vretrace/s3dsim"
	"github.com/vretrace/s3dsim/vecmath"
)

func float32sToBytesHeadless(f []float32) []byte {
	b := make([]byte, len(f)*4)
	for i, v := range f {
		bits := math.Float32bits(v)
		b[i*4+0] = byte(bits)
		b[i*4+1] = byte(bits >> 8)
		b[i*4+2] = byte(bits >> 16)
		b[i*4+3] = byte(bits >> 24)
	}
	return b
}

func uint32sToBytesHeadless(u []uint32) []byte {
	b := make([]byte, len(u)*4)
	for i, v := range u {
		b[i*4+0] = byte(v)
		b[i*4+1] = byte(v >> 8)
		b[i*4+2] = byte(v >> 16)
		b[i*4+3] = byte(v >> 24)
	}
	return b
}

const (
	screenW = 320
	screenH = 240
)

func main() {
	p := s3dsim.NewPipeline(screenW, screenH, s3dsim.PixelRGBA8)
	p.DepthTest(true)
	p.EarlyDepthTest(true)
	p.SetVaryingCount(2)
	p.SetVertexShader(func(uniforms *s3dsim.UniformBlock, attrs []float32, outVaryings []float32, outPosition *vecmath.Vec4) {
		outPosition.X = attrs[0]
		outPosition.Y = attrs[1]
		outPosition.Z = attrs[2]
		outPosition.W = 1
		outVaryings[0] = attrs[3]
		outVaryings[1] = attrs[4]
	})
	p.SetFragmentShader(func(uniforms *s3dsim.UniformBlock, varyings []float32, ddx []float32, ddy []float32, outColor *vecmath.Vec3, outDepth *float32) {
		outColor.X = varyings[0]
		outColor.Y = varyings[1]
		outColor.Z = 0.5
	})

	verts := []float32{
		-1, -1, 0, 0, 0,
		1, -1, 0, 1, 0,
		1, 1, 0, 1, 1,
		-1, 1, 0, 0, 1,
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	vbo := p.LoadVBO(float32sToBytesHeadless(verts))
	ebo := p.LoadEBO(uint32sToBytesHeadless(indices))
	vao := p.BindVAO(ebo, vbo, 2, 5)

	p.ClearColor()
	p.ClearDepth()
	p.Render(vao)

	frame := make([]byte, screenW*screenH*4)
	p.RenderCopy(frame)
	fmt.Printf("rendered %d bytes\n", len(frame))
}
