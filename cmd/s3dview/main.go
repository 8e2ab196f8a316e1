//go:build !headless

// main.go - windowed demo for the s3dsim pipeline: draws a screen-filling
// quad colored by its UV coordinates and blits the rendered framebuffer
// via ebiten.

package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/term"

	"github.com/vretrace/s3dsim"
	"github.com/vretrace/s3dsim/vecmath"
)

const (
	screenW = 320
	screenH = 240
)

type demo struct {
	pipeline  *s3dsim.Pipeline
	vao       s3dsim.VAOHandle
	frame     []byte
	img       *ebiten.Image
	wireframe bool
}

func buildQuad(p *s3dsim.Pipeline) s3dsim.VAOHandle {
	// position.xyz, texcoord.uv per vertex, 5 floats stride.
	verts := []float32{
		-1, -1, 0, 0, 0,
		1, -1, 0, 1, 0,
		1, 1, 0, 1, 1,
		-1, 1, 0, 0, 1,
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	vbo := p.LoadVBO(float32sToBytes(verts))
	ebo := p.LoadEBO(uint32sToBytes(indices))
	return p.BindVAO(ebo, vbo, 2, 5)
}

func float32sToBytes(f []float32) []byte {
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

func uint32sToBytes(u []uint32) []byte {
	b := make([]byte, len(u)*4)
	for i, v := range u {
		b[i*4+0] = byte(v)
		b[i*4+1] = byte(v >> 8)
		b[i*4+2] = byte(v >> 16)
		b[i*4+3] = byte(v >> 24)
	}
	return b
}

func (d *demo) Update() error {
	d.pipeline.ClearColor()
	d.pipeline.ClearDepth()
	d.pipeline.Render(d.vao)
	if d.wireframe {
		green := s3dsim.MapRGB(0, 255, 0)
		d.pipeline.DebugLine(0, screenH-1, screenW-1, 0, green)
		d.pipeline.DebugHLine(0, 0, screenW-1, green)
		d.pipeline.DebugHLine(0, screenH-1, screenW-1, green)
		d.pipeline.DebugVLine(0, 0, screenH-1, green)
		d.pipeline.DebugVLine(screenW-1, 0, screenH-1, green)
	}
	d.pipeline.RenderCopy(d.frame)
	return nil
}

func (d *demo) Draw(screen *ebiten.Image) {
	d.img.WritePixels(bgraToRGBA(d.frame))
	screen.DrawImage(d.img, nil)
}

func (d *demo) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

// bgraToRGBA converts the pipeline's B,G,R,A memory order into the
// R,G,B,A order ebiten.Image.WritePixels expects.
func bgraToRGBA(src []byte) []byte {
	out := make([]byte, len(src))
	for i := 0; i+3 < len(src); i += 4 {
		out[i+0] = src[i+2]
		out[i+1] = src[i+1]
		out[i+2] = src[i+0]
		out[i+3] = src[i+3]
	}
	return out
}

func printASCIIPreview(frame []byte, w, h int) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	termW, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termW <= 0 {
		termW = 80
	}
	cols := termW
	if cols > w {
		cols = w
	}
	ramp := " .:-=+*#%@"
	for y := 0; y < h; y += h / 24 {
		for x := 0; x < w; x += w / cols {
			i := (y*w + x) * 4
			if i+2 >= len(frame) {
				continue
			}
			lum := (int(frame[i+2]) + int(frame[i+1]) + int(frame[i])) / 3
			fmt.Print(string(ramp[lum*len(ramp)/256]))
		}
		fmt.Println()
	}
}

func main() {
	wireframe := flag.Bool("wireframe", false, "overlay a wireframe outline via the restored debug line helpers")
	preview := flag.Bool("preview", false, "print an ASCII luminance preview to the terminal instead of opening a window")
	flag.Parse()

	p := s3dsim.NewPipeline(screenW, screenH, s3dsim.PixelRGBA8)
	p.DepthTest(true)
	p.EarlyDepthTest(true)
	p.SetVaryingCount(2)
	p.SetVertexShader(vertexShader)
	p.SetFragmentShader(fragmentShader)

	vao := buildQuad(p)

	d := &demo{
		pipeline:  p,
		vao:       vao,
		frame:     make([]byte, screenW*screenH*4),
		img:       ebiten.NewImage(screenW, screenH),
		wireframe: *wireframe,
	}

	if *preview {
		p.ClearColor()
		p.ClearDepth()
		p.Render(vao)
		p.RenderCopy(d.frame)
		printASCIIPreview(d.frame, screenW, screenH)
		return
	}
	ebiten.SetWindowSize(screenW*2, screenH*2)
	ebiten.SetWindowTitle("s3dsim demo")
	if err := ebiten.RunGame(d); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func vertexShader(uniforms *s3dsim.UniformBlock, attrs []float32, outVaryings []float32, outPosition *vecmath.Vec4) {
	outPosition.X = attrs[0]
	outPosition.Y = attrs[1]
	outPosition.Z = attrs[2]
	outPosition.W = 1
	outVaryings[0] = attrs[3]
	outVaryings[1] = attrs[4]
}

func fragmentShader(uniforms *s3dsim.UniformBlock, varyings []float32, ddx []float32, ddy []float32, outColor *vecmath.Vec3, outDepth *float32) {
	outColor.X = varyings[0]
	outColor.Y = varyings[1]
	outColor.Z = 0.5
}
