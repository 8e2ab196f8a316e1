// types.go - handle newtypes and per-draw data shapes for the s3d pipeline

package s3dsim

import "github.com/vretrace/s3dsim/vecmath"

// Handles are small integers into the object catalog, never raw VRAM
// offsets. VBOHandle, EBOHandle and VAOHandle are 0-indexed; TexHandle is
// 1-indexed so that the zero value means "no texture" in bound materials.
type VBOHandle uint32
type EBOHandle uint32
type VAOHandle uint32
type FBOHandle uint32
type TexHandle uint32

// PixelFormat enumerates the color formats a framebuffer may be created
// with. Depth is always 32-bit float regardless of color format.
type PixelFormat int

const (
	PixelRGB8 PixelFormat = iota
	PixelRGBA8
	PixelRGB16F
	PixelRGBA16F
	PixelRGB32F
	PixelRGBA32F
)

// BytesPerPixel returns the color-buffer stride for one format, or panics
// on an unsupported value.
func (f PixelFormat) BytesPerPixel() uint32 {
	switch f {
	case PixelRGB8:
		return 3
	case PixelRGBA8:
		return 4
	case PixelRGB16F:
		return 6
	case PixelRGBA16F:
		return 8
	case PixelRGB32F:
		return 12
	case PixelRGBA32F:
		return 16
	default:
		panic("s3dsim: unsupported pixel format")
	}
}

const (
	// MaxVarying-4 = 28 is the maximum number of varying floats a draw
	// may configure (7 vec4s); PostVSVertex.Varying and SetVaryingCount
	// both use that bound.
	MaxVarying = 32
	// MaxTextureSide caps the resampled, power-of-two texture side.
	MaxTextureSide = 512
	// UniformSize is the fixed byte size of the process-wide uniform block.
	UniformSize = 4 * 128
	// TMUCount is the number of texture-mapping-unit slots the sampler
	// exposes; the modeled hardware has exactly one.
	TMUCount = 1
	// VRAMSize is the size of the simulated bump-allocated byte arena.
	VRAMSize = 256 * 1024 * 1024
)

// UniformBlock is the process-wide byte array written wholesale by the
// caller and read by both shader callbacks.
type UniformBlock [UniformSize]byte

// PostVSVertex is a vertex after the vertex shader has run: clip-space
// position plus up to MaxVarying-4 varyings, and (once viewport-mapped)
// an integer screen position.
type PostVSVertex struct {
	Position vecmath.Vec4
	Varying  [MaxVarying - 4]float32
	ScreenX  int32
	ScreenY  int32
}

// VertexShader is the fixed-ABI vertex callback: it reads attribute
// floats and the uniform block, and writes exactly varyingCount floats to
// outVaryings plus the clip-space position to outPosition. Shaders are
// fixed callbacks, not a dynamic dispatch table.
type VertexShader func(uniforms *UniformBlock, attributes []float32, outVaryings []float32, outPosition *vecmath.Vec4)

// FragmentShader is the fixed-ABI fragment callback. ddx and ddy each
// carry varyingCount/4 entries, one per vec4 group.
type FragmentShader func(uniforms *UniformBlock, varyings []float32, ddx []float32, ddy []float32, outColor *vecmath.Vec3, outDepth *float32)

// PipelineError models a recoverable (non-contract-violation) failure
// outside the core render path.
type PipelineError struct {
	Operation string
	Details   string
	Err       error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return "s3dsim " + e.Operation + " failed: " + e.Details + ": " + e.Err.Error()
	}
	return "s3dsim " + e.Operation + " failed: " + e.Details
}

func (e *PipelineError) Unwrap() error { return e.Err }
