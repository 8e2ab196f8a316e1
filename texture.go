// texture.go - texture upload, area-filter resample, mipmap pyramid packing

package s3dsim

import "fmt"

// mipSide returns the smallest power of two >= the larger of w,h, capped
// at MaxTextureSide.
func mipSide(w, h uint32) uint32 {
	side := w
	if h > side {
		side = h
	}
	s := uint32(1)
	for s < side {
		s <<= 1
	}
	if s > MaxTextureSide {
		s = MaxTextureSide
	}
	return s
}

func levelsFor(side uint32) uint32 {
	l := uint32(0)
	for s := side; s > 1; s >>= 1 {
		l++
	}
	return l
}

// LoadTexture uploads a tightly packed RGB or RGBA byte image, resamples
// it to a square power-of-two side, builds the full mipmap pyramid, and
// writes it to VRAM in the packed channel-split layout. Only 8 bits per
// channel is supported; RGBA is accepted by dropping alpha and recursing
// as RGB. Returns a 1-indexed texture handle.
func (p *Pipeline) LoadTexture(pixels []byte, w, h, channels, bpc uint32) TexHandle {
	if bpc != 1 {
		panic(fmt.Sprintf("s3dsim: unsupported texture bit depth: %d bytes per channel", bpc))
	}
	if channels == 4 {
		rgb := make([]byte, w*h*3)
		for i := uint32(0); i < w*h; i++ {
			rgb[i*3+0] = pixels[i*4+0]
			rgb[i*3+1] = pixels[i*4+1]
			rgb[i*3+2] = pixels[i*4+2]
		}
		return p.LoadTexture(rgb, w, h, 3, 1)
	}
	if channels != 3 {
		panic(fmt.Sprintf("s3dsim: unsupported texture channel count: %d", channels))
	}

	side := mipSide(w, h)
	levels := levelsFor(side)
	base := resampleAreaRGB(pixels, w, h, side, side)

	gridBytes := side * side * 4
	off := p.arena.Allocate(gridBytes)
	grid := p.arena.Slice(off, gridBytes)

	writeMipPyramid(grid, base, side, levels)

	handle := p.catalog.addTex(texRecord{
		offset:       off,
		width:        side,
		height:       side,
		mipmapLevels: levels,
	})
	return handle
}

// resampleAreaRGB resamples a w x h RGB image to dstW x dstH using a box
// (area) filter: each destination texel averages the source texels whose
// footprint it covers. Returns a tightly packed RGB buffer.
func resampleAreaRGB(src []byte, w, h, dstW, dstH uint32) []byte {
	dst := make([]byte, dstW*dstH*3)
	for dy := uint32(0); dy < dstH; dy++ {
		sy0 := dy * h / dstH
		sy1 := (dy + 1) * h / dstH
		if sy1 <= sy0 {
			sy1 = sy0 + 1
		}
		if sy1 > h {
			sy1 = h
		}
		for dx := uint32(0); dx < dstW; dx++ {
			sx0 := dx * w / dstW
			sx1 := (dx + 1) * w / dstW
			if sx1 <= sx0 {
				sx1 = sx0 + 1
			}
			if sx1 > w {
				sx1 = w
			}
			var sr, sg, sb, n uint32
			for sy := sy0; sy < sy1; sy++ {
				for sx := sx0; sx < sx1; sx++ {
					i := (sy*w + sx) * 3
					sr += uint32(src[i+0])
					sg += uint32(src[i+1])
					sb += uint32(src[i+2])
					n++
				}
			}
			if n == 0 {
				n = 1
			}
			o := (dy*dstW + dx) * 3
			dst[o+0] = byte(sr / n)
			dst[o+1] = byte(sg / n)
			dst[o+2] = byte(sb / n)
		}
	}
	return dst
}

// writeMipPyramid fills an S*S*4-byte arena region with every mip level
// of base (an S x S RGB image), one byte per texel per channel. The
// pyramid is a (2S) x (2S) plane of single bytes: each level's three
// channels occupy non-overlapping s x s sub-rectangles keyed off the
// level side alone, so one untiled offset reaches every level and
// channel with two shifts:
//
//	offset = 1 << levelFactor   (= the level's side s)
//	stride = 2 * S
//	R byte @ y*stride + offset + x
//	G byte @ (offset+y)*stride + x
//	B byte @ (offset+y)*stride + offset + x
//
// for (x,y) in [0, s) x [0, s). The full-resolution image sits at
// levelFactor = levels; each smaller level is an area-filter downsample
// of the one below it, bottoming out at 1x1.
func writeMipPyramid(grid []byte, base []byte, side uint32, levels uint32) {
	stride := 2 * side
	cur := base
	curSide := side
	for l := int(levels); l >= 0; l-- {
		s := uint32(1) << uint(l)
		if s != curSide {
			cur = resampleAreaRGB(cur, curSide, curSide, s, s)
			curSide = s
		}
		writeLevel(grid, stride, s, cur)
	}
}

// writeLevel writes one s x s RGB level into the packed (2S)x(2S) byte
// plane backing grid, per the addressing documented on writeMipPyramid.
func writeLevel(grid []byte, stride, s uint32, rgb []byte) {
	offset := s
	for y := uint32(0); y < s; y++ {
		for x := uint32(0); x < s; x++ {
			i := (y*s + x) * 3
			r, g, b := rgb[i+0], rgb[i+1], rgb[i+2]

			grid[y*stride+offset+x] = r
			grid[(offset+y)*stride+x] = g
			grid[(offset+y)*stride+offset+x] = b
		}
	}
}
