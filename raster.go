// raster.go - 2x2-quad serpentine rasterizer state machine
//
// Expressed as a data table (state, condition) -> (step, emit, next),
// mirroring the hardware intent rather than nested branches.

package s3dsim

import "log"

type rasState int

const (
	stScanRightForLeftEdge rasState = iota
	stSweepRight
	stSteppedRightDown
	stScanLeftForRightEdge
	stScanRightForRightEdge
	stSweepLeft
	stSteppedLeftDown
	stScanLeftForLeftEdge
	numRasStates
)

type rasCond int

const (
	condOutside rasCond = iota
	condInside
	condLeftEdge
	condRightEdge
	numRasConds
)

type stepDir int

const (
	stepNone stepDir = iota
	stepRight
	stepDown
	stepLeft
)

type rasTransition struct {
	step      stepDir
	emit      bool
	next      rasState
	assertion bool // true: this (state,cond) pair is impossible
}

// rasTable drives the serpentine walk: march right until the triangle is
// entered, sweep across until it is exited, step down, march back to find
// the next row, alternating sweep direction per row.
var rasTable = [numRasStates][numRasConds]rasTransition{
	stScanRightForLeftEdge: {
		condOutside:   {stepRight, false, stScanRightForLeftEdge, false},
		condInside:    {stepRight, true, stSweepRight, false},
		condLeftEdge:  {stepRight, true, stScanRightForLeftEdge, false},
		condRightEdge: {stepDown, false, stSteppedRightDown, false},
	},
	stSweepRight: {
		condOutside:   {stepDown, false, stSteppedRightDown, false},
		condInside:    {stepRight, true, stSweepRight, false},
		condLeftEdge:  {stepRight, true, stSweepRight, false},
		condRightEdge: {stepDown, false, stSteppedRightDown, false},
	},
	stSteppedRightDown: {
		condOutside:   {stepLeft, false, stScanLeftForRightEdge, false},
		condInside:    {stepRight, false, stScanRightForRightEdge, false},
		condLeftEdge:  {stepNone, false, 0, true},
		condRightEdge: {stepLeft, false, stScanLeftForRightEdge, false},
	},
	stScanLeftForRightEdge: {
		condOutside:   {stepLeft, false, stScanLeftForRightEdge, false},
		condInside:    {stepLeft, true, stSweepLeft, false},
		condLeftEdge:  {stepRight, false, stScanRightForLeftEdge, false},
		condRightEdge: {stepNone, false, 0, true},
	},
	stScanRightForRightEdge: {
		condOutside:   {stepLeft, false, stSweepLeft, false},
		condInside:    {stepRight, false, stScanRightForRightEdge, false},
		condLeftEdge:  {stepNone, false, 0, true},
		condRightEdge: {stepLeft, true, stSweepLeft, false},
	},
	stSweepLeft: {
		condOutside:   {stepDown, false, stSteppedLeftDown, false},
		condInside:    {stepLeft, true, stSweepLeft, false},
		condLeftEdge:  {stepDown, true, stSteppedLeftDown, false},
		condRightEdge: {stepLeft, true, stSweepLeft, false},
	},
	stSteppedLeftDown: {
		condOutside:   {stepRight, false, stScanRightForLeftEdge, false},
		condInside:    {stepLeft, false, stScanLeftForLeftEdge, false},
		condLeftEdge:  {stepRight, false, stScanRightForLeftEdge, false},
		condRightEdge: {stepNone, false, 0, true},
	},
	stScanLeftForLeftEdge: {
		condOutside:   {stepRight, false, stSweepRight, false},
		condInside:    {stepLeft, false, stScanLeftForLeftEdge, false},
		condLeftEdge:  {stepRight, true, stScanRightForLeftEdge, false},
		condRightEdge: {stepLeft, false, stScanLeftForLeftEdge, false},
	},
}

// quad holds the four edge-function samples for one triangle edge at a
// 2x2 quad origin, in the order (x,y), (x+1,y), (x,y+1), (x+1,y+1).
type quad [4]int32

// rasterizeTriangle walks the bounding box of v0,v1,v2 in 2x2 quads via
// the state machine above, emitting each quad to the fragment stage. v0
// is the fan pivot; v1,v2 arrive already swapped by the caller.
func (p *Pipeline) rasterizeTriangle(v0, v1, v2 *PostVSVertex, varyingCount int) {
	x0, y0 := v0.ScreenX, v0.ScreenY
	x1, y1 := v1.ScreenX, v1.ScreenY
	x2, y2 := v2.ScreenX, v2.ScreenY

	// Degenerate triangle: all three x or all three y equal. A no-op,
	// not an error.
	if x0 == x1 && x1 == x2 {
		return
	}
	if y0 == y1 && y1 == y2 {
		return
	}

	step1x := y0 - y1
	step1y := x1 - x0

	// Early reject: the signed area from edges 0 and 1 at vertex 2 must
	// be positive. Zero area is a degenerate triangle either way; a
	// negative area is a back face, culled when culling is on and
	// re-wound otherwise so the edge functions stay interior-positive.
	edge1At2 := (x2-x1)*step1x + (y2-y1)*step1y
	if edge1At2 == 0 {
		return
	}
	if edge1At2 < 0 {
		if p.faceCulling {
			return
		}
		x1, y1, x2, y2 = x2, y2, x1, y1
		v1, v2 = v2, v1
		step1x = y0 - y1
		step1y = x1 - x0
	}

	leftEdge := min3(x0, x1, x2)
	leftEdge = (leftEdge - 2) / 2 * 2
	rightEdge := max3(x0, x1, x2)
	rightEdge = (rightEdge + 2) / 2 * 2
	upperEdge := min3(y0, y1, y2)
	upperEdge = upperEdge / 2 * 2
	lowerEdge := max3(y0, y1, y2)
	lowerEdge = (lowerEdge + 2) / 2 * 2

	step0x, step0y := y2-y0, x0-x2
	step2x, step2y := y1-y2, x2-x1

	x, y := leftEdge, upperEdge

	e0base := (x-x0)*step0x + (y-y0)*step0y
	e1base := (x-x1)*step1x + (y-y1)*step1y
	e2base := (x-x2)*step2x + (y-y2)*step2y

	state := stScanRightForLeftEdge
	var loopCounter int64
	iterCap := int64(p.fbWidth) * int64(p.fbHeight)

	for {
		var e0, e1, e2 quad
		e0[0], e1[0], e2[0] = e0base, e1base, e2base
		e0[1] = e0[0] + step0x
		e1[1] = e1[0] + step1x
		e2[1] = e2[0] + step2x
		e0[2] = e0[0] + step0y
		e1[2] = e1[0] + step1y
		e2[2] = e2[0] + step2y
		e0[3] = e0[2] + step0x
		e1[3] = e1[2] + step1x
		e2[3] = e2[2] + step2x

		var inside [4]bool
		anyInside := false
		for i := 0; i < 4; i++ {
			inside[i] = e0[i] >= 0 && e1[i] >= 0 && e2[i] >= 0
			anyInside = anyInside || inside[i]
		}

		var cond rasCond
		switch {
		case anyInside:
			cond = condInside
		case x == leftEdge:
			cond = condLeftEdge
		case x == rightEdge:
			cond = condRightEdge
		default:
			cond = condOutside
		}

		tr := rasTable[state][cond]
		if tr.assertion {
			panic("s3dsim: impossible rasterizer state transition")
		}

		if anyInside && tr.emit {
			// edge2,edge0,edge1 map to w0,w1,w2 respectively, matching
			// the fragment stage's barycentric-weight convention.
			p.processFragmentQuad(inside, x, y, e2, e0, e1, v0, v1, v2, varyingCount)
		}

		switch tr.step {
		case stepDown:
			e0base += step0y * 2
			e1base += step1y * 2
			e2base += step2y * 2
			y += 2
		case stepLeft:
			e0base -= step0x * 2
			e1base -= step1x * 2
			e2base -= step2x * 2
			x -= 2
		case stepRight:
			e0base += step0x * 2
			e1base += step1x * 2
			e2base += step2x * 2
			x += 2
		}

		if y == lowerEdge {
			break
		}
		state = tr.next

		loopCounter++
		if loopCounter > iterCap {
			log.Printf("s3dsim: rasterizer loop-safety cap exceeded, aborting triangle")
			return
		}
	}
}

func min3(a, b, c int32) int32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c int32) int32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
