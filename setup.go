// setup.go - perspective divide, viewport transform, triangle fan

package s3dsim

// viewportTransformAndFan performs the perspective divide and viewport
// mapping in place on a clipped polygon, then fans it into triangles and
// hands each one to the rasterizer.
func (p *Pipeline) viewportTransformAndFan(poly []PostVSVertex, fbw, fbh uint32, varyingCount int) {
	for j := range poly {
		v := &poly[j]
		invW := 1.0 / v.Position.W
		v.Position.X = (v.Position.X*invW + 1) * float32(fbw) / 2
		v.Position.Y = (1 - v.Position.Y*invW) * float32(fbh) / 2
		v.Position.Z = v.Position.Z * invW
		v.Position.W = invW
		if p.perspectiveCorrect {
			for k := 0; k < varyingCount; k++ {
				v.Varying[k] *= invW
			}
		}
		v.ScreenX = int32(v.Position.X + 0.5)
		v.ScreenY = int32(v.Position.Y + 0.5)
	}

	// Fan as (v0, v_{i+2}, v_{i+1}): the swapped 2nd/3rd vertex restores
	// the winding the rasterizer expects after the viewport y-flip.
	for i := 0; i+2 < len(poly); i++ {
		p.rasterizeTriangle(&poly[0], &poly[i+2], &poly[i+1], varyingCount)
	}
}
