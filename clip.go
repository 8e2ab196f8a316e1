// clip.go - Sutherland-Hodgman polygon clipper against 7 homogeneous half-spaces

package s3dsim

import "github.com/vretrace/s3dsim/vecmath"

// clipPlane is one half-space, stored as the (n, bias-weight) coefficients
// dotted against (x,y,z, w+wBias).
type clipPlane struct {
	n     vecmath.Vec4
	wBias float32
}

// the fixed ordered list of 7 half-spaces the view volume is cut by.
// Plane 6 additionally biases w by -0.1, so a vertex is inside it only
// when w > 0.1.
var clipPlanes = [7]clipPlane{
	{n: vecmath.Vec4{X: -1, Y: 0, Z: 0, W: 1}, wBias: 0},
	{n: vecmath.Vec4{X: 1, Y: 0, Z: 0, W: 1}, wBias: 0},
	{n: vecmath.Vec4{X: 0, Y: -1, Z: 0, W: 1}, wBias: 0},
	{n: vecmath.Vec4{X: 0, Y: 1, Z: 0, W: 1}, wBias: 0},
	{n: vecmath.Vec4{X: 0, Y: 0, Z: 1, W: 0}, wBias: 0},
	{n: vecmath.Vec4{X: 0, Y: 0, Z: 1, W: 1}, wBias: 0},
	{n: vecmath.Vec4{X: 0, Y: 0, Z: 0, W: 1}, wBias: -0.1},
}

// maxClipVertices bounds the output of clipping a triangle against all 7
// planes: each plane adds at most one vertex, and the z >= -w plane adds
// none, since planes 0, 1 and 4 already leave w > 0 and z >= 0.
const maxClipVertices = 9

func dotWBias(v vecmath.Vec4, pl clipPlane) float32 {
	return v.X*pl.n.X + v.Y*pl.n.Y + v.Z*pl.n.Z + (v.W+pl.wBias)*pl.n.W
}

func insideEdge(v vecmath.Vec4, pl clipPlane) bool {
	return dotWBias(v, pl) > 0
}

func intersect(pl clipPlane, cur, prev *PostVSVertex, varyingCount int) PostVSVertex {
	dp := dotWBias(cur.Position, pl)
	dpPrev := dotWBias(prev.Position, pl)
	factor := dpPrev / (dpPrev - dp)

	var out PostVSVertex
	out.Position = vecmath.Vec4Lerp(factor, cur.Position, prev.Position)
	for i := 0; i < varyingCount; i++ {
		out.Varying[i] = vecmath.Lerp(factor, cur.Varying[i], prev.Varying[i])
	}
	return out
}

// clipTriangle clips the three post-VS vertices against all 7 half-spaces
// in order, each plane's output polygon feeding the next plane as input.
// Returns the surviving polygon (possibly empty — the triangle is then
// skipped) of up to maxClipVertices vertices.
func clipTriangle(v0, v1, v2 *PostVSVertex, varyingCount int) []PostVSVertex {
	var bufA, bufB [maxClipVertices]PostVSVertex
	in := []PostVSVertex{*v0, *v1, *v2}

	useA := true
	for i := 0; i < len(clipPlanes); i++ {
		pl := clipPlanes[i]
		var out []PostVSVertex
		if useA {
			out = bufA[:0]
		} else {
			out = bufB[:0]
		}

		if len(in) == 0 {
			return nil
		}

		ref := &in[len(in)-1]
		for j := range in {
			cur := &in[j]
			curIn := insideEdge(cur.Position, pl)
			refIn := insideEdge(ref.Position, pl)
			if curIn {
				if !refIn {
					out = append(out, intersect(pl, cur, ref, varyingCount))
				}
				out = append(out, *cur)
			} else if refIn {
				out = append(out, intersect(pl, cur, ref, varyingCount))
			}
			ref = cur
		}

		in = out
		useA = !useA
	}
	return in
}
