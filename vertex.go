// vertex.go - vertex-stage driver: walks the index buffer three at a time,
// running the vertex callback per attribute slot

package s3dsim

import (
	"encoding/binary"
	"math"
)

// runVertexStage resolves vaoHandle to its vbo/ebo, walks the index
// buffer three indices at a time, and for each triangle runs the vertex
// callback on each attribute slot before handing the three post-VS
// vertices to the clipper.
func (p *Pipeline) runVertexStage(vaoHandle VAOHandle) {
	vao := p.catalog.vao(vaoHandle)
	vbo := p.catalog.vbo(vao.vboID)
	ebo := p.catalog.ebo(vao.eboID)

	indexBytes := p.arena.Slice(ebo.offset, ebo.size)
	attribBytes := p.arena.Slice(vbo.offset, vbo.size)

	stride := vao.attributeStride
	attrFloats := make([]float32, vbo.size/4)
	for i := range attrFloats {
		bits := binary.LittleEndian.Uint32(attribBytes[i*4:])
		attrFloats[i] = math.Float32frombits(bits)
	}

	triCount := ebo.size / 4 / 3
	for t := uint32(0); t < triCount; t++ {
		var verts [3]PostVSVertex
		for j := 0; j < 3; j++ {
			index := binary.LittleEndian.Uint32(indexBytes[(t*3+uint32(j))*4:])
			base := stride * index
			if p.vs != nil {
				p.vs(p.uniforms, attrFloats[base:base+stride], verts[j].Varying[:p.varyingCount], &verts[j].Position)
			}
		}

		clipped := clipTriangle(&verts[0], &verts[1], &verts[2], int(p.varyingCount))
		if len(clipped) == 0 {
			continue
		}
		p.viewportTransformAndFan(clipped, p.fbWidth, p.fbHeight, int(p.varyingCount))
	}
}
