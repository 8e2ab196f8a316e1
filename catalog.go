// catalog.go - object catalog: growable record tables for vbo/ebo/vao/fbo/tex

package s3dsim

import "fmt"

type vboRecord struct {
	offset uint32
	size   uint32
}

type eboRecord struct {
	offset uint32
	size   uint32
}

type vaoRecord struct {
	eboID           EBOHandle
	vboID           VBOHandle
	attributeCount  uint32
	attributeStride uint32
}

type fboRecord struct {
	colorOffset uint32
	depthOffset uint32
	width       uint32
	height      uint32
	colorSize   uint32
	format      PixelFormat
}

type texRecord struct {
	offset       uint32
	width        uint32
	height       uint32
	mipmapLevels uint32
}

// catalog holds the five growable object tables backing the handles.
// Each load operation copies the caller's bytes into the arena and
// appends a record; bindVAO records the tuple and returns its index.
type catalog struct {
	vbos []vboRecord
	ebos []eboRecord
	vaos []vaoRecord
	fbos []fboRecord
	texs []texRecord
}

func (c *catalog) addVBO(r vboRecord) VBOHandle {
	c.vbos = append(c.vbos, r)
	return VBOHandle(len(c.vbos) - 1)
}

func (c *catalog) addEBO(r eboRecord) EBOHandle {
	c.ebos = append(c.ebos, r)
	return EBOHandle(len(c.ebos) - 1)
}

func (c *catalog) addVAO(r vaoRecord) VAOHandle {
	c.vaos = append(c.vaos, r)
	return VAOHandle(len(c.vaos) - 1)
}

func (c *catalog) addFBO(r fboRecord) FBOHandle {
	c.fbos = append(c.fbos, r)
	return FBOHandle(len(c.fbos) - 1)
}

// addTex appends a texture record and returns a 1-indexed handle so that
// 0 can mean "no texture" in bound materials.
func (c *catalog) addTex(r texRecord) TexHandle {
	c.texs = append(c.texs, r)
	return TexHandle(len(c.texs))
}

func (c *catalog) vbo(h VBOHandle) vboRecord {
	if int(h) >= len(c.vbos) {
		panic(fmt.Sprintf("s3dsim: invalid VBO handle %d", h))
	}
	return c.vbos[h]
}

func (c *catalog) ebo(h EBOHandle) eboRecord {
	if int(h) >= len(c.ebos) {
		panic(fmt.Sprintf("s3dsim: invalid EBO handle %d", h))
	}
	return c.ebos[h]
}

func (c *catalog) vao(h VAOHandle) vaoRecord {
	if int(h) >= len(c.vaos) {
		panic(fmt.Sprintf("s3dsim: invalid VAO handle %d", h))
	}
	return c.vaos[h]
}

func (c *catalog) fbo(h FBOHandle) fboRecord {
	if int(h) >= len(c.fbos) {
		panic(fmt.Sprintf("s3dsim: invalid FBO handle %d", h))
	}
	return c.fbos[h]
}

// tex resolves a 1-indexed texture handle. Handle 0 must never reach
// here; callers check for "no texture" before resolving.
func (c *catalog) tex(h TexHandle) texRecord {
	if h == 0 || int(h) > len(c.texs) {
		panic(fmt.Sprintf("s3dsim: invalid texture handle %d", h))
	}
	return c.texs[h-1]
}
