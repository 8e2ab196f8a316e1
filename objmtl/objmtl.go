// Package objmtl parses Wavefront OBJ geometry and MTL materials into
// the vertex/index buffer and texture shapes a Pipeline loads. It sits
// outside the pipeline core; the core only consumes the data it emits.
package objmtl

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/vretrace/s3dsim/vecmath"
)

// Vertex is one deduplicated OBJ vertex: position plus texture
// coordinate (normals are not modeled — the core pipeline's vertex ABI
// computes its own varyings from whatever attribute layout the caller
// agrees on with the vertex shader).
type Vertex struct {
	Position vecmath.Vec3
	TexCoord vecmath.Vec2
}

// BoundingSphere is a per-mesh culling aid: center plus radius.
type BoundingSphere struct {
	Center vecmath.Vec3
	Radius float32
}

// Material holds an MTL entry's diffuse texture, decoded and ready for
// Pipeline.LoadTexture (caller still owns calling that, since only the
// Pipeline knows the catalog).
type Material struct {
	Name         string
	DiffusePixels []byte // tightly packed RGB, 1 byte per channel
	Width, Height uint32
}

// Mesh is one named sub-mesh: its vertex list, triangle index list
// (3 indices per triangle), optional material, and bounding sphere.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material *Material
	Bounds   BoundingSphere
}

// LoadOBJ parses a Wavefront OBJ file at path, resolving any `mtllib`
// reference relative to the same directory, and returns one Mesh per
// `g`/`o` group that has faces; `usemtl` sets the material of the current
// group without starting a new one. Face vertices are deduplicated by
// their full index token.
func LoadOBJ(path string) ([]Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("objmtl: open %s: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)

	var positions []vecmath.Vec3
	var texCoords []vecmath.Vec2
	materials := map[string]*Material{}

	var groups []*groupState
	cur := &groupState{name: "default", dedup: map[string]uint32{}}
	groups = append(groups, cur)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "mtllib":
			mtlPath := filepath.Join(dir, fields[1])
			loaded, err := loadMTL(mtlPath, dir)
			if err != nil {
				return nil, err
			}
			for k, v := range loaded {
				materials[k] = v
			}
		case "v":
			positions = append(positions, parseVec3(fields))
		case "vt":
			texCoords = append(texCoords, parseVec2(fields))
		case "g", "o":
			if len(cur.verts) > 0 || len(cur.indices) > 0 {
				cur = &groupState{name: fields[len(fields)-1], dedup: map[string]uint32{}}
				groups = append(groups, cur)
			} else {
				cur.name = fields[len(fields)-1]
			}
		case "usemtl":
			cur.material = materials[fields[1]]
		case "f":
			if len(fields) < 4 {
				continue
			}
			idx := make([]uint32, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx = append(idx, resolveVertex(cur, tok, positions, texCoords))
			}
			// Fan triangulate faces with more than 3 vertices.
			for i := 1; i+1 < len(idx); i++ {
				cur.indices = append(cur.indices, idx[0], idx[i], idx[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("objmtl: scan %s: %w", path, err)
	}

	meshes := make([]Mesh, 0, len(groups))
	for _, g := range groups {
		if len(g.indices) == 0 {
			continue
		}
		meshes = append(meshes, Mesh{
			Name:     g.name,
			Vertices: g.verts,
			Indices:  g.indices,
			Material: g.material,
			Bounds:   boundingSphere(g.verts),
		})
	}
	return meshes, nil
}

// groupState accumulates one OBJ group's (g/o-delimited) vertices
// and triangle indices, with a dedup table keyed by face-vertex token.
type groupState struct {
	name     string
	material *Material
	verts    []Vertex
	indices  []uint32
	dedup    map[string]uint32
}

// resolveVertex parses one face-vertex token ("v", "v/vt", or "v/vt/vn")
// and returns its index into g.verts, creating a new deduplicated entry
// on first encounter. Negative indices are relative-to-end per the OBJ
// format.
func resolveVertex(g *groupState, tok string, positions []vecmath.Vec3, texCoords []vecmath.Vec2) uint32 {
	if id, ok := g.dedup[tok]; ok {
		return id
	}
	parts := strings.Split(tok, "/")
	ipos := resolveOBJIndex(parts[0], len(positions))
	v := Vertex{Position: positions[ipos]}
	if len(parts) >= 2 && parts[1] != "" {
		itex := resolveOBJIndex(parts[1], len(texCoords))
		v.TexCoord = texCoords[itex]
	}
	g.verts = append(g.verts, v)
	id := uint32(len(g.verts) - 1)
	g.dedup[tok] = id
	return id
}

func resolveOBJIndex(s string, count int) int {
	n, _ := strconv.Atoi(s)
	if n < 0 {
		return count + n
	}
	return n - 1
}

func boundingSphere(verts []Vertex) BoundingSphere {
	if len(verts) == 0 {
		return BoundingSphere{}
	}
	var min, max vecmath.Vec3
	min = verts[0].Position
	max = verts[0].Position
	for _, v := range verts {
		if v.Position.X < min.X {
			min.X = v.Position.X
		}
		if v.Position.Y < min.Y {
			min.Y = v.Position.Y
		}
		if v.Position.Z < min.Z {
			min.Z = v.Position.Z
		}
		if v.Position.X > max.X {
			max.X = v.Position.X
		}
		if v.Position.Y > max.Y {
			max.Y = v.Position.Y
		}
		if v.Position.Z > max.Z {
			max.Z = v.Position.Z
		}
	}
	center := vecmath.Vec3Scale(vecmath.Vec3Add(min, max), 0.5)
	var radius float32
	for _, v := range verts {
		d := vecmath.Vec3Length(vecmath.Vec3Sub(v.Position, center))
		if d > radius {
			radius = d
		}
	}
	return BoundingSphere{Center: center, Radius: radius}
}

func parseVec3(fields []string) vecmath.Vec3 {
	return vecmath.Vec3{X: parseFloat(fields[1]), Y: parseFloat(fields[2]), Z: parseFloat(fields[3])}
}

func parseVec2(fields []string) vecmath.Vec2 {
	return vecmath.Vec2{X: parseFloat(fields[1]), Y: parseFloat(fields[2])}
}

func parseFloat(s string) float32 {
	v, _ := strconv.ParseFloat(s, 32)
	return float32(v)
}

// loadMTL parses an MTL file and decodes each referenced diffuse texture
// image via the standard decoders plus golang.org/x/image/bmp for the
// formats stdlib does not cover, normalizing every decoded image.Image
// into a tightly packed RGB byte buffer through golang.org/x/image/draw.
func loadMTL(path, dir string) (map[string]*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("objmtl: open mtl %s: %w", path, err)
	}
	defer f.Close()

	materials := map[string]*Material{}
	var cur *Material

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			cur = &Material{Name: fields[1]}
			materials[cur.Name] = cur
		case "map_Kd":
			if cur == nil {
				continue
			}
			imgPath := filepath.Join(dir, fields[len(fields)-1])
			pixels, w, h, err := decodeImageRGB(imgPath)
			if err != nil {
				return nil, err
			}
			cur.DiffusePixels = pixels
			cur.Width = w
			cur.Height = h
		}
	}
	return materials, scanner.Err()
}

func decodeImageRGB(path string) ([]byte, uint32, uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("objmtl: open texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil && err != io.EOF {
		return nil, 0, 0, fmt.Errorf("objmtl: decode texture %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	out := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := rgba.PixOffset(x, y)
			o := (y*w + x) * 3
			out[o+0] = rgba.Pix[i+0]
			out[o+1] = rgba.Pix[i+1]
			out[o+2] = rgba.Pix[i+2]
		}
	}
	return out, uint32(w), uint32(h), nil
}
