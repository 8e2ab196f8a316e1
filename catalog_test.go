package s3dsim

import "testing"

func TestCatalog_TextureHandlesAreOneIndexed(t *testing.T) {
	var c catalog
	h1 := c.addTex(texRecord{width: 4, height: 4})
	h2 := c.addTex(texRecord{width: 8, height: 8})
	if h1 != 1 {
		t.Fatalf("expected first texture handle 1, got %d", h1)
	}
	if h2 != 2 {
		t.Fatalf("expected second texture handle 2, got %d", h2)
	}
}

func TestCatalog_OtherHandlesAreZeroIndexed(t *testing.T) {
	var c catalog
	h := c.addVBO(vboRecord{offset: 0, size: 16})
	if h != 0 {
		t.Fatalf("expected first VBO handle 0, got %d", h)
	}
}

func TestCatalog_InvalidHandlePanics(t *testing.T) {
	var c catalog
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on invalid handle")
		}
	}()
	c.vbo(0)
}

func TestCatalog_InvalidTextureZeroPanics(t *testing.T) {
	var c catalog
	c.addTex(texRecord{width: 1, height: 1})
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic resolving texture handle 0")
		}
	}()
	c.tex(0)
}
