package s3dsim

import "testing"

func TestArena_AllocateMonotonic(t *testing.T) {
	a := NewArena(1024)
	var total uint32
	for _, n := range []uint32{16, 32, 4, 100} {
		off := a.Allocate(n)
		if off != total {
			t.Fatalf("expected offset %d, got %d", total, off)
		}
		total += n
		if a.Cursor() != total {
			t.Fatalf("expected cursor %d, got %d", total, a.Cursor())
		}
	}
}

func TestArena_AllocateExhaustedPanics(t *testing.T) {
	a := NewArena(8)
	a.Allocate(8)
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on exhausted arena")
		}
	}()
	a.Allocate(1)
}

func TestArena_WriteAndSlice(t *testing.T) {
	a := NewArena(16)
	off := a.Allocate(4)
	a.Write(off, []byte{1, 2, 3, 4})
	got := a.Slice(off, 4)
	want := []byte{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}
