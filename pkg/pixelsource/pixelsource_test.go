package pixelsource

import "testing"

func TestNewGridRejectsWrongLength(t *testing.T) {
	_, err := NewGrid(2, 2, make([]byte, 10))
	if err == nil {
		t.Fatalf("expected error for mismatched buffer length")
	}
}

func TestComputeBoundsSingleOpaquePixel(t *testing.T) {
	g, err := NewGrid(1, 1, []byte{255, 255, 255, 255})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	b := ComputeBounds(g)
	if !b.Ok {
		t.Fatalf("expected opaque bounds to be found")
	}
	if b.X != 0 || b.Y != 0 || b.W != 1 || b.H != 1 {
		t.Errorf("got bounds %+v, want {X:0 Y:0 W:1 H:1}", b)
	}
}

func TestComputeBoundsFullyTransparent(t *testing.T) {
	g, err := NewGrid(2, 2, make([]byte, 2*2*4))
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	b := ComputeBounds(g)
	if b.Ok {
		t.Errorf("expected no opaque bounds for fully transparent grid, got %+v", b)
	}
}

func TestComputeBoundsTightRectangle(t *testing.T) {
	// 4x4 grid, opaque pixels only at (1,1) and (2,3).
	pixels := make([]byte, 4*4*4)
	set := func(x, y int, a byte) {
		i := (y*4 + x) * 4
		pixels[i+3] = a
	}
	set(1, 1, 255)
	set(2, 3, 200)
	g, err := NewGrid(4, 4, pixels)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	b := ComputeBounds(g)
	if !b.Ok {
		t.Fatalf("expected bounds to be found")
	}
	if b.X != 1 || b.Y != 1 || b.W != 2 || b.H != 3 {
		t.Errorf("got bounds %+v, want {X:1 Y:1 W:2 H:3}", b)
	}
}

func TestOpaqueThreshold(t *testing.T) {
	g, err := NewGrid(1, 2, []byte{
		0, 0, 0, 127, // just below threshold
		0, 0, 0, 128, // at threshold
	})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.Opaque(0, 0) {
		t.Errorf("alpha 127 should not be opaque")
	}
	if !g.Opaque(0, 1) {
		t.Errorf("alpha 128 should be opaque")
	}
}
