package mesh

import "testing"

func TestAddQuadProducesFourVerticesAndSixIndices(t *testing.T) {
	m := New()
	m.AddQuad(
		Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{1, 1, 0}, Vec3{0, 1, 0},
		Vec3{0, 0, -1},
		Vec2{0, 0}, Vec2{1, 0}, Vec2{1, 1}, Vec2{0, 1},
	)
	if len(m.Positions) != 4 || len(m.Normals) != 4 || len(m.UVs) != 4 {
		t.Fatalf("expected 4 positions/normals/uvs, got %d/%d/%d", len(m.Positions), len(m.Normals), len(m.UVs))
	}
	if len(m.Indices) != 6 {
		t.Fatalf("expected 6 indices, got %d", len(m.Indices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range want {
		if m.Indices[i] != idx {
			t.Errorf("index[%d] = %d, want %d", i, m.Indices[i], idx)
		}
	}
}

func TestAppendRenumbersIndices(t *testing.T) {
	a := New()
	a.AddQuad(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{1, 1, 0}, Vec3{0, 1, 0}, Vec3{0, 0, -1}, Vec2{}, Vec2{}, Vec2{}, Vec2{})
	b := New()
	b.AddQuad(Vec3{2, 0, 0}, Vec3{3, 0, 0}, Vec3{3, 1, 0}, Vec3{2, 1, 0}, Vec3{0, 0, -1}, Vec2{}, Vec2{}, Vec2{}, Vec2{})

	a.Append(b)

	if len(a.Positions) != 8 {
		t.Fatalf("expected 8 positions after append, got %d", len(a.Positions))
	}
	if len(a.Indices) != 12 {
		t.Fatalf("expected 12 indices after append, got %d", len(a.Indices))
	}
	wantSecondFace := []uint32{4, 5, 6, 4, 6, 7}
	for i, idx := range wantSecondFace {
		if a.Indices[6+i] != idx {
			t.Errorf("second face index[%d] = %d, want %d", i, a.Indices[6+i], idx)
		}
	}
}

func TestAppendAssociativeUnderPixelSet(t *testing.T) {
	// Appending A and then B onto an empty mesh must match appending B
	// onto a freshly built A.
	buildQuadAt := func(ox float32) *Mesh {
		m := New()
		m.AddQuad(
			Vec3{ox, 0, 0}, Vec3{ox + 1, 0, 0}, Vec3{ox + 1, 1, 0}, Vec3{ox, 1, 0},
			Vec3{0, 0, -1}, Vec2{}, Vec2{}, Vec2{}, Vec2{},
		)
		return m
	}

	a := buildQuadAt(0)
	b := buildQuadAt(5)
	union := New()
	union.Append(a)
	union.Append(b)

	combined := buildQuadAt(0)
	combined.Append(buildQuadAt(5))

	if len(union.Positions) != len(combined.Positions) || len(union.Indices) != len(combined.Indices) {
		t.Fatalf("associativity violated: union has %d/%d, combined has %d/%d",
			len(union.Positions), len(union.Indices), len(combined.Positions), len(combined.Indices))
	}
}

func TestBounds(t *testing.T) {
	m := New()
	m.AddQuad(
		Vec3{-0.5, -0.5, -0.25}, Vec3{0.5, -0.5, -0.25}, Vec3{0.5, 0.5, 0.25}, Vec3{-0.5, 0.5, 0.25},
		Vec3{0, 0, 1}, Vec2{}, Vec2{}, Vec2{}, Vec2{},
	)
	min, max := m.Bounds()
	if min != (Vec3{-0.5, -0.5, -0.25}) {
		t.Errorf("min = %+v, want {-0.5 -0.5 -0.25}", min)
	}
	if max != (Vec3{0.5, 0.5, 0.25}) {
		t.Errorf("max = %+v, want {0.5 0.5 0.25}", max)
	}
}

func TestNeedsWideIndices(t *testing.T) {
	m := New()
	if m.NeedsWideIndices() {
		t.Errorf("empty mesh should not need wide indices")
	}
	for i := 0; i < 65536; i++ {
		m.Positions = append(m.Positions, Vec3{})
	}
	if !m.NeedsWideIndices() {
		t.Errorf("mesh with 65536 vertices should need wide indices")
	}
}
