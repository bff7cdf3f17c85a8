package evergreen

import "testing"

func TestBuildAtlasCells(t *testing.T) {
	img := buildAtlas()
	if b := img.Bounds(); b.Dx() != atlasWidth || b.Dy() != atlasHeight {
		t.Fatalf("atlas bounds = %v", b)
	}
	const mid = atlasCell / 2
	tests := []struct {
		name string
		x, y int
		minA uint8
		maxA uint8
	}{
		{"dot center", cellDot*atlasCell + mid, mid, 200, 255},
		{"dot corner", cellDot * atlasCell, 0, 0, 0},
		{"ball center", cellBall*atlasCell + mid, mid, 255, 255},
		{"ball corner", cellBall * atlasCell, 0, 0, 0},
		{"solid", cellSolid*atlasCell + mid, mid, 255, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := img.RGBAAt(tt.x, tt.y)
			if c.A < tt.minA || c.A > tt.maxA {
				t.Errorf("alpha = %d, want in [%d, %d]", c.A, tt.minA, tt.maxA)
			}
			if c.R > c.A || c.G > c.A || c.B > c.A {
				t.Errorf("pixel %v is not premultiplied", c)
			}
		})
	}
}

func TestCellUVInsideAtlas(t *testing.T) {
	for _, cell := range []int{cellDot, cellBall, cellSolid} {
		u0, v0, u1, v1 := cellUV(cell)
		if u0 < float32(cell*atlasCell) || u1 > float32((cell+1)*atlasCell) || v0 < 0 || v1 > atlasHeight {
			t.Errorf("cell %d uv (%v,%v)-(%v,%v) leaves its cell", cell, u0, v0, u1, v1)
		}
	}
}
