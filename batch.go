package evergreen

import "github.com/hajimehoshi/ebiten/v2"

// maxBatchVertices bounds one DrawTriangles32 submission.
const maxBatchVertices = 1 << 16

// premulVertex converts a straight-alpha color to the premultiplied vertex
// color ebiten expects with ColorScaleModePremultipliedAlpha.
func premulVertex(c Color) (r, g, b, a float32) {
	a = float32(clamp01(c.A))
	return float32(c.R) * a, float32(c.G) * a, float32(c.B) * a, a
}

// appendQuad appends an axis-aligned square centered on (cx, cy) with the
// given half extent, textured by an atlas cell.
func (s *Scene) appendQuad(cx, cy, half float64, cell int, c Color) {
	if half <= 0 || c.A <= 0 {
		return
	}
	u0, v0, u1, v1 := cellUV(cell)
	cr, cg, cb, ca := premulVertex(c)
	x0, y0 := float32(cx-half), float32(cy-half)
	x1, y1 := float32(cx+half), float32(cy+half)

	base := uint32(len(s.batchVerts))
	s.batchVerts = append(s.batchVerts,
		ebiten.Vertex{DstX: x0, DstY: y0, SrcX: u0, SrcY: v0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: x1, DstY: y0, SrcX: u1, SrcY: v0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: x0, DstY: y1, SrcX: u0, SrcY: v1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: x1, DstY: y1, SrcX: u1, SrcY: v1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
	)
	// Two triangles: TL-TR-BL, TR-BR-BL
	s.batchInds = append(s.batchInds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// appendTriangle appends one flat-colored screen-space triangle sampled
// from the solid cell.
func (s *Scene) appendTriangle(a, b, c Vec2, col Color) {
	u0, v0, u1, v1 := cellUV(cellSolid)
	cr, cg, cb, ca := premulVertex(col)
	base := uint32(len(s.batchVerts))
	s.batchVerts = append(s.batchVerts,
		ebiten.Vertex{DstX: float32(a.X), DstY: float32(a.Y), SrcX: u0, SrcY: v0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: float32(b.X), DstY: float32(b.Y), SrcX: u1, SrcY: v0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		ebiten.Vertex{DstX: float32(c.X), DstY: float32(c.Y), SrcX: u0, SrcY: v1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
	)
	s.batchInds = append(s.batchInds, base, base+1, base+2)
}

// flushBatch submits accumulated vertices with the given blend, splitting
// into chunks of at most maxBatchVertices.
func (s *Scene) flushBatch(target, src *ebiten.Image, blend BlendMode) {
	if len(s.batchVerts) == 0 {
		return
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = blend.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.Filter = ebiten.FilterLinear

	if len(s.batchVerts) <= maxBatchVertices {
		target.DrawTriangles32(s.batchVerts, s.batchInds, src, &triOp)
		s.drawCalls++
	} else {
		s.flushChunked(target, src, &triOp)
	}

	s.batchVerts = s.batchVerts[:0]
	s.batchInds = s.batchInds[:0]
}

// flushChunked re-bases index runs so each call references at most
// maxBatchVertices vertices. Primitives never straddle chunks because
// whole triangles are copied.
func (s *Scene) flushChunked(target, src *ebiten.Image, op *ebiten.DrawTrianglesOptions) {
	start := 0
	for start < len(s.batchInds) {
		lo := s.batchInds[start]
		end := start
		for end < len(s.batchInds) {
			tri := s.batchInds[end : end+3]
			hi := max(tri[0], tri[1], tri[2])
			if hi-lo >= maxBatchVertices {
				break
			}
			end += 3
		}
		hi := lo
		s.chunkInds = s.chunkInds[:0]
		for _, idx := range s.batchInds[start:end] {
			s.chunkInds = append(s.chunkInds, idx-lo)
			hi = max(hi, idx)
		}
		target.DrawTriangles32(s.batchVerts[lo:hi+1], s.chunkInds, src, op)
		s.drawCalls++
		start = end
	}
}
