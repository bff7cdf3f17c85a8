package evergreen

import "testing"

// setupBenchScene creates a Scene from the default config (15000 foliage
// points, 450 ornaments), optionally already assembled.
func setupBenchScene(b *testing.B, assembled bool) *Scene {
	b.Helper()
	cfg := DefaultSceneConfig()
	cfg.StartAssembled = assembled
	s, err := NewScene(cfg)
	if err != nil {
		b.Fatalf("NewScene: %v", err)
	}
	return s
}

// --- Animation Benchmarks ---

func BenchmarkTree_Step_Assembled(b *testing.B) {
	s := setupBenchScene(b, true)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Step(1.0 / 60.0)
	}
}

func BenchmarkTree_Step_Morphing(b *testing.B) {
	s := setupBenchScene(b, false)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		// Flip every second of simulated time so cursors never settle.
		if i%60 == 0 {
			s.Toggle()
		}
		s.Step(1.0 / 60.0)
	}
}

func BenchmarkFoliage_Update(b *testing.B) {
	s := setupBenchScene(b, false)
	f := s.Tree().Foliage()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		f.Update(1.0/60.0, float64(i)/60, TreeShape)
	}
}

func BenchmarkOrnaments_Update(b *testing.B) {
	s := setupBenchScene(b, false)
	groups := s.Tree().Ornaments()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, o := range groups {
			o.Update(1.0/60.0, float64(i)/60, TreeShape)
		}
	}
}

// --- Batch Benchmarks ---

func BenchmarkBatch_AppendFoliage(b *testing.B) {
	s := setupBenchScene(b, true)
	verts := s.Tree().Foliage().Vertices()

	// Warm up: first pass grows batchVerts.
	s.appendPoints(verts, ColorWhite)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.batchVerts = s.batchVerts[:0]
		s.batchInds = s.batchInds[:0]
		s.appendPoints(verts, ColorWhite)
	}
}

func BenchmarkBatch_CollectSolids(b *testing.B) {
	s := setupBenchScene(b, true)
	s.collectSolids() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.camera.Orbit(1, 0)
		s.collectSolids()
	}
}

func BenchmarkBatch_AppendSolids(b *testing.B) {
	s := setupBenchScene(b, true)
	s.collectSolids()
	for j := range s.solids {
		s.appendSolid(&s.solids[j])
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.batchVerts = s.batchVerts[:0]
		s.batchInds = s.batchInds[:0]
		for j := range s.solids {
			s.appendSolid(&s.solids[j])
		}
	}
}

func BenchmarkBuildDataset_Foliage(b *testing.B) {
	cfg := FoliageConfig()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := BuildDataset(cfg, NewRand(uint64(i))); err != nil {
			b.Fatal(err)
		}
	}
}
