package globeengine

import "testing"

func BenchmarkPointsFromArcs(b *testing.B) {
	arcs := SampleArcs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PointsFromArcs(arcs, 1)
	}
}

func BenchmarkGenRandomNumbers(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenRandomNumbers(0, 59, 48)
	}
}

func BenchmarkArcPosition(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ArcPosition(40.7128, -74.006, 51.5072, -0.1276, 0.3, float64(i%64)/64)
	}
}
