package fdtd

import (
	"fmt"
	"testing"
)

func BenchmarkStep(b *testing.B) {
	for _, size := range []int{128, 256, 512} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			g, err := New(size, size)
			if err != nil {
				b.Fatal(err)
			}
			g.PlacePulse(size/2, size/2, 1)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				g.Step()
			}
		})
	}
}

func BenchmarkStepMur(b *testing.B) {
	g, err := New(256, 256)
	if err != nil {
		b.Fatal(err)
	}
	g.SetBoundary(BoundaryMur)
	g.PlacePulse(128, 128, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Step()
	}
}
