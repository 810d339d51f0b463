package chorus

import (
	"testing"

	"github.com/cwbudde/algo-synth/internal/testutil"
)

func BenchmarkDoubleCombProcessInPlace(b *testing.B) {
	c, err := New(DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	buf := testutil.DeterministicNoise(1, 0.5, 512)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.ProcessInPlace(buf)
	}
}
