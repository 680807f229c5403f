package sink_test

import (
	"fmt"

	"github.com/skillfield/skillfield/pkg/placement"
	"github.com/skillfield/skillfield/pkg/render/sink"
)

func ExampleMotionFor() {
	for i := range 4 {
		m := sink.MotionFor(i)
		fmt.Printf("%d: appear %.1fs, float %.1fs every %.1fs\n", i, m.AppearDelay, m.FloatDelay, m.FloatDuration)
	}
	// Output:
	// 0: appear 0.0s, float 0.0s every 3.0s
	// 1: appear 0.1s, float 0.2s every 3.5s
	// 2: appear 0.2s, float 0.4s every 4.0s
	// 3: appear 0.3s, float 0.6s every 3.0s
}

func ExampleNewField() {
	res := placement.Orbit([]placement.Item{
		{ID: "go", Label: "Go"},
		{ID: "rust", Label: "Rust"},
	}, placement.DefaultOrbitConfig())

	f := sink.NewField(res)
	for _, b := range f.Badges {
		fmt.Printf("%s at (%.0f, %.0f)\n", b.Label, b.X, b.Y)
	}
	// Output:
	// Go at (85, 50)
	// Rust at (15, 50)
}
