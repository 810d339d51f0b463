package chorus_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/chorus"
)

func ExampleDoubleComb() {
	var c chorus.DoubleComb
	if err := c.SetSampleRate(1000); err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := c.SetMaxDelay(0.01); err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := c.SetDelayTimes(0.002, 0.0045); err != nil {
		fmt.Println("error:", err)
		return
	}
	c.SetFeedback(0.5, 1)

	for i := 0; i < 7; i++ {
		x := 0.0
		if i == 0 {
			x = 1
		}
		fmt.Printf("%.2f ", c.Process(x))
	}
	fmt.Println()

	// Output:
	// 1.00 0.00 0.50 0.00 0.50 0.50 0.00
}
