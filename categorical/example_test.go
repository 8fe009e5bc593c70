// SPDX-License-Identifier: MIT

package categorical_test

import (
	"fmt"

	"github.com/katalvlaran/lvfactor/categorical"
	"github.com/katalvlaran/lvfactor/factor"
)

func e(p float64, states ...int) categorical.Entry {
	return categorical.Entry{Assignment: factor.Assignment(states), Value: p}
}

// ExampleSparseCategorical_Multiply builds a joint from a prior and a
// conditional, then sums out the cause.
func ExampleSparseCategorical_Multiply() {
	prior, _ := categorical.NewFromProbs([]string{"rain"}, []int{2}, []categorical.Entry{e(0.8, 0), e(0.2, 1)})
	slipGivenRain, _ := categorical.NewFromProbs([]string{"rain", "slip"}, []int{2, 2}, []categorical.Entry{
		e(0.8, 0, 0), e(0.2, 0, 1),
		e(0.4, 1, 0), e(0.6, 1, 1),
	})

	joint, err := prior.Multiply(slipGivenRain)
	if err != nil {
		fmt.Println(err)
		return
	}
	slip, err := joint.Marginalize([]string{"slip"}, true)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(joint.VarNames())
	fmt.Print(slip)
	// Output:
	// [slip rain]
	// slip  prob
	// 0     0.72
	// 1     0.28
}

// ExampleSparseCategorical_Reduce conditions a joint on an observation.
func ExampleSparseCategorical_Reduce() {
	joint, _ := categorical.NewFromProbs([]string{"slip", "rain"}, []int{2, 2}, []categorical.Entry{
		e(0.64, 0, 0), e(0.16, 1, 0),
		e(0.08, 0, 1), e(0.12, 1, 1),
	})

	observed, _ := joint.Reduce([]string{"slip"}, factor.Assignment{1})
	posterior, err := observed.Normalize()
	if err != nil {
		fmt.Println(err)
		return
	}
	best, _ := posterior.(*categorical.SparseCategorical).Argmax()
	fmt.Print(posterior)
	fmt.Println("argmax:", best)
	// Output:
	// rain  prob
	// 0     0.571429
	// 1     0.428571
	// argmax: [0]
}

// ExampleTemplate_MakeFactor stamps out per-step factors of a chain.
func ExampleTemplate_MakeFactor() {
	tpl, _ := categorical.NewTemplateFromProbs([]categorical.Entry{
		e(0.9, 0, 0), e(0.1, 0, 1),
		e(0.2, 1, 0), e(0.8, 1, 1),
	}, []int{2, 2}, []string{"x_{t}", "x_{next}"})

	for step := range 2 {
		f, _ := tpl.MakeFactor(map[string]string{
			"t":    fmt.Sprint(step),
			"next": fmt.Sprint(step + 1),
		})
		fmt.Println(f.VarNames())
	}
	// Output:
	// [x_0 x_1]
	// [x_1 x_2]
}
