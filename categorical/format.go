// SPDX-License-Identifier: MIT

package categorical

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"
)

// String renders the explicit entries as a tab-aligned table: one column per
// variable followed by the probability, rows in ascending assignment order.
//
//	a  b  prob
//	0  0  0.32
//	1  0  0.16
func (f *SparseCategorical) String() string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for _, v := range f.varNames {
		fmt.Fprintf(tw, "%s\t", v)
	}
	fmt.Fprintln(tw, "prob")
	for _, e := range f.Entries() {
		for _, s := range e.Assignment {
			fmt.Fprintf(tw, "%d\t", s)
		}
		fmt.Fprintf(tw, "%.6g\n", math.Exp(e.Value))
	}
	_ = tw.Flush()
	return sb.String()
}
