package introspect

import (
	"fmt"
	"strings"
)

// bucket presentation order is fixed so output is deterministic.
var bucketTitles = []struct {
	mode  BindingMode
	title string
}{
	{BindingInstance, "Instance Methods"},
	{BindingClass, "Class Methods"},
	{BindingStatic, "Static Methods"},
}

// Format renders a report as indented text: a header naming the
// subject's type, the data attributes as name/type pairs, and one
// subsection per non-empty method bucket. Empty buckets are omitted
// entirely. Pure over the report, nothing is re-introspected.
func Format(r *Report, subject string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analysis of %s object:\n", subject)

	b.WriteString("\nData Attributes (name: type):\n")
	for _, a := range r.DataAttributes {
		fmt.Fprintf(&b, "  - %s: %s\n", a.Name, a.TypeLabel)
	}

	b.WriteString("\nMethods:\n")
	for _, bt := range bucketTitles {
		names := r.Methods[bt.mode]
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n  %s:\n", bt.title)
		for _, n := range names {
			fmt.Fprintf(&b, "    - %s\n", n)
		}
	}

	return b.String()
}
