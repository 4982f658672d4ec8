package tablefsm

import "github.com/enetx/g"

// ToDOT generates a DOT language string representation of the machine for
// visualization. Self-loop cells (configured or default) carry no information
// and are omitted; inputs leading to the same target are grouped on one edge.
// States and inputs render through fmt, so enum types with a String method
// show their names. Output is deterministic: states and inputs are walked in
// ordinal order.
func (m *Machine[S, I]) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph Machine {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	b.WriteString("  __start [shape=point, style=invis];\n")

	var initial S
	b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", initial))

	for s := range m.states {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", S(s)))

		if S(s) == m.current {
			attrs.Push("fillcolor=\"#90ee90\"", "shape=doublecircle")
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", S(s), attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for from := range m.states {
		for to := range m.states {
			if to == from {
				continue
			}

			var labels g.Slice[g.String]
			for i := range m.inputs {
				if int(m.table[from*m.inputs+i]) == to {
					labels.Push(g.Format("{}", I(i)))
				}
			}

			if labels.Empty() {
				continue
			}

			b.WriteString(g.Format("  \"{}\" -> \"{}\" [label=\" {} \"];\n", S(from), S(to), labels.Join("\\n")))
		}
	}

	b.WriteString("}\n")

	return b.String()
}
