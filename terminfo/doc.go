// Package terminfo reads compiled terminal descriptions and expands their
// parameterized capability strings.
//
// A description is located with a Locator (or Load, which searches the
// environment's database roots), decoded into an immutable Table, and its
// string capabilities are evaluated with Expand:
//
//	t, err := terminfo.Load("xterm-256color")
//	if err != nil {
//		return err
//	}
//	seq, ok := t.Expand(terminfo.CursorAddress, row, col)
//
// Decoding is bounded by the counts in the header. A broken extended section
// or an out-of-range string offset degrades the table instead of failing it;
// see Table.ExtendedStatus and Table.Warnings.
//
// Expand implements the operator subset used by common capabilities:
// %% %i %pN %d %{n} %< %- and %? %t %e %;. Other escapes are consumed
// silently. Expansion never fails; missing parameters and pops from an
// empty stack read as 0.
package terminfo
