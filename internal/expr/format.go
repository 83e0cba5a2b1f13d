package expr

import (
	"strings"

	"github.com/roach88/jsonsql/internal/types"
)

// String renders e as SQL text. The rendering is stable and used in plan
// snapshots.
func String(e Expr) string {
	var b strings.Builder
	write(&b, e)
	return b.String()
}

func write(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case Column:
		b.WriteString(n.Name)
	case Literal:
		b.WriteString(types.FormatDatum(n.Value))
	case Call:
		b.WriteString(n.Name)
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			write(b, a)
		}
		b.WriteByte(')')
	case Cast:
		b.WriteString("CAST(")
		write(b, n.Expr)
		b.WriteString(" AS ")
		b.WriteString(n.To.String())
		b.WriteByte(')')
	case Binary:
		b.WriteByte('(')
		write(b, n.Left)
		b.WriteByte(' ')
		b.WriteString(string(n.Op))
		b.WriteByte(' ')
		write(b, n.Right)
		b.WriteByte(')')
	case IsNull:
		write(b, n.Expr)
		if n.Negated {
			b.WriteString(" IS NOT NULL")
		} else {
			b.WriteString(" IS NULL")
		}
	case nil:
		b.WriteString("<nil>")
	default:
		b.WriteString("<?>")
	}
}
