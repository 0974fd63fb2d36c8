package query

// Predicate renders one boolean SQL expression into a Builder.
type Predicate func(*Builder)

func compare[T any](column, op string, v T) Predicate {
	return func(b *Builder) {
		b.Ident(column).WriteString(op).Arg(v)
	}
}

func in[T any](column string, not bool, vs []T) Predicate {
	return func(b *Builder) {
		if len(vs) == 0 {
			if not {
				b.WriteString("1 = 1")
			} else {
				b.WriteString("1 = 0")
			}
			return
		}
		b.Ident(column)
		if not {
			b.WriteString(" NOT")
		}
		b.WriteString(" IN (")
		for i, v := range vs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.Arg(v)
		}
		b.WriteString(")")
	}
}

// And groups predicates with AND.
func And(ps ...Predicate) Predicate { return join(" AND ", ps) }

// Or groups predicates with OR.
func Or(ps ...Predicate) Predicate { return join(" OR ", ps) }

// Not negates the given predicate.
func Not(p Predicate) Predicate {
	return func(b *Builder) {
		b.WriteString("NOT (")
		p(b)
		b.WriteString(")")
	}
}

func join(op string, ps []Predicate) Predicate {
	return func(b *Builder) {
		switch len(ps) {
		case 0:
			b.WriteString("1 = 1")
		case 1:
			ps[0](b)
		default:
			b.WriteString("(")
			for i, p := range ps {
				if i > 0 {
					b.WriteString(op)
				}
				p(b)
			}
			b.WriteString(")")
		}
	}
}
