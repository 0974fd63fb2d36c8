package query

import (
	"strconv"
	"strings"

	"github.com/syssam/domaingen/dialect"
)

// Builder accumulates a SQL fragment and its arguments for one dialect.
type Builder struct {
	sb      strings.Builder
	args    []any
	dialect string
}

// NewBuilder returns a Builder for the given dialect. Unknown dialects render
// like SQLite.
func NewBuilder(d string) *Builder {
	if n := dialect.Normalize(d); n != "" {
		d = n
	} else {
		d = dialect.SQLite
	}
	return &Builder{dialect: d}
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string { return b.dialect }

// WriteString appends s verbatim.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Ident appends a quoted identifier. Qualified names ("users.id") are quoted
// per part.
func (b *Builder) Ident(name string) *Builder {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		if i > 0 {
			b.sb.WriteByte('.')
		}
		b.sb.WriteString(b.quote(p))
	}
	return b
}

func (b *Builder) quote(s string) string {
	if b.dialect == dialect.MySQL {
		return "`" + strings.ReplaceAll(s, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Arg appends a placeholder and records v as its argument.
func (b *Builder) Arg(v any) *Builder {
	b.args = append(b.args, v)
	if b.dialect == dialect.Postgres {
		b.sb.WriteString("$" + strconv.Itoa(len(b.args)))
	} else {
		b.sb.WriteByte('?')
	}
	return b
}

// Args appends a comma separated list of placeholders.
func (b *Builder) Args(vs ...any) *Builder {
	for i, v := range vs {
		if i > 0 {
			b.sb.WriteString(", ")
		}
		b.Arg(v)
	}
	return b
}

// Query returns the accumulated SQL and arguments.
func (b *Builder) Query() (string, []any) {
	return b.sb.String(), b.args
}
