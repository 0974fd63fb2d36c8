package export

import (
	"fmt"
	"slices"
	"strings"

	"ariga.io/atlas/sql/schema"
	"github.com/dave/jennifer/jen"
)

// QueryPackage is the import path of the runtime the generated models use.
const QueryPackage = "github.com/syssam/domaingen/query"

type (
	// Table is the generator view of a table or a view.
	Table struct {
		// Name is the SQL name.
		Name string
		// View reports whether the relation is a view.
		View bool
		// Entity is the Go type name of a row, e.g. "User".
		Entity string
		// Var is the name of the package-level query model, e.g. "Users".
		Var string
		Columns []*Column
	}

	// Column is a table column and its Go representation.
	Column struct {
		Name string
		// Field is the struct field name in the row type.
		Field string
		// QueryField is the struct field name in the query model.
		QueryField string
		Type       GoType
		Nullable   bool
		PrimaryKey bool
	}

	// GoType identifies a Go type. PkgPath is empty for predeclared types
	// and for composite literals such as "[]byte".
	GoType struct {
		PkgPath string
		Name    string
	}
)

// Kind returns "table" or "view".
func (t *Table) Kind() string {
	if t.View {
		return "view"
	}
	return "table"
}

// QueryType returns the type name of the query model, e.g. "QUser".
func (t *Table) QueryType() string { return "Q" + t.Entity }

// FileName returns the name of the generated file. Names that would be read
// by the toolchain as test files or platform-constrained files get a suffix.
func (t *Table) FileName() string {
	name := snake(t.Name)
	if name == "" {
		name = strings.ToLower(t.Entity)
	}
	if strings.HasSuffix(name, "_test") || constrained(name) {
		name += "_" + t.Kind()
	}
	return name + ".go"
}

// Imports returns the import paths the generated file of t needs, sorted.
func (t *Table) Imports() []string {
	seen := map[string]bool{QueryPackage: true}
	for _, c := range t.Columns {
		if p := c.Type.PkgPath; p != "" {
			seen[p] = true
		}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// String returns the Go source form of the type, e.g. "time.Time".
func (g GoType) String() string {
	if g.PkgPath == "" {
		return g.Name
	}
	return g.PkgPath[strings.LastIndex(g.PkgPath, "/")+1:] + "." + g.Name
}

// Code returns the jennifer statement of the type.
func (g GoType) Code() *jen.Statement {
	if g.PkgPath == "" {
		return jen.Id(g.Name)
	}
	return jen.Qual(g.PkgPath, g.Name)
}

// Optional reports whether the row field is a pointer.
func (c *Column) Optional() bool {
	return c.Nullable && !c.PrimaryKey && !strings.HasPrefix(c.Type.Name, "[]") && c.Type != anyType && c.Type != jsonType
}

// GoType returns the Go source form of the row field type.
func (c *Column) GoType() string {
	if c.Optional() {
		return "*" + c.Type.String()
	}
	return c.Type.String()
}

// BaseType returns the Go source form of the column value type.
func (c *Column) BaseType() string { return c.Type.String() }

// FieldCode returns the jennifer statement of the row field type.
func (c *Column) FieldCode() *jen.Statement {
	if !c.Optional() {
		return c.Type.Code()
	}
	if c.Type.PkgPath == "" {
		return jen.Id("*" + c.Type.Name)
	}
	return jen.Op("*").Qual(c.Type.PkgPath, c.Type.Name)
}

// JSONTag returns the json struct tag value of the row field.
func (c *Column) JSONTag() string {
	if c.Optional() {
		return c.Name + ",omitempty"
	}
	return c.Name
}

var (
	anyType  = GoType{Name: "any"}
	jsonType = GoType{PkgPath: "encoding/json", Name: "RawMessage"}
)

// goType maps a column type reported by the metadata accessor to a Go type.
func goType(t schema.Type) GoType {
	switch t := t.(type) {
	case *schema.BoolType:
		return GoType{Name: "bool"}
	case *schema.IntegerType:
		return GoType{Name: intType(t)}
	case *schema.FloatType, *schema.DecimalType:
		return GoType{Name: "float64"}
	case *schema.StringType, *schema.EnumType:
		return GoType{Name: "string"}
	case *schema.TimeType:
		return GoType{PkgPath: "time", Name: "Time"}
	case *schema.BinaryType:
		return GoType{Name: "[]byte"}
	case *schema.JSONType:
		return jsonType
	case *schema.UUIDType:
		return GoType{PkgPath: "github.com/google/uuid", Name: "UUID"}
	default:
		return anyType
	}
}

func intType(t *schema.IntegerType) string {
	var name string
	switch strings.ToLower(t.T) {
	case "tinyint", "int1":
		name = "int8"
	case "smallint", "int2":
		name = "int16"
	case "int", "int4", "mediumint", "int3":
		name = "int32"
	default:
		name = "int64"
	}
	if t.Unsigned {
		name = "u" + name
	}
	return name
}

// reserved holds the identifiers a generated declaration must not shadow.
var (
	reservedRow   = map[string]bool{"ScanValues": true}
	reservedQuery = map[string]bool{"Table": true, "TableName": true, "Columns": true}
)

// newColumns builds the columns of a table and checks their Go names. Row
// fields and query-model fields are checked apart, after reserved names are
// suffixed.
func newColumns(table string, cols []*schema.Column, pk map[string]bool) ([]*Column, error) {
	var (
		columns = make([]*Column, 0, len(cols))
		fields  = make(map[string]string, len(cols))
		qfields = make(map[string]string, len(cols))
	)
	for _, c := range cols {
		field := pascal(c.Name)
		col := &Column{
			Name:       c.Name,
			Field:      field,
			QueryField: field,
			PrimaryKey: pk[c.Name],
		}
		if reservedRow[field] {
			col.Field += "Field"
		}
		if reservedQuery[field] {
			col.QueryField += "Column"
		}
		if prev, ok := fields[col.Field]; ok {
			return nil, fmt.Errorf("export: columns %q and %q of %q map to the same Go field %s", prev, c.Name, table, col.Field)
		}
		fields[col.Field] = c.Name
		if prev, ok := qfields[col.QueryField]; ok {
			return nil, fmt.Errorf("export: columns %q and %q of %q map to the same query field %s", prev, c.Name, table, col.QueryField)
		}
		qfields[col.QueryField] = c.Name
		if c.Type != nil {
			col.Type = goType(c.Type.Type)
			col.Nullable = c.Type.Null
		} else {
			col.Type = anyType
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// constrained reports whether a file name stem ends with a GOOS or GOARCH
// element, which would restrict the build of the file.
func constrained(name string) bool {
	i := strings.LastIndexByte(name, '_')
	if i < 0 {
		return false
	}
	return knownOS[name[i+1:]] || knownArch[name[i+1:]]
}

var (
	knownOS = map[string]bool{
		"aix": true, "android": true, "darwin": true, "dragonfly": true, "freebsd": true,
		"hurd": true, "illumos": true, "ios": true, "js": true, "linux": true, "nacl": true,
		"netbsd": true, "openbsd": true, "plan9": true, "solaris": true, "wasip1": true,
		"windows": true, "zos": true,
	}
	knownArch = map[string]bool{
		"386": true, "amd64": true, "arm": true, "arm64": true, "loong64": true, "mips": true,
		"mips64": true, "mips64le": true, "mipsle": true, "ppc64": true, "ppc64le": true,
		"riscv64": true, "s390x": true, "wasm": true,
	}
)
