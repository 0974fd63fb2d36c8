// Package export turns inspected database metadata into Go source.
//
// Each table or view of the inspected schema becomes one file holding a row
// type, a query model built on package query, and a package-level instance of
// that model:
//
//	// users.go
//	type User struct {
//		ID   int64   `db:"id" json:"id"`
//		Name *string `db:"name" json:"name,omitempty"`
//	}
//
//	type QUser struct {
//		query.Table
//		ID   query.Column[int64]
//		Name query.Column[string]
//	}
//
//	var Users = QUser{...}
//
// JenniferExporter builds the files with jennifer. TemplateExporter executes
// a text/template, either the built-in one or a user supplied file, and
// formats its output with goimports.
package export
