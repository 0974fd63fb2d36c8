// Package dialect names the database dialects domaingen works with.
//
// A dialect decides two things: which provisioner creates the ephemeral
// database a schema description is loaded into, and how the query runtime
// used by generated code renders identifiers and placeholders.
//
// # Supported Dialects
//
//	dialect.SQLite   = "sqlite"   // default, in-memory, no server needed
//	dialect.Postgres = "postgres" // scratch database on an existing server
//	dialect.MySQL    = "mysql"    // scratch database on an existing server
//
// # Sub-packages
//
//   - dialect/sql: ephemeral database provisioning and the Driver handle
//     the generator loads schemas into and inspects.
package dialect
