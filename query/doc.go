// Package query is the runtime of the query models generated by domaingen.
//
// Every generated model file declares a Q-type embedding Table with one typed
// Column per table column, and a package-level value of that type:
//
//	type QUser struct {
//	    query.Table
//	    ID   query.Column[int64]
//	    Name query.Column[string]
//	}
//
//	var Users = QUser{...}
//
// Columns produce predicates that only accept values of the column's Go type,
// and a Selector renders them for one dialect:
//
//	q, args := query.From(model.Users).
//	    Select(model.Users.ID).
//	    Where(model.Users.Name.EQ("a8m"), model.Users.ID.GT(10)).
//	    OrderBy(model.Users.ID.Desc()).
//	    Limit(10).
//	    Query(dialect.Postgres)
//	// SELECT "users"."id" FROM "users" WHERE ("users"."name" = $1 AND "users"."id" > $2) ORDER BY "users"."id" DESC LIMIT 10
package query
