package mangiato

import (
	"fmt"

	"github.com/nonibytes/mangiato/mangiato/planner"
	"github.com/nonibytes/mangiato/mangiato/query"
	"github.com/nonibytes/mangiato/mangiato/schema"
)

type (
	Record    = planner.Record
	Predicate = planner.Predicate
)

// CompileFilter compiles raw against the named entity ("meal", "user" or
// "invitation") into an in-memory predicate. A blank filter matches
// everything.
func CompileFilter(entity, raw string) (Predicate, error) {
	ent, ok := schema.ByName(entity)
	if !ok {
		return nil, SchemaError(fmt.Sprintf("unknown entity %q", entity))
	}
	return planner.CompileFilter(ent, raw)
}

// CheckFilter parses and resolves raw against the named entity and returns
// its canonical parenthesized form. A blank filter returns "".
func CheckFilter(entity, raw string) (string, error) {
	ent, ok := schema.ByName(entity)
	if !ok {
		return "", SchemaError(fmt.Sprintf("unknown entity %q", entity))
	}
	expr, err := planner.ParseFilter(raw)
	if err != nil || expr == nil {
		return "", err
	}
	if err := planner.Check(ent, expr); err != nil {
		return "", err
	}
	return query.Format(expr), nil
}

// FilterRecords returns the records of in matching pred, in order.
func FilterRecords[R Record](in []R, pred Predicate) []R {
	return planner.Filter(in, pred)
}
