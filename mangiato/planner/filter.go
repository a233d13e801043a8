package planner

import (
	"errors"
	"strings"

	"github.com/nonibytes/mangiato/mangiato/errs"
	"github.com/nonibytes/mangiato/mangiato/query"
	"github.com/nonibytes/mangiato/mangiato/schema"
)

// ParseFilter parses raw into an expression. A blank filter returns a nil
// expression and no error. Syntax errors come back as errs.ErrQueryParse.
func ParseFilter(raw string) (query.Expr, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	expr, err := query.Parse(raw)
	if err != nil {
		var se *query.SyntaxError
		if errors.As(err, &se) {
			return nil, errs.QueryParseError(se.Pos, se.Msg)
		}
		return nil, errs.Wrap(errs.ErrQueryParse, "parse filter", err)
	}
	return expr, nil
}

// CompileFilter parses raw and compiles it against ent. A blank filter
// matches every record.
func CompileFilter(ent *schema.Entity, raw string) (Predicate, error) {
	expr, err := ParseFilter(raw)
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return func(Record) bool { return true }, nil
	}
	return Compile(ent, expr)
}

// Filter returns the records of in that satisfy pred, in order. in is not
// modified.
func Filter[R Record](in []R, pred Predicate) []R {
	out := make([]R, 0, len(in))
	for _, r := range in {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
