package planner

import (
	"fmt"
	"strings"

	"github.com/nonibytes/mangiato/mangiato/errs"
	"github.com/nonibytes/mangiato/mangiato/query"
	"github.com/nonibytes/mangiato/mangiato/schema"
	"github.com/nonibytes/mangiato/mangiato/storage"
)

// CompileSQL renders expr as a WHERE fragment over ent's columns. Literals are
// bound through b; only column names and operators reach the SQL text.
func CompileSQL(ent *schema.Entity, expr query.Expr, b storage.Builder) (string, error) {
	switch e := expr.(type) {
	case query.Logical:
		left, err := CompileSQL(ent, e.Left, b)
		if err != nil {
			return "", err
		}
		right, err := CompileSQL(ent, e.Right, b)
		if err != nil {
			return "", err
		}
		op := "AND"
		if e.Op == query.OpOr {
			op = "OR"
		}
		return fmt.Sprintf("(%s %s %s)", left, op, right), nil

	case query.Condition:
		leaf, err := resolve(ent, e)
		if err != nil {
			return "", err
		}
		return leaf.sql(b), nil

	default:
		return "", errs.SchemaError(fmt.Sprintf("unsupported expression %T", expr))
	}
}

func (l Leaf) sql(b storage.Builder) string {
	ph := b.Arg(l.Value)
	if l.Field.Kind == schema.KindNumber {
		// Integer and real columns compare against one numeric type.
		ph = "CAST(" + ph + " AS DOUBLE PRECISION)"
	}
	return fmt.Sprintf("%s %s %s", l.Field.ColumnName(), l.Op.SQL(), ph)
}

// Scope is a fixed equality restriction ANDed in front of the user filter,
// e.g. meals of one user.
type Scope struct {
	Column string
	Value  any
}

// ListQuery describes one page of an entity listing.
type ListQuery struct {
	Entity  *schema.Entity
	Columns string
	Scopes  []Scope
	Filter  query.Expr
	Sort    string
	Page    int
	PerPage int
}

// ListSQL holds the statements for one page and the total count.
type ListSQL struct {
	Select     string
	SelectArgs []any
	Count      string
	CountArgs  []any
}

// BuildListSQL resolves the sort key against the entity's allow-list and
// renders the page and count statements. The count arguments are a prefix of
// the select arguments, so numbered placeholders line up in both.
func BuildListSQL(b storage.Builder, q ListQuery) (*ListSQL, error) {
	ent := q.Entity
	sortCol, ok := ent.ResolveSort(q.Sort)
	if !ok {
		return nil, errs.UnknownSortFieldError(q.Sort)
	}

	var where []string
	for _, s := range q.Scopes {
		where = append(where, fmt.Sprintf("%s = %s", s.Column, b.Arg(s.Value)))
	}
	if q.Filter != nil {
		frag, err := CompileSQL(ent, q.Filter, b)
		if err != nil {
			return nil, err
		}
		where = append(where, frag)
	}

	var sb strings.Builder
	sb.WriteString(" FROM ")
	sb.WriteString(ent.Table)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	from := sb.String()

	countArgs := append([]any(nil), b.Args()...)
	countSQL := "SELECT COUNT(*)" + from

	page, perPage := NormalizePage(q.Page, q.PerPage)
	order := sortCol
	if idCol := ent.ColumnOf(idField(ent)); idCol != sortCol {
		order += ", " + idCol
	}
	limit := b.Arg(perPage)
	offset := b.Arg((page - 1) * perPage)
	selectSQL := fmt.Sprintf("SELECT %s%s ORDER BY %s LIMIT %s OFFSET %s", q.Columns, from, order, limit, offset)

	return &ListSQL{
		Select:     selectSQL,
		SelectArgs: b.Args(),
		Count:      countSQL,
		CountArgs:  countArgs,
	}, nil
}

// idField returns the entity's primary key field: the target of the "id" sort
// alias when there is one.
func idField(ent *schema.Entity) string {
	if alias, ok := ent.SortAliases["id"]; ok {
		return alias
	}
	return "id"
}
