package planner

import (
	"fmt"
	"math"
	"strconv"

	"github.com/nonibytes/mangiato/mangiato/errs"
	"github.com/nonibytes/mangiato/mangiato/query"
	"github.com/nonibytes/mangiato/mangiato/schema"
)

// Record is read-only field access to one entity row. ok is false when the
// record has no such field; a present field may hold nil.
type Record interface {
	Value(field string) (v any, ok bool)
}

// Predicate reports whether a record satisfies a compiled filter.
type Predicate func(Record) bool

// Leaf is a condition resolved against an entity. Value is a string, float64
// or bool depending on Field.Kind.
type Leaf struct {
	Field schema.Field
	Op    query.CmpOp
	Value any
}

// resolve checks the field and converts the literal to the field's type. The
// literal's spelling never decides the type.
func resolve(ent *schema.Entity, c query.Condition) (Leaf, error) {
	f, ok := ent.Lookup(c.Field)
	if !ok {
		return Leaf{}, errs.UnknownFieldError(ent.Name, c.Field)
	}

	leaf := Leaf{Field: f, Op: c.Op}
	switch f.Kind {
	case schema.KindText:
		leaf.Value = c.Value.Raw

	case schema.KindNumber:
		n := c.Value.Num
		if c.Value.Kind != query.LitNumber {
			var err error
			n, err = strconv.ParseFloat(c.Value.Raw, 64)
			if err != nil {
				return Leaf{}, errs.TypeMismatch(f.Name, fmt.Sprintf("expected a number, got %s", c.Value))
			}
		}
		// ParseFloat accepts nan and inf; neither compares like a number.
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return Leaf{}, errs.TypeMismatch(f.Name, fmt.Sprintf("expected a finite number, got %s", c.Value))
		}
		leaf.Value = n

	case schema.KindBool:
		switch c.Value.Raw {
		case "true", "1":
			leaf.Value = true
		case "false", "0":
			leaf.Value = false
		default:
			return Leaf{}, errs.TypeMismatch(f.Name, fmt.Sprintf("expected true or false, got %s", c.Value))
		}

	default:
		return Leaf{}, errs.SchemaError(fmt.Sprintf("field %s has unsupported kind %v", f.Name, f.Kind))
	}
	return leaf, nil
}

// Check resolves every condition of expr without compiling it, so callers can
// validate a filter before touching storage.
func Check(ent *schema.Entity, expr query.Expr) error {
	switch e := expr.(type) {
	case query.Logical:
		if err := Check(ent, e.Left); err != nil {
			return err
		}
		return Check(ent, e.Right)
	case query.Condition:
		_, err := resolve(ent, e)
		return err
	default:
		return errs.SchemaError(fmt.Sprintf("unsupported expression %T", expr))
	}
}

// Compile turns expr into an in-memory predicate. Every leaf is resolved up
// front, so an unknown field fails even in a branch evaluation would skip.
func Compile(ent *schema.Entity, expr query.Expr) (Predicate, error) {
	switch e := expr.(type) {
	case query.Logical:
		left, err := Compile(ent, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := Compile(ent, e.Right)
		if err != nil {
			return nil, err
		}
		if e.Op == query.OpOr {
			return func(r Record) bool { return left(r) || right(r) }, nil
		}
		return func(r Record) bool { return left(r) && right(r) }, nil

	case query.Condition:
		leaf, err := resolve(ent, e)
		if err != nil {
			return nil, err
		}
		return leaf.Match, nil

	default:
		return nil, errs.SchemaError(fmt.Sprintf("unsupported expression %T", expr))
	}
}

// Match evaluates the leaf against r. Missing fields and nil values never
// match, mirroring SQL NULL comparisons.
func (l Leaf) Match(r Record) bool {
	v, ok := r.Value(l.Field.Name)
	if !ok || v == nil {
		return false
	}
	cmp, ok := compare(v, l.Value)
	if !ok {
		return false
	}
	switch l.Op {
	case query.CmpEq:
		return cmp == 0
	case query.CmpNe:
		return cmp != 0
	case query.CmpGt:
		return cmp > 0
	case query.CmpLt:
		return cmp < 0
	case query.CmpGe:
		return cmp >= 0
	case query.CmpLe:
		return cmp <= 0
	}
	return false
}

// compare orders a record value against a literal of the same family.
func compare(v, lit any) (int, bool) {
	switch want := lit.(type) {
	case string:
		s, ok := v.(string)
		if !ok {
			return 0, false
		}
		switch {
		case s < want:
			return -1, true
		case s > want:
			return 1, true
		}
		return 0, true

	case float64:
		n, ok := toFloat(v)
		if !ok {
			return 0, false
		}
		switch {
		case n < want:
			return -1, true
		case n > want:
			return 1, true
		}
		return 0, true

	case bool:
		b, ok := v.(bool)
		if !ok {
			return 0, false
		}
		return boolInt(b) - boolInt(want), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case *float64:
		if n == nil {
			return 0, false
		}
		return *n, true
	}
	return 0, false
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
