// Package schema describes the filterable and sortable fields of each entity.
package schema

import (
	"fmt"
	"sort"
)

// FieldKind decides how a filter literal is compared against a field.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindBool
)

func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Field is one attribute of an entity
type Field struct {
	Name   string
	Column string
	Kind   FieldKind
}

// Quoted reports whether values of the field are textual or temporal.
func (f Field) Quoted() bool {
	return f.Kind == KindText
}

// Entity is the per-entity configuration handed to the filter compiler and the
// listing code.
type Entity struct {
	Name        string
	Table       string
	Fields      map[string]Field
	Sortable    []string
	SortAliases map[string]string
	DefaultSort string
}

// Lookup returns the field called name.
func (e *Entity) Lookup(name string) (Field, bool) {
	f, ok := e.Fields[name]
	return f, ok
}

// ColumnName returns the column backing a field, defaulting to the field name.
func (f Field) ColumnName() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

// ResolveSort maps a requested sort key to a column. The empty string selects
// the default sort.
func (e *Entity) ResolveSort(name string) (string, bool) {
	if name == "" {
		name = e.DefaultSort
	}
	if alias, ok := e.SortAliases[name]; ok {
		name = alias
	}
	for _, s := range e.Sortable {
		if s == name {
			f, ok := e.Fields[name]
			if !ok {
				return "", false
			}
			return f.ColumnName(), true
		}
	}
	return "", false
}

// ColumnOf returns the storage column of a known field.
func (e *Entity) ColumnOf(name string) string {
	return e.Fields[name].ColumnName()
}

// Validate checks that sortable names and aliases point at declared fields.
func (e *Entity) Validate() error {
	if e.Name == "" || e.Table == "" {
		return fmt.Errorf("entity name and table are required")
	}
	for _, s := range e.Sortable {
		if _, ok := e.Fields[s]; !ok {
			return fmt.Errorf("%s: sortable field %q is not declared", e.Name, s)
		}
	}
	for from, to := range e.SortAliases {
		if _, ok := e.Fields[to]; !ok {
			return fmt.Errorf("%s: sort alias %q targets unknown field %q", e.Name, from, to)
		}
	}
	if _, ok := e.ResolveSort(""); !ok {
		return fmt.Errorf("%s: default sort %q is not sortable", e.Name, e.DefaultSort)
	}
	return nil
}

// FieldNames returns the declared fields in sorted order.
func (e *Entity) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for n := range e.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func newEntity(name, table string, fields ...Field) *Entity {
	e := &Entity{Name: name, Table: table, Fields: make(map[string]Field, len(fields))}
	for _, f := range fields {
		e.Fields[f.Name] = f
	}
	return e
}
