package schema

import "testing"

func TestBuiltinEntitiesValidate(t *testing.T) {
	for _, e := range []*Entity{Meals(), Users(), Invitations()} {
		if err := e.Validate(); err != nil {
			t.Errorf("%s: %v", e.Name, err)
		}
	}
}

func TestTextFieldsAreQuoted(t *testing.T) {
	quoted := QuotedFields()
	for _, e := range []*Entity{Meals(), Users(), Invitations()} {
		for name, f := range e.Fields {
			_, inSet := quoted[name]
			if f.Quoted() != inSet {
				t.Errorf("%s.%s: Quoted()=%v, in quoted set=%v", e.Name, name, f.Quoted(), inSet)
			}
		}
	}
}

func TestResolveSortAlias(t *testing.T) {
	meals := Meals()
	col, ok := meals.ResolveSort("id")
	if !ok || col != "id" {
		t.Fatalf("expected id -> id column, got %q ok=%v", col, ok)
	}
	col, ok = meals.ResolveSort("")
	if !ok || col != "id" {
		t.Fatalf("expected default sort to resolve, got %q ok=%v", col, ok)
	}
	col, ok = meals.ResolveSort("date")
	if !ok || col != "meal_date" {
		t.Fatalf("expected date -> meal_date, got %q ok=%v", col, ok)
	}
	if _, ok := meals.ResolveSort("descrtion"); ok {
		t.Fatal("expected descrtion to be rejected")
	}
	if _, ok := meals.ResolveSort("user_id"); ok {
		t.Fatal("user_id is filterable but must not be sortable")
	}
}

func TestEntitiesAreIndependent(t *testing.T) {
	a := Meals()
	a.Sortable = nil
	b := Meals()
	if len(b.Sortable) == 0 {
		t.Fatal("mutating one entity value leaked into another")
	}
}
