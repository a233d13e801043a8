package planner

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nonibytes/mangiato/mangiato/errs"
	"github.com/nonibytes/mangiato/mangiato/model"
	"github.com/nonibytes/mangiato/mangiato/schema"
)

func cal(v float64) *float64 { return &v }

// fixtureMeals is the nine-meal day set used across the listing tests.
func fixtureMeals() []model.Meal {
	return []model.Meal{
		{ID: 1, UserID: 7, Date: "2019-02-01", Time: "09:00:00", Description: "eggs", Calories: cal(1500)},
		{ID: 2, UserID: 7, Date: "2019-02-01", Time: "12:00:00", Description: "meat", Calories: cal(800)},
		{ID: 3, UserID: 7, Date: "2019-02-01", Time: "16:00:00", Description: "bread", Calories: cal(700)},
		{ID: 4, UserID: 7, Date: "2019-02-02", Time: "09:00:00", Description: "sugar", Calories: cal(150)},
		{ID: 5, UserID: 7, Date: "2019-02-02", Time: "15:50:00", Description: "rice", Calories: cal(678)},
		{ID: 6, UserID: 7, Date: "2019-02-02", Time: "21:00:00", Description: "pork", Calories: cal(678)},
		{ID: 7, UserID: 7, Date: "2019-02-03", Time: "08:50:00", Description: "cheese", Calories: cal(123)},
		{ID: 8, UserID: 7, Date: "2019-02-03", Time: "21:00:00", Description: "elephant", Calories: cal(15777)},
		{ID: 9, UserID: 7, Date: "2019-02-03", Time: "21:10:00", Description: "elephant", Calories: cal(3000)},
	}
}

func ids(meals []model.Meal) []int64 {
	out := make([]int64, 0, len(meals))
	for _, m := range meals {
		out = append(out, m.ID)
	}
	return out
}

func TestCompileFilterFixture(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{
			name:  "or of time and description",
			query: "time le '10:00:00' or description eq 'elephant'",
			want:  []int64{1, 4, 7, 8, 9},
		},
		{
			name: "nested groups",
			query: "((time lt '10:00:00') OR (description eq 'elephant' and time gt '21:05:00')) or " +
				"((description eq 'rice' and date eq '2019-02-02') or ((description eq 'rice') AND date eq '2019-02-01'))",
			want: []int64{1, 4, 5, 7, 9},
		},
		{
			name:  "no match",
			query: "(date eq '2016-05-01') AND ((calories gt 20) OR (calories lt 10))",
			want:  []int64{},
		},
		{
			name:  "quoted numbers on numeric field",
			query: "(date eq '2019-02-01') AND ((calories gt '1000') OR (calories lt '750'))",
			want:  []int64{1, 3},
		},
		{
			name:  "explicit grouping",
			query: "date eq '2019-02-01' AND (calories gt 1000 OR calories lt 750)",
			want:  []int64{1, 3},
		},
		{
			name:  "and binds tighter than or",
			query: "(date eq '2019-02-01') AND (calories gt '1000') OR (calories lt 750)",
			want:  []int64{1, 3, 4, 5, 6, 7},
		},
		{
			name:  "bare word value",
			query: "description eq rice",
			want:  []int64{5},
		},
		{
			name:  "unquoted date",
			query: "date ge 2019-02-02 and calories ne 678",
			want:  []int64{4, 7, 8, 9},
		},
		{
			name:  "uppercase query",
			query: "DESCRIPTION EQ 'ELEPHANT' AND CALORIES LT 5000",
			want:  []int64{9},
		},
		{
			name:  "blank query matches all",
			query: "   ",
			want:  []int64{1, 2, 3, 4, 5, 6, 7, 8, 9},
		},
	}

	meals := fixtureMeals()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := CompileFilter(schema.Meals(), tt.query)
			if err != nil {
				t.Fatalf("CompileFilter: %v", err)
			}
			got := ids(Filter(meals, pred))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	meals := fixtureMeals()
	before := fixtureMeals()
	pred, err := CompileFilter(schema.Meals(), "calories gt 1000")
	if err != nil {
		t.Fatalf("CompileFilter: %v", err)
	}
	_ = Filter(meals, pred)
	if !reflect.DeepEqual(meals, before) {
		t.Fatal("Filter modified its input")
	}
}

func TestNullCaloriesNeverMatch(t *testing.T) {
	meals := []model.Meal{
		{ID: 1, Date: "2019-02-01", Time: "09:00:00", Description: "water"},
		{ID: 2, Date: "2019-02-01", Time: "10:00:00", Description: "toast", Calories: cal(90)},
	}
	for _, q := range []string{"calories lt 100", "calories ne 90", "calories eq 0"} {
		pred, err := CompileFilter(schema.Meals(), q)
		if err != nil {
			t.Fatalf("%s: %v", q, err)
		}
		for _, m := range Filter(meals, pred) {
			if m.Calories == nil {
				t.Errorf("%s: meal with null calories matched", q)
			}
		}
	}
}

func TestUnknownFieldNamesField(t *testing.T) {
	queries := []string{
		"(date eq '2019-02-01') AND ((calries gt '1000') OR (calories lt '750'))",
		"calories gt 1 or calries gt 2",
		"calries gt 2 and calories gt 1",
	}
	for _, q := range queries {
		_, err := CompileFilter(schema.Meals(), q)
		if err == nil {
			t.Fatalf("%s: expected error", q)
		}
		if !errs.IsKind(err, errs.ErrUnknownField) {
			t.Fatalf("%s: expected unknown field, got %v", q, err)
		}
		msg := errs.Message(err)
		want := "Error parsing query. Check field name are correct. type object 'Meal' has no attribute 'calries'"
		if msg != want {
			t.Errorf("%s: expected message %q, got %q", q, want, msg)
		}
		if errs.StatusCode(err) != 406 {
			t.Errorf("%s: expected 406, got %d", q, errs.StatusCode(err))
		}
	}
}

func TestUnquotedMultiWordIsParseError(t *testing.T) {
	q := "((time lt '10:00:00') OR (description eq 'elephant' and time gt '21:05:00')) or " +
		"((description eq 'rice' and date eq '2019-02-02') or ((description eq rice and eggs) AND date eq '2019-02-01'))"
	_, err := CompileFilter(schema.Meals(), q)
	if !errs.IsKind(err, errs.ErrQueryParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if errs.Message(err) != errs.MsgParseQueryValues {
		t.Errorf("unexpected message %q", errs.Message(err))
	}
	if errs.StatusCode(err) != 406 {
		t.Errorf("expected 406, got %d", errs.StatusCode(err))
	}
}

func TestNonNumericLiteralOnNumericField(t *testing.T) {
	_, err := CompileFilter(schema.Meals(), "calories gt lots")
	if !errs.IsKind(err, errs.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if errs.StatusCode(err) != 406 {
		t.Errorf("expected 406, got %d", errs.StatusCode(err))
	}
}

func TestNonFiniteLiteralOnNumericField(t *testing.T) {
	for _, q := range []string{
		"calories eq nan",
		"calories ne nan",
		"calories lt inf",
		"calories gt infinity",
		"calories gt '-inf'",
		"calories eq 'NaN'",
	} {
		if _, err := CompileFilter(schema.Meals(), q); !errs.IsKind(err, errs.ErrTypeMismatch) {
			t.Errorf("%s: expected type mismatch, got %v", q, err)
		}
		expr, err := ParseFilter(q)
		if err != nil {
			t.Fatalf("%s: ParseFilter: %v", q, err)
		}
		if err := Check(schema.Meals(), expr); !errs.IsKind(err, errs.ErrTypeMismatch) {
			t.Errorf("%s: Check: expected type mismatch, got %v", q, err)
		}
	}

	// Text fields keep the word as text.
	meals := []model.Meal{{ID: 1, Description: "nan"}, {ID: 2, Description: "pie"}}
	pred, err := CompileFilter(schema.Meals(), "description eq nan")
	if err != nil {
		t.Fatalf("CompileFilter: %v", err)
	}
	if got := ids(Filter(meals, pred)); !reflect.DeepEqual(got, []int64{1}) {
		t.Fatalf("expected [1], got %v", got)
	}
}

func TestNumberLiteralOnTextField(t *testing.T) {
	meals := []model.Meal{{ID: 1, Description: "42"}, {ID: 2, Description: "pie"}}
	pred, err := CompileFilter(schema.Meals(), "description eq 42")
	if err != nil {
		t.Fatalf("CompileFilter: %v", err)
	}
	if got := ids(Filter(meals, pred)); !reflect.DeepEqual(got, []int64{1}) {
		t.Fatalf("expected [1], got %v", got)
	}
}

func TestBoolFields(t *testing.T) {
	meals := []model.Meal{
		{ID: 1, WithinBudget: true},
		{ID: 2, WithinBudget: false},
	}
	for q, want := range map[string][]int64{
		"calories_less_expected eq true":  {1},
		"calories_less_expected eq 0":     {2},
		"calories_less_expected ne false": {1},
	} {
		pred, err := CompileFilter(schema.Meals(), q)
		if err != nil {
			t.Fatalf("%s: %v", q, err)
		}
		if got := ids(Filter(meals, pred)); !reflect.DeepEqual(got, want) {
			t.Errorf("%s: expected %v, got %v", q, want, got)
		}
	}
	if _, err := CompileFilter(schema.Meals(), "calories_less_expected eq maybe"); !errs.IsKind(err, errs.ErrTypeMismatch) {
		t.Errorf("expected type mismatch, got %v", err)
	}
}

func TestInvitationFilter(t *testing.T) {
	invs := []model.Invitation{
		{ID: 1, Email: "a@example.com", Status: model.InvitationPending},
		{ID: 2, Email: "b@example.com", Status: model.InvitationAccepted},
	}
	pred, err := CompileFilter(schema.Invitations(), "status eq 'accepted' or email eq 'a@example.com'")
	if err != nil {
		t.Fatalf("CompileFilter: %v", err)
	}
	if got := Filter(invs, pred); len(got) != 2 {
		t.Fatalf("expected both invitations, got %d", len(got))
	}
	_, err = CompileFilter(schema.Invitations(), "calories gt 1")
	if !errs.IsKind(err, errs.ErrUnknownField) || !strings.Contains(err.Error(), "Invitation") {
		t.Fatalf("expected unknown field on Invitation, got %v", err)
	}
}
