package planner

import (
	"reflect"
	"testing"

	"github.com/nonibytes/mangiato/mangiato/errs"
	"github.com/nonibytes/mangiato/mangiato/query"
	"github.com/nonibytes/mangiato/mangiato/schema"
	"github.com/nonibytes/mangiato/mangiato/storage/sqlbuilder"
)

func mustParse(t *testing.T, s string) query.Expr {
	t.Helper()
	expr, err := query.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return expr
}

func TestCompileSQLPreservesGrouping(t *testing.T) {
	b := sqlbuilder.New(sqlbuilder.PlaceholderQuestion)
	expr := mustParse(t, "(date eq '2019-02-01') AND (calories gt '1000') OR (calories lt 750)")
	got, err := CompileSQL(schema.Meals(), expr, b)
	if err != nil {
		t.Fatalf("CompileSQL: %v", err)
	}
	want := "((meal_date = ? AND calories > CAST(? AS DOUBLE PRECISION)) OR calories < CAST(? AS DOUBLE PRECISION))"
	if got != want {
		t.Errorf("expected\n  %s\ngot\n  %s", want, got)
	}
	wantArgs := []any{"2019-02-01", 1000.0, 750.0}
	if !reflect.DeepEqual(b.Args(), wantArgs) {
		t.Errorf("expected args %v, got %v", wantArgs, b.Args())
	}
}

func TestCompileSQLDollarPlaceholders(t *testing.T) {
	b := sqlbuilder.New(sqlbuilder.PlaceholderDollar)
	expr := mustParse(t, "username eq 'x@y.z' and blocked eq true")
	got, err := CompileSQL(schema.Users(), expr, b)
	if err != nil {
		t.Fatalf("CompileSQL: %v", err)
	}
	want := "(username = $1 AND blocked = $2)"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if !reflect.DeepEqual(b.Args(), []any{"x@y.z", true}) {
		t.Errorf("unexpected args %v", b.Args())
	}
}

func TestCompileSQLInjectionStaysInArgs(t *testing.T) {
	b := sqlbuilder.New(sqlbuilder.PlaceholderQuestion)
	expr := mustParse(t, `description eq "x' or 1=1 --"`)
	got, err := CompileSQL(schema.Meals(), expr, b)
	if err != nil {
		t.Fatalf("CompileSQL: %v", err)
	}
	if got != "description = ?" {
		t.Fatalf("unexpected SQL %s", got)
	}
	if b.Args()[0] != "x' or 1=1 --" {
		t.Fatalf("unexpected arg %v", b.Args()[0])
	}
}

func TestBuildListSQL(t *testing.T) {
	b := sqlbuilder.New(sqlbuilder.PlaceholderDollar)
	out, err := BuildListSQL(b, ListQuery{
		Entity:  schema.Meals(),
		Columns: "id, description",
		Scopes:  []Scope{{Column: "user_id", Value: int64(3)}},
		Filter:  mustParse(t, "calories gt 10"),
		Sort:    "description",
		Page:    2,
		PerPage: 4,
	})
	if err != nil {
		t.Fatalf("BuildListSQL: %v", err)
	}
	wantCount := "SELECT COUNT(*) FROM meals WHERE user_id = $1 AND calories > CAST($2 AS DOUBLE PRECISION)"
	if out.Count != wantCount {
		t.Errorf("count:\n  expected %s\n  got      %s", wantCount, out.Count)
	}
	wantSelect := "SELECT id, description FROM meals WHERE user_id = $1 AND calories > CAST($2 AS DOUBLE PRECISION) ORDER BY description, id LIMIT $3 OFFSET $4"
	if out.Select != wantSelect {
		t.Errorf("select:\n  expected %s\n  got      %s", wantSelect, out.Select)
	}
	if !reflect.DeepEqual(out.CountArgs, []any{int64(3), 10.0}) {
		t.Errorf("unexpected count args %v", out.CountArgs)
	}
	if !reflect.DeepEqual(out.SelectArgs, []any{int64(3), 10.0, 4, 4}) {
		t.Errorf("unexpected select args %v", out.SelectArgs)
	}
}

func TestBuildListSQLDefaultSortAlias(t *testing.T) {
	b := sqlbuilder.New(sqlbuilder.PlaceholderQuestion)
	out, err := BuildListSQL(b, ListQuery{Entity: schema.Meals(), Columns: "id", Sort: "id"})
	if err != nil {
		t.Fatalf("BuildListSQL: %v", err)
	}
	want := "SELECT id FROM meals ORDER BY id LIMIT ? OFFSET ?"
	if out.Select != want {
		t.Errorf("expected %s, got %s", want, out.Select)
	}
	if !reflect.DeepEqual(out.SelectArgs, []any{DefaultPerPage, 0}) {
		t.Errorf("unexpected args %v", out.SelectArgs)
	}
}

func TestBuildListSQLRejectsSort(t *testing.T) {
	b := sqlbuilder.New(sqlbuilder.PlaceholderQuestion)
	_, err := BuildListSQL(b, ListQuery{Entity: schema.Meals(), Columns: "id", Sort: "descrtion"})
	if !errs.IsKind(err, errs.ErrUnknownSortField) {
		t.Fatalf("expected unknown sort field, got %v", err)
	}
	want := "Order elements The value 'descrtion' is not a valid choice for 'sort'."
	if errs.Message(err) != want {
		t.Errorf("expected %q, got %q", want, errs.Message(err))
	}
	if errs.StatusCode(err) != 406 {
		t.Errorf("expected 406, got %d", errs.StatusCode(err))
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	page, info := Paginate(items, 3, 4)
	if !reflect.DeepEqual(page, []int{9, 10, 11, 12}) {
		t.Errorf("unexpected page %v", page)
	}
	if info.Pages != 4 || info.Total != 13 || info.Page != 3 || info.PerPage != 4 {
		t.Errorf("unexpected info %+v", info)
	}

	page, info = Paginate(items, 9, 4)
	if len(page) != 0 || info.Pages != 4 {
		t.Errorf("expected empty page past the end, got %v %+v", page, info)
	}

	_, info = Paginate(items, 0, 0)
	if info.Page != 1 || info.PerPage != DefaultPerPage || info.Pages != 2 {
		t.Errorf("unexpected defaults %+v", info)
	}
}
