package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	var out, errw bytes.Buffer
	code := run(context.Background(), args, &out, &errw)
	return result{code: code, stdout: out.String(), stderr: errw.String()}
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	r := runCLI(t, args...)
	if r.code != 0 {
		t.Fatalf("%v: exit %d\nstderr: %s", args, r.code, r.stderr)
	}
	return r.stdout
}

func TestFilterCheck(t *testing.T) {
	out := mustRun(t, "filter", "check", "meal", "DATE eq '2019-02-01' AND calories gt 500")
	if strings.TrimSpace(out) != "((date eq '2019-02-01') and (calories gt 500))" {
		t.Fatalf("unexpected canonical form %q", out)
	}

	r := runCLI(t, "filter", "check", "meal", "colories gt 500")
	if r.code != 1 {
		t.Fatalf("expected exit 1, got %d", r.code)
	}
	if !strings.Contains(r.stderr, "error (406)") || !strings.Contains(r.stderr, "colories") {
		t.Fatalf("unexpected stderr %q", r.stderr)
	}
}

func TestMealWorkflow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	g := []string{"--db", db, "--log-level", "error"}
	with := func(args ...string) []string { return append(append([]string{}, g...), args...) }

	mustRun(t, with("init")...)

	var user struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	out := mustRun(t, with("-o", "json", "user", "add", "Ada@Example.com", "--first-name", "Ada")...)
	if err := json.Unmarshal([]byte(out), &user); err != nil {
		t.Fatalf("Unmarshal user: %v\n%s", err, out)
	}
	if user.ID != 1 || user.Username != "ada@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}

	mustRun(t, with("profile", "set", "1", "2250")...)
	for _, m := range [][]string{
		{"--time", "09:00:00", "--description", "eggs", "--calories", "1500"},
		{"--time", "12:00:00", "--description", "rice", "--calories", "800"},
	} {
		mustRun(t, with(append([]string{"meal", "add", "1", "--date", "2019-02-01"}, m...)...)...)
	}

	var page struct {
		Items []struct {
			ID                   int64   `json:"id"`
			Calories             float64 `json:"calories"`
			CaloriesLessExpected bool    `json:"calories_less_expected"`
		} `json:"items"`
		Total int `json:"total"`
	}
	out = mustRun(t, with("-o", "json", "meal", "list", "1", "--sort", "time")...)
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("Unmarshal page: %v\n%s", err, out)
	}
	if page.Total != 2 || !page.Items[0].CaloriesLessExpected || page.Items[1].CaloriesLessExpected {
		t.Fatalf("unexpected page %+v", page)
	}

	out = mustRun(t, with("meal", "list", "1", "-s", "calories gt 1000")...)
	if !strings.Contains(out, "eggs") || strings.Contains(out, "rice") {
		t.Fatalf("unexpected filtered table:\n%s", out)
	}

	mustRun(t, with("meal", "patch", "1", "2", "--calories", "100")...)
	out = mustRun(t, with("-o", "json", "meal", "get", "1", "2")...)
	if !strings.Contains(out, `"calories_less_expected": true`) {
		t.Fatalf("expected patched meal within budget:\n%s", out)
	}

	r := runCLI(t, with("meal", "get", "1", "99")...)
	if r.code != 1 || !strings.Contains(r.stderr, "error (404)") {
		t.Fatalf("expected not found, got %d %q", r.code, r.stderr)
	}
	r = runCLI(t, with("meal", "list", "1", "--sort", "weight")...)
	if r.code != 1 || !strings.Contains(r.stderr, "error (406)") {
		t.Fatalf("expected unknown sort, got %d %q", r.code, r.stderr)
	}
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "seed.yaml")
	body := "users:\n  - username: grace@example.com\n    meals:\n      - {date: \"2019-02-01\", time: \"08:00:00\", description: toast, calories: 300}\ninvitations:\n  - alan@example.com\n"
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	db := filepath.Join(dir, "seed.db")

	out := mustRun(t, "--db", db, "--log-level", "error", "seed", file)
	if !strings.Contains(out, "Seeded 1 users, 1 meals, 1 invitations") {
		t.Fatalf("unexpected output %q", out)
	}
	out = mustRun(t, "--db", db, "invitation", "list")
	if !strings.Contains(out, "alan@example.com") || !strings.Contains(out, "pending") {
		t.Fatalf("unexpected invitations:\n%s", out)
	}
}

func TestOpenWithoutInit(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing.db")
	r := runCLI(t, "--db", db, "user", "list")
	if r.code != 1 || !strings.HasPrefix(r.stderr, "error:") {
		t.Fatalf("expected an internal error, got %d %q", r.code, r.stderr)
	}
}
