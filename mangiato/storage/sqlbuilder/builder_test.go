package sqlbuilder

import "testing"

func TestQuestionPlaceholders(t *testing.T) {
	b := New(PlaceholderQuestion)
	if got := b.Arg(1); got != "?" {
		t.Fatalf("expected ?, got %s", got)
	}
	if got := b.Arg("x"); got != "?" {
		t.Fatalf("expected ?, got %s", got)
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 args, got %d", b.Len())
	}
}

func TestDollarPlaceholders(t *testing.T) {
	b := New(PlaceholderDollar)
	for i, want := range []string{"$1", "$2", "$3", "$4", "$5", "$6", "$7", "$8", "$9", "$10"} {
		if got := b.Arg(i); got != want {
			t.Fatalf("arg %d: expected %s, got %s", i, want, got)
		}
	}
	args := b.Args()
	if len(args) != 10 || args[9] != 9 {
		t.Fatalf("unexpected args: %v", args)
	}
}
