package uuid

import (
	"sort"
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNew(t *testing.T) {
	id := New()
	parsed, err := googleuuid.Parse(id)
	if err != nil {
		t.Fatalf("New() returned an unparseable id %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestNew_TimeOrdered(t *testing.T) {
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = New()
	}
	if !sort.StringsAreSorted(ids) {
		t.Error("expected ids generated in sequence to sort in generation order")
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("0190F5B2-7C3A-7DEF-8000-0123456789AB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0190f5b2-7c3a-7def-8000-0123456789ab" {
		t.Errorf("expected lower-cased id, got %s", got)
	}

	if _, err := Parse("not-a-uuid"); err == nil {
		t.Error("expected error for invalid id")
	}
	if IsValid("42") {
		t.Error("expected 42 to be rejected")
	}
}
