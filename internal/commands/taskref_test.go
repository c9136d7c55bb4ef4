package commands

import (
	"testing"
)

func TestParseTaskRef_Numeric(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.IsNumber() {
		t.Error("expected a positional ref")
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"64f1c2ab9e"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.IsNumber() {
		t.Error("expected an id ref")
	}
	if ref.ID != "64f1c2ab9e" {
		t.Errorf("expected ID, got %q", ref.ID)
	}
	if ref.String() != "64f1c2ab9e" {
		t.Errorf("String() = %q", ref.String())
	}
}

func TestParseTaskRef_NoArgs_Error(t *testing.T) {
	_, err := ParseTaskRef(nil)
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_TooMany_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{"1", "2"})
	if err == nil {
		t.Fatal("expected error for extra argument")
	}
	if err.Error() != "unexpected argument: 2" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestParseTaskRef_Blank_Error(t *testing.T) {
	for _, arg := range []string{"", "  ", "a b"} {
		if _, err := ParseTaskRef([]string{arg}); err == nil {
			t.Errorf("expected error for %q", arg)
		}
	}
}

func TestParseTaskRefs_Mixed(t *testing.T) {
	refs, err := ParseTaskRefs([]string{"1", "abc", "12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 refs, got %d", len(refs))
	}
	if !refs[0].IsNumber() || refs[0].Num != 1 {
		t.Errorf("unexpected ref[0]: %#v", refs[0])
	}
	if refs[1].IsNumber() || refs[1].ID != "abc" {
		t.Errorf("unexpected ref[1]: %#v", refs[1])
	}
	if !refs[2].IsNumber() || refs[2].Num != 12 {
		t.Errorf("unexpected ref[2]: %#v", refs[2])
	}
}

func TestParseTaskRefs_NoArgs_Error(t *testing.T) {
	if _, err := ParseTaskRefs(nil); err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}
