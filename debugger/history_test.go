package debugger

import (
	"fmt"
	"testing"
)

func TestCommandHistory_Add(t *testing.T) {
	h := NewCommandHistory()

	h.Add("step")
	h.Add("continue")
	h.Add("break 0x1000")

	if h.Size() != 3 {
		t.Errorf("Size = %d, want 3", h.Size())
	}

	all := h.GetAll()
	if len(all) != 3 {
		t.Fatalf("GetAll() length = %d, want 3", len(all))
	}
	if all[0] != "step" || all[1] != "continue" || all[2] != "break 0x1000" {
		t.Errorf("GetAll() = %v, want [step continue break 0x1000]", all)
	}
}

func TestCommandHistory_IgnoreEmpty(t *testing.T) {
	h := NewCommandHistory()

	h.Add("step")
	h.Add("")
	h.Add("continue")

	if h.Size() != 2 {
		t.Errorf("Size = %d, want 2 (empty commands should be ignored)", h.Size())
	}
}

func TestCommandHistory_IgnoreConsecutiveDuplicates(t *testing.T) {
	h := NewCommandHistory()

	// Repeating "step" by hitting Enter on a blank line shouldn't pad the
	// history with N identical entries.
	h.Add("step")
	h.Add("step")
	h.Add("step")
	h.Add("continue")

	if h.Size() != 2 {
		t.Errorf("Size = %d, want 2 (consecutive duplicates should collapse)", h.Size())
	}

	all := h.GetAll()
	if all[0] != "step" || all[1] != "continue" {
		t.Errorf("GetAll() = %v, want [step continue]", all)
	}
}

func TestCommandHistory_NonConsecutiveDuplicatesKept(t *testing.T) {
	h := NewCommandHistory()

	h.Add("break 0x1000")
	h.Add("continue")
	h.Add("break 0x1000")

	if h.Size() != 3 {
		t.Errorf("Size = %d, want 3 (repeat is not consecutive, so it's kept)", h.Size())
	}
}

func TestCommandHistory_Previous(t *testing.T) {
	h := NewCommandHistory()
	h.Add("break 0x1000")
	h.Add("step")
	h.Add("continue")

	if got := h.Previous(); got != "continue" {
		t.Errorf("Previous() = %q, want continue", got)
	}
	if got := h.Previous(); got != "step" {
		t.Errorf("Previous() = %q, want step", got)
	}
	if got := h.Previous(); got != "break 0x1000" {
		t.Errorf("Previous() = %q, want break 0x1000", got)
	}
	if got := h.Previous(); got != "" {
		t.Errorf("Previous() at oldest entry = %q, want empty", got)
	}
}

func TestCommandHistory_Next(t *testing.T) {
	h := NewCommandHistory()
	h.Add("break 0x1000")
	h.Add("step")
	h.Add("continue")

	h.Previous()
	h.Previous()
	h.Previous()

	if got := h.Next(); got != "step" {
		t.Errorf("Next() = %q, want step", got)
	}
	if got := h.Next(); got != "continue" {
		t.Errorf("Next() = %q, want continue", got)
	}
	if got := h.Next(); got != "" {
		t.Errorf("Next() past newest entry = %q, want empty", got)
	}
}

func TestCommandHistory_AddResetsRecallPosition(t *testing.T) {
	h := NewCommandHistory()
	h.Add("step")
	h.Add("continue")

	h.Previous()
	h.Previous()

	// Executing a fresh command (as ExecuteCommand does on every line) must
	// put recall back at the end, not leave it wherever browsing left it.
	h.Add("info registers")

	if got := h.Previous(); got != "info registers" {
		t.Errorf("Previous() after Add = %q, want info registers", got)
	}
}

func TestCommandHistory_Clear(t *testing.T) {
	h := NewCommandHistory()
	h.Add("step")
	h.Add("continue")

	h.Clear()

	if h.Size() != 0 {
		t.Errorf("Size after Clear = %d, want 0", h.Size())
	}
	if got := h.Previous(); got != "" {
		t.Errorf("Previous() after Clear = %q, want empty", got)
	}
}

func TestCommandHistory_MaxSize(t *testing.T) {
	h := NewCommandHistory()

	for i := 0; i < defaultHistorySize+100; i++ {
		h.Add(fmt.Sprintf("step %d", i))
	}

	if h.Size() != defaultHistorySize {
		t.Errorf("Size = %d, want capped at %d", h.Size(), defaultHistorySize)
	}

	all := h.GetAll()
	if all[0] != "step 100" {
		t.Errorf("oldest retained entry = %q, want %q (first 100 should have been trimmed)", all[0], "step 100")
	}
}

func TestCommandHistory_EmptyHistory(t *testing.T) {
	h := NewCommandHistory()

	if h.Size() != 0 {
		t.Errorf("new history Size = %d, want 0", h.Size())
	}
	if got := h.Previous(); got != "" {
		t.Errorf("Previous() on empty history = %q, want empty", got)
	}
	if got := h.Next(); got != "" {
		t.Errorf("Next() on empty history = %q, want empty", got)
	}
	if got := h.GetAll(); len(got) != 0 {
		t.Errorf("GetAll() on empty history = %v, want empty", got)
	}
}
