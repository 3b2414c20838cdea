package memory

import (
	"testing"
)

func TestMemory_StoreLoadRoundTrip(t *testing.T) {
	m := NewFlat(16)
	if err := m.Store(4, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, err := m.Load(4, 4)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []byte{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Load()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMemory_UnmappedAddress(t *testing.T) {
	m := NewFlat(16)
	if _, err := m.Load(100, 4); err == nil {
		t.Error("Load at unmapped address succeeded, want error")
	}
}

func TestMemory_CrossesSegmentBounds(t *testing.T) {
	m := NewFlat(16)
	if _, err := m.Load(14, 4); err == nil {
		t.Error("Load crossing segment end succeeded, want error")
	}
}

func TestMemory_PermissionDenied(t *testing.T) {
	m := &Memory{}
	m.AddSegment("ro", 0, 16, PermRead)
	if err := m.Store(0, []byte{1}); err == nil {
		t.Error("Store to read-only segment succeeded, want error")
	}

	m2 := &Memory{}
	m2.AddSegment("wo", 0, 16, PermWrite)
	if _, err := m2.Load(0, 1); err == nil {
		t.Error("Load from write-only segment succeeded, want error")
	}
}

func TestMemory_DefaultLayoutSegments(t *testing.T) {
	m := New()
	if got := m.Length(); got != StackStart+StackSize {
		t.Errorf("Length() = %#x, want %#x", got, StackStart+StackSize)
	}
	if err := m.CheckExecutePermission(CodeStart); err != nil {
		t.Errorf("CheckExecutePermission(code) = %v, want nil", err)
	}
	if err := m.CheckExecutePermission(DataStart); err == nil {
		t.Error("CheckExecutePermission(data) succeeded, want error")
	}
}

func TestMemory_LoadImage(t *testing.T) {
	m := New()
	image := []byte{0x93, 0x00, 0x10, 0x00, 0x73, 0x00, 0x00, 0x00}
	if err := m.LoadImage(CodeStart, image); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	got, err := m.Load(CodeStart, 4)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := 0; i < 4; i++ {
		if got[i] != image[i] {
			t.Errorf("Load()[%d] = %#x, want %#x", i, got[i], image[i])
		}
	}
}

func TestMemory_LoadImageOverflow(t *testing.T) {
	m := New()
	huge := make([]byte, CodeSize+1)
	if err := m.LoadImage(CodeStart, huge); err == nil {
		t.Error("LoadImage overflowing its segment succeeded, want error")
	}
}
