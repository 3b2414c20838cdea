package reg

import "testing"

func TestFile_ClearX0(t *testing.T) {
	f := NewFile()
	f.Set(0, 0xDEADBEEF)
	if got := f.Get(0); got != 0xDEADBEEF {
		t.Fatalf("Set(0, ...) not reflected before ClearX0: got %#x", got)
	}
	f.ClearX0()
	if got := f.Get(0); got != 0 {
		t.Errorf("Get(0) after ClearX0 = %#x, want 0", got)
	}
}

func TestFile_SignedRoundTrip(t *testing.T) {
	f := NewFile()
	f.SetSigned(1, -5)
	if got := f.GetSigned(1); got != -5 {
		t.Errorf("GetSigned(1) = %d, want -5", got)
	}
	if got := f.Get(1); got != 0xFFFFFFFB {
		t.Errorf("Get(1) = %#x, want 0xFFFFFFFB", got)
	}
}

func TestFile_Snapshot(t *testing.T) {
	f := NewFile()
	f.Set(4, 42)
	snap := f.Snapshot()
	f.Set(4, 99)
	if snap[4] != 42 {
		t.Errorf("Snapshot()[4] = %d, want 42 (unaffected by later Set)", snap[4])
	}
	if got := f.Get(4); got != 99 {
		t.Errorf("Get(4) after mutation = %d, want 99", got)
	}
}

func TestFile_AllRegistersIndependent(t *testing.T) {
	f := NewFile()
	for i := uint32(1); i < NumRegisters; i++ {
		f.Set(i, i*7)
	}
	for i := uint32(1); i < NumRegisters; i++ {
		if got := f.Get(i); got != i*7 {
			t.Errorf("Get(%d) = %d, want %d", i, got, i*7)
		}
	}
}
