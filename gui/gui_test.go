package gui

import (
	"testing"

	"github.com/rv32i-go/rv32icore/isa"
	"github.com/rv32i-go/rv32icore/memory"
	"github.com/rv32i-go/rv32icore/reg"
)

func TestNewViewer(t *testing.T) {
	v := NewViewer()
	if v == nil {
		t.Fatal("NewViewer returned nil")
	}
	if v.RegisterView == nil || v.MemoryView == nil {
		t.Fatal("Viewer panels not initialized")
	}
}

func TestViewerObserve(t *testing.T) {
	v := NewViewer()

	regs := reg.NewFile()
	regs.Set(10, 0x2A)
	mem := memory.NewFlat(256)

	decoder := isa.NewDecoder(nil)
	inst, err := decoder.DecodeWord(0x00000013) // NOP (ADDI x0, x0, 0)
	if err != nil {
		t.Fatalf("DecodeWord failed: %v", err)
	}

	v.Observe(inst, 0x1000, regs, mem)

	if len(v.RegisterView.Rows) == 0 {
		t.Error("register view was not populated by Observe")
	}
	if len(v.MemoryView.Rows) == 0 {
		t.Error("memory view was not populated by Observe")
	}
}

func TestViewerSetMemoryAddress(t *testing.T) {
	v := NewViewer()
	v.SetMemoryAddress(0x4000)

	regs := reg.NewFile()
	mem := memory.NewFlat(0x5000)
	decoder := isa.NewDecoder(nil)
	inst, err := decoder.DecodeWord(0x00000013)
	if err != nil {
		t.Fatalf("DecodeWord failed: %v", err)
	}

	v.Observe(inst, 0, regs, mem)

	if v.memoryAddress != 0x4000 {
		t.Errorf("memoryAddress = 0x%X, want 0x4000", v.memoryAddress)
	}
}
