// Package gui implements a graphical register/memory viewer for an RV32I
// driver.Machine, adapted from the teacher's fyne-based debugger GUI and
// narrowed to a driver.Monitor: instead of owning the run loop (the teacher's
// GUI drove its own VM directly), this viewer observes retirements pushed to
// it by whatever loop is actually running the machine, and redraws its
// panels from the shared Machine state on every Observe call.
package gui

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/rv32i-go/rv32icore/driver"
	"github.com/rv32i-go/rv32icore/isa"
	"github.com/rv32i-go/rv32icore/memory"
	"github.com/rv32i-go/rv32icore/reg"
)

// memoryDisplayRows and memoryDisplayColumns size the hex dump panel.
const (
	memoryDisplayRows    = 16
	memoryDisplayColumns = 16
)

// Viewer is a driver.Monitor that renders a live register and memory view
// of a running Machine in a fyne window. It does not pace or gate
// execution — Observe only redraws; a caller wanting single-step control
// still drives the Machine itself (e.g. via the debugger package) and
// attaches Viewer alongside other monitors with driver.MultiMonitor.
type Viewer struct {
	App    fyne.App
	Window fyne.Window

	RegisterView *widget.TextGrid
	MemoryView   *widget.TextGrid
	StatusLabel  *widget.Label

	mu            sync.Mutex
	memoryAddress uint32
}

// NewViewer creates a Viewer window, sized for a register grid and a memory
// hex dump panel side by side.
func NewViewer() *Viewer {
	myApp := app.New()
	myWindow := myApp.NewWindow("RV32I Machine Viewer")

	v := &Viewer{
		App:          myApp,
		Window:       myWindow,
		RegisterView: widget.NewTextGrid(),
		MemoryView:   widget.NewTextGrid(),
		StatusLabel:  widget.NewLabel("stopped"),
	}

	v.buildLayout()
	myWindow.Resize(fyne.NewSize(900, 600))

	return v
}

func (v *Viewer) buildLayout() {
	registers := container.NewVScroll(v.RegisterView)
	mem := container.NewVScroll(v.MemoryView)

	content := container.NewHSplit(registers, mem)
	content.Offset = 0.35

	v.Window.SetContent(container.NewBorder(v.StatusLabel, nil, nil, nil, content))
}

// SetMemoryAddress changes the base address the memory panel displays.
func (v *Viewer) SetMemoryAddress(addr uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.memoryAddress = addr
}

// Observe implements driver.Monitor: redraw the register and memory panels
// from the machine's current state after every retirement.
func (v *Viewer) Observe(inst *isa.Inst, pc uint32, regs *reg.File, mem memory.Reader) {
	v.StatusLabel.SetText(fmt.Sprintf("pc=0x%08X  last=%s", pc, inst.Kind.String()))
	v.updateRegisters(regs, pc)
	v.updateMemory(mem)
}

func (v *Viewer) updateRegisters(regs *reg.File, pc uint32) {
	snap := regs.Snapshot()
	var lines []string
	for row := 0; row < 32; row += 4 {
		var cols []string
		for col := row; col < row+4 && col < 32; col++ {
			cols = append(cols, fmt.Sprintf("x%-2d: 0x%08X", col, snap[col]))
		}
		lines = append(lines, strings.Join(cols, "  "))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("pc:  0x%08X", pc))
	v.RegisterView.SetText(strings.Join(lines, "\n"))
}

func (v *Viewer) updateMemory(mem memory.Reader) {
	v.mu.Lock()
	addr := v.memoryAddress
	v.mu.Unlock()

	var lines []string
	for row := 0; row < memoryDisplayRows; row++ {
		rowAddr := addr + uint32(row*memoryDisplayColumns)
		data, err := mem.Load(rowAddr, memoryDisplayColumns)
		if err != nil {
			lines = append(lines, fmt.Sprintf("0x%08X: <unmapped>", rowAddr))
			continue
		}

		var hexBytes []string
		var asciiBytes []byte
		for _, b := range data {
			hexBytes = append(hexBytes, fmt.Sprintf("%02X", b))
			if b >= 32 && b < 127 {
				asciiBytes = append(asciiBytes, b)
			} else {
				asciiBytes = append(asciiBytes, '.')
			}
		}
		lines = append(lines, fmt.Sprintf("0x%08X: %s  %s", rowAddr, strings.Join(hexBytes, " "), string(asciiBytes)))
	}
	v.MemoryView.SetText(strings.Join(lines, "\n"))
}

// Run blocks, showing the window and processing UI events, until the window
// is closed. The caller should run the Machine's loop in its own goroutine
// with this Viewer attached as one of its monitors.
func (v *Viewer) Run() {
	v.Window.ShowAndRun()
}

var _ driver.Monitor = (*Viewer)(nil)
