package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is a full-screen terminal debugger over a Debugger, adapted from the
// teacher's tview-based layout narrowed to the panels this architecture has:
// no source view (the core runs raw machine words, not assembly text), no
// stack view (no calling convention is assumed), no CPSR flag row (RV32I
// carries no flags register).
type TUI struct {
	Debugger *Debugger
	App      *tview.Application
	Pages    *tview.Pages

	MainLayout *tview.Flex
	RightPanel *tview.Flex

	RegisterView    *tview.TextView
	MemoryView      *tview.TextView
	DisassemblyView *tview.TextView
	BreakpointsView *tview.TextView
	OutputView      *tview.TextView
	CommandInput    *tview.InputField

	MemoryAddress uint32
}

// NewTUI builds a TUI over debugger, running on the real terminal screen.
func NewTUI(debugger *Debugger) *TUI {
	return newTUI(debugger, tview.NewApplication())
}

// NewTUIWithScreen builds a TUI bound to an explicit tcell.Screen, so tests
// can drive it without a real terminal.
func NewTUIWithScreen(debugger *Debugger, screen tcell.Screen) *TUI {
	app := tview.NewApplication().SetScreen(screen)
	return newTUI(debugger, app)
}

func newTUI(debugger *Debugger, app *tview.Application) *TUI {
	t := &TUI{
		Debugger: debugger,
		App:      app,
	}

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()

	return t
}

func (t *TUI) initializeViews() {
	t.RegisterView = tview.NewTextView().SetDynamicColors(true)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.MemoryView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.DisassemblyView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.DisassemblyView.SetBorder(true).SetTitle(" Disassembly ")

	t.BreakpointsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.BreakpointsView.SetBorder(true).SetTitle(" Breakpoints ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
	t.CommandInput.SetInputCapture(t.handleCommandKey)
}

// handleCommandKey recalls prior commands on the up/down arrows, the way a
// shell history does, before tview's own input handling sees the event.
func (t *TUI) handleCommandKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		if cmd := t.Debugger.History.Previous(); cmd != "" {
			t.CommandInput.SetText(cmd)
		}
		return nil
	case tcell.KeyDown:
		t.CommandInput.SetText(t.Debugger.History.Next())
		return nil
	}
	return event
}

func (t *TUI) buildLayout() {
	rightTop := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, 10, 0, false).
		AddItem(t.MemoryView, 0, 1, false)

	t.RightPanel = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(rightTop, 0, 3, false).
		AddItem(t.BreakpointsView, 8, 0, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.DisassemblyView, 0, 2, false).
		AddItem(t.RightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			t.executeCommand("help")
			return nil
		case tcell.KeyF5:
			t.executeCommand("continue")
			return nil
		case tcell.KeyF9:
			t.executeCommand("break pc")
			return nil
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key == tcell.KeyEnter {
		cmd := t.CommandInput.GetText()
		if cmd != "" {
			t.executeCommand(cmd)
			t.CommandInput.SetText("")
		}
	}
}

func (t *TUI) executeCommand(cmd string) {
	t.Debugger.Output.Reset()

	err := t.Debugger.ExecuteCommand(cmd)
	output := t.Debugger.GetOutput()

	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]Error:[white] %v\n", err))
	}
	if output != "" {
		t.WriteOutput(output)
	}

	t.RefreshAll()
}

// WriteOutput appends text to the output panel.
func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

// RefreshAll redraws every panel from current machine state.
func (t *TUI) RefreshAll() {
	t.UpdateRegisterView()
	t.UpdateMemoryView()
	t.UpdateDisassemblyView()
	t.UpdateBreakpointsView()
	t.App.Draw()
}

func (t *TUI) UpdateRegisterView() {
	t.RegisterView.Clear()

	snap := t.Debugger.Machine.Regs.Snapshot()
	var lines []string
	for row := 0; row < 32; row += RegisterGroupSize {
		var cols []string
		for col := row; col < row+RegisterGroupSize && col < 32; col++ {
			cols = append(cols, fmt.Sprintf("x%-2d: 0x%08X", col, snap[col]))
		}
		lines = append(lines, strings.Join(cols, "  "))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("[yellow]pc:[white] 0x%08X", t.Debugger.Machine.PC.Uint32()))

	t.RegisterView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) UpdateMemoryView() {
	t.MemoryView.Clear()

	addr := t.MemoryAddress
	if addr == 0 {
		addr = t.Debugger.Machine.PC.Uint32()
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("[yellow]Address: 0x%08X[white]", addr))

	for row := 0; row < MemoryDisplayRows; row++ {
		rowAddr := addr + uint32(row*MemoryDisplayColumns)

		data, err := t.Debugger.Machine.Mem.Load(rowAddr, MemoryDisplayColumns)
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

	t.MemoryView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) UpdateDisassemblyView() {
	t.DisassemblyView.Clear()

	pc := t.Debugger.Machine.PC.Uint32()

	startAddr := pc - (DisassemblyWindow/2)*4
	if startAddr > pc {
		startAddr = 0
	}

	var lines []string
	for i := 0; i < DisassemblyWindow; i++ {
		addr := startAddr + uint32(i*4)

		raw, err := t.Debugger.Machine.Mem.Load(addr, 4)
		if err != nil {
			continue
		}
		inst, err := t.Debugger.Machine.Decoder.Decode(raw)

		marker := "  "
		color := "white"
		if addr == pc {
			marker = "->"
			color = "yellow"
		}
		if t.Debugger.Breakpoints.GetBreakpoint(addr) != nil {
			marker = "* "
		}

		mnemonic := "???"
		word := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
		if err == nil {
			mnemonic = inst.Kind.String()
		}

		lines = append(lines, fmt.Sprintf("[%s]%s 0x%08X: %-8s %08X[white]", color, marker, addr, mnemonic, word))
	}

	t.DisassemblyView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) UpdateBreakpointsView() {
	t.BreakpointsView.Clear()

	bps := t.Debugger.Breakpoints.GetAllBreakpoints()
	if len(bps) == 0 {
		t.BreakpointsView.SetText("[yellow]No breakpoints set[white]")
		return
	}

	var lines []string
	for _, bp := range bps {
		status := "enabled"
		color := "green"
		if !bp.Enabled {
			status = "disabled"
			color = "red"
		}
		lines = append(lines, fmt.Sprintf("  %d: [%s]%s[white] 0x%08X (hits: %d)", bp.ID, color, status, bp.Address, bp.HitCount))
	}

	t.BreakpointsView.SetText(strings.Join(lines, "\n"))
}

// Run starts the TUI event loop.
func (t *TUI) Run() error {
	t.RefreshAll()

	t.WriteOutput("[green]RV32I Debugger[white]\n")
	t.WriteOutput("Press F1 for help, F5 to continue, F9 to break, F11 to step\n")
	t.WriteOutput("Type 'help' for command list\n\n")

	return t.App.SetRoot(t.Pages, true).SetFocus(t.CommandInput).Run()
}

// Stop terminates the TUI event loop.
func (t *TUI) Stop() {
	t.App.Stop()
}
