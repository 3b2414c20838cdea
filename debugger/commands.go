package debugger

import (
	"fmt"
	"strconv"
	"strings"
)

// cmdContinue resumes execution until a breakpoint, ECALL/EBREAK, or error.
func (d *Debugger) cmdContinue(_ []string) error {
	d.Running = true
	reason, err := d.Continue()
	d.reportStop(reason, err)
	return nil
}

// cmdStep retires a single instruction.
func (d *Debugger) cmdStep(_ []string) error {
	reason, err := d.Step()
	d.reportStop(reason, err)
	return nil
}

func (d *Debugger) reportStop(reason StopReason, err error) {
	switch reason {
	case StopBreakpoint:
		d.Println(err)
	case StopStep:
		d.Printf("0x%08X\n", d.Machine.PC.Uint32())
	case StopEnvironmentCall:
		d.Printf("ECALL at 0x%08X\n", d.Machine.PC.Uint32())
	case StopBreakInstruction:
		d.Printf("EBREAK at 0x%08X\n", d.Machine.PC.Uint32())
	case StopReaderExhausted:
		d.Printf("end of bytecode at 0x%08X: %v\n", d.Machine.PC.Uint32(), err)
	case StopError:
		d.Printf("runtime error at 0x%08X: %v\n", d.Machine.PC.Uint32(), err)
	}
}

// cmdBreak sets a breakpoint at an address or register-resolved location.
func (d *Debugger) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: break <address>")
	}
	addr, err := d.resolveValue(args[0])
	if err != nil {
		return err
	}
	bp := d.Breakpoints.AddBreakpoint(addr, false)
	d.Printf("Breakpoint %d at 0x%08X\n", bp.ID, addr)
	return nil
}

// cmdTBreak sets a one-shot breakpoint that deletes itself after the first hit.
func (d *Debugger) cmdTBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tbreak <address>")
	}
	addr, err := d.resolveValue(args[0])
	if err != nil {
		return err
	}
	bp := d.Breakpoints.AddBreakpoint(addr, true)
	d.Printf("Temporary breakpoint %d at 0x%08X\n", bp.ID, addr)
	return nil
}

// cmdDelete removes a breakpoint by ID, or every breakpoint if no ID is given.
func (d *Debugger) cmdDelete(args []string) error {
	if len(args) == 0 {
		d.Breakpoints.Clear()
		d.Println("All breakpoints deleted")
		return nil
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}
	if err := d.Breakpoints.DeleteBreakpoint(id); err != nil {
		return err
	}
	d.Printf("Breakpoint %d deleted\n", id)
	return nil
}

func (d *Debugger) cmdEnable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: enable <breakpoint-id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}
	if err := d.Breakpoints.SetEnabled(id, true); err != nil {
		return err
	}
	d.Printf("Breakpoint %d enabled\n", id)
	return nil
}

func (d *Debugger) cmdDisable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: disable <breakpoint-id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}
	if err := d.Breakpoints.SetEnabled(id, false); err != nil {
		return err
	}
	d.Printf("Breakpoint %d disabled\n", id)
	return nil
}

// cmdPrint evaluates a register name or numeric literal and prints it.
func (d *Debugger) cmdPrint(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: print <register|value>")
	}
	v, err := d.resolveValue(args[0])
	if err != nil {
		return err
	}
	d.Printf("0x%08X (%d)\n", v, int32(v))
	return nil
}

// cmdExamine dumps memory starting at an address: x [/count] <address>.
func (d *Debugger) cmdExamine(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: x [/count] <address>")
	}
	count := 1
	addrArg := args[0]
	if strings.HasPrefix(args[0], "/") {
		if len(args) < 2 {
			return fmt.Errorf("missing address")
		}
		n, err := strconv.Atoi(args[0][1:])
		if err != nil {
			return fmt.Errorf("invalid count: %s", args[0])
		}
		count = n
		addrArg = args[1]
	}

	addr, err := d.resolveValue(addrArg)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		word, err := d.Machine.Mem.Load(addr, 4)
		if err != nil {
			return err
		}
		d.Printf("0x%08X: %02X %02X %02X %02X\n", addr, word[0], word[1], word[2], word[3])
		addr += 4
	}
	return nil
}

// cmdSet writes a register or a memory word: set <register|*address> = <value>.
func (d *Debugger) cmdSet(args []string) error {
	if len(args) < 3 || args[1] != "=" {
		return fmt.Errorf("usage: set <register|*address> = <value>")
	}
	value, err := d.resolveValue(args[2])
	if err != nil {
		return err
	}

	target := args[0]
	if strings.HasPrefix(target, "*") {
		addr, err := d.resolveValue(target[1:])
		if err != nil {
			return err
		}
		if err := d.Machine.Mem.Store(addr, []byte{
			byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24),
		}); err != nil {
			return err
		}
		d.Printf("Memory 0x%08X set to 0x%08X\n", addr, value)
		return nil
	}

	reg, err := d.resolveRegister(target)
	if err != nil {
		return err
	}
	if reg < 0 {
		d.Machine.PC.SetUint32(value)
		d.Printf("pc set to 0x%08X\n", value)
		return nil
	}
	d.Machine.Regs.Set(uint32(reg), value)
	d.Machine.Regs.ClearX0()
	d.Printf("x%d set to 0x%08X\n", reg, value)
	return nil
}

// cmdInfo displays registers or breakpoints.
func (d *Debugger) cmdInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info <registers|breakpoints>")
	}
	switch strings.ToLower(args[0]) {
	case "registers", "reg", "r":
		return d.showRegisters()
	case "breakpoints", "break", "b":
		return d.showBreakpoints()
	default:
		return fmt.Errorf("unknown info command: %s", args[0])
	}
}

func (d *Debugger) showRegisters() error {
	snap := d.Machine.Regs.Snapshot()
	for row := 0; row < 32; row += RegisterGroupSize {
		var cols []string
		for col := row; col < row+RegisterGroupSize && col < 32; col++ {
			cols = append(cols, fmt.Sprintf("x%-2d=0x%08X", col, snap[col]))
		}
		d.Println(strings.Join(cols, "  "))
	}
	d.Printf("pc =0x%08X\n", d.Machine.PC.Uint32())
	return nil
}

func (d *Debugger) showBreakpoints() error {
	bps := d.Breakpoints.GetAllBreakpoints()
	if len(bps) == 0 {
		d.Println("No breakpoints")
		return nil
	}
	d.Println("Breakpoints:")
	for _, bp := range bps {
		status := "enabled"
		if !bp.Enabled {
			status = "disabled"
		}
		temp := ""
		if bp.Temporary {
			temp = " (temporary)"
		}
		d.Printf("  %d: 0x%08X %s%s (hit %d times)\n", bp.ID, bp.Address, status, temp, bp.HitCount)
	}
	return nil
}

// cmdReset rewinds PC and every register to zero. Memory and the reader are
// left untouched — they are owned by the embedder, not the debugger.
func (d *Debugger) cmdReset(_ []string) error {
	d.Machine.PC.SetUint32(0)
	for i := uint32(0); i < 32; i++ {
		d.Machine.Regs.Set(i, 0)
	}
	d.Running = false
	d.Println("Registers and PC reset")
	return nil
}

// cmdHistory lists recorded commands, or clears the list with "history clear".
func (d *Debugger) cmdHistory(args []string) error {
	if len(args) > 0 && strings.ToLower(args[0]) == "clear" {
		d.History.Clear()
		d.Println("Command history cleared")
		return nil
	}
	cmds := d.History.GetAll()
	if len(cmds) == 0 {
		d.Println("No command history")
		return nil
	}
	d.Printf("Command history (%d):\n", d.History.Size())
	for i, c := range cmds {
		d.Printf("  %d: %s\n", i+1, c)
	}
	return nil
}

func (d *Debugger) cmdHelp(args []string) error {
	if len(args) > 0 {
		return d.showCommandHelp(args[0])
	}
	d.Println("RV32I Debugger Commands:")
	d.Println()
	d.Println("Execution Control:")
	d.Println("  continue (c)        - Run until breakpoint, ECALL/EBREAK, or error")
	d.Println("  step (s, si)        - Execute a single instruction")
	d.Println()
	d.Println("Breakpoints:")
	d.Println("  break (b) <addr>    - Set a breakpoint")
	d.Println("  tbreak (tb) <addr>  - Set a one-shot breakpoint")
	d.Println("  delete (d) [id]     - Delete breakpoint(s)")
	d.Println("  enable <id>         - Enable a breakpoint")
	d.Println("  disable <id>        - Disable a breakpoint")
	d.Println()
	d.Println("Inspection:")
	d.Println("  print (p) <reg|val> - Print a register or literal")
	d.Println("  x [/count] <addr>   - Examine memory")
	d.Println("  info (i) <what>     - registers | breakpoints")
	d.Println()
	d.Println("Modification:")
	d.Println("  set <reg|*addr> = <val> - Modify a register or memory word")
	d.Println()
	d.Println("Control:")
	d.Println("  reset               - Zero PC and every register")
	d.Println("  history [clear]     - List or clear recorded commands")
	d.Println("  help (h, ?)         - Show this help")
	return nil
}

func (d *Debugger) showCommandHelp(cmd string) error {
	helpText := map[string]string{
		"break":   "break <address>\n  Set a breakpoint at the given address (hex with 0x, decimal, or register).",
		"step":    "step\n  Execute a single instruction.",
		"print":   "print <register|value>\n  Print a register (x0-x31, ABI name, pc) or a numeric literal.",
		"x":       "x [/count] <address>\n  Examine `count` words of memory starting at address (default 1).",
		"info":    "info <registers|breakpoints>\n  Display information about debugger state.",
		"set":     "set <register|*address> = <value>\n  Modify a register or a memory word.",
		"history": "history [clear]\n  List recorded commands, or clear the list.",
	}
	if help, ok := helpText[cmd]; ok {
		d.Println(help)
		return nil
	}
	return fmt.Errorf("no help available for command: %s", cmd)
}
