package debugger

import (
	"sync"
)

// defaultHistorySize caps how many past commands a Debugger remembers —
// enough for a long stepping session without growing unbounded.
const defaultHistorySize = 1000

// CommandHistory is the line buffer behind the TUI's up/down-arrow command
// recall and the `history` command: every line ExecuteCommand accepts is
// recorded here, in order, with immediate repeats collapsed so holding
// Enter to repeat "step" doesn't flood the list.
type CommandHistory struct {
	mu       sync.RWMutex
	commands []string
	maxSize  int
	position int // recall cursor for Previous/Next; len(commands) means "not browsing"
}

// NewCommandHistory returns an empty history.
func NewCommandHistory() *CommandHistory {
	return &CommandHistory{
		commands: make([]string, 0, 64),
		maxSize:  defaultHistorySize,
		position: 0,
	}
}

// Add records cmd as the most recently executed command. Empty lines and
// immediate repeats of the last command are not recorded; recall always
// restarts from the end.
func (h *CommandHistory) Add(cmd string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cmd == "" {
		return
	}
	if len(h.commands) > 0 && h.commands[len(h.commands)-1] == cmd {
		h.position = len(h.commands)
		return
	}

	h.commands = append(h.commands, cmd)
	if len(h.commands) > h.maxSize {
		h.commands = h.commands[len(h.commands)-h.maxSize:]
	}
	h.position = len(h.commands)
}

// Previous moves the recall cursor one command back and returns it, or ""
// if already at the oldest entry. The TUI binds this to the up arrow.
func (h *CommandHistory) Previous() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.commands) == 0 || h.position == 0 {
		return ""
	}
	h.position--
	return h.commands[h.position]
}

// Next moves the recall cursor one command forward and returns it, or ""
// once it runs off the end back to an empty line. The TUI binds this to
// the down arrow.
func (h *CommandHistory) Next() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.commands) == 0 || h.position >= len(h.commands)-1 {
		h.position = len(h.commands)
		return ""
	}
	h.position++
	return h.commands[h.position]
}

// GetAll returns every recorded command, oldest first, for the `history`
// command to list.
func (h *CommandHistory) GetAll() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, len(h.commands))
	copy(out, h.commands)
	return out
}

// Size returns the number of commands currently recorded.
func (h *CommandHistory) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.commands)
}

// Clear discards all recorded commands and resets the recall cursor. Bound
// to `history clear`.
func (h *CommandHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commands = h.commands[:0]
	h.position = 0
}
