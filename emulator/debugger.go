package emulator

import "fmt"

// Execution and memory breakpoints. A hit sets Paused; the front end
// decides what to do with that
type Debugger struct {
	Breakpoints      []uint16 // All breakpoint addresses
	ReadWatchpoints  []uint16 // All read watchpoints
	WriteWatchpoints []uint16 // All write watchpoints
	Paused           bool     // Set when a breakpoint or watchpoint triggers
}

func NewDebugger() *Debugger {
	return &Debugger{}
}

// Adds a breakpoint when the instruction at `addr` is about to be executed
func (debugger *Debugger) AddBreakpoint(addr uint16) {
	// check if that breakpoint already exists
	for _, breakpoint := range debugger.Breakpoints {
		if breakpoint == addr {
			return
		}
	}
	debugger.Breakpoints = append(debugger.Breakpoints, addr)
}

// Deletes a breakpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteBreakpoint(addr uint16) {
	for idx, breakpoint := range debugger.Breakpoints {
		if breakpoint == addr {
			debugger.Breakpoints = append(debugger.Breakpoints[:idx], debugger.Breakpoints[idx+1:]...)
			return
		}
	}
}

// Adds a memory read watchpoint for `addr`
func (debugger *Debugger) AddReadWatchpoint(addr uint16) {
	for _, watchpoint := range debugger.ReadWatchpoints {
		if watchpoint == addr {
			return
		}
	}
	debugger.ReadWatchpoints = append(debugger.ReadWatchpoints, addr)
}

// Adds a memory write watchpoint for `addr`
func (debugger *Debugger) AddWriteWatchpoint(addr uint16) {
	for _, watchpoint := range debugger.WriteWatchpoints {
		if watchpoint == addr {
			return
		}
	}
	debugger.WriteWatchpoints = append(debugger.WriteWatchpoints, addr)
}

// Called before the instruction at `pc` executes
func (debugger *Debugger) ChangedPC(pc uint16) {
	for _, breakpoint := range debugger.Breakpoints {
		if breakpoint == pc {
			fmt.Printf("debugger: reached breakpoint 0x%04x\n", pc)
			debugger.Paused = true
			return
		}
	}
}

// Called when the CPU is about to read a value from memory
func (debugger *Debugger) MemoryRead(addr uint16) {
	for _, watchpoint := range debugger.ReadWatchpoints {
		if watchpoint == addr {
			fmt.Printf("debugger: triggered read watchpoint 0x%04x\n", addr)
			debugger.Paused = true
			return
		}
	}
}

// Called when the CPU is about to write a value to memory
func (debugger *Debugger) MemoryWrite(addr uint16) {
	for _, watchpoint := range debugger.WriteWatchpoints {
		if watchpoint == addr {
			fmt.Printf("debugger: triggered write watchpoint 0x%04x\n", addr)
			debugger.Paused = true
			return
		}
	}
}
