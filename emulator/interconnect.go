package emulator

// OAM DMA source page register
const ADDR_DMA uint16 = 0xff46

// Global interconnect. It routes CPU addresses to the cartridge, RAM and
// the memory mapped peripheral registers
type Interconnect struct {
	Cart   *Cartridge // Cartridge ROM
	Ram    *RAM       // WRAM/VRAM/HRAM/OAM
	Regs   *Registers // Interrupt masks and timer registers
	Timer  *Timer     // Timer unit (owns DIV)
	Serial *Serial    // Serial port
	Pad    *Gamepad   // Joypad
	Screen *Screen    // LCD registers and frame pacing
	Dbg    *Debugger  // Optional watchpoint hooks
}

// Creates a new interconnect instance
func NewInterconnect(cart *Cartridge, ram *RAM, regs *Registers,
	timer *Timer, serial *Serial, pad *Gamepad, screen *Screen) *Interconnect {
	return &Interconnect{
		Cart:   cart,
		Ram:    ram,
		Regs:   regs,
		Timer:  timer,
		Serial: serial,
		Pad:    pad,
		Screen: screen,
	}
}

// Fetches the byte at `addr`
func (inter *Interconnect) Load8(addr uint16) byte {
	if inter.Dbg != nil {
		inter.Dbg.MemoryRead(addr)
	}
	switch {
	case ROM_RANGE.Contains(addr):
		return inter.Cart.Load8(ROM_RANGE.Offset(addr))
	case VRAM_RANGE.Contains(addr):
		return inter.Ram.Vram[VRAM_RANGE.Offset(addr)]
	case ERAM_RANGE.Contains(addr):
		return 0xff // no cartridge RAM without an MBC
	case WRAM_RANGE.Contains(addr):
		return inter.Ram.Wram[WRAM_RANGE.Offset(addr)]
	case ECHO_RANGE.Contains(addr):
		return inter.Ram.Wram[ECHO_RANGE.Offset(addr)]
	case OAM_RANGE.Contains(addr):
		return inter.Ram.Oam[OAM_RANGE.Offset(addr)]
	case HRAM_RANGE.Contains(addr):
		return inter.Ram.Hram[HRAM_RANGE.Offset(addr)]
	case addr == ADDR_IE:
		return inter.Regs.Read(addr)
	case IO_RANGE.Contains(addr):
		return inter.loadIO(addr)
	}
	// 0xfea0-0xfeff, reads as open bus
	return 0xff
}

// Sets the byte at `addr`
func (inter *Interconnect) Store8(addr uint16, val byte) {
	if inter.Dbg != nil {
		inter.Dbg.MemoryWrite(addr)
	}
	switch {
	case ROM_RANGE.Contains(addr):
		// ROM-only cartridge, MBC register writes are dropped
	case VRAM_RANGE.Contains(addr):
		inter.Ram.Vram[VRAM_RANGE.Offset(addr)] = val
	case ERAM_RANGE.Contains(addr):
		// no cartridge RAM
	case WRAM_RANGE.Contains(addr):
		inter.Ram.Wram[WRAM_RANGE.Offset(addr)] = val
	case ECHO_RANGE.Contains(addr):
		inter.Ram.Wram[ECHO_RANGE.Offset(addr)] = val
	case OAM_RANGE.Contains(addr):
		inter.Ram.Oam[OAM_RANGE.Offset(addr)] = val
	case HRAM_RANGE.Contains(addr):
		inter.Ram.Hram[HRAM_RANGE.Offset(addr)] = val
	case addr == ADDR_IE:
		inter.Regs.Write(addr, val)
	case IO_RANGE.Contains(addr):
		inter.storeIO(addr, val)
	}
}

func (inter *Interconnect) loadIO(addr uint16) byte {
	switch {
	case addr == ADDR_P1:
		return inter.Pad.Read()
	case addr == ADDR_SB || addr == ADDR_SC:
		return inter.Serial.ReadRegister(addr)
	case addr >= ADDR_DIV && addr <= ADDR_TAC:
		return inter.Timer.ReadRegister(addr)
	case addr == ADDR_IF:
		return inter.Regs.Read(addr)
	case addr >= ADDR_LCDC && addr <= 0xff4b:
		return inter.Screen.ReadRegister(addr)
	}
	// unmodeled I/O register
	return 0xff
}

func (inter *Interconnect) storeIO(addr uint16, val byte) {
	switch {
	case addr == ADDR_P1:
		inter.Pad.Write(val)
	case addr == ADDR_SB || addr == ADDR_SC:
		inter.Serial.WriteRegister(addr, val)
	case addr >= ADDR_DIV && addr <= ADDR_TAC:
		inter.Timer.WriteRegister(addr, val)
	case addr == ADDR_IF:
		inter.Regs.Write(addr, val)
	case addr == ADDR_DMA:
		inter.oamDMA(val)
	case addr >= ADDR_LCDC && addr <= 0xff4b:
		inter.Screen.WriteRegister(addr, val)
	}
	// writes to unmodeled I/O registers are dropped
}

// OAM DMA: copies 160 bytes from `page` << 8 into OAM. Happens instantly
// instead of stealing bus cycles
func (inter *Interconnect) oamDMA(page byte) {
	src := uint16(page) << 8
	for i := uint16(0); i < OAM_ALLOC_SIZE; i++ {
		inter.Ram.Oam[i] = inter.Load8(src + i)
	}
}

// Returns a 16 bit little endian value at `addr`
func (inter *Interconnect) Load16(addr uint16) uint16 {
	lo := uint16(inter.Load8(addr))
	hi := uint16(inter.Load8(addr + 1))
	return hi<<8 | lo
}

// Stores a 16 bit little endian value at `addr`
func (inter *Interconnect) Store16(addr uint16, val uint16) {
	inter.Store8(addr, byte(val))
	inter.Store8(addr+1, byte(val>>8))
}
