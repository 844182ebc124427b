package emulator

var (
	// Cartridge ROM, banks 0 and 1 (no MBC support)
	ROM_RANGE = NewRange(0x0000, 0x8000)
	// Video RAM
	VRAM_RANGE = NewRange(0x8000, 0x2000)
	// External (cartridge) RAM, unmapped without an MBC
	ERAM_RANGE = NewRange(0xa000, 0x2000)
	// Work RAM
	WRAM_RANGE = NewRange(0xc000, 0x2000)
	// Echo of work RAM
	ECHO_RANGE = NewRange(0xe000, 0x1e00)
	// Object attribute memory
	OAM_RANGE = NewRange(0xfe00, 0xa0)
	// I/O registers
	IO_RANGE = NewRange(0xff00, 0x80)
	// High RAM
	HRAM_RANGE = NewRange(0xff80, 0x7f)
)

type Range struct {
	Start  uint16 // Start address
	Length uint16 // Length of the mapping
}

func NewRange(start uint16, length uint16) Range {
	return Range{Start: start, Length: length}
}

// Returns whether `addr` is located inside this range
func (r *Range) Contains(addr uint16) bool {
	return addr >= r.Start && addr-r.Start < r.Length
}

// Returns the offset between `addr` and the `Start` of the range.
// Does not check if the range contains the address, so if `addr`
// is smaller than `Start`, there will be an overflow
func (r *Range) Offset(addr uint16) uint16 {
	return addr - r.Start
}
