package emulator

const (
	WRAM_ALLOC_SIZE = 8 * 1024 // Work RAM: 8KB
	VRAM_ALLOC_SIZE = 8 * 1024 // Video RAM: 8KB
	HRAM_ALLOC_SIZE = 127      // High RAM: 127 bytes
	OAM_ALLOC_SIZE  = 160      // Object attribute memory: 160 bytes
)

// On-board memory. The contents are not initialized on real hardware, so
// the buffers are filled with a garbage pattern
type RAM struct {
	Wram [WRAM_ALLOC_SIZE]byte // Work RAM buffer
	Vram [VRAM_ALLOC_SIZE]byte // Video RAM buffer
	Hram [HRAM_ALLOC_SIZE]byte // High RAM buffer
	Oam  [OAM_ALLOC_SIZE]byte  // OAM buffer
}

// Creates a new RAM instance
func NewRAM() *RAM {
	ram := &RAM{}
	for i := 0; i < len(ram.Wram); i++ {
		ram.Wram[i] = 0xcd
	}
	for i := 0; i < len(ram.Vram); i++ {
		ram.Vram[i] = 0xcd
	}
	return ram
}
