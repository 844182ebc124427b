package emulator

import (
	"fmt"
	"io"
	"strings"
)

// Cartridge type codes from header byte 0x0147
type CartridgeType byte

const (
	CART_ROM_ONLY         CartridgeType = 0x00
	CART_MBC1             CartridgeType = 0x01
	CART_MBC1_RAM         CartridgeType = 0x02
	CART_MBC1_RAM_BATTERY CartridgeType = 0x03
)

// Header fields parsed from the ROM image
type CartridgeHeader struct {
	Title   string        // Title at 0x0134, up to 16 bytes
	Type    CartridgeType // Mapper type at 0x0147
	RomSize int           // ROM size in bytes, from the 0x0148 code
	RamSize int           // Cartridge RAM size in bytes, from the 0x0149 code
}

// A loaded cartridge. Only plain 32KB ROMs are supported, MBC bank
// switching is not implemented
type Cartridge struct {
	Header CartridgeHeader
	Data   []byte // Raw ROM data
}

// Loads a cartridge from a reader and parses the header
func LoadCartridge(r io.Reader) (*Cartridge, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < 0x0150 {
		return nil, fmt.Errorf("ROM too small to contain a header (%d bytes)", len(data))
	}

	header := CartridgeHeader{
		Title: strings.TrimRight(string(data[0x0134:0x0144]), "\x00"),
		Type:  CartridgeType(data[0x0147]),
	}

	romCode := data[0x0148]
	if romCode > 0x08 {
		return nil, fmt.Errorf("unknown ROM size code 0x%02x", romCode)
	}
	header.RomSize = (32 * 1024) << romCode

	switch data[0x0149] {
	case 0x00:
		header.RamSize = 0
	case 0x02:
		header.RamSize = 8 * 1024
	case 0x03:
		header.RamSize = 32 * 1024
	case 0x04:
		header.RamSize = 128 * 1024
	case 0x05:
		header.RamSize = 64 * 1024
	default:
		return nil, fmt.Errorf("unknown RAM size code 0x%02x", data[0x0149])
	}

	if header.Type != CART_ROM_ONLY {
		return nil, fmt.Errorf("unsupported cartridge type 0x%02x (only ROM-only carts work)", byte(header.Type))
	}

	return &Cartridge{Header: header, Data: data}, nil
}

// Fetches the ROM byte at `offset`. Reads past the end of the image
// return 0xff like an open bus
func (cart *Cartridge) Load8(offset uint16) byte {
	if int(offset) >= len(cart.Data) {
		return 0xff
	}
	return cart.Data[offset]
}
