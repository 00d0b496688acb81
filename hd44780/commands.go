// Package hd44780 holds the instruction encodings of the HD44780 LCD controller.
package hd44780

const (
	clearDisplay   byte = 0x01
	returnHome     byte = 0x02
	entryModeSet   byte = 0x04
	displayControl byte = 0x08
	functionSet    byte = 0x20
	setCGRAMAddr   byte = 0x40
	setDDRAMAddr   byte = 0x80
)

// RowOffsets are the DDRAM start addresses of rows 0-3 on the common 16x2, 20x4 modules.
var RowOffsets = [4]byte{0x00, 0x40, 0x14, 0x54}

// ClearScreen returns the command that clears the display and homes the cursor.
func ClearScreen() byte {
	return clearDisplay
}

func ReturnHome() byte {
	return returnHome
}

// EntryMode sets cursor direction (increment moves right) and display shift on write.
func EntryMode(increment, shift bool) byte {
	cmd := entryModeSet
	if increment {
		cmd |= 0x02
	}
	if shift {
		cmd |= 0x01
	}
	return cmd
}

func DisplayControl(on, cursor, blink bool) byte {
	cmd := displayControl
	if on {
		cmd |= 0x04
	}
	if cursor {
		cmd |= 0x02
	}
	if blink {
		cmd |= 0x01
	}
	return cmd
}

func FunctionSet(eightBit, twoLines, font5x10 bool) byte {
	cmd := functionSet
	if eightBit {
		cmd |= 0x10
	}
	if twoLines {
		cmd |= 0x08
	}
	if font5x10 {
		cmd |= 0x04
	}
	return cmd
}

// SetCGRAMAddress only has 6 address bits, higher bits are dropped.
func SetCGRAMAddress(addr byte) byte {
	return setCGRAMAddr | addr&0x3F
}

// SetDDRAMAddress only has 7 address bits, higher bits are dropped.
func SetDDRAMAddress(addr byte) byte {
	return setDDRAMAddr | addr&0x7F
}

// IsSlow reports whether the controller needs the long (1.52ms) execution time for cmd.
func IsSlow(cmd byte) bool {
	return cmd == clearDisplay || cmd&0xFE == returnHome
}
