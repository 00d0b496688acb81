package lcd

import (
	"fmt"
	"github.com/callebjorkell/charlcd/hd44780"
	log "github.com/sirupsen/logrus"
	"time"
)

// PCF8574 port bits on the common I2C LCD backpacks.
const (
	backpackRS        byte = 1 << 0
	backpackRW        byte = 1 << 1
	backpackEnable    byte = 1 << 2
	backpackBacklight byte = 1 << 3
)

// Writer is a byte sink addressing the expander. *i2c.Dev from periph satisfies it.
type Writer interface {
	Write(b []byte) (int, error)
}

// Backpack drives the controller in 4-bit mode through a PCF8574 I/O expander. D4-D7
// sit on the upper half of the port, so every nibble is a single expander byte that
// is written once with enable high and once with enable low.
type Backpack struct {
	w         Writer
	backlight bool
	sleep     func(time.Duration)
}

func NewBackpack(w Writer) *Backpack {
	return &Backpack{
		w:         w,
		backlight: true,
		sleep:     time.Sleep,
	}
}

func (b *Backpack) SendCommand(c byte) error {
	if err := b.sendByte(c, 0); err != nil {
		return err
	}
	if hd44780.IsSlow(c) {
		b.sleep(slowCommandDelay)
	}
	return nil
}

func (b *Backpack) SendData(d byte) error {
	return b.sendByte(d, backpackRS)
}

// SetBacklight switches the backlight transistor, it is applied immediately.
func (b *Backpack) SetBacklight(on bool) error {
	b.backlight = on
	return b.write(b.backlightBit())
}

func (b *Backpack) backlightBit() byte {
	if b.backlight {
		return backpackBacklight
	}
	return 0
}

func (b *Backpack) sendByte(bits, rs byte) error {
	log.Tracef("backpack: rs=%v 0x%02x", rs != 0, bits)
	for _, nibble := range [2]byte{bits & 0xF0, bits << 4} {
		frame := nibble | rs | b.backlightBit()
		if err := b.write(frame|backpackEnable, frame); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backpack) write(frames ...byte) error {
	n, err := b.w.Write(frames)
	if err != nil {
		return fmt.Errorf("writing to expander: %w", err)
	}
	if n != len(frames) {
		return fmt.Errorf("short write to expander: %d of %d bytes", n, len(frames))
	}
	return nil
}
