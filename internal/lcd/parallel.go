package lcd

import (
	"fmt"
	"github.com/callebjorkell/charlcd/hd44780"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"time"
)

// Parallel drives the controller over the 4-bit parallel interface. R/W is expected to
// be tied to ground, so the busy flag is never read and fixed delays are used instead.
type Parallel struct {
	registerSelection gpio.PinOut
	clockEdge         gpio.PinOut
	dataPins          [4]gpio.PinOut
	sleep             func(time.Duration)
}

// NewParallel creates a parallel backend. dataPins are D4 to D7, in that order.
func NewParallel(registerSelection, clockEdge gpio.PinOut, dataPins [4]gpio.PinOut) *Parallel {
	return &Parallel{
		registerSelection: registerSelection,
		clockEdge:         clockEdge,
		dataPins:          dataPins,
		sleep:             time.Sleep,
	}
}

func (p *Parallel) SendCommand(c byte) error {
	return p.sendByte(c, command)
}

func (p *Parallel) SendData(d byte) error {
	return p.sendByte(d, character)
}

func (p *Parallel) sendByte(bits byte, mode gpio.Level) error {
	log.Tracef("parallel: %v 0x%02x", mode, bits)
	if err := p.registerSelection.Out(mode); err != nil {
		return fmt.Errorf("setting register selection: %w", err)
	}
	if err := p.pulseNibble(bits, 0x10); err != nil {
		return err
	}
	if err := p.pulseNibble(bits, 0x01); err != nil {
		return err
	}
	if mode == command && hd44780.IsSlow(bits) {
		p.sleep(slowCommandDelay)
	}
	return nil
}

func (p *Parallel) pulseNibble(bits, mask byte) error {
	for i, pin := range p.dataPins {
		level := gpio.Level(bits&(mask<<uint(i)) != 0)
		if err := pin.Out(level); err != nil {
			return fmt.Errorf("setting data pin D%d: %w", i+4, err)
		}
	}
	p.sleep(signalDelay)
	if err := p.clockEdge.Out(gpio.High); err != nil {
		return fmt.Errorf("raising clock edge: %w", err)
	}
	p.sleep(signalPulse)
	if err := p.clockEdge.Out(gpio.Low); err != nil {
		return fmt.Errorf("lowering clock edge: %w", err)
	}
	p.sleep(signalDelay)
	return nil
}
