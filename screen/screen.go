// Package screen implements the controller independent part of driving a character LCD.
//
// A backend only has to know how to get a single command byte and a single data byte
// to the controller. Everything else (batched sends, clearing and writing text) is
// built on top of those two primitives by this package.
package screen

import (
	"github.com/callebjorkell/charlcd/hd44780"
	"golang.org/x/text/encoding/charmap"
)

// Screen is implemented by backends driving a physical display.
type Screen interface {
	// SendCommand sends a byte to be interpreted as a controller instruction.
	SendCommand(command byte) error
	// SendData sends a byte to be displayed at the current cursor position.
	SendData(data byte) error
}

// CommandsSender can be implemented by a backend that is able to send several command
// bytes more efficiently than one at a time. Bytes must still be sent in order, and
// nothing after a failed byte may be sent.
type CommandsSender interface {
	SendCommands(commands []byte) error
}

// DataSender is the data byte counterpart of CommandsSender.
type DataSender interface {
	SendDataBytes(data []byte) error
}

const replacement = '?'

// SendCommands sends every command in order, stopping at the first error.
func SendCommands(s Screen, commands []byte) error {
	if cs, ok := s.(CommandsSender); ok {
		return cs.SendCommands(commands)
	}
	for _, c := range commands {
		if err := s.SendCommand(c); err != nil {
			return err
		}
	}
	return nil
}

// SendDataBytes sends every data byte in order, stopping at the first error.
func SendDataBytes(s Screen, data []byte) error {
	if ds, ok := s.(DataSender); ok {
		return ds.SendDataBytes(data)
	}
	for _, b := range data {
		if err := s.SendData(b); err != nil {
			return err
		}
	}
	return nil
}

// Cls clears the screen.
func Cls(s Screen) error {
	return s.SendCommand(hd44780.ClearScreen())
}

// Write prints at most width characters of text at the current cursor position.
// Anything past width is dropped rather than wrapped, and characters outside of
// Latin-1 are shown as '?'. Control characters are not interpreted.
func Write(s Screen, width int, text string) error {
	return SendDataBytes(s, Encode(width, text))
}

// Encode returns the Latin-1 bytes of the first width characters of text.
func Encode(width int, text string) []byte {
	if width <= 0 {
		return nil
	}

	buf := make([]byte, 0, width)
	for _, r := range text {
		if len(buf) == width {
			break
		}
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = replacement
		}
		buf = append(buf, b)
	}
	return buf
}
