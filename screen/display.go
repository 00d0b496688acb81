package screen

import (
	"errors"
	"fmt"
)

var ErrInvalidGeometry = errors.New("invalid display geometry")

// Geometry is the number of columns and rows of a display.
type Geometry struct {
	Width  int
	Height int
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

func (g Geometry) validate() error {
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, g)
	}
	return nil
}

// Display binds a Screen to the size of the physical display it drives. The Screen is
// borrowed, not owned; Display never closes or resets it. A Display is not safe for
// concurrent use, callers have to make sure only one operation runs at a time.
type Display struct {
	s    Screen
	geom Geometry
}

// New validates the geometry and returns a Display writing through s.
func New(s Screen, g Geometry) (*Display, error) {
	if s == nil {
		return nil, errors.New("screen must not be nil")
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &Display{s: s, geom: g}, nil
}

func (d *Display) Geometry() Geometry {
	return d.geom
}

func (d *Display) Width() int {
	return d.geom.Width
}

func (d *Display) Height() int {
	return d.geom.Height
}

func (d *Display) SendCommand(command byte) error {
	return d.s.SendCommand(command)
}

func (d *Display) SendData(data byte) error {
	return d.s.SendData(data)
}

func (d *Display) SendCommands(commands []byte) error {
	return SendCommands(d.s, commands)
}

func (d *Display) SendDataBytes(data []byte) error {
	return SendDataBytes(d.s, data)
}

func (d *Display) Cls() error {
	return Cls(d.s)
}

// Write prints text on the current line, truncated to the display width.
func (d *Display) Write(text string) error {
	return Write(d.s, d.geom.Width, text)
}
