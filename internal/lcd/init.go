package lcd

import (
	"github.com/callebjorkell/charlcd/hd44780"
	"github.com/callebjorkell/charlcd/screen"
	log "github.com/sirupsen/logrus"
)

// InitSequence returns the commands that bring a freshly powered controller into 4-bit
// mode with the display on, no cursor and left to right entry.
func InitSequence(g screen.Geometry) []byte {
	return []byte{
		0x33, // 8-bit function set twice, as nibbles
		0x32, // 8-bit, then switch to 4-bit
		hd44780.FunctionSet(false, g.Height > 1, false),
		hd44780.DisplayControl(true, false, false),
		hd44780.EntryMode(true, false),
		hd44780.ClearScreen(),
	}
}

// Init initializes the controller behind s.
func Init(s screen.Screen, g screen.Geometry) error {
	log.Infof("Initializing %v LCD", g)
	return screen.SendCommands(s, InitSequence(g))
}
