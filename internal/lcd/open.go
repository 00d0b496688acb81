//go:build !pi

package lcd

import (
	"github.com/callebjorkell/charlcd/screen"
	log "github.com/sirupsen/logrus"
)

// Open returns a Mock, there is no hardware to talk to outside of the pi build.
func Open(c Config) (screen.Screen, func() error, error) {
	log.Infof("Starting a mock LCD in place of the %s backend", c.Backend)
	return NewMock(), noClose, nil
}
