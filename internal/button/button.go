//go:build pi

package button

import (
	"context"
	"fmt"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// InitButton initializes the button pin and fetches a button event channel
func InitButton(ctx context.Context, pin string) (<-chan Event, error) {
	log.Infof("Initializing button handler on %s", pin)
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize periph: %w", err)
	}

	button := gpioreg.ByName(pin)
	if button == nil {
		return nil, fmt.Errorf("no GPIO pin named %q", pin)
	}
	return watch(ctx, button, debounceDelay)
}
