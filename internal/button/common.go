package button

import (
	"context"
	"fmt"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"time"
)

const (
	debounceDelay = 15 * time.Millisecond
	edgeTimeout   = time.Second
)

type Event struct {
	Pressed bool
}

func (b Event) String() string {
	action := "pressed"
	if !b.Pressed {
		action = "released"
	}
	return fmt.Sprintf("Button was %v", action)
}

// watch configures b as a pulled up input and reports debounced level changes until ctx
// is done, after which the channel is closed. The button is expected to pull the pin low.
func watch(ctx context.Context, b gpio.PinIO, debounce time.Duration) (<-chan Event, error) {
	if err := b.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("configuring %s: %w", b, err)
	}

	c := make(chan Event, 5)
	go handleButton(ctx, b, c, debounce)
	return c, nil
}

func handleButton(ctx context.Context, b gpio.PinIO, c chan<- Event, debounce time.Duration) {
	defer close(c)

	last := b.Read()
	for {
		select {
		case <-ctx.Done():
			log.Debug("Stopping button handler")
			return
		default:
		}

		// wait for the edge
		if !b.WaitForEdge(edgeTimeout) {
			continue
		}

		// debounce
		l := b.Read()
		if l == last {
			continue
		}

		time.Sleep(debounce)
		if l == b.Read() {
			// ... and handle
			last = l
			select {
			case c <- Event{Pressed: l == gpio.Low}:
			case <-ctx.Done():
				return
			}
		}
	}
}
