//go:build !pi

package button

import (
	"context"
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"syscall"
)

// InitButton simulates a button, every SIGHUP is a press.
func InitButton(ctx context.Context, pin string) (<-chan Event, error) {
	log.Infof("Simulating button %s, send SIGHUP to press it", pin)

	c := make(chan Event, 5)
	go simulateButton(ctx, c)
	return c, nil
}

func simulateButton(ctx context.Context, c chan<- Event) {
	hupChan := make(chan os.Signal, 1)
	signal.Notify(hupChan, syscall.SIGHUP)
	defer signal.Stop(hupChan)
	defer close(c)

	for {
		select {
		case <-hupChan:
			c <- Event{Pressed: true}
		case <-ctx.Done():
			return
		}
	}
}
