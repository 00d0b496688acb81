package main

import (
	"context"
	"fmt"
	"github.com/callebjorkell/charlcd/internal/button"
	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/callebjorkell/charlcd/internal/message"
	"github.com/callebjorkell/charlcd/screen"
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"syscall"
)

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s\x1b[0m\n", levelColor, entry.Message)), nil
}

func main() {
	log.SetFormatter(&colorFormatter{})

	if err := RootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func openDisplay(opts *options) (*screen.Display, func() error, error) {
	conf, err := readConfig(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	return openConfigured(conf, opts.initialize)
}

func openConfigured(conf *Config, initialize bool) (*screen.Display, func() error, error) {
	s, closer, err := lcd.Open(conf.Config)
	if err != nil {
		return nil, nil, err
	}

	d, err := screen.New(s, conf.Geometry())
	if err != nil {
		closer()
		return nil, nil, err
	}

	if initialize {
		if err := lcd.Init(s, conf.Geometry()); err != nil {
			closer()
			return nil, nil, fmt.Errorf("initializing display: %w", err)
		}
	}
	return d, closer, nil
}

func serve(opts *options) error {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	conf, err := readConfig(opts.configPath)
	if err != nil {
		return err
	}

	d, closer, err := openConfigured(conf, opts.initialize)
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := message.NewServer(conf.Listen, d)

	events, err := button.InitButton(ctx, conf.Button)
	if err != nil {
		return err
	}
	go func() {
		for e := range events {
			log.Infof("Event: %v", e)
			if e.Pressed {
				if err := s.Clear(); err != nil {
					log.Warn("Unable to clear display: ", err)
				}
			}
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Listen()
	}()

	select {
	case <-signalChan:
	case err := <-errChan:
		return err
	}

	s.Close()
	if err := s.Show("  Sleeping..."); err != nil {
		log.Warn("Unable to show goodbye: ", err)
	}

	log.Info("Done...")
	return nil
}
