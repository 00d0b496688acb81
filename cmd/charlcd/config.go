package main

import (
	"errors"
	"fmt"
	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/callebjorkell/charlcd/screen"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"io/fs"
	"os"
)

const (
	defaultWidth  = 16
	defaultHeight = 2
	defaultButton = "GPIO20"
	defaultListen = ":8090"
)

type Config struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Button     string `yaml:"button"`
	Listen     string `yaml:"listen"`
	lcd.Config `yaml:",inline"`
}

func (c Config) Geometry() screen.Geometry {
	return screen.Geometry{Width: c.Width, Height: c.Height}
}

func parseConfig(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	if c.Width == 0 {
		c.Width = defaultWidth
	}
	if c.Height == 0 {
		c.Height = defaultHeight
	}
	if c.Width < 0 || c.Height < 0 {
		return nil, fmt.Errorf("display size %dx%d is not valid", c.Width, c.Height)
	}
	if c.Button == "" {
		c.Button = defaultButton
	}
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// readConfig falls back to the defaults when the file does not exist.
func readConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warnf("No configuration found at %v, using defaults.", path)
		content = nil
	} else if err != nil {
		return nil, err
	}

	return parseConfig(content)
}
