package lcd

import (
	"fmt"
	"periph.io/x/conn/v3/gpio"
	"time"
)

const (
	BackendParallel = "parallel"
	BackendBackpack = "backpack"
	BackendMock     = "mock"

	DriverPeriph = "periph"
	DriverI2CDev = "i2cdev"

	registerSelectionPin = "GPIO4"
	clockEdgePin         = "GPIO17"
	data4Pin             = "GPIO25"
	data5Pin             = "GPIO22"
	data6Pin             = "GPIO23"
	data7Pin             = "GPIO24"

	defaultBus     = "1"
	DefaultAddress = 0x27

	character   = gpio.High
	command     = gpio.Low
	signalPulse = 500000 * time.Nanosecond
	signalDelay = 500000 * time.Nanosecond
	// clear and return home take 1.52ms on the HD44780, the rest is in the tens of µs.
	slowCommandDelay = 2 * time.Millisecond
)

// Config selects and wires the transport for the display.
type Config struct {
	Backend  string         `yaml:"backend"`
	Parallel ParallelConfig `yaml:"parallel"`
	Backpack BackpackConfig `yaml:"backpack"`
}

type ParallelConfig struct {
	RS   string   `yaml:"rs"`
	E    string   `yaml:"e"`
	Data []string `yaml:"data"`
}

type BackpackConfig struct {
	Driver  string `yaml:"driver"`
	Bus     string `yaml:"bus"`
	Address uint16 `yaml:"address"`
}

// DefaultConfig is the wiring used on the original board: a 4-bit parallel connection.
func DefaultConfig() Config {
	return Config{
		Backend: BackendParallel,
		Parallel: ParallelConfig{
			RS:   registerSelectionPin,
			E:    clockEdgePin,
			Data: []string{data4Pin, data5Pin, data6Pin, data7Pin},
		},
		Backpack: BackpackConfig{
			Driver:  DriverPeriph,
			Bus:     defaultBus,
			Address: DefaultAddress,
		},
	}
}

// Validate fills in defaults for missing values and checks the rest.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.Backend == "" {
		c.Backend = d.Backend
	}

	switch c.Backend {
	case BackendMock:
	case BackendParallel:
		if c.Parallel.RS == "" {
			c.Parallel.RS = d.Parallel.RS
		}
		if c.Parallel.E == "" {
			c.Parallel.E = d.Parallel.E
		}
		if len(c.Parallel.Data) == 0 {
			c.Parallel.Data = d.Parallel.Data
		}
		if len(c.Parallel.Data) != 4 {
			return fmt.Errorf("parallel backend needs exactly 4 data pins (D4-D7), got %d", len(c.Parallel.Data))
		}
	case BackendBackpack:
		if c.Backpack.Driver == "" {
			c.Backpack.Driver = d.Backpack.Driver
		}
		if c.Backpack.Driver != DriverPeriph && c.Backpack.Driver != DriverI2CDev {
			return fmt.Errorf("unknown backpack driver %q", c.Backpack.Driver)
		}
		if c.Backpack.Bus == "" {
			c.Backpack.Bus = d.Backpack.Bus
		}
		if c.Backpack.Address == 0 {
			c.Backpack.Address = d.Backpack.Address
		}
		// PCF8574 and PCF8574A address ranges.
		a := c.Backpack.Address
		if !(a >= 0x20 && a <= 0x27) && !(a >= 0x38 && a <= 0x3F) {
			return fmt.Errorf("address 0x%02x is not a PCF8574 address", a)
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	return nil
}

func noClose() error {
	return nil
}
