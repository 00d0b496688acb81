//go:build pi

package lcd

import (
	"fmt"
	"github.com/callebjorkell/charlcd/screen"
	i2cdev "github.com/d2r2/go-i2c"
	d2r2log "github.com/d2r2/go-logger"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"strconv"
)

// Open initializes periph and the configured transport. The returned function releases
// the transport, it does not touch what is shown on the display.
func Open(c Config) (screen.Screen, func() error, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("unable to initialize periph: %w", err)
	}

	switch c.Backend {
	case BackendParallel:
		return openParallel(c.Parallel)
	case BackendBackpack:
		return openBackpack(c.Backpack)
	case BackendMock:
		log.Info("Starting a mock LCD")
		return NewMock(), noClose, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", c.Backend)
}

func openParallel(c ParallelConfig) (screen.Screen, func() error, error) {
	log.Infof("Opening parallel LCD on RS=%s E=%s D4-D7=%v", c.RS, c.E, c.Data)
	if len(c.Data) != 4 {
		return nil, nil, fmt.Errorf("need 4 data pins, got %d", len(c.Data))
	}

	rs, err := pinByName(c.RS)
	if err != nil {
		return nil, nil, err
	}
	e, err := pinByName(c.E)
	if err != nil {
		return nil, nil, err
	}
	var data [4]gpio.PinOut
	for i, name := range c.Data {
		if data[i], err = pinByName(name); err != nil {
			return nil, nil, err
		}
	}

	return NewParallel(rs, e, data), noClose, nil
}

func pinByName(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no GPIO pin named %q", name)
	}
	return p, nil
}

func openBackpack(c BackpackConfig) (screen.Screen, func() error, error) {
	log.Infof("Opening I2C backpack LCD at 0x%02x on bus %s (%s)", c.Address, c.Bus, c.Driver)

	if c.Driver == DriverI2CDev {
		busNum, err := strconv.Atoi(c.Bus)
		if err != nil {
			return nil, nil, fmt.Errorf("i2cdev needs a numeric bus: %w", err)
		}
		_ = d2r2log.ChangePackageLogLevel("i2c", d2r2log.WarnLevel)
		dev, err := i2cdev.NewI2C(uint8(c.Address), busNum)
		if err != nil {
			return nil, nil, err
		}
		return NewBackpack(i2cDevWriter{dev}), dev.Close, nil
	}

	bus, err := i2creg.Open(c.Bus)
	if err != nil {
		return nil, nil, err
	}
	return NewBackpack(&i2c.Dev{Bus: bus, Addr: c.Address}), bus.Close, nil
}

// i2cDevWriter adapts go-i2c to the Writer used by the backpack.
type i2cDevWriter struct {
	dev *i2cdev.I2C
}

func (w i2cDevWriter) Write(b []byte) (int, error) {
	return w.dev.WriteBytes(b)
}
