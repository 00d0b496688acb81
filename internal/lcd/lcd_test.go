package lcd

import (
	"errors"
	"github.com/callebjorkell/charlcd/hd44780"
	"github.com/callebjorkell/charlcd/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"testing"
	"time"
)

var errPin = errors.New("pin stuck")

type pinEvent struct {
	pin   string
	level gpio.Level
}

type pinRecorder struct {
	events  []pinEvent
	failPin string
}

type recPin struct {
	*gpiotest.Pin
	rec *pinRecorder
}

func (p *recPin) Out(l gpio.Level) error {
	if p.rec.failPin == p.N {
		return errPin
	}
	p.rec.events = append(p.rec.events, pinEvent{pin: p.N, level: l})
	return p.Pin.Out(l)
}

type sent struct {
	rs   gpio.Level
	bits byte
}

// decode replays the pin events and returns the bytes latched on falling clock edges.
func (r *pinRecorder) decode(t *testing.T) []sent {
	levels := map[string]gpio.Level{}
	var nibbles []sent
	for _, e := range r.events {
		if e.pin == "E" && e.level == gpio.Low && levels["E"] == gpio.High {
			var n byte
			for i, name := range []string{"D4", "D5", "D6", "D7"} {
				if levels[name] {
					n |= 1 << uint(i)
				}
			}
			nibbles = append(nibbles, sent{rs: levels["RS"], bits: n})
		}
		levels[e.pin] = e.level
	}

	require.Equal(t, 0, len(nibbles)%2, "odd number of nibbles")
	var out []sent
	for i := 0; i < len(nibbles); i += 2 {
		assert.Equal(t, nibbles[i].rs, nibbles[i+1].rs, "register selection changed within a byte")
		out = append(out, sent{rs: nibbles[i].rs, bits: nibbles[i].bits<<4 | nibbles[i+1].bits})
	}
	return out
}

func newTestParallel(rec *pinRecorder) (*Parallel, *[]time.Duration) {
	pin := func(name string) *recPin {
		return &recPin{Pin: &gpiotest.Pin{N: name}, rec: rec}
	}
	p := NewParallel(pin("RS"), pin("E"), [4]gpio.PinOut{pin("D4"), pin("D5"), pin("D6"), pin("D7")})
	var sleeps []time.Duration
	p.sleep = func(d time.Duration) {
		sleeps = append(sleeps, d)
	}
	return p, &sleeps
}

func TestParallel(t *testing.T) {
	rec := &pinRecorder{}
	p, _ := newTestParallel(rec)

	require.NoError(t, p.SendCommand(0x28))
	require.NoError(t, p.SendData('A'))
	require.NoError(t, p.SendData(0xFF))

	assert.Equal(t, []sent{
		{rs: command, bits: 0x28},
		{rs: character, bits: 'A'},
		{rs: character, bits: 0xFF},
	}, rec.decode(t))
}

func TestParallelSlowCommands(t *testing.T) {
	rec := &pinRecorder{}
	p, sleeps := newTestParallel(rec)

	require.NoError(t, p.SendCommand(hd44780.EntryMode(true, false)))
	assert.NotContains(t, *sleeps, slowCommandDelay)

	require.NoError(t, p.SendCommand(hd44780.ClearScreen()))
	assert.Contains(t, *sleeps, slowCommandDelay)
}

func TestParallelPinFailure(t *testing.T) {
	rec := &pinRecorder{failPin: "D6"}
	p, _ := newTestParallel(rec)

	err := p.SendData('x')
	assert.ErrorIs(t, err, errPin)
	assert.Contains(t, err.Error(), "D6")
	assert.Empty(t, rec.decode(t))
}

func TestParallelScreen(t *testing.T) {
	rec := &pinRecorder{}
	p, _ := newTestParallel(rec)
	d, err := screen.New(p, screen.Geometry{Width: 4, Height: 2})
	require.NoError(t, err)

	require.NoError(t, d.Cls())
	require.NoError(t, d.Write("héllo"))

	assert.Equal(t, []sent{
		{rs: command, bits: 0x01},
		{rs: character, bits: 'h'},
		{rs: character, bits: 0xE9},
		{rs: character, bits: 'l'},
		{rs: character, bits: 'l'},
	}, rec.decode(t))
}

func newTestBackpack() (*Backpack, *i2ctest.Record) {
	rec := &i2ctest.Record{}
	b := NewBackpack(&i2c.Dev{Bus: rec, Addr: DefaultAddress})
	b.sleep = func(time.Duration) {}
	return b, rec
}

func TestBackpack(t *testing.T) {
	b, rec := newTestBackpack()

	require.NoError(t, b.SendCommand(0x28))
	require.NoError(t, b.SendData('A'))

	assert.Equal(t, []i2ctest.IO{
		{Addr: DefaultAddress, W: []byte{0x2C, 0x28}},
		{Addr: DefaultAddress, W: []byte{0x8C, 0x88}},
		{Addr: DefaultAddress, W: []byte{0x4D, 0x49}},
		{Addr: DefaultAddress, W: []byte{0x1D, 0x19}},
	}, rec.Ops)
}

func TestBackpackBacklight(t *testing.T) {
	b, rec := newTestBackpack()

	require.NoError(t, b.SetBacklight(false))
	require.NoError(t, b.SendCommand(0x01))
	require.NoError(t, b.SetBacklight(true))

	assert.Equal(t, []i2ctest.IO{
		{Addr: DefaultAddress, W: []byte{0x00}},
		{Addr: DefaultAddress, W: []byte{0x04, 0x00}},
		{Addr: DefaultAddress, W: []byte{0x14, 0x10}},
		{Addr: DefaultAddress, W: []byte{0x08}},
	}, rec.Ops)
}

type shortWriter struct{}

func (shortWriter) Write(b []byte) (int, error) {
	return len(b) - 1, nil
}

type failingWriter struct {
	writes int
}

func (w *failingWriter) Write(b []byte) (int, error) {
	w.writes++
	return 0, errPin
}

func TestBackpackWriteErrors(t *testing.T) {
	err := NewBackpack(shortWriter{}).SendData('a')
	assert.ErrorContains(t, err, "short write")

	w := &failingWriter{}
	err = NewBackpack(w).SendCommand(0x28)
	assert.ErrorIs(t, err, errPin)
	assert.Equal(t, 1, w.writes)
}

func TestInit(t *testing.T) {
	tt := []struct {
		name     string
		geometry screen.Geometry
		commands []byte
	}{
		{"16x2", screen.Geometry{Width: 16, Height: 2}, []byte{0x33, 0x32, 0x28, 0x0C, 0x06, 0x01}},
		{"16x1", screen.Geometry{Width: 16, Height: 1}, []byte{0x33, 0x32, 0x20, 0x0C, 0x06, 0x01}},
		{"20x4", screen.Geometry{Width: 20, Height: 4}, []byte{0x33, 0x32, 0x28, 0x0C, 0x06, 0x01}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMock()
			require.NoError(t, Init(m, tc.geometry))
			assert.Equal(t, tc.commands, m.Commands())
			assert.Empty(t, m.Data())
		})
	}
}

func TestMock(t *testing.T) {
	m := NewMock()
	d, err := screen.New(m, screen.Geometry{Width: 8, Height: 2})
	require.NoError(t, err)

	require.NoError(t, d.Write("stale"))
	require.NoError(t, d.Cls())
	require.NoError(t, d.Write("grüß dich"))

	assert.Equal(t, "grüß dic", m.String())
	assert.Equal(t, []byte{0x01}, m.Commands())
	assert.Len(t, m.Data(), 13)

	m.Reset()
	assert.Empty(t, m.Commands())
	assert.Empty(t, m.Data())
	assert.Equal(t, "", m.String())
}

func TestMockFailure(t *testing.T) {
	m := &Mock{FailAfter: 2}

	err := screen.Write(m, 16, "abcd")
	assert.ErrorIs(t, err, ErrMockFailure)
	assert.Equal(t, []byte("ab"), m.Data())
}

func TestConfigValidate(t *testing.T) {
	c := Config{}
	require.NoError(t, c.Validate())
	assert.Equal(t, BackendParallel, c.Backend)
	assert.Equal(t, DefaultConfig().Parallel, c.Parallel)

	c = Config{Backend: BackendBackpack}
	require.NoError(t, c.Validate())
	assert.Equal(t, DriverPeriph, c.Backpack.Driver)
	assert.Equal(t, uint16(0x27), c.Backpack.Address)
	assert.Equal(t, "1", c.Backpack.Bus)

	c = Config{Backend: BackendBackpack, Backpack: BackpackConfig{Address: 0x3F, Driver: DriverI2CDev}}
	assert.NoError(t, c.Validate())

	tt := []struct {
		name   string
		config Config
	}{
		{"unknown backend", Config{Backend: "spi"}},
		{"bad address", Config{Backend: BackendBackpack, Backpack: BackpackConfig{Address: 0x50}}},
		{"bad driver", Config{Backend: BackendBackpack, Backpack: BackpackConfig{Driver: "smbus"}}},
		{"too few pins", Config{Backend: BackendParallel, Parallel: ParallelConfig{Data: []string{"GPIO1"}}}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.config.Validate())
		})
	}
}
