package main

import (
	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

const fullConfig = `
width: 20
height: 4
backend: backpack
backpack:
  driver: i2cdev
  bus: "0"
  address: 0x3f
button: GPIO21
listen: "127.0.0.1:9000"
`

func TestConfig(t *testing.T) {
	c, err := parseConfig([]byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, 20, c.Width)
	assert.Equal(t, 4, c.Height)
	assert.Equal(t, "20x4", c.Geometry().String())
	assert.Equal(t, lcd.BackendBackpack, c.Backend)
	assert.Equal(t, lcd.DriverI2CDev, c.Backpack.Driver)
	assert.Equal(t, "0", c.Backpack.Bus)
	assert.Equal(t, uint16(0x3f), c.Backpack.Address)
	assert.Equal(t, "GPIO21", c.Button)
	assert.Equal(t, "127.0.0.1:9000", c.Listen)
}

func TestConfigDefaults(t *testing.T) {
	c, err := parseConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, defaultWidth, c.Width)
	assert.Equal(t, defaultHeight, c.Height)
	assert.Equal(t, defaultButton, c.Button)
	assert.Equal(t, defaultListen, c.Listen)
	assert.Equal(t, lcd.BackendParallel, c.Backend)
	assert.Equal(t, []string{"GPIO25", "GPIO22", "GPIO23", "GPIO24"}, c.Parallel.Data)
}

func TestConfigErrors(t *testing.T) {
	tt := []struct {
		name    string
		content string
	}{
		{"negative width", "width: -16"},
		{"unknown backend", "backend: spi"},
		{"bad address", "backend: backpack\nbackpack:\n  address: 0x10"},
		{"not yaml", "width: [16"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseConfig([]byte(tc.content))
			assert.Error(t, err)
		})
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()

	c, err := readConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultWidth, c.Width)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 8\nbackend: mock\n"), 0o600))
	c, err = readConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Width)
	assert.Equal(t, lcd.BackendMock, c.Backend)
}
