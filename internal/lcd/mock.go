package lcd

import (
	"errors"
	"github.com/callebjorkell/charlcd/hd44780"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
	"sync"
)

var ErrMockFailure = errors.New("mock failure")

// Mock is a backend without hardware. It records everything that is sent to it.
type Mock struct {
	mu       sync.Mutex
	commands []byte
	data     []byte
	shown    []byte
	calls    int
	// FailAfter makes every primitive call after the first FailAfter calls fail. 0 never fails.
	FailAfter int
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendCommand(c byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.call(); err != nil {
		return err
	}
	log.Debugf("mock: command 0x%02x", c)
	m.commands = append(m.commands, c)
	if c == hd44780.ClearScreen() {
		m.shown = nil
	}
	return nil
}

func (m *Mock) SendData(d byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.call(); err != nil {
		return err
	}
	log.Debugf("mock: data 0x%02x", d)
	m.data = append(m.data, d)
	m.shown = append(m.shown, d)
	return nil
}

func (m *Mock) call() error {
	m.calls++
	if m.FailAfter > 0 && m.calls > m.FailAfter {
		return ErrMockFailure
	}
	return nil
}

func (m *Mock) Commands() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.commands...)
}

func (m *Mock) Data() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// String returns the text written since the last clear.
func (m *Mock) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := charmap.ISO8859_1.NewDecoder().Bytes(m.shown)
	if err != nil {
		return string(m.shown)
	}
	return string(s)
}

func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = nil
	m.data = nil
	m.shown = nil
	m.calls = 0
}
