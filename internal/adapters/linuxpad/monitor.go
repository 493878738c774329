// Package linuxpad attaches to gamepad devices through the Linux evdev
// interface and feeds their button events to the mode-switch core.
package linuxpad

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"syscall"
	"time"

	evdev "github.com/holoplot/go-evdev"

	"github.com/MasonRhodesDev/greetd-game-mode/internal/core/gamemode"
)

const defaultScanInterval = 2 * time.Second

// Monitor owns the open gamepad devices. Devices are matched by the mode
// buttons they expose, opened read-only in non-blocking mode, and rescanned
// on a slow cadence so hot-plugged pads get picked up without a udev
// subscription. Poll never blocks.
type Monitor struct {
	codes    []uint16
	scanWait time.Duration
	logger   gamemode.Logger
	devices  map[string]*evdev.InputDevice
	lastScan time.Time
}

// GamepadInfo describes one attached candidate device.
type GamepadInfo struct {
	Path      string
	Name      string
	IsVirtual bool
	HasButton bool
}

// NewMonitor enumerates the input subsystem once and opens every matching
// gamepad. An enumeration failure here is a startup error; zero matching
// devices is not.
func NewMonitor(codes []uint16, scanEvery time.Duration, logger gamemode.Logger) (*Monitor, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("no mode button codes configured")
	}
	if scanEvery <= 0 {
		scanEvery = defaultScanInterval
	}
	m := &Monitor{
		codes:    codes,
		scanWait: scanEvery,
		logger:   logger,
		devices:  make(map[string]*evdev.InputDevice),
	}
	if err := m.scan(); err != nil {
		return nil, fmt.Errorf("enumerating input devices: %w", err)
	}
	m.lastScan = time.Now()
	return m, nil
}

// Poll drains pending button events from every open gamepad and reports
// devices that went away. A rescan runs when the scan interval has elapsed.
func (m *Monitor) Poll() ([]gamemode.ButtonEvent, []string, error) {
	if time.Since(m.lastScan) >= m.scanWait {
		m.lastScan = time.Now()
		if err := m.scan(); err != nil {
			// Devices already open keep working; only a bare monitor
			// propagates the enumeration failure.
			if len(m.devices) == 0 {
				return nil, nil, err
			}
			m.logger.Warn("device rescan failed", "err", err)
		}
	}

	var events []gamemode.ButtonEvent
	var gone []string
	for path, dev := range m.devices {
		devEvents, alive := drainDevice(dev, path)
		events = append(events, devEvents...)
		if !alive {
			_ = dev.Close()
			delete(m.devices, path)
			gone = append(gone, path)
		}
	}
	return events, gone, nil
}

// Devices returns the paths of the currently open gamepads, sorted.
func (m *Monitor) Devices() []string {
	paths := make([]string, 0, len(m.devices))
	for path := range m.devices {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Close releases every open device.
func (m *Monitor) Close() {
	for path, dev := range m.devices {
		_ = dev.Close()
		delete(m.devices, path)
	}
}

func (m *Monitor) scan() error {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if _, ok := m.devices[path.Path]; ok {
			continue
		}
		dev, name, ok := openGamepad(path.Path, m.codes)
		if !ok {
			continue
		}
		m.devices[path.Path] = dev
		m.logger.Info("gamepad connected", "device", path.Path, "name", name)
	}
	return nil
}

// drainDevice reads events until the device would block. alive is false when
// the device has been unplugged or otherwise failed.
func drainDevice(dev *evdev.InputDevice, path string) (events []gamemode.ButtonEvent, alive bool) {
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if isWouldBlockError(err) {
				return events, true
			}
			return events, false
		}
		if ev == nil || ev.Type != evdev.EV_KEY {
			continue
		}
		// Value 2 is kernel key-repeat; only real press/release edges count.
		if ev.Value != 0 && ev.Value != 1 {
			continue
		}
		events = append(events, gamemode.ButtonEvent{
			Device:  path,
			Code:    uint16(ev.Code),
			Pressed: ev.Value == 1,
		})
	}
}

// openGamepad opens a device and keeps it only when it is a physical device
// exposing at least one of the configured mode buttons.
func openGamepad(path string, codes []uint16) (*evdev.InputDevice, string, bool) {
	dev, err := evdev.OpenWithFlags(path, os.O_RDONLY)
	if err != nil {
		return nil, "", false
	}
	name, _ := dev.Name()
	if deviceIsVirtual(dev) || !supportsAnyCode(dev, codes) {
		_ = dev.Close()
		return nil, "", false
	}
	if err := dev.NonBlock(); err != nil {
		_ = dev.Close()
		return nil, "", false
	}
	return dev, name, true
}

// ListGamepads enumerates candidate devices for the --list-devices flag.
// Virtual devices and devices without a mode button are included, flagged.
func ListGamepads(codes []uint16) ([]GamepadInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].Path < paths[j].Path })

	var list []GamepadInfo
	for _, path := range paths {
		dev, err := evdev.OpenWithFlags(path.Path, os.O_RDONLY)
		if err != nil {
			continue
		}
		name := path.Name
		if actual, err := dev.Name(); err == nil && actual != "" {
			name = actual
		}
		list = append(list, GamepadInfo{
			Path:      path.Path,
			Name:      name,
			IsVirtual: deviceIsVirtual(dev),
			HasButton: supportsAnyCode(dev, codes),
		})
		_ = dev.Close()
	}
	return list, nil
}

func supportsAnyCode(dev *evdev.InputDevice, codes []uint16) bool {
	capable := dev.CapableEvents(evdev.EV_KEY)
	for _, code := range codes {
		needle := evdev.EvCode(code)
		for _, c := range capable {
			if c == needle {
				return true
			}
		}
	}
	return false
}

func deviceIsVirtual(dev *evdev.InputDevice) bool {
	id, err := dev.InputID()
	return err == nil && id.BusType == uint16(evdev.BUS_VIRTUAL)
}

func isWouldBlockError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
