// Package hal is the only contact point between the core and the outside
// world: display, touch input, wireless radio, network client, settings
// storage, and the timebase. Host implementations live behind the
// !tinygo build tag; device ports supply their own.
package hal

import (
	"errors"

	"sentinel/core/config"
)

var ErrNotImplemented = errors.New("not implemented")

// Logger writes newline-delimited diagnostic lines. The core keeps no
// persistent error log; anything worth a trace goes here.
type Logger interface {
	WriteLineString(s string)
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a pixel buffer plus a "present" hook. The core writes
// pixels and presents; it never reads them back.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// TouchEvent is one debounced press edge from the touch panel.
//
// Debouncing is the driver's job: exactly one event per physical press,
// however long the panel stays touched.
type TouchEvent struct {
	X int
	Y int
}

// Touch provides press events (best-effort on each platform).
type Touch interface {
	Events() <-chan TouchEvent
}

// Input provides access to input devices (if available).
type Input interface {
	Touch() Touch
}

// NetClient performs bearer-authenticated GET requests.
//
// Implementations must enforce a bounded request timeout; the core never
// sets one itself.
type NetClient interface {
	Get(url, bearer string) (status int, body []byte, err error)
}

// LinkStatus describes the wireless association state.
type LinkStatus uint8

const (
	LinkIdle LinkStatus = iota
	LinkConnecting
	LinkUp
	LinkFailed
)

// NetworkInfo describes one scanned wireless network.
type NetworkInfo struct {
	SSID   string
	RSSI   int
	Secure bool
}

// Wireless drives the station/access-point radio. Begin starts an
// association attempt asynchronously; the core samples Status while it
// waits.
type Wireless interface {
	Begin(ssid, passphrase string)
	Status() LinkStatus
	Disconnect()
	AccessPoint(name string) error
	Scan() []NetworkInfo
	Address() string
}

// ConfigStore persists the appliance settings record. Load reports
// ok=false with no error when nothing has been saved yet; that is the
// normal first-boot condition.
type ConfigStore interface {
	Load() (s config.Settings, ok bool, err error)
	Save(s config.Settings) error
	Clear() error
}

// Time provides a base tick stream, one tick per millisecond on every
// platform. Higher-level timers (poll cadence, phase durations) live in
// the core.
type Time interface {
	Ticks() <-chan uint64
}

// HAL aggregates the collaborator interfaces.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Net() NetClient
	Wireless() Wireless
	Store() ConfigStore
	Time() Time
}
