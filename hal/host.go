//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Panel dimensions of the appliance display (2.8" landscape).
const (
	panelWidth  = 320
	panelHeight = 240
)

// HostOptions configures the simulated appliance hardware.
type HostOptions struct {
	// AssocFails makes every wireless association attempt fail, to
	// exercise the Connecting -> Provisioning path.
	AssocFails bool
	// AssocDelay is how long a simulated association takes to come up.
	AssocDelay time.Duration
	// ConfigPath overrides where settings persist (default: the user
	// config dir).
	ConfigPath string
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	touch  *hostTouch
	t      *hostTime
	net    *hostNetClient
	wifi   *hostWireless
	store  *hostStore
}

// New returns a host HAL implementation simulating the appliance.
func New(opts HostOptions) HAL {
	logger := &hostLogger{w: os.Stdout}
	if opts.AssocDelay <= 0 {
		opts.AssocDelay = 2 * time.Second
	}
	path := opts.ConfigPath
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "sentinel", "config.json")
		} else {
			path = "sentinel-config.json"
		}
	}
	return &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(panelWidth, panelHeight),
		touch:  newHostTouch(),
		t:      newHostTime(),
		net:    newHostNetClient(),
		wifi:   newHostWireless(logger, opts.AssocFails, opts.AssocDelay),
		store:  newHostStore(path),
	}
}

func (h *hostHAL) Logger() Logger     { return h.logger }
func (h *hostHAL) Display() Display   { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input       { return hostInput{touch: h.touch} }
func (h *hostHAL) Net() NetClient     { return h.net }
func (h *hostHAL) Wireless() Wireless { return h.wifi }
func (h *hostHAL) Store() ConfigStore { return h.store }
func (h *hostHAL) Time() Time         { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	touch *hostTouch
}

func (in hostInput) Touch() Touch { return in.touch }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}
