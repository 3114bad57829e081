// Package app wires the core to a HAL.
package app

import (
	"errors"
	"net/http"

	"sentinel/core/device"
	"sentinel/core/portal"
	"sentinel/hal"
)

// Config carries entrypoint options.
type Config struct {
	// PortalAddr is where the setup portal listens. Empty disables it.
	PortalAddr string
}

// New builds the device and its collaborators and returns the step
// function the host runner drives once per frame. Each step drains the
// tick stream and services the device at the latest tick.
func New(h hal.HAL, cfg Config) func() error {
	dev := device.New(h)
	svc := portal.New(h.Logger(), h.Store(), h.Wireless(), dev)
	dev.SetProvisioner(svc)

	if cfg.PortalAddr != "" {
		go func() {
			err := svc.ListenAndServe(cfg.PortalAddr)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				h.Logger().WriteLineString("portal: " + err.Error())
			}
		}()
	}

	ticks := h.Time().Ticks()
	var now uint64
	return func() error {
		for {
			select {
			case seq := <-ticks:
				now = seq
			default:
				dev.Step(now)
				return nil
			}
		}
	}
}
