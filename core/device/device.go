// Package device owns the appliance mode state machine and the
// cooperative run loop that drives polling, rendering and input.
package device

import (
	"sentinel/core/config"
	"sentinel/core/history"
	"sentinel/core/render"
	"sentinel/core/telemetry"
	"sentinel/hal"
)

// Mode is the single operating phase. Exactly one is active at a time;
// transitions happen only in Step, driven by timers and queued events,
// never by telemetry content.
type Mode uint8

const (
	ModeProvisioning Mode = iota
	ModeConnecting
	ModePairing
	ModeMonitoring
)

func (m Mode) String() string {
	switch m {
	case ModeProvisioning:
		return "provisioning"
	case ModeConnecting:
		return "connecting"
	case ModePairing:
		return "pairing"
	case ModeMonitoring:
		return "monitoring"
	default:
		return "unknown"
	}
}

// Layout selects the rendering variant. It is independent of Mode.
type Layout uint8

const (
	LayoutCharts Layout = iota
	LayoutClock
)

// Tick timings (the hal.Time base is 1ms per tick).
const (
	pollInterval  = 2000 // cadence between polls while Monitoring
	pairingSplash = 1500 // how long the pairing result stays on screen
	assocProbe    = 500  // spacing of association status checks
	assocAttempts = 60   // probes before giving up (~30s total)
)

// APName is the access point the appliance announces while provisioning.
const APName = "Sentinel"

// Provisioner is the local configuration service (the setup portal),
// active only while Provisioning.
type Provisioner interface {
	Enable()
	Disable()
}

type eventKind uint8

const (
	evConfigChanged eventKind = iota + 1
	evReset
)

type event struct {
	kind     eventKind
	settings config.Settings
}

// Device is the orchestrator. All fields are owned by the single goroutine
// calling Step; collaborators on other goroutines reach it only through
// the buffered event channel.
type Device struct {
	log   hal.Logger
	wifi  hal.Wireless
	store hal.ConfigStore
	touch <-chan hal.TouchEvent

	renderer *render.Renderer
	history  *history.History
	poller   *telemetry.Poller
	portal   Provisioner

	mode     Mode
	layout   Layout
	settings config.Settings

	events chan event

	started   bool
	now       uint64
	modeSince uint64
	lastProbe uint64
	probes    int
	lastPoll  uint64
}

// New wires a device from its HAL. The provisioning service is attached
// separately via SetProvisioner because it needs the device as its
// notification target.
func New(h hal.HAL) *Device {
	d := &Device{
		log:      h.Logger(),
		wifi:     h.Wireless(),
		store:    h.Store(),
		renderer: render.New(h.Display().Framebuffer()),
		history:  &history.History{},
		events:   make(chan event, 8),
	}
	if in := h.Input(); in != nil {
		if t := in.Touch(); t != nil {
			d.touch = t.Events()
		}
	}
	d.poller = &telemetry.Poller{
		Client:  h.Net(),
		History: d.history,
		Log:     d.log,
		Redraw:  d.redraw,
	}
	return d
}

// SetProvisioner attaches the local configuration service.
func (d *Device) SetProvisioner(p Provisioner) { d.portal = p }

// Mode returns the current operating phase.
func (d *Device) Mode() Mode { return d.mode }

// LayoutSelection returns the active rendering variant.
func (d *Device) LayoutSelection() Layout { return d.layout }

// History exposes the sample ring for rendering and tests.
func (d *Device) History() *history.History { return d.history }

// RequestRedraw re-renders whatever the current phase shows.
func (d *Device) RequestRedraw() { d.redraw() }

// NotifyConfigChanged queues freshly saved settings. Safe to call from
// collaborator goroutines (the portal's HTTP handlers).
func (d *Device) NotifyConfigChanged(s config.Settings) {
	select {
	case d.events <- event{kind: evConfigChanged, settings: s}:
	default:
	}
}

// NotifyReset queues a configuration reset. Safe to call from collaborator
// goroutines.
func (d *Device) NotifyReset() {
	select {
	case d.events <- event{kind: evReset}:
	default:
	}
}

// Step services the device once. Per call, in order: timed phase work,
// queued external events, touch input, poll cadence. The host runner calls
// it at its tick rate; everything here returns quickly.
func (d *Device) Step(now uint64) {
	d.now = now
	if !d.started {
		d.started = true
		d.start()
	}

	switch d.mode {
	case ModeConnecting:
		d.stepConnecting()
	case ModePairing:
		if now-d.modeSince >= pairingSplash {
			d.enterMonitoring()
		}
	}

	d.drainEvents()
	d.drainTouch()

	if d.mode == ModeMonitoring && now-d.lastPoll >= pollInterval {
		d.lastPoll = now
		d.poller.Poll()
	}
}

// start decides the initial phase from persisted settings. A missing
// record is the normal first-boot condition, not an error.
func (d *Device) start() {
	s, ok, err := d.store.Load()
	if err != nil {
		d.log.WriteLineString("device: load settings: " + err.Error())
	}
	if ok && s.HasNetwork() {
		d.applySettings(s)
		d.enterConnecting()
		return
	}
	d.enterProvisioning()
}

func (d *Device) applySettings(s config.Settings) {
	d.settings = s
	d.poller.SetSettings(s)
}

func (d *Device) enterProvisioning() {
	d.mode = ModeProvisioning
	d.modeSince = d.now
	d.wifi.Disconnect()
	if err := d.wifi.AccessPoint(APName); err != nil {
		d.log.WriteLineString("device: access point: " + err.Error())
	}
	if d.portal != nil {
		d.portal.Enable()
	}
	d.renderer.Boot("setup: join AP \"" + APName + "\"")
	d.log.WriteLineString("device: mode=" + d.mode.String())
}

func (d *Device) enterConnecting() {
	d.mode = ModeConnecting
	d.modeSince = d.now
	if d.portal != nil {
		d.portal.Disable()
	}
	d.probes = 0
	d.lastProbe = d.now
	d.wifi.Begin(d.settings.SSID, d.settings.Passphrase)
	d.renderer.Boot("connecting to \"" + d.settings.SSID + "\"")
	d.log.WriteLineString("device: mode=" + d.mode.String())
}

// stepConnecting samples the link every probe interval. The Connecting
// phase is exclusive: no layouts render and no polling runs until the link
// resolves one way or the other.
func (d *Device) stepConnecting() {
	if d.now-d.lastProbe < assocProbe {
		return
	}
	d.lastProbe = d.now

	switch d.wifi.Status() {
	case hal.LinkUp:
		d.enterPairing()
	case hal.LinkFailed:
		d.associationFailed()
	default:
		d.probes++
		if d.probes >= assocAttempts {
			d.associationFailed()
		}
	}
}

// associationFailed returns to Provisioning with stored settings intact.
func (d *Device) associationFailed() {
	d.log.WriteLineString("device: association failed for \"" + d.settings.SSID + "\"")
	d.enterProvisioning()
}

// enterPairing shows the association splash, runs the one-shot pairing
// check, and shows its result. The result is advisory: Monitoring follows
// after the display interval regardless.
func (d *Device) enterPairing() {
	d.mode = ModePairing
	d.modeSince = d.now
	d.log.WriteLineString("device: mode=" + d.mode.String())

	d.renderer.AssociationSplash(d.settings.SSID, d.wifi.Address())
	ok, status := d.poller.Pair()
	if !ok {
		d.log.WriteLineString("device: pairing: " + status)
	}
	d.renderer.PairingSplash(ok, status)
}

// enterMonitoring starts the poll cadence with an immediate forced poll
// rather than waiting a full interval.
func (d *Device) enterMonitoring() {
	d.mode = ModeMonitoring
	d.modeSince = d.now
	d.layout = LayoutCharts
	d.log.WriteLineString("device: mode=" + d.mode.String())

	d.redraw()
	d.lastPoll = d.now
	d.poller.Poll()
}

func (d *Device) drainEvents() {
	for {
		select {
		case ev := <-d.events:
			d.handleEvent(ev)
		default:
			return
		}
	}
}

func (d *Device) handleEvent(ev event) {
	switch ev.kind {
	case evConfigChanged:
		d.applySettings(ev.settings)
		if d.mode == ModeProvisioning && d.settings.HasNetwork() {
			d.enterConnecting()
		}
	case evReset:
		d.log.WriteLineString("device: configuration reset")
		d.applySettings(config.Settings{})
		if err := d.store.Clear(); err != nil {
			d.log.WriteLineString("device: clear settings: " + err.Error())
		}
		d.enterProvisioning()
	}
}

// drainTouch consumes press edges. A toggle is accepted only while
// Monitoring and re-renders immediately, without waiting for a poll.
func (d *Device) drainTouch() {
	for {
		select {
		case <-d.touch:
			if d.mode != ModeMonitoring {
				continue
			}
			if d.layout == LayoutCharts {
				d.layout = LayoutClock
			} else {
				d.layout = LayoutCharts
			}
			d.redraw()
		default:
			return
		}
	}
}

// redraw repaints whatever the current phase shows. It consumes only
// stored state and never blocks on the network.
func (d *Device) redraw() {
	switch d.mode {
	case ModeMonitoring:
		if d.layout == LayoutClock {
			d.renderer.Clock(d.history, d.poller.Scalars())
		} else {
			d.renderer.Charts(d.history, d.poller.Scalars())
		}
	case ModeProvisioning:
		d.renderer.Boot("setup: join AP \"" + APName + "\"")
	case ModeConnecting:
		d.renderer.Boot("connecting to \"" + d.settings.SSID + "\"")
	case ModePairing:
		// The splash persists for its display interval.
	}
}
