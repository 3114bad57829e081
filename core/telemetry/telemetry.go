// Package telemetry fetches metrics from the paired server and feeds the
// sample history.
package telemetry

import (
	"encoding/json"
	"fmt"
	"net/http"

	"sentinel/core/config"
	"sentinel/core/history"
	"sentinel/hal"
)

// Scalars is the non-historical telemetry: always the latest value,
// replaced wholesale on every successful poll.
type Scalars struct {
	DiskUsedPct   float32
	UptimeSeconds uint32
	Timestamp     string
}

// payload mirrors the server's /metrics response. Pointer fields make
// missing keys detectable: any absent leaf fails the whole parse.
type payload struct {
	Timestamp *string  `json:"timestamp"`
	CPU       *float64 `json:"cpu"`
	Memory    *struct {
		Percentage *float64 `json:"percentage"`
	} `json:"memory"`
	Disk *struct {
		Percentage *float64 `json:"percentage"`
	} `json:"disk"`
	Uptime *struct {
		UptimeSeconds *int64 `json:"uptime_seconds"`
	} `json:"uptime"`
}

// parseMetrics decodes a /metrics body. Missing or malformed fields are a
// single aggregate failure; nothing partial is ever returned.
func parseMetrics(body []byte) (history.Sample, Scalars, bool) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return history.Sample{}, Scalars{}, false
	}
	if p.Timestamp == nil || p.CPU == nil ||
		p.Memory == nil || p.Memory.Percentage == nil ||
		p.Disk == nil || p.Disk.Percentage == nil ||
		p.Uptime == nil || p.Uptime.UptimeSeconds == nil {
		return history.Sample{}, Scalars{}, false
	}
	if *p.Uptime.UptimeSeconds < 0 {
		return history.Sample{}, Scalars{}, false
	}

	sample := history.Sample{
		CPU:    clampPct(float32(*p.CPU)),
		Memory: clampPct(float32(*p.Memory.Percentage)),
	}
	sc := Scalars{
		DiskUsedPct:   clampPct(float32(*p.Disk.Percentage)),
		UptimeSeconds: uint32(*p.Uptime.UptimeSeconds),
		Timestamp:     *p.Timestamp,
	}
	return sample, sc, true
}

// clampPct bounds ingested percentages to [0,100] so a malformed server
// value can never leave the history out of range.
func clampPct(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Poller issues the periodic metrics request and applies the result.
// Retry is purely the caller's cadence: a failed cycle mutates nothing and
// schedules nothing.
type Poller struct {
	Client  hal.NetClient
	History *history.History
	Log     hal.Logger

	// Redraw is invoked after a successful poll so the active layout
	// refreshes. May be nil.
	Redraw func()

	settings config.Settings
	scalars  Scalars
}

// SetSettings replaces the paired-server configuration. The settings are
// immutable for the lifetime of a monitoring session.
func (p *Poller) SetSettings(s config.Settings) { p.settings = s }

// Scalars returns the latest scalar telemetry.
func (p *Poller) Scalars() Scalars { return p.scalars }

// Poll fetches one metrics snapshot. With incomplete server settings it is
// a no-op ("not yet paired"). Transport failures, non-200 responses and
// parse failures abandon the cycle silently: history and scalars stay
// untouched and no redraw happens.
func (p *Poller) Poll() {
	if !p.settings.ServerReady() {
		return
	}

	status, body, err := p.Client.Get(p.settings.MetricsURL(), p.settings.ServerAuth)
	if err != nil {
		p.logf("poll: %v", err)
		return
	}
	if status != http.StatusOK {
		p.logf("poll: HTTP %d", status)
		return
	}

	sample, sc, ok := parseMetrics(body)
	if !ok {
		p.logf("poll: malformed metrics body")
		return
	}

	p.History.Append(sample.CPU, sample.Memory)
	p.scalars = sc
	if p.Redraw != nil {
		p.Redraw()
	}
}

// Pair performs the one-shot connectivity check against the configured
// server. It never mutates history or scalars; the returned status string
// is short enough for the pairing splash.
func (p *Poller) Pair() (bool, string) {
	if !p.settings.ServerReady() {
		return false, "missing config"
	}

	status, body, err := p.Client.Get(p.settings.MetricsURL(), p.settings.ServerAuth)
	if err != nil {
		return false, "unreachable"
	}
	if status != http.StatusOK {
		return false, fmt.Sprintf("HTTP %d", status)
	}
	if _, _, ok := parseMetrics(body); !ok {
		return false, "bad response"
	}
	return true, "server ok"
}

func (p *Poller) logf(format string, args ...any) {
	if p.Log == nil {
		return
	}
	p.Log.WriteLineString(fmt.Sprintf(format, args...))
}
