//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// hostWireless simulates the station/access-point radio: an association
// attempt resolves after a fixed delay, to success or (with fails set) to
// failure. Scan returns canned networks for the portal page.
type hostWireless struct {
	log   Logger
	fails bool
	delay time.Duration

	mu     sync.Mutex
	status LinkStatus
	due    time.Time
	ssid   string
}

func newHostWireless(log Logger, fails bool, delay time.Duration) *hostWireless {
	return &hostWireless{log: log, fails: fails, delay: delay}
}

func (w *hostWireless) Begin(ssid, passphrase string) {
	_ = passphrase
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ssid = ssid
	w.status = LinkConnecting
	w.due = time.Now().Add(w.delay)
	w.log.WriteLineString("wireless: associating with \"" + ssid + "\"")
}

func (w *hostWireless) Status() LinkStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status == LinkConnecting && time.Now().After(w.due) {
		if w.fails {
			w.status = LinkFailed
			w.log.WriteLineString("wireless: association failed (simulated)")
		} else {
			w.status = LinkUp
			w.log.WriteLineString("wireless: link up")
		}
	}
	return w.status
}

func (w *hostWireless) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = LinkIdle
}

func (w *hostWireless) AccessPoint(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = LinkIdle
	w.log.WriteLineString("wireless: access point \"" + name + "\" up")
	return nil
}

func (w *hostWireless) Scan() []NetworkInfo {
	return []NetworkInfo{
		{SSID: "HomeLab", RSSI: -42, Secure: true},
		{SSID: "Workshop", RSSI: -61, Secure: true},
		{SSID: "Cafe Guest", RSSI: -77, Secure: false},
	}
}

func (w *hostWireless) Address() string { return "127.0.0.1" }
