// Package portal is the guided-setup service: a small HTTP server that
// collects wireless and server settings from the operator and hands them
// to the core. It is the "local configuration service" the device enables
// while Provisioning.
package portal

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"sync"

	"sentinel/core/config"
	"sentinel/hal"
)

// Notifier is the core's notification surface. Both calls are queued on
// the device side, so handlers may run on any goroutine.
type Notifier interface {
	NotifyConfigChanged(config.Settings)
	NotifyReset()
}

// Service serves the setup page. On host the listener runs for the whole
// process; Enable/Disable gate the handlers, standing in for the device's
// access point appearing and disappearing.
type Service struct {
	log   hal.Logger
	store hal.ConfigStore
	wifi  hal.Wireless
	core  Notifier

	mu      sync.Mutex
	enabled bool
}

// New builds the service. It starts disabled; the device enables it on
// entering Provisioning.
func New(log hal.Logger, store hal.ConfigStore, wifi hal.Wireless, core Notifier) *Service {
	return &Service{log: log, store: store, wifi: wifi, core: core}
}

// Enable opens the setup endpoints.
func (s *Service) Enable() {
	s.mu.Lock()
	s.enabled = true
	s.mu.Unlock()
}

// Disable closes the setup endpoints (503 until re-enabled).
func (s *Service) Disable() {
	s.mu.Lock()
	s.enabled = false
	s.mu.Unlock()
}

// Handler returns the portal's route set. Captive-portal probe paths and
// unknown paths all land on the setup page so a just-joined client gets
// steered there.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/scan", s.gate(s.handleScan))
	mux.HandleFunc("/save", s.gate(s.handleSave))
	mux.HandleFunc("/reset", s.gate(s.handleReset))
	mux.HandleFunc("/", s.gate(s.handleRoot))
	return mux
}

// ListenAndServe runs the portal on addr until the process exits.
func (s *Service) ListenAndServe(addr string) error {
	s.log.WriteLineString("portal: listening on " + addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Service) gate(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		enabled := s.enabled
		s.mu.Unlock()
		if !enabled {
			http.Error(w, "setup is not active", http.StatusServiceUnavailable)
			return
		}
		h(w, r)
	}
}

const setupPage = `<!doctype html><html><head>
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Sentinel Setup</title>
<style>
body{font-family:sans-serif;margin:20px;background:#f0f0f0}
.container{background:#fff;padding:20px;border-radius:8px;max-width:500px;margin:0 auto}
.network{background:#f8f8f8;padding:10px;margin:5px 0;border-radius:4px;cursor:pointer;border:1px solid #ddd}
input,button{width:100%;padding:8px;margin:5px 0;border:1px solid #ccc;border-radius:4px}
button{background:#007bff;color:#fff;cursor:pointer}
</style></head><body><div class="container">
<h1>Sentinel Configuration</h1>
<h2>Networks</h2><div id="networks">Scanning...</div>
<h3>WiFi</h3>
<input id="ssid" placeholder="Network name">
<input id="password" type="password" placeholder="WiFi password">
<h3>Server</h3>
<input id="ip" placeholder="Server address">
<input id="port" type="number" placeholder="Port">
<input id="auth" type="password" placeholder="Server password">
<button onclick="save()">Save Configuration</button>
<button onclick="location.href='/reset'">Reset Configuration</button>
</div><script>
function pick(ssid){document.getElementById('ssid').value=ssid}
function save(){
 const f=id=>document.getElementById(id).value;
 const data={ssid:f('ssid'),password:f('password'),ip:f('ip'),port:f('port'),auth:f('auth')};
 fetch('/save',{method:'POST',headers:{'Content-Type':'application/json'},body:JSON.stringify(data)})
  .then(r=>r.text()).then(()=>alert('Configuration saved'));
}
fetch('/scan').then(r=>r.text()).then(t=>document.getElementById('networks').innerHTML=t);
</script></body></html>`

func (s *Service) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, setupPage)
}

func (s *Service) handleScan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	nets := s.wifi.Scan()
	if len(nets) == 0 {
		fmt.Fprint(w, "<p>No networks found</p>")
		return
	}

	seen := make(map[string]bool, len(nets))
	for _, n := range nets {
		if n.SSID == "" || seen[n.SSID] {
			continue
		}
		seen[n.SSID] = true
		security := "Open"
		if n.Secure {
			security = "Secured"
		}
		ssid := html.EscapeString(n.SSID)
		fmt.Fprintf(w, `<div class="network" onclick="pick('%s')"><strong>%s</strong><br>Signal: %d dBm | %s</div>`,
			ssid, ssid, n.RSSI, security)
	}
}

func (s *Service) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var settings config.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := s.store.Save(settings); err != nil {
		s.log.WriteLineString("portal: save settings: " + err.Error())
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}

	s.log.WriteLineString("portal: settings saved for \"" + settings.SSID + "\"")
	s.core.NotifyConfigChanged(settings)
	fmt.Fprint(w, "OK")
}

func (s *Service) handleReset(w http.ResponseWriter, r *http.Request) {
	s.core.NotifyReset()
	http.Redirect(w, r, "/", http.StatusFound)
}
