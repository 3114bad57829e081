// Package config defines the persisted appliance settings record.
//
// The core does not define the on-disk encoding; hal.ConfigStore
// implementations own that. Only the field set is fixed here.
package config

// Settings is the operator-supplied configuration: wireless credentials
// plus the paired metrics server. The zero value means "never provisioned".
type Settings struct {
	SSID       string `json:"ssid" mapstructure:"ssid"`
	Passphrase string `json:"password" mapstructure:"password"`
	ServerHost string `json:"ip" mapstructure:"ip"`
	ServerPort string `json:"port" mapstructure:"port"`
	ServerAuth string `json:"auth" mapstructure:"auth"`
}

// HasNetwork reports whether a wireless credential is present.
func (s Settings) HasNetwork() bool { return s.SSID != "" }

// ServerReady reports whether the polling precondition is met: host, port
// and bearer token all present.
func (s Settings) ServerReady() bool {
	return s.ServerHost != "" && s.ServerPort != "" && s.ServerAuth != ""
}

// MetricsURL returns the paired server's metrics endpoint.
func (s Settings) MetricsURL() string {
	return "http://" + s.ServerHost + ":" + s.ServerPort + "/metrics"
}
