package config

import "testing"

func TestHasNetwork(t *testing.T) {
	if (Settings{}).HasNetwork() {
		t.Fatal("zero settings report a network")
	}
	if !(Settings{SSID: "HomeLab"}).HasNetwork() {
		t.Fatal("SSID alone should satisfy HasNetwork")
	}
}

func TestServerReady(t *testing.T) {
	full := Settings{ServerHost: "192.168.1.10", ServerPort: "9000", ServerAuth: "secret"}
	if !full.ServerReady() {
		t.Fatal("complete server settings not ready")
	}

	partials := []Settings{
		{ServerPort: "9000", ServerAuth: "secret"},
		{ServerHost: "192.168.1.10", ServerAuth: "secret"},
		{ServerHost: "192.168.1.10", ServerPort: "9000"},
	}
	for i, s := range partials {
		if s.ServerReady() {
			t.Fatalf("partial settings %d reported ready", i)
		}
	}
}

func TestMetricsURL(t *testing.T) {
	s := Settings{ServerHost: "192.168.1.10", ServerPort: "9000"}
	if got, want := s.MetricsURL(), "http://192.168.1.10:9000/metrics"; got != want {
		t.Fatalf("MetricsURL() = %q, want %q", got, want)
	}
}
