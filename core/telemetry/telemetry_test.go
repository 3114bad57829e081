package telemetry

import (
	"errors"
	"testing"

	"sentinel/core/config"
	"sentinel/core/history"
)

const goodBody = `{
	"timestamp": "2026-08-26T10:15:42.123",
	"cpu": 12.5,
	"memory": {"percentage": 61.25},
	"disk": {"percentage": 48.0},
	"uptime": {"uptime_seconds": 90000}
}`

type fakeClient struct {
	status int
	body   string
	err    error

	calls      int
	lastURL    string
	lastBearer string
}

func (c *fakeClient) Get(url, bearer string) (int, []byte, error) {
	c.calls++
	c.lastURL = url
	c.lastBearer = bearer
	if c.err != nil {
		return 0, nil, c.err
	}
	return c.status, []byte(c.body), nil
}

func readySettings() config.Settings {
	return config.Settings{
		SSID:       "HomeLab",
		ServerHost: "192.168.1.10",
		ServerPort: "9000",
		ServerAuth: "secret",
	}
}

func newPoller(c *fakeClient) (*Poller, *history.History, *int) {
	h := &history.History{}
	redraws := 0
	p := &Poller{
		Client:  c,
		History: h,
		Redraw:  func() { redraws++ },
	}
	return p, h, &redraws
}

func TestPollWithoutServerConfigIsNoOp(t *testing.T) {
	c := &fakeClient{status: 200, body: goodBody}
	p, h, redraws := newPoller(c)
	p.SetSettings(config.Settings{SSID: "HomeLab"}) // no server fields

	p.Poll()

	if c.calls != 0 {
		t.Fatalf("client calls = %d, want 0", c.calls)
	}
	if !h.Empty() {
		t.Fatalf("history mutated by precondition-failed poll")
	}
	if got := p.Scalars(); got != (Scalars{}) {
		t.Fatalf("Scalars() = %+v, want zero", got)
	}
	if *redraws != 0 {
		t.Fatalf("redraws = %d, want 0", *redraws)
	}
}

func TestPollAppliesMetrics(t *testing.T) {
	c := &fakeClient{status: 200, body: goodBody}
	p, h, redraws := newPoller(c)
	p.SetSettings(readySettings())

	p.Poll()

	if want := "http://192.168.1.10:9000/metrics"; c.lastURL != want {
		t.Fatalf("url = %q, want %q", c.lastURL, want)
	}
	if c.lastBearer != "secret" {
		t.Fatalf("bearer = %q, want %q", c.lastBearer, "secret")
	}
	if got := h.Len(); got != 1 {
		t.Fatalf("history Len() = %d, want 1", got)
	}
	if s := h.At(0); s.CPU != 12.5 || s.Memory != 61.25 {
		t.Fatalf("At(0) = %+v, want {12.5 61.25}", s)
	}
	sc := p.Scalars()
	if sc.DiskUsedPct != 48 || sc.UptimeSeconds != 90000 || sc.Timestamp != "2026-08-26T10:15:42.123" {
		t.Fatalf("Scalars() = %+v", sc)
	}
	if *redraws != 1 {
		t.Fatalf("redraws = %d, want 1", *redraws)
	}
}

func TestPollMissingFieldIsAtomic(t *testing.T) {
	bodies := map[string]string{
		"no memory":     `{"timestamp":"2026-08-26T10:15:42","cpu":1,"disk":{"percentage":2},"uptime":{"uptime_seconds":3}}`,
		"no percentage": `{"timestamp":"2026-08-26T10:15:42","cpu":1,"memory":{},"disk":{"percentage":2},"uptime":{"uptime_seconds":3}}`,
		"no timestamp":  `{"cpu":1,"memory":{"percentage":4},"disk":{"percentage":2},"uptime":{"uptime_seconds":3}}`,
		"not json":      `<html>backend error</html>`,
		"wrong type":    `{"timestamp":"2026-08-26T10:15:42","cpu":"many","memory":{"percentage":4},"disk":{"percentage":2},"uptime":{"uptime_seconds":3}}`,
	}

	for name, body := range bodies {
		c := &fakeClient{status: 200, body: body}
		p, h, redraws := newPoller(c)
		p.SetSettings(readySettings())

		p.Poll()

		if !h.Empty() {
			t.Errorf("%s: history mutated by malformed response", name)
		}
		if got := p.Scalars(); got != (Scalars{}) {
			t.Errorf("%s: Scalars() = %+v, want zero", name, got)
		}
		if *redraws != 0 {
			t.Errorf("%s: redraws = %d, want 0", name, *redraws)
		}
	}
}

func TestPollFailureLeavesStateUntouched(t *testing.T) {
	cases := map[string]*fakeClient{
		"transport error": {err: errors.New("connection refused")},
		"non-200":         {status: 503, body: "busy"},
		"unauthorized":    {status: 401, body: `{"error":"Authentication required"}`},
	}

	for name, c := range cases {
		p, h, redraws := newPoller(c)
		p.SetSettings(readySettings())

		p.Poll()

		if !h.Empty() {
			t.Errorf("%s: history mutated", name)
		}
		if *redraws != 0 {
			t.Errorf("%s: redraws = %d, want 0", name, *redraws)
		}
	}
}

func TestPollClampsIngestedPercentages(t *testing.T) {
	body := `{
		"timestamp": "2026-08-26T10:15:42",
		"cpu": -7.5,
		"memory": {"percentage": 250},
		"disk": {"percentage": 101},
		"uptime": {"uptime_seconds": 1}
	}`
	c := &fakeClient{status: 200, body: body}
	p, h, _ := newPoller(c)
	p.SetSettings(readySettings())

	p.Poll()

	if s := h.At(0); s.CPU != 0 || s.Memory != 100 {
		t.Fatalf("At(0) = %+v, want {0 100}", s)
	}
	if got := p.Scalars().DiskUsedPct; got != 100 {
		t.Fatalf("DiskUsedPct = %v, want 100", got)
	}
}

func TestPairStatuses(t *testing.T) {
	cases := []struct {
		name     string
		client   *fakeClient
		settings config.Settings
		wantOK   bool
		want     string
	}{
		{"missing config", &fakeClient{}, config.Settings{}, false, "missing config"},
		{"unreachable", &fakeClient{err: errors.New("no route")}, readySettings(), false, "unreachable"},
		{"denied", &fakeClient{status: 401, body: "{}"}, readySettings(), false, "HTTP 401"},
		{"bad body", &fakeClient{status: 200, body: "{}"}, readySettings(), false, "bad response"},
		{"ok", &fakeClient{status: 200, body: goodBody}, readySettings(), true, "server ok"},
	}

	for _, c := range cases {
		p, h, _ := newPoller(c.client)
		p.SetSettings(c.settings)

		ok, status := p.Pair()
		if ok != c.wantOK || status != c.want {
			t.Errorf("%s: Pair() = (%v, %q), want (%v, %q)", c.name, ok, status, c.wantOK, c.want)
		}
		if !h.Empty() {
			t.Errorf("%s: Pair() mutated history", c.name)
		}
		if got := p.Scalars(); got != (Scalars{}) {
			t.Errorf("%s: Pair() mutated scalars", c.name)
		}
	}
}
