// Package render draws the status-display layouts onto a framebuffer.
//
// Everything here is stateless given its inputs: layouts consume only the
// stored history and scalar telemetry, never the network.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"sentinel/core/history"
	"sentinel/core/telemetry"
	"sentinel/hal"

	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	colorBG    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorFG    = color.RGBA{A: 0xff}
	colorGrid  = color.RGBA{R: 0xbd, G: 0xbd, B: 0xbd, A: 0xff}
	colorCPU   = color.RGBA{B: 0xff, A: 0xff}
	colorRAM   = color.RGBA{G: 0xff, A: 0xff}
	colorUsed  = color.RGBA{R: 0xff, A: 0xff}
	colorFree  = color.RGBA{G: 0xff, A: 0xff}
	colorGood  = color.RGBA{G: 0xc0, A: 0xff}
	colorBad   = color.RGBA{R: 0xe0, A: 0xff}
	colorBoot  = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}
	colorBootF = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

var (
	fontLabel = &proggy.TinySZ8pt7b
	fontTitle = &freemono.Bold9pt7b
	fontBig   = &freemono.Bold18pt7b
	fontClock = &freemono.Bold24pt7b
)

// ClockPlaceholder stands in for the wall clock when no timestamp has been
// received yet (fixed width so the layout does not shift).
const ClockPlaceholder = "--:--:--"

// MapToPixel converts a percentage into a vertical pixel coordinate:
// 100% maps to top, 0% to top+height, linearly in between. The input is
// clamped to [0,100] first, so the result is exact at both endpoints and
// monotonically non-increasing in pct.
func MapToPixel(pct float32, top, height int) int {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return top + height - int(pct*float32(height)/100)
}

// FormatUptime renders whole seconds as "HH:MM:SS", prefixed with "<d>d "
// when the days component is non-zero.
func FormatUptime(total uint32) string {
	days := total / 86400
	rem := total % 86400
	h := rem / 3600
	m := rem % 3600 / 60
	s := rem % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ClockFromTimestamp extracts the HH:MM:SS portion of a timestamp of the
// form "YYYY-MM-DDTHH:MM:SS...". Absent or malformed timestamps yield
// ClockPlaceholder.
func ClockFromTimestamp(ts string) string {
	i := strings.IndexByte(ts, 'T')
	if i < 0 || len(ts) < i+9 {
		return ClockPlaceholder
	}
	return ts[i+1 : i+9]
}

// Renderer draws the two layouts and the phase screens. It owns no
// telemetry state; callers hand it the history and scalars to show.
type Renderer struct {
	s *Surface
}

// New builds a renderer over the display framebuffer.
func New(fb hal.Framebuffer) *Renderer {
	return &Renderer{s: NewSurface(fb)}
}

// Charts draws the full-size two-panel layout: CPU and RAM time series,
// the proportional storage bar, and the uptime readout.
func (r *Renderer) Charts(h *history.History, sc telemetry.Scalars) {
	r.s.Fill(colorBG)
	r.s.Text(fontTitle, 6, 16, colorFG, "Sentinel Monitor")
	r.uptime(sc.UptimeSeconds)

	const margin = 8
	w := r.s.Width() - 2*margin
	y := 24
	r.chartPanel(margin, y, w, 60, "CPU", colorCPU, h, cpuOf)
	y += 70
	r.chartPanel(margin, y, w, 60, "RAM", colorRAM, h, memOf)
	y += 76
	r.storageBar(margin, y, w, 18, sc.DiskUsedPct)

	_ = r.s.Display()
}

// Clock draws the large wall-clock layout with the two series at reduced
// size below it.
func (r *Renderer) Clock(h *history.History, sc telemetry.Scalars) {
	r.s.Fill(colorBG)
	r.s.CenterText(fontClock, 52, colorFG, ClockFromTimestamp(sc.Timestamp))
	r.uptime(sc.UptimeSeconds)

	const margin = 8
	w := r.s.Width() - 2*margin
	r.chartPanel(margin, 76, w, 48, "CPU", colorCPU, h, cpuOf)
	r.chartPanel(margin, 132, w, 48, "RAM", colorRAM, h, memOf)

	_ = r.s.Display()
}

// AssociationSplash shows the network-association success screen.
func (r *Renderer) AssociationSplash(ssid, addr string) {
	r.s.Fill(colorBG)
	r.s.CenterText(fontBig, 80, colorGood, "SUCCESS")
	r.s.CenterText(fontTitle, 120, colorFG, "Connected to:")
	r.s.CenterText(fontTitle, 140, colorFG, ssid)
	if addr != "" {
		r.s.CenterText(fontLabel, 165, colorFG, "IP: "+addr)
		r.s.CenterText(fontLabel, 180, colorGood, "Config: http://"+addr)
	}
	_ = r.s.Display()
}

// PairingSplash shows the one-shot pairing outcome with its short status
// string. Failure here is advisory; the machine proceeds regardless.
func (r *Renderer) PairingSplash(ok bool, status string) {
	r.s.Fill(colorBG)
	if ok {
		r.s.CenterText(fontBig, 100, colorGood, "Paired!")
	} else {
		r.s.CenterText(fontBig, 100, colorBad, "Pairing failed")
	}
	r.s.CenterText(fontTitle, 140, colorFG, status)
	_ = r.s.Display()
}

// Boot shows the idle/provisioning screen with a one-line status.
func (r *Renderer) Boot(status string) {
	r.s.Fill(colorBoot)
	r.s.CenterText(fontBig, 110, colorBootF, "SENTINEL")
	if status != "" {
		r.s.CenterText(fontLabel, 140, colorGrid, status)
	}
	_ = r.s.Display()
}

func (r *Renderer) uptime(secs uint32) {
	const boxW, boxH = 120, 12
	x := r.s.Width() - boxW - 4
	r.s.FillRect(x, 2, boxW, boxH, colorBG)
	r.s.Text(fontLabel, x+2, 11, colorFG, "Up: "+FormatUptime(secs))
}

// chartPanel draws one time-series panel: border, title, 25/50/75%
// gridlines, the polyline over the snapshot, and the newest value label.
// The x scale is fixed to the full ring capacity so the time axis does not
// stretch while the ring fills.
func (r *Renderer) chartPanel(x, y, w, h int, title string, c color.RGBA, hist *history.History, value func(history.Sample) float32) {
	r.s.FillRect(x, y, w, h, colorBG)
	r.s.DrawRect(x, y, w, h, colorFG)
	r.s.Text(fontLabel, x+4, y+10, colorFG, title)

	plotX := x + 2
	plotY := y + 14
	plotW := w - 4
	plotH := h - 18

	for _, p := range [3]float32{25, 50, 75} {
		gy := MapToPixel(p, plotY, plotH)
		r.s.HLine(x+1, gy, w-2, colorGrid)
	}

	n := hist.Len()
	if n == 0 {
		return
	}

	prevX := plotX
	prevY := MapToPixel(value(hist.At(0)), plotY, plotH)
	r.s.SetPixel(int16(prevX), int16(prevY), c)
	for i := 1; i < n; i++ {
		px := plotX + i*plotW/(history.Capacity-1)
		py := MapToPixel(value(hist.At(i)), plotY, plotH)
		r.s.Line(prevX, prevY, px, py, c)
		prevX, prevY = px, py
	}

	label := fmt.Sprintf("%.0f%%", value(hist.At(n-1)))
	r.s.Text(fontLabel, x+w-36, y+10, colorFG, label)
}

// storageBar draws the disk usage bar: used portion red, free portion
// green, widths proportional to the percentage.
func (r *Renderer) storageBar(x, y, w, h int, usedPct float32) {
	if usedPct < 0 {
		usedPct = 0
	}
	if usedPct > 100 {
		usedPct = 100
	}

	r.s.Text(fontLabel, x+4, y-3, colorFG, "Storage")
	r.s.Text(fontLabel, x+w-36, y-3, colorFG, fmt.Sprintf("%.0f%%", usedPct))

	r.s.FillRect(x, y, w, h, colorBG)
	r.s.DrawRect(x, y, w, h, colorFG)

	usedW := int(float32(w) * usedPct / 100)
	if usedW > 2 {
		r.s.FillRect(x+1, y+1, usedW-2, h-2, colorUsed)
	}
	if usedW < w-2 {
		r.s.FillRect(x+usedW+1, y+1, w-usedW-2, h-2, colorFree)
	}
}

func cpuOf(s history.Sample) float32 { return s.CPU }
func memOf(s history.Sample) float32 { return s.Memory }
