package touch

import (
	"github.com/atomicstack/pie-launcher/internal/gesture"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fader tweens the ring opacity in when it appears and out when it goes
// away, and flashes the frame on haptic feedback.
type fader struct {
	alpha float32
	fade  *gween.Tween
	flash float32
	pulse *gween.Tween
}

var (
	fadeSeconds  = float32(gesture.FadeDuration.Seconds())
	pulseSeconds = float32((12 * gesture.HapticPulse).Seconds())
)

// show starts fading towards visible or hidden from the current opacity.
func (f *fader) show(visible bool) {
	to := float32(0)
	if visible {
		to = 1
	}
	f.fade = gween.New(f.alpha, to, fadeSeconds, ease.OutQuad)
}

// kick restarts the haptic flash.
func (f *fader) kick() {
	f.pulse = gween.New(1, 0, pulseSeconds, ease.OutCubic)
	f.flash = 1
}

// update advances both tweens by dt seconds.
func (f *fader) update(dt float32) {
	if f.fade != nil {
		val, done := f.fade.Update(dt)
		f.alpha = val
		if done {
			f.fade = nil
		}
	}
	if f.pulse != nil {
		val, done := f.pulse.Update(dt)
		f.flash = val
		if done {
			f.pulse = nil
			f.flash = 0
		}
	}
}

// idle reports whether nothing is animating and the ring is hidden.
func (f *fader) idle() bool {
	return f.fade == nil && f.pulse == nil && f.alpha == 0
}
