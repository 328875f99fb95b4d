package grove

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// swayTween ping-pongs a value between -1 and 1 forever. Each half swing is
// one gween tween; when it finishes the endpoints swap and a new one starts.
//
// There is no global animation manager: the owner calls update each frame.
type swayTween struct {
	tween    *gween.Tween
	from, to float32
	half     float32 // seconds per half swing
	fn       ease.TweenFunc
	value    float64
}

// newSwayTween creates a sway with the given full period in seconds, starting
// at -1 heading to +1.
func newSwayTween(period float64) *swayTween {
	s := &swayTween{from: -1, to: 1, half: float32(period / 2), fn: ease.InOutSine, value: -1}
	s.tween = gween.New(s.from, s.to, s.half, s.fn)
	return s
}

// update advances the sway by dt seconds and returns the current value in
// [-1, 1].
func (s *swayTween) update(dt float32) float64 {
	val, finished := s.tween.Update(dt)
	s.value = float64(val)
	if finished {
		s.from, s.to = s.to, s.from
		s.tween = gween.New(s.from, s.to, s.half, s.fn)
	}
	return s.value
}
