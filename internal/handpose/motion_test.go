package handpose

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

// pushSamples fills the state with one sample per normal-Z value, with
// the palm state derived from the sign (as for a right hand).
func pushSamples(s *handState, normalZ ...float64) {
	for _, z := range normalZ {
		s.history.push(sample{
			normal:      detector.Point3D{Z: z},
			palmShowing: z > 0,
		})
	}
}

func TestEvaluateFlip(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("palm reversal with fast normal change emits flip", func(t *testing.T) {
		s := newHandState(cfg.HistorySize)
		pushSamples(s, 0.10, 0.07, 0.03, -0.02, -0.05)

		ev := s.evaluate(cfg, detector.Right)

		if ev == nil {
			t.Fatal("expected a flip event")
		}
		if ev.Direction != PalmToBack {
			t.Errorf("direction = %q, want %q", ev.Direction, PalmToBack)
		}
		if math.Abs(ev.Velocity-0.0375) > 1e-9 {
			t.Errorf("velocity = %f, want 0.0375", ev.Velocity)
		}
		if got, want := ev.Message(), "Right Hand flipped: Palm to Back (velocity: 0.0375)"; got != want {
			t.Errorf("message = %q, want %q", got, want)
		}
		if s.status != FlippingStatus(PalmToBack) {
			t.Errorf("status = %q, want %q", s.status, FlippingStatus(PalmToBack))
		}
		if s.cooldown != cfg.CooldownFrames {
			t.Errorf("cooldown = %d, want %d", s.cooldown, cfg.CooldownFrames)
		}
	})

	t.Run("back to palm direction", func(t *testing.T) {
		s := newHandState(cfg.HistorySize)
		pushSamples(s, -0.05, -0.02, 0.03, 0.07, 0.10)

		ev := s.evaluate(cfg, detector.Left)

		if ev == nil {
			t.Fatal("expected a flip event")
		}
		if ev.Direction != BackToPalm {
			t.Errorf("direction = %q, want %q", ev.Direction, BackToPalm)
		}
	})

	t.Run("palm reversal without normal change is not a flip", func(t *testing.T) {
		s := newHandState(cfg.HistorySize)
		// Reversed palm state but constant normals: avg change is zero.
		for _, palm := range []bool{true, true, false, false, false} {
			s.history.push(sample{normal: detector.Point3D{Z: 0.02}, palmShowing: palm})
		}

		ev := s.evaluate(cfg, detector.Right)

		if ev != nil {
			t.Fatalf("expected no flip, got %+v", ev)
		}
		if s.status != StatusStable {
			t.Errorf("status = %q, want %q", s.status, StatusStable)
		}
	})

	t.Run("slow reversal falls through to motion test", func(t *testing.T) {
		s := newHandState(cfg.HistorySize)
		// Reversal present, but mean change 0.011 is under the 0.015
		// flip threshold and over the 0.01 rotation threshold.
		pushSamples(s, 0.022, 0.011, 0.0, -0.011, -0.022)

		ev := s.evaluate(cfg, detector.Right)

		if ev != nil {
			t.Fatalf("expected no flip, got %+v", ev)
		}
		if s.status != StatusRotating {
			t.Errorf("status = %q, want %q", s.status, StatusRotating)
		}
	})

	t.Run("fewer than five samples holds state", func(t *testing.T) {
		s := newHandState(cfg.HistorySize)
		pushSamples(s, 0.10, 0.05, -0.05, -0.10)

		ev := s.evaluate(cfg, detector.Right)

		if ev != nil {
			t.Fatalf("expected no event with 4 samples, got %+v", ev)
		}
		if s.status != StatusUnknown {
			t.Errorf("status = %q, want %q", s.status, StatusUnknown)
		}
	})

	t.Run("active cooldown suppresses evaluation", func(t *testing.T) {
		s := newHandState(cfg.HistorySize)
		pushSamples(s, 0.10, 0.07, 0.03, -0.02, -0.05)
		s.cooldown = 1

		ev := s.evaluate(cfg, detector.Right)

		if ev != nil {
			t.Fatalf("expected no event under cooldown, got %+v", ev)
		}
		if s.status != StatusUnknown {
			t.Errorf("status should hold under cooldown, got %q", s.status)
		}
	})
}

func TestEvaluateMotion(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("wrist displacement classifies moving", func(t *testing.T) {
		s := newHandState(cfg.HistorySize)
		xs := []float64{0.10, 0.10, 0.10, 0.14, 0.18}
		for _, x := range xs {
			s.history.push(sample{
				wrist:       detector.Point3D{X: x},
				normal:      detector.Point3D{Z: 0.5},
				palmShowing: true,
			})
		}

		ev := s.evaluate(cfg, detector.Right)

		if ev != nil {
			t.Fatalf("expected no flip, got %+v", ev)
		}
		if s.status != StatusMoving {
			t.Errorf("status = %q, want %q", s.status, StatusMoving)
		}
	})

	t.Run("normal drift without reversal classifies rotating", func(t *testing.T) {
		s := newHandState(cfg.HistorySize)
		pushSamples(s, 0.50, 0.44, 0.38, 0.32, 0.26)

		ev := s.evaluate(cfg, detector.Right)

		if ev != nil {
			t.Fatalf("expected no flip, got %+v", ev)
		}
		if s.status != StatusRotating {
			t.Errorf("status = %q, want %q", s.status, StatusRotating)
		}
	})

	t.Run("still hand classifies stable", func(t *testing.T) {
		s := newHandState(cfg.HistorySize)
		pushSamples(s, 0.5, 0.5, 0.5, 0.5, 0.5)

		ev := s.evaluate(cfg, detector.Right)

		if ev != nil {
			t.Fatalf("expected no flip, got %+v", ev)
		}
		if s.status != StatusStable {
			t.Errorf("status = %q, want %q", s.status, StatusStable)
		}
	})
}
