package handpose

// Config holds the empirical thresholds and window sizes for the flip
// and motion detector. The defaults were tuned against live footage;
// treat them as configuration, not values to re-derive.
type Config struct {
	// HistorySize is the per-hand sample ring capacity.
	HistorySize int

	// FlipWindow is the minimum number of samples required before the
	// flip and motion tests run.
	FlipWindow int

	// MotionWindow is the number of trailing samples used for the wrist
	// displacement test.
	MotionWindow int

	// CooldownFrames is the refractory frame count after a flip event
	// during which no further flip may be emitted for the same hand.
	CooldownFrames int

	// FlipVelocity is the minimum mean per-frame change of the surface
	// normal's Z component for a palm reversal to count as a flip.
	FlipVelocity float64

	// RotateVelocity is the minimum mean normal-Z change for the
	// Rotating status.
	RotateVelocity float64

	// MoveDistance is the minimum wrist displacement across the motion
	// window for the Moving status.
	MoveDistance float64
}

// DefaultConfig returns the tuned default thresholds.
func DefaultConfig() Config {
	return Config{
		HistorySize:    10,
		FlipWindow:     5,
		MotionWindow:   3,
		CooldownFrames: 15,
		FlipVelocity:   0.015,
		RotateVelocity: 0.01,
		MoveDistance:   0.05,
	}
}
