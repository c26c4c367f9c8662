package gamemath

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// Sign returns -1, 0 or 1. Zero maps to zero so a stationary axis is never corrected.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Overlap returns the length shared by [min1, max1] and [min2, max2], never negative.
func Overlap(min1, max1, min2, max2 float64) float64 {
	return max(0, min(max1, max2)-max(min1, min2))
}

// Priority picks the direction that wins when both are held.
type Priority int

const (
	NegativeFirst Priority = iota
	PositiveFirst
)

// Steer moves speed one step toward the held direction and clamps it to [-limit, limit].
// Releasing both stops the axis dead.
func Steer(speed float64, negative, positive bool, prio Priority, accel, limit float64) float64 {
	if negative && positive {
		negative = prio == NegativeFirst
		positive = !negative
	}
	switch {
	case negative:
		return ClampSpeed(speed-accel, limit)
	case positive:
		return ClampSpeed(speed+accel, limit)
	}
	return 0
}
