// Package timeunit handles integer epoch timestamps at explicit granularity.
// A timestamp is a count of units since the Unix epoch; the unit value is the
// number of such units per second.
package timeunit

import "time"

type Unit int64

const (
	Nanosecond  Unit = 1_000_000_000
	Microsecond Unit = 1_000_000
	Millisecond Unit = 1_000
	Second      Unit = 1
)

const rfc3339Micro = "2006-01-02T15:04:05.000000Z07:00"

// String implements the Stringer interface
func (u Unit) String() string {
	switch u {
	case Nanosecond:
		return "ns"
	case Microsecond:
		return "us"
	case Millisecond:
		return "ms"
	case Second:
		return "s"
	default:
		return "unknown"
	}
}

// Now returns the current time expressed in the given unit.
func Now(u Unit) int64 {
	return time.Now().UnixNano() / (int64(Nanosecond) / int64(u))
}

// ToRFC3339 formats a timestamp in the given unit as an RFC3339 string in
// UTC with microsecond precision.
func ToRFC3339(timestamp int64, u Unit) string {
	sec := timestamp / int64(u)
	nsec := (timestamp % int64(u)) * (int64(Nanosecond) / int64(u))

	return time.Unix(sec, nsec).UTC().Format(rfc3339Micro)
}

// Step returns the per-sample time step for a signal sampled at the given
// frequency, expressed in the given unit. Integer division truncates when
// the unit is not divisible by the frequency; at one second granularity the
// step collapses to zero for any frequency above 1 Hz.
func Step(u Unit, frequency int) int64 {
	if frequency <= 0 {
		return 0
	}

	return int64(u) / int64(frequency)
}
