// file: internals/helpers/clockx/clock.go
package clockx

import "time"

// Clock is injected everywhere "is the voting open right now" is asked,
// so tests can pin the instant instead of sleeping around wall time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System reads the wall clock, normalized to UTC.
var System Clock = systemClock{}

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock { return fixedClock{t: t.UTC()} }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }
