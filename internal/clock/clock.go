package clock

import "time"

// Clock is the single source of "now" for every time-window rule so tests
// can pin it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func System() Clock {
	return systemClock{}
}

// Func adapts a plain function into a Clock.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

// At returns a Clock frozen at t.
func At(t time.Time) Clock {
	return Func(func() time.Time { return t })
}
