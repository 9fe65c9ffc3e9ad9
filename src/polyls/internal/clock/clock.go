package clock

import (
	"time"
)

// Clock is an interface that abstracts the functionality for measuring and displaying time.
type Clock interface {
	// Now returns the current local time.
	Now() time.Time
}

type clock struct{}

// New creates a new instance of Clock.
func New() Clock {
	return clock{}
}

func (clock) Now() time.Time {
	return time.Now()
}
