package infrastructure

import (
	"time"

	"github.com/draftea/checkout-system/checkout-service/domain"
)

var _ domain.Clock = SystemClock{}

// SystemClock is the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (SystemClock) AfterFunc(d time.Duration, f func()) domain.Timer {
	return time.AfterFunc(d, f)
}
