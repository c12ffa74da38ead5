package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/draftea/checkout-system/checkout-service/mocks"
)

func TestPollScheduler(t *testing.T) {
	clock := mocks.NewFakeClock(t0)
	s := NewPollScheduler(clock, 0)
	assert.Equal(t, DefaultPollInterval, s.Interval())

	var fired int
	fire := func() {
		s.Done("a")
		fired++
	}

	assert.True(t, s.Arm("a", fire))
	assert.False(t, s.Arm("a", fire), "a session is armed once")
	assert.True(t, s.Arm("b", func() {}))
	assert.Equal(t, 2, clock.Pending())

	clock.Advance(2 * time.Second)
	assert.Zero(t, fired)

	clock.Advance(time.Second)
	assert.Equal(t, 1, fired)
	assert.False(t, s.Armed("a"))
	assert.True(t, s.Arm("a", fire), "armed again after the poll ran")

	s.Cancel("a")
	assert.False(t, s.Armed("a"))

	s.Stop()
	assert.False(t, s.Armed("b"))
	assert.Zero(t, clock.Pending())

	clock.Advance(time.Minute)
	assert.Equal(t, 1, fired)
}
