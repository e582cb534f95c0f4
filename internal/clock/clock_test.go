package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeAfterFiresOnlyOnceDeadlineReached(t *testing.T) {
	start := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
	fake := NewFake(start)

	timer := fake.After(2 * time.Second)
	fake.Advance(time.Second)
	select {
	case <-timer:
		t.Fatal("expected timer to stay armed before its deadline")
	default:
	}

	fake.Advance(time.Second)
	select {
	case fired := <-timer:
		assert.Equal(t, start.Add(2*time.Second), fired)
	default:
		t.Fatal("expected timer to fire at its deadline")
	}
	assert.Equal(t, 0, fake.Pending())
}

func TestFakeAfterNonPositiveFiresImmediately(t *testing.T) {
	fake := NewFake(time.Unix(0, 0))
	select {
	case <-fake.After(0):
	default:
		t.Fatal("expected zero-duration timer to be ready")
	}
}

func TestFakeTickerRearmsAndStops(t *testing.T) {
	fake := NewFake(time.Unix(0, 0))
	ticker := fake.NewTicker(30 * time.Second)

	fake.Advance(30 * time.Second)
	require.Len(t, ticker.C(), 1)
	<-ticker.C()

	fake.Advance(90 * time.Second)
	assert.Len(t, ticker.C(), 1, "unread ticks are dropped")
	<-ticker.C()

	ticker.Stop()
	fake.Advance(time.Minute)
	assert.Len(t, ticker.C(), 0)
	assert.Equal(t, 0, fake.Pending())
}
