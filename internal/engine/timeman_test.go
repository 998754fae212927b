package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeManagerMoveTime(t *testing.T) {
	var tm timeManager
	tm.init(Limits{MoveTime: 300 * time.Millisecond, Remain: time.Minute}, 40)
	assert.True(t, tm.limited())
	assert.Equal(t, 300*time.Millisecond, tm.optimumTime)
	assert.Equal(t, 300*time.Millisecond, tm.maximumTime)
}

func TestTimeManagerUnlimited(t *testing.T) {
	var tm timeManager
	tm.init(Limits{Depth: 5}, 60)
	assert.False(t, tm.limited())
	assert.True(t, tm.nextIteration())
}

func TestTimeManagerClock(t *testing.T) {
	tests := []struct {
		name    string
		limits  Limits
		empties int
		optimum time.Duration
		maximum time.Duration
	}{
		{
			name:    "opening",
			limits:  Limits{Remain: 62 * time.Second},
			empties: 60,
			optimum: 2 * time.Second,
			maximum: 10 * time.Second,
		},
		{
			name:    "increment",
			limits:  Limits{Remain: 10 * time.Second, Inc: time.Second},
			empties: 8,
			optimum: 2900 * time.Millisecond,
			maximum: 8 * time.Second,
		},
		{
			name:    "flagging",
			limits:  Limits{Remain: 5 * time.Millisecond},
			empties: 20,
			optimum: 10 * time.Millisecond,
			maximum: 20 * time.Millisecond,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tm timeManager
			tm.init(tt.limits, tt.empties)
			assert.Equal(t, tt.optimum, tm.optimumTime)
			assert.Equal(t, tt.maximum, tm.maximumTime)
		})
	}
}

func TestTimeManagerNextIteration(t *testing.T) {
	tm := timeManager{
		optimumTime: 100 * time.Millisecond,
		maximumTime: 200 * time.Millisecond,
		startTime:   time.Now().Add(-60 * time.Millisecond),
	}
	assert.False(t, tm.nextIteration())

	tm.startTime = time.Now()
	assert.True(t, tm.nextIteration())
}
