package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	fired []Effect
	err   error
}

func (r *recorder) Fire(e Effect) error {
	r.fired = append(r.fired, e)
	return r.err
}

func TestSchedulerFiresPeriodically(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec)
	s.Add(100, Effect{Kind: EffectSpawnEnemy}, RepeatForever)

	for range 50 {
		s.Advance(20)
	}

	assert.Len(t, rec.fired, 10)
	assert.Equal(t, 1, s.Len())
}

func TestSchedulerSplitAdvanceMatchesSingle(t *testing.T) {
	tests := []struct {
		name   string
		splits []int
	}{
		{"single", []int{300}},
		{"two", []int{250, 50}},
		{"uneven", []int{70, 70, 70, 90}},
		{"ticks", []int{20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			s := NewScheduler(rec)
			s.Add(100, Effect{Kind: EffectToggleWater}, RepeatForever)
			for _, d := range tt.splits {
				s.Advance(d)
			}
			assert.Len(t, rec.fired, 3)
		})
	}
}

func TestSchedulerRepeatExhaustion(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec)
	tok := s.Add(10, Effect{Kind: EffectAdvanceFrame, Target: 7}, 3)

	s.Advance(1000)

	assert.Len(t, rec.fired, 3)
	assert.False(t, s.Pending(tok))
	assert.Equal(t, 0, s.Len())
}

func TestSchedulerRemovesBeforeLastFiring(t *testing.T) {
	var s *Scheduler
	var tok Token
	var pendingDuringFire []bool
	s = NewScheduler(HandlerFunc(func(Effect) error {
		pendingDuringFire = append(pendingDuringFire, s.Pending(tok))
		return nil
	}))
	tok = s.Add(10, Effect{Kind: EffectExpireLabel}, 2)

	s.Advance(20)

	assert.Equal(t, []bool{true, false}, pendingDuringFire)
}

func TestSchedulerCancelIsIdempotent(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec)
	tok := s.Add(10, Effect{Kind: EffectUnfreeze}, 1)

	s.Cancel(tok)
	s.Cancel(tok)
	s.Cancel(Token{})
	s.Advance(100)

	assert.Empty(t, rec.fired)
	assert.False(t, s.Pending(tok))
}

func TestSchedulerHandlerErrorRemovesEntry(t *testing.T) {
	rec := &recorder{err: ErrStaleTarget}
	s := NewScheduler(rec)
	var dropped []error
	s.OnDrop(func(_ Effect, err error) { dropped = append(dropped, err) })
	tok := s.Add(10, Effect{Kind: EffectEnemyFire, Target: 3}, RepeatForever)

	s.Advance(100)

	assert.Len(t, rec.fired, 1)
	assert.False(t, s.Pending(tok))
	require.Len(t, dropped, 1)
	assert.True(t, errors.Is(dropped[0], ErrStaleTarget))
}

func TestSchedulerEntriesAddedDuringPassWait(t *testing.T) {
	var s *Scheduler
	counts := map[EffectKind]int{}
	s = NewScheduler(HandlerFunc(func(e Effect) error {
		counts[e.Kind]++
		if e.Kind == EffectSpawnEnemy && counts[e.Kind] == 1 {
			s.Add(10, Effect{Kind: EffectEndSpawning}, RepeatForever)
		}
		return nil
	}))
	s.Add(10, Effect{Kind: EffectSpawnEnemy}, 1)

	s.Advance(50)
	assert.Equal(t, 1, counts[EffectSpawnEnemy])
	assert.Equal(t, 0, counts[EffectEndSpawning])

	s.Advance(20)
	assert.Equal(t, 2, counts[EffectEndSpawning])
}

func TestSchedulerIntervalFloor(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec)
	s.Add(0, Effect{Kind: EffectToggleWater}, RepeatForever)

	s.Advance(5)

	assert.Len(t, rec.fired, 5)
}
