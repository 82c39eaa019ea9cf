package sim

import (
	"errors"

	"github.com/google/uuid"
)

// ErrStaleTarget is returned by an effect handler when the entity an entry
// targets no longer exists. The scheduler drops such entries silently.
var ErrStaleTarget = errors.New("sim: scheduled effect target is gone")

// errEffectDone signals that a repeating effect has nothing left to do.
var errEffectDone = errors.New("sim: scheduled effect finished")

// Token identifies a scheduler entry for cancellation.
// The zero Token names no entry.
type Token struct {
	id uuid.UUID
}

// IsZero reports whether the token is the zero Token.
func (t Token) IsZero() bool {
	return t.id == uuid.Nil
}

// String returns the token's identity.
func (t Token) String() string {
	return t.id.String()
}

// EffectKind enumerates every deferred operation the engine schedules.
type EffectKind int

const (
	EffectSpawnEnemy      EffectKind = iota // Round: try to add an enemy
	EffectStageTimeout                      // Round: time limit reached
	EffectEndSpawning                       // Tank: Spawning -> Alive
	EffectSpawnFlicker                      // Tank: spawn animation frame
	EffectEnemyFire                         // Enemy: attempt a shot
	EffectShieldFlicker                     // Player: shield animation frame
	EffectExpireShield                      // Player: drop the shield
	EffectExpireParalysis                   // Player: regain movement
	EffectAdvanceFrame                      // Transient: next explosion frame
	EffectExpireLabel                       // Transient: hide a label
	EffectRevertFortress                    // Grid: steel fortress back to brick
	EffectUnfreeze                          // Round: end time freeze
	EffectExpirePowerUp                     // PowerUp: lifetime over
	EffectPowerUpBlink                      // PowerUp: toggle visibility
	EffectToggleWater                       // Grid: water animation frame
)

var effectNames = [...]string{
	"spawn-enemy", "stage-timeout", "end-spawning", "spawn-flicker",
	"enemy-fire", "shield-flicker", "expire-shield", "expire-paralysis",
	"advance-frame", "expire-label", "revert-fortress", "unfreeze",
	"expire-powerup", "powerup-blink", "toggle-water",
}

// String returns the effect name.
func (k EffectKind) String() string {
	if k >= 0 && int(k) < len(effectNames) {
		return effectNames[k]
	}
	return "unknown"
}

// Effect is a tagged deferred operation. Target is the entity it applies to,
// or zero for round-level effects.
type Effect struct {
	Kind   EffectKind
	Target EntityID
}

// Handler executes fired effects. Returning any error removes the entry.
type Handler interface {
	Fire(Effect) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(Effect) error

// Fire calls f(e).
func (f HandlerFunc) Fire(e Effect) error {
	return f(e)
}

// RepeatForever is the repeat count of entries that fire until cancelled.
const RepeatForever = -1

type entry struct {
	token    Token
	interval int
	elapsed  int
	repeat   int
	fired    int
	effect   Effect
	removed  bool
}

// Scheduler is an interval registry advanced by simulated elapsed time.
// Entries fire in registration order. It is not safe for concurrent use.
type Scheduler struct {
	handler Handler
	entries []*entry
	onDrop  func(Effect, error)
}

// NewScheduler creates a scheduler that dispatches fired effects to h.
func NewScheduler(h Handler) *Scheduler {
	return &Scheduler{handler: h}
}

// OnDrop registers a hook called whenever an entry is removed because its
// handler returned an error.
func (s *Scheduler) OnDrop(fn func(Effect, error)) {
	s.onDrop = fn
}

// Add registers an effect firing every interval ms, repeat times in total
// (RepeatForever for no limit). Intervals below 1 ms are raised to 1 ms.
func (s *Scheduler) Add(interval int, effect Effect, repeat int) Token {
	if interval < 1 {
		interval = 1
	}
	t := Token{id: uuid.New()}
	s.entries = append(s.entries, &entry{
		token:    t,
		interval: interval,
		repeat:   repeat,
		effect:   effect,
	})
	return t
}

// Cancel removes the entry for t. Unknown or already removed tokens are ignored.
func (s *Scheduler) Cancel(t Token) {
	if t.IsZero() {
		return
	}
	for _, e := range s.entries {
		if e.token == t {
			e.removed = true
		}
	}
}

// Pending reports whether t still names a live entry.
func (s *Scheduler) Pending(t Token) bool {
	for _, e := range s.entries {
		if e.token == t && !e.removed {
			return true
		}
	}
	return false
}

// Len returns the number of live entries.
func (s *Scheduler) Len() int {
	n := 0
	for _, e := range s.entries {
		if !e.removed {
			n++
		}
	}
	return n
}

// Clear removes every entry.
func (s *Scheduler) Clear() {
	for _, e := range s.entries {
		e.removed = true
	}
	s.entries = nil
}

// Advance feeds elapsed ms to every entry registered before the call.
// An entry fires once per whole interval accumulated, keeping the remainder,
// so split calls fire exactly as often as one call with the same total.
// An entry whose repeat count is reached is removed before its last firing.
// Entries added by handlers during the pass start accumulating on the next call.
func (s *Scheduler) Advance(elapsed int) {
	if elapsed <= 0 {
		return
	}
	pass := s.entries
	for _, e := range pass {
		if e.removed {
			continue
		}
		e.elapsed += elapsed
		for e.elapsed >= e.interval && !e.removed {
			e.elapsed -= e.interval
			e.fired++
			if e.repeat >= 0 && e.fired >= e.repeat {
				e.removed = true
			}
			if err := s.handler.Fire(e.effect); err != nil {
				e.removed = true
				if s.onDrop != nil {
					s.onDrop(e.effect, err)
				}
			}
		}
	}
	s.compact()
}

func (s *Scheduler) compact() {
	live := s.entries[:0]
	for _, e := range s.entries {
		if !e.removed {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = live
}
