package tanks

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

// ReasonStepLimit marks an episode cut off before the round ended.
const ReasonStepLimit = "step limit"

// Policy picks the action for step of an episode.
type Policy func(step int, rng *rand.Rand) sim.Action

var policies = map[string]Policy{
	"random": func(_ int, rng *rand.Rand) sim.Action {
		return sim.Action(rng.Intn(sim.NumActions))
	},
	"fire": func(int, *rand.Rand) sim.Action {
		return sim.ActionFire
	},
	// patrol drives each way for a second while shooting ahead.
	"patrol": func(step int, _ *rand.Rand) sim.Action {
		return sim.ActionFireUp + sim.Action(step/50%4)
	},
}

// PolicyByName returns a built-in policy.
func PolicyByName(name string) (Policy, error) {
	p, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("tanks: unknown policy %q (want one of %v)", name, PolicyNames())
	}
	return p, nil
}

// PolicyNames lists the built-in policies.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EpisodeResult is the outcome of one headless episode.
type EpisodeResult struct {
	Seed     int64
	Stage    int
	Steps    int
	Kills    int
	Score    float64
	Reason   string
	Snapshot []byte
}

// Runner plays headless episodes with a fixed configuration.
type Runner struct {
	cfg      config.TanksConfig
	levels   sim.LevelSource
	tickRate int
	maxSteps int
	policy   Policy
}

// NewRunner loads the effective config and levels once for all episodes.
func NewRunner(tickRate, maxSteps int, policy Policy) *Runner {
	r := &Runner{
		cfg:      LoadConfig(),
		tickRate: tickRate,
		maxSteps: maxSteps,
		policy:   policy,
	}
	if cat := LoadCatalog(); cat != nil {
		r.levels = cat
	}
	return r
}

// Run plays one episode. The seed drives both the engine and the policy.
func (r *Runner) Run(seed int64) (EpisodeResult, error) {
	e := sim.New(r.cfg, r.levels,
		sim.WithSeed(seed),
		sim.WithTickRate(r.tickRate),
		sim.WithLogger(logger),
	)
	rng := rand.New(rand.NewSource(seed))

	res := EpisodeResult{Seed: seed}
	over := false
	for res.Steps < r.maxSteps && !over {
		var err error
		res.Score, over, err = e.Step(r.policy(res.Steps, rng))
		if err != nil {
			return res, err
		}
		res.Steps++
	}

	res.Stage = e.Stage()
	res.Kills = e.Kills()
	res.Reason = e.Reason()
	if !over {
		res.Reason = ReasonStepLimit
	}

	snap := e.Snapshot()
	data, err := snap.Encode()
	if err != nil {
		return res, err
	}
	res.Snapshot = data
	return res, nil
}
